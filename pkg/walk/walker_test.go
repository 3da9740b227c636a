package walk

import (
	"testing"

	"github.com/oasgen/oasgen/pkg/oasdoc"
)

func ref(s string) *string { return &s }

func TestSchemaWalkFindsNestedRefs(t *testing.T) {
	s := &oasdoc.Schema{
		Type: "object",
		Properties: map[string]oasdoc.Schema{
			"widget": {Ref: ref("#/definitions/Widget")},
			"items": {
				Type: "array",
				Items: &oasdoc.Schema{Ref: ref("#/definitions/Item")},
			},
		},
		AllOf: []oasdoc.Schema{
			{Ref: ref("#/definitions/Base")},
		},
		AdditionalProperties: &oasdoc.SchemaOrBool{
			Schema: &oasdoc.Schema{Ref: ref("#/definitions/Extra")},
		},
	}

	refs := Schema(s)
	want := map[string]bool{
		"#/definitions/Widget": true,
		"#/definitions/Item":   true,
		"#/definitions/Base":   true,
		"#/definitions/Extra":  true,
	}
	if len(refs) != len(want) {
		t.Fatalf("got %d refs, want %d: %+v", len(refs), len(want), refs)
	}
	for _, r := range refs {
		if !want[r.Raw] {
			t.Errorf("unexpected ref %q", r.Raw)
		}
		if r.Role != 0 {
			t.Errorf("ref %q has role %v, want RoleSchema", r.Raw, r.Role)
		}
	}
}

func TestBareRefSchemaStopsDescending(t *testing.T) {
	s := &oasdoc.Schema{
		Ref: ref("#/definitions/Widget"),
		Properties: map[string]oasdoc.Schema{
			"ignored": {Ref: ref("#/definitions/ShouldNotAppear")},
		},
	}
	refs := Schema(s)
	if len(refs) != 1 || refs[0].Raw != "#/definitions/Widget" {
		t.Fatalf("got %+v, want single Widget ref", refs)
	}
}

func TestPathItemRoles(t *testing.T) {
	item := &oasdoc.PathItem{
		Get: &oasdoc.Operation{
			Parameters: []oasdoc.Parameter{{Ref: "#/parameters/SubscriptionId"}},
			Responses: map[string]oasdoc.Response{
				"200": {Schema: &oasdoc.Schema{Ref: ref("#/definitions/Widget")}},
			},
			XMSExamples: map[string]oasdoc.Example{
				"Create": {Ref: "./examples/create.json"},
			},
		},
	}

	refs := PathItem(item)
	roles := map[string]string{}
	for _, r := range refs {
		roles[r.Raw] = r.Role.String()
	}

	if roles["#/parameters/SubscriptionId"] != "Parameter" {
		t.Errorf("parameter role = %s", roles["#/parameters/SubscriptionId"])
	}
	if roles["#/definitions/Widget"] != "Schema" {
		t.Errorf("schema role = %s", roles["#/definitions/Widget"])
	}
	if roles["./examples/create.json"] != "Example" {
		t.Errorf("example role = %s", roles["./examples/create.json"])
	}
}
