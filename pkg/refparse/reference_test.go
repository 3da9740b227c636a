package refparse

import (
	"reflect"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{
		"#/definitions/Widget",
		"../../../../../common-types/resource-management/v1/types.json#/definitions/ErrorResponse",
		"./examples/widget.json",
		"#/parameters/SubscriptionId",
	}

	for _, raw := range cases {
		ref := Parse(raw)
		if got := ref.String(); got != raw {
			t.Errorf("Parse(%q).String() = %q, want %q", raw, got, raw)
		}
		if again := Parse(ref.String()); !reflect.DeepEqual(again, ref) {
			t.Errorf("round-trip mismatch for %q: %+v != %+v", raw, again, ref)
		}
	}
}

func TestParseNoFragment(t *testing.T) {
	ref := Parse("examples/widget-create.json")
	if ref.File != "examples/widget-create.json" {
		t.Fatalf("File = %q", ref.File)
	}
	if ref.HasName {
		t.Fatalf("HasName = true, want false")
	}
	if len(ref.Path) != 0 {
		t.Fatalf("Path = %v, want empty", ref.Path)
	}
}

func TestParseIntraDocument(t *testing.T) {
	ref := Parse("#/definitions/Widget")
	if ref.File != "" {
		t.Fatalf("File = %q, want empty", ref.File)
	}
	if !ref.HasName || ref.Name != "Widget" {
		t.Fatalf("Name = %q (has=%v), want Widget", ref.Name, ref.HasName)
	}
	if len(ref.Path) != 2 || ref.Path[0] != "definitions" || ref.Path[1] != "Widget" {
		t.Fatalf("Path = %v", ref.Path)
	}
}

func TestParseCrossFile(t *testing.T) {
	ref := Parse("../../../../../common-types/resource-management/v1/types.json#/definitions/ErrorResponse")
	if ref.File != "../../../../../common-types/resource-management/v1/types.json" {
		t.Fatalf("File = %q", ref.File)
	}
	if ref.Name != "ErrorResponse" {
		t.Fatalf("Name = %q", ref.Name)
	}
}

func TestRoleString(t *testing.T) {
	cases := map[Role]string{
		RoleSchema:    "Schema",
		RoleParameter: "Parameter",
		RolePathItem:  "PathItem",
		RoleExample:   "Example",
	}
	for role, want := range cases {
		if got := role.String(); got != want {
			t.Errorf("Role(%d).String() = %q, want %q", role, got, want)
		}
	}
}
