package loader

import (
	"testing"

	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/oasdoc"
)

// TestLoadDiscoversCrossFileReference exercises the same shape as the
// spec's AVS/common-types scenario (§8 scenario 1): a root document whose
// only cross-file reference is a relative path several directories up,
// landing the graph at exactly two entries.
func TestLoadDiscoversCrossFileReference(t *testing.T) {
	root := "testdata/service/stable/2020-03-20/widget.json"

	g, err := Load([]string{root})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(g.Documents) != 2 {
		t.Fatalf("got %d documents, want 2: %v", len(g.Documents), keysOf(g.Documents))
	}

	wantCommon := "testdata/common-types/resource-management/v1/types.json"
	if _, ok := g.Documents[wantCommon]; !ok {
		t.Fatalf("expected %q in graph, got %v", wantCommon, keysOf(g.Documents))
	}

	if !g.IsPrimary(root) {
		t.Fatalf("root file should be primary")
	}
	if g.IsPrimary(wantCommon) {
		t.Fatalf("common-types file should not be primary")
	}
}

func TestLoadIndexesDefinitionsByFileAndName(t *testing.T) {
	root := "testdata/service/stable/2020-03-20/widget.json"
	g, err := Load([]string{root})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	key := diag.RefKey{File: root, Name: "Widget"}
	if _, ok := g.SchemaIndex[key]; !ok {
		t.Fatalf("expected schema index to contain %s, got keys %v", key, schemaKeys(g.SchemaIndex))
	}

	commonKey := diag.RefKey{File: "testdata/common-types/resource-management/v1/types.json", Name: "ErrorResponse"}
	if _, ok := g.SchemaIndex[commonKey]; !ok {
		t.Fatalf("expected schema index to contain %s", commonKey)
	}
}

func keysOf(m map[string]*oasdoc.Document) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func schemaKeys(m map[diag.RefKey]*oasdoc.Schema) []diag.RefKey {
	out := make([]diag.RefKey, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
