package resolve

import (
	"testing"

	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/loader"
	"github.com/oasgen/oasgen/pkg/refparse"
)

func TestResolveCrossFileSchema(t *testing.T) {
	g, err := loader.Load([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := New(g)

	ref := refparse.Parse("../../../common-types/resource-management/v1/types.json#/definitions/ErrorResponse")
	resolved, err := r.Schema("../loader/testdata/service/stable/2020-03-20/widget.json", ref)
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if resolved.Key == nil || resolved.Key.Name != "ErrorResponse" {
		t.Fatalf("resolved key = %+v", resolved.Key)
	}
	if resolved.Schema.Type != "object" {
		t.Fatalf("resolved schema type = %q, want object", resolved.Schema.Type)
	}
}

func TestResolveSchemaNotFound(t *testing.T) {
	g, err := loader.Load([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := New(g)

	_, err = r.Schema("../loader/testdata/service/stable/2020-03-20/widget.json", refparse.Parse("#/definitions/DoesNotExist"))
	if err == nil {
		t.Fatalf("expected SchemaNotFoundError")
	}
	var notFound *diag.SchemaNotFoundError
	if !asSchemaNotFound(err, &notFound) {
		t.Fatalf("expected *diag.SchemaNotFoundError, got %T: %v", err, err)
	}
}

func asSchemaNotFound(err error, target **diag.SchemaNotFoundError) bool {
	e, ok := err.(*diag.SchemaNotFoundError)
	if ok {
		*target = e
	}
	return ok
}

func TestPathItemRefNotImplemented(t *testing.T) {
	g, err := loader.Load([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	r := New(g)
	_, err = r.PathItem("widget.json", refparse.Parse("#/paths/~1widgets"))
	if err == nil {
		t.Fatalf("expected NotImplementedError")
	}
}
