package opgen

import (
	"strings"
	"testing"

	"github.com/oasgen/oasgen/pkg/loader"
	"github.com/oasgen/oasgen/pkg/resolve"
)

const widgetFile = "../loader/testdata/service/stable/2020-03-20/widget.json"

func TestTranslateBuildsGetFunction(t *testing.T) {
	g, err := loader.Load([]string{widgetFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tr := New(resolve.New(g), "models", "", nil)

	fns, err := tr.Translate(g.Documents[widgetFile], widgetFile)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(fns) != 1 {
		t.Fatalf("got %d functions, want 1: %+v", len(fns), fns)
	}

	fn := fns[0]
	if fn.Name != "WidgetsGet" {
		t.Fatalf("Name = %q, want WidgetsGet", fn.Name)
	}
	if fn.Method != "GET" {
		t.Fatalf("Method = %q, want GET", fn.Method)
	}
	if fn.ResponseType != "models.Widget" {
		t.Fatalf("ResponseType = %q, want models.Widget", fn.ResponseType)
	}

	path := fn.PathParams()
	if len(path) != 1 || path[0].WireName != "name" || path[0].Type != "string" {
		t.Fatalf("PathParams = %+v, want one required string 'name'", path)
	}
}

func TestEmitProducesCompilableLookingSource(t *testing.T) {
	g, err := loader.Load([]string{widgetFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tr := New(resolve.New(g), "models", "", nil)
	fns, err := tr.Translate(g.Documents[widgetFile], widgetFile)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	src := Emit("client", "Client", fns)
	if !strings.Contains(src, "func (c *Client) WidgetsGet(ctx context.Context, name string) (*models.Widget, error) {") {
		t.Fatalf("Emit output missing expected signature:\n%s", src)
	}
	if !strings.Contains(src, `path := fmt.Sprintf("/widgets/%s", name)`) {
		t.Fatalf("Emit output missing path build:\n%s", src)
	}
	if !strings.Contains(src, `req.Header.Set("Accept", "application/json")`) {
		t.Fatalf("Emit output missing Accept header:\n%s", src)
	}
}

func TestFixedAPIVersionIsSourcedFromClientConfig(t *testing.T) {
	g, err := loader.Load([]string{widgetFile})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	tr := New(resolve.New(g), "models", "stable/2020-03-20", nil)
	fns, err := tr.Translate(g.Documents[widgetFile], widgetFile)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	src := Emit("client", "Client", fns)
	if !strings.Contains(src, `q := req.URL.Query()`) {
		t.Fatalf("Emit output missing query builder for fixed api-version:\n%s", src)
	}
	if !strings.Contains(src, `q.Set("api-version", c.apiVersion)`) {
		t.Fatalf("Emit output missing api-version query entry:\n%s", src)
	}
}
