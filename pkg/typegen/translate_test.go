package typegen

import (
	"strings"
	"testing"

	"github.com/oasgen/oasgen/pkg/loader"
	"github.com/oasgen/oasgen/pkg/resolve"
)

func loadWidget(t *testing.T) *loader.Graph {
	t.Helper()
	g, err := loader.Load([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return g
}

func TestTranslatePullsInCrossFileResponseSchema(t *testing.T) {
	g := loadWidget(t)
	tr := New(g, resolve.New(g), nil, nil)

	pkg, err := tr.Translate([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	names := map[string]*GoType{}
	for _, gt := range pkg.Types {
		names[gt.Name] = gt
	}

	widget, ok := names["Widget"]
	if !ok {
		t.Fatalf("expected a Widget type, got %v", typeNames(pkg))
	}
	if widget.Kind != KindStruct {
		t.Fatalf("Widget.Kind = %v, want Struct", widget.Kind)
	}

	if _, ok := names["ErrorResponse"]; !ok {
		t.Fatalf("expected ErrorResponse to be pulled in via the default response schema, got %v", typeNames(pkg))
	}

	color, ok := names["Color"]
	if !ok {
		t.Fatalf("expected Color enum type, got %v", typeNames(pkg))
	}
	if !color.IsEnum || len(color.EnumValues) != 3 {
		t.Fatalf("Color = %+v, want a 3-value enum", color)
	}
}

func TestTranslateFieldOptionalityAndNaming(t *testing.T) {
	g := loadWidget(t)
	tr := New(g, resolve.New(g), nil, nil)

	pkg, err := tr.Translate([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	var widget *GoType
	for _, gt := range pkg.Types {
		if gt.Name == "Widget" {
			widget = gt
		}
	}
	if widget == nil {
		t.Fatalf("no Widget type emitted")
	}

	byName := map[string]Field{}
	for _, f := range widget.Fields {
		byName[f.JSONName] = f
	}

	name, ok := byName["name"]
	if !ok {
		t.Fatalf("missing name field")
	}
	if name.GoName != "Name" || !name.Pointer || !name.OmitEmpty {
		t.Fatalf("name field = %+v, want exported optional pointer", name)
	}

	color, ok := byName["color"]
	if !ok {
		t.Fatalf("missing color field")
	}
	if color.GoName != "Color" || color.Type.Name != "Color" || !color.Pointer {
		t.Fatalf("color field = %+v, want pointer to Color", color)
	}
}

func TestEmitProducesValidLookingGoSource(t *testing.T) {
	g := loadWidget(t)
	tr := New(g, resolve.New(g), nil, nil)

	pkg, err := tr.Translate([]string{"../loader/testdata/service/stable/2020-03-20/widget.json"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}

	src := Emit("models", pkg)
	if !strings.HasPrefix(src, "package models") {
		t.Fatalf("Emit output missing package clause: %q", src)
	}
	if !strings.Contains(src, "type Widget struct {") {
		t.Fatalf("Emit output missing Widget struct:\n%s", src)
	}
	if !strings.Contains(src, "type Color string") {
		t.Fatalf("Emit output missing Color enum:\n%s", src)
	}
	if !strings.Contains(src, `ColorRed Color = "red"`) {
		t.Fatalf("Emit output missing ColorRed const:\n%s", src)
	}
}

func typeNames(pkg *Package) []string {
	out := make([]string, len(pkg.Types))
	for i, gt := range pkg.Types {
		out[i] = gt.Name
	}
	return out
}
