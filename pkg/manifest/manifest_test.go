package manifest

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteThenLoadRoundTrips(t *testing.T) {
	m := New("widget")
	m.Add("stable/2020-03-20", "stable_2020_03_20")

	path := filepath.Join(t.TempDir(), "manifest.yaml")
	if err := m.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Name != "widget" || loaded.Version != "0.1.0" {
		t.Fatalf("loaded = %+v, want name=widget version=0.1.0", loaded)
	}
	if !reflect.DeepEqual(loaded.Features["stable/2020-03-20"], []string{"stable_2020_03_20"}) {
		t.Fatalf("loaded.Features = %+v", loaded.Features)
	}
}

func TestAddSetsDefaultToFirstNonPreviewTag(t *testing.T) {
	m := New("widget")
	m.Add("preview/2020-01-01-preview", "preview_2020_01_01_preview")
	if m.Default != "preview/2020-01-01-preview" {
		t.Fatalf("Default = %q, want the only tag added so far", m.Default)
	}

	m.Add("stable/2020-03-20", "stable_2020_03_20")
	if m.Default != "stable/2020-03-20" {
		t.Fatalf("Default = %q, want the first non-preview tag", m.Default)
	}

	m.Add("preview/2020-06-01-preview", "preview_2020_06_01_preview")
	if m.Default != "stable/2020-03-20" {
		t.Fatalf("Default = %q, a later preview tag must not displace a stable default", m.Default)
	}
}

func TestAddAllPreviewKeepsFirstTagAsDefault(t *testing.T) {
	m := New("widget")
	m.Add("preview/2020-01-01-preview", "preview_2020_01_01_preview")
	m.Add("preview/2020-06-01-preview", "preview_2020_06_01_preview")

	if m.Default != "preview/2020-01-01-preview" {
		t.Fatalf("Default = %q, want the first tag added when every tag is a preview", m.Default)
	}
	if len(m.Order) != 2 || m.Order[0] != "preview/2020-01-01-preview" {
		t.Fatalf("Order = %+v", m.Order)
	}
}
