package config

import "testing"

const sample = "# Widget service\n\n" +
	"This document configures generation for the widget service.\n\n" +
	"``` yaml\n" +
	"go-package-name: widget\n" +
	"```\n\n" +
	"### Tag: stable/2020-03-20\n\n" +
	"These settings apply only when `--tag=stable/2020-03-20` is specified.\n\n" +
	"``` yaml $(tag) == 'stable/2020-03-20'\n" +
	"input-file:\n" +
	"  - stable/2020-03-20/widget.json\n" +
	"box-properties:\n" +
	"  - stable/2020-03-20/widget.json#Widget.parent\n" +
	"```\n\n" +
	"### Tag: stable/2019-01-01\n\n" +
	"``` yaml $(tag) == 'stable/2019-01-01'\n" +
	"input-file:\n" +
	"  - stable/2019-01-01/widget.json\n" +
	"```\n"

func TestParseSelectsMatchingTagBlockOnly(t *testing.T) {
	cfg, err := Parse([]byte(sample), "stable/2020-03-20")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.GoPackageName != "widget" {
		t.Fatalf("GoPackageName = %q, want widget (from the unconditioned block)", cfg.GoPackageName)
	}

	if len(cfg.InputFiles) != 1 || cfg.InputFiles[0] != "stable/2020-03-20/widget.json" {
		t.Fatalf("InputFiles = %v, want exactly the 2020-03-20 block's file", cfg.InputFiles)
	}

	if v, ok := cfg.ResolvedAPIVersion(); !ok || v != "stable/2020-03-20" {
		t.Fatalf("ResolvedAPIVersion() = (%q, %v), want (\"stable/2020-03-20\", true)", v, ok)
	}

	if len(cfg.BoxProperties) != 1 {
		t.Fatalf("BoxProperties = %v, want one entry", cfg.BoxProperties)
	}
	want := [3]string{"stable/2020-03-20/widget.json", "Widget", "parent"}
	if cfg.BoxProperties[0] != want {
		t.Fatalf("BoxProperties[0] = %v, want %v", cfg.BoxProperties[0], want)
	}
}

func TestParseDifferentTagPicksDifferentInputFile(t *testing.T) {
	cfg, err := Parse([]byte(sample), "stable/2019-01-01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.InputFiles) != 1 || cfg.InputFiles[0] != "stable/2019-01-01/widget.json" {
		t.Fatalf("InputFiles = %v, want exactly the 2019-01-01 block's file", cfg.InputFiles)
	}
}

func TestParseUnknownTagYieldsNoTaggedInputFiles(t *testing.T) {
	cfg, err := Parse([]byte(sample), "preview/2021-06-01")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(cfg.InputFiles) != 0 {
		t.Fatalf("InputFiles = %v, want none for an unmatched tag", cfg.InputFiles)
	}
	if cfg.GoPackageName != "widget" {
		t.Fatalf("unconditioned block should still apply regardless of tag")
	}
}

func TestExtractAPIVersionRecognizesPackagePrefixAndDatedTags(t *testing.T) {
	cases := []struct {
		tag    string
		want   string
		wantOK bool
	}{
		{"package-2020-06-01", "2020-06-01", true},
		{"package-2020-06-01-preview", "2020-06-01-preview", true},
		{"stable/2020-03-20", "stable/2020-03-20", true},
		{"preview/2020-03-20-preview", "preview/2020-03-20-preview", true},
		{"latest", "", false},
		{"package-latest", "", false},
	}
	for _, c := range cases {
		got, ok := ExtractAPIVersion(c.tag)
		if ok != c.wantOK || got != c.want {
			t.Fatalf("ExtractAPIVersion(%q) = (%q, %v), want (%q, %v)", c.tag, got, ok, c.want, c.wantOK)
		}
	}
}

func TestResolvedAPIVersionFallsBackToUnextractableTag(t *testing.T) {
	cfg := &PackageConfig{Tag: "latest"}
	if _, ok := cfg.ResolvedAPIVersion(); ok {
		t.Fatalf("ResolvedAPIVersion() ok = true for tag with no extractable version token")
	}
}

func TestFeatureAndModNamePair(t *testing.T) {
	cfg := &PackageConfig{Tag: "stable/2020-03-20"}
	if cfg.FeatureName() != "stable/2020-03-20" {
		t.Fatalf("FeatureName() = %q, want the tag verbatim", cfg.FeatureName())
	}
	mod, err := cfg.ModName()
	if err != nil {
		t.Fatalf("ModName: %v", err)
	}
	if mod == "" || mod == cfg.Tag {
		t.Fatalf("ModName() = %q, want a sanitized snake form distinct from the raw tag", mod)
	}
}
