// Package config parses the autorest-style literate configuration
// document that accompanies each service specification (SPEC_FULL.md §4.D):
// a Markdown file interleaving prose with fenced YAML blocks, each
// optionally gated by a `$(tag) == '...'` condition so one document can
// describe several api-version packages at once.
//
// Parsing walks the Markdown AST with goldmark (the same document-tree
// shape the rest of the Go Markdown ecosystem builds on) and decodes each
// matching block's body with gopkg.in/yaml.v3 — kept distinct from the
// yaml.v2 manifest writer and the sigs.k8s.io/yaml JSON bridge the loader
// uses, so the three YAML libraries in this module's dependency graph each
// own one concern instead of competing for the same one.
package config

import (
	"fmt"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"k8s.io/utils/ptr"

	"github.com/oasgen/oasgen/pkg/ident"
)

// PackageConfig is the merged configuration for one generated package: the
// union of every unconditioned block plus every block whose tag condition
// matches Tag (§6 Config contract: input_files, output_folder, api_version,
// box_properties).
type PackageConfig struct {
	Tag           string
	InputFiles    []string
	OutputFolder  string
	GoPackageName string
	// APIVersion is nil when no block set one explicitly — callers fall
	// back to deriving it from Tag, via k8s.io/utils/ptr's optional-value
	// convention (ptr.To / the nil-means-absent idiom) rather than an
	// empty-string sentinel.
	APIVersion    *string
	Skip          []string
	BoxProperties [][3]string
}

// rawBlock is the YAML shape of one fenced configuration block.
type rawBlock struct {
	Tag           string   `yaml:"tag"`
	InputFile     []string `yaml:"input-file"`
	OutputFolder  string   `yaml:"output-folder"`
	GoPackageName string   `yaml:"go-package-name"`
	APIVersion    string   `yaml:"api-version"`
	Skip          []string `yaml:"skip"`
	BoxProperties []string `yaml:"box-properties"`
}

var tagCondition = regexp.MustCompile(`\$\(tag\)\s*==\s*'([^']+)'`)

// boxPropertyEntry parses a "file#SchemaName.propertyName" box-properties
// entry into the (file, schema, property) triple pkg/typegen.BoxKey keys
// on.
var boxPropertyEntry = regexp.MustCompile(`^([^#]+)#([^.]+)\.(.+)$`)

// Parse extracts the PackageConfig for tag out of a literate configuration
// document's Markdown source. A block with no `$(tag) == '...'` condition
// in its fence info string always applies; a conditioned block applies
// only when its quoted value equals tag.
func Parse(source []byte, tag string) (*PackageConfig, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	cfg := &PackageConfig{Tag: tag}

	var walkErr error
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || walkErr != nil {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		info := ""
		if block.Info != nil {
			info = string(block.Info.Value(source))
		}
		if !blockApplies(info, tag) {
			return ast.WalkSkipChildren, nil
		}

		body := blockBody(block, source)
		var raw rawBlock
		if err := yaml.Unmarshal(body, &raw); err != nil {
			walkErr = fmt.Errorf("config: invalid YAML block: %w", err)
			return ast.WalkStop, nil
		}
		mergeBlock(cfg, &raw)
		return ast.WalkSkipChildren, nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	return cfg, nil
}

// blockApplies reports whether a fenced block's info string gates on tag
// and, if so, whether it matches the requested one. An info string with no
// condition (e.g. bare "yaml") always applies.
func blockApplies(info, tag string) bool {
	m := tagCondition.FindStringSubmatch(info)
	if m == nil {
		return true
	}
	return m[1] == tag
}

func blockBody(block *ast.FencedCodeBlock, source []byte) []byte {
	var body []byte
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body = append(body, seg.Value(source)...)
	}
	return body
}

func mergeBlock(cfg *PackageConfig, raw *rawBlock) {
	cfg.InputFiles = append(cfg.InputFiles, raw.InputFile...)
	if raw.OutputFolder != "" {
		cfg.OutputFolder = raw.OutputFolder
	}
	if raw.GoPackageName != "" {
		cfg.GoPackageName = raw.GoPackageName
	}
	if raw.APIVersion != "" {
		cfg.APIVersion = ptr.To(raw.APIVersion)
	}
	cfg.Skip = append(cfg.Skip, raw.Skip...)
	for _, entry := range raw.BoxProperties {
		m := boxPropertyEntry.FindStringSubmatch(entry)
		if m == nil {
			continue
		}
		cfg.BoxProperties = append(cfg.BoxProperties, [3]string{m[1], m[2], m[3]})
	}
}

// packagePrefix strips the "package-" prefix the original autorest tag
// convention puts in front of its api-version token.
var packagePrefix = regexp.MustCompile(`^package-`)

// versionToken matches the bare <major>-<minor>-<day>[-<qualifier>] shape
// an api-version token must take once "package-" is stripped.
var versionToken = regexp.MustCompile(`^\d+-\d+-\d+(-[A-Za-z0-9]+)?$`)

// azureDatedTag recognizes the service-specific convention this module's
// own fixtures use (e.g. "stable/2020-03-20", "preview/2020-03-20-preview"):
// a channel name, a slash, then a version token.
var azureDatedTag = regexp.MustCompile(`^[A-Za-z0-9_]+/\d+-\d+-\d+(-[A-Za-z0-9]+)?$`)

// ExtractAPIVersion applies the tag's api-version extraction rule (§4.D):
// strip a leading "package-" prefix and require the remainder to match
// <major>-<minor>-<day>[-<qualifier>], or recognize the channel/date
// convention used by the service-specific tags this module's fixtures use.
// ok is false when no version token can be extracted at all — the signal
// that the package is skipped entirely, not treated as an error.
func ExtractAPIVersion(tag string) (string, bool) {
	if azureDatedTag.MatchString(tag) {
		return tag, true
	}
	rest := packagePrefix.ReplaceAllString(tag, "")
	if !versionToken.MatchString(rest) {
		return "", false
	}
	return rest, true
}

// ResolvedAPIVersion returns the package's api version and whether one
// could be determined at all (§4.D): an explicit `api-version` block wins;
// otherwise the version is extracted from Tag via ExtractAPIVersion. ok is
// false when neither source yields a version token, meaning this package
// must be skipped rather than generated.
func (c *PackageConfig) ResolvedAPIVersion() (string, bool) {
	if c.APIVersion != nil {
		return *c.APIVersion, true
	}
	return ExtractAPIVersion(c.Tag)
}

// FeatureName is the tag verbatim: the key the emitted package manifest
// (§6) uses for this package's feature flag.
func (c *PackageConfig) FeatureName() string {
	return c.Tag
}

// ModName is the tag's sanitized snake form (§4.C): the name the feature
// flag gates in the emitted package manifest.
func (c *PackageConfig) ModName() (string, error) {
	r, err := ident.Snake(c.Tag)
	if err != nil {
		return "", err
	}
	return r.Name, nil
}

// ResolvedGoPackageName returns the configured go-package-name, falling
// back to ModName when no block set one explicitly (§4.D supplement).
func (c *PackageConfig) ResolvedGoPackageName() (string, error) {
	if c.GoPackageName != "" {
		return c.GoPackageName, nil
	}
	return c.ModName()
}
