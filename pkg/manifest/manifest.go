// Package manifest writes the package manifest the driver emits once per
// run (SPEC_FULL.md §6, carried over from the original tool's external
// packaging step even though it sits outside the core generation
// pipeline): a Cargo-style feature manifest — one feature per generated
// package tag, each gated on that package's mod_name, with one tag
// selected as the default feature (the first non-preview tag, or the
// first tag if every tag so far is a preview).
//
// Encoded with gopkg.in/yaml.v2, kept distinct from the yaml.v3 decoder
// pkg/config uses for literate documents and the sigs.k8s.io/yaml bridge
// pkg/loader uses for Swagger documents, so each of the module's three
// YAML libraries owns exactly one concern.
package manifest

import (
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/oasgen/oasgen/pkg/diag"
)

// Manifest is the feature manifest for a whole driver run (§6): name,
// version 0.1.0, one feature per package tag, a default feature, and the
// mod_name each feature gates.
type Manifest struct {
	Name     string              `yaml:"name"`
	Version  string              `yaml:"version"`
	Default  string              `yaml:"default"`
	Features map[string][]string `yaml:"features"`
	// Order records the sequence packages were added in, across however
	// many Add calls (possibly spanning multiple process runs once
	// round-tripped through Load), so Default resolution keeps "first
	// tag" meaning the first one ever added rather than map order.
	Order []string `yaml:"order"`
}

// New builds an empty feature manifest (§6: name, version "0.1.0").
func New(name string) *Manifest {
	return &Manifest{Name: name, Version: "0.1.0", Features: map[string][]string{}}
}

// isPreview reports whether tag names a preview channel.
func isPreview(tag string) bool {
	return strings.Contains(strings.ToLower(tag), "preview")
}

// Add records one generated package's feature: tag is the feature name
// verbatim (§4.D FeatureName) and modName is its sanitized snake form
// (§4.D ModName), the name the feature gates. Default is recomputed per
// §6: the first non-preview tag added so far, or the very first tag added
// if every tag so far is a preview.
func (m *Manifest) Add(tag, modName string) {
	if m.Features == nil {
		m.Features = map[string][]string{}
	}
	if _, exists := m.Features[tag]; !exists {
		m.Order = append(m.Order, tag)
	}
	m.Features[tag] = []string{modName}

	if m.Default == "" {
		m.Default = tag
		return
	}
	if isPreview(m.Default) && !isPreview(tag) {
		m.Default = tag
	}
}

// Marshal renders m as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Write renders m as YAML and writes it to path.
func (m *Manifest) Write(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &diag.IOError{Path: path, Err: err}
	}
	return nil
}

// Load reads and parses a manifest file, used by `oasgen` to append to a
// previous run's manifest instead of overwriting it.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &diag.IOError{Path: path, Err: err}
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &diag.DeserializeError{Path: path, Err: err}
	}
	return &m, nil
}
