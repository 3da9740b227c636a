// Package loader implements the document graph loader (component E): it
// reads the root OpenAPI document(s), transitively loads every document
// referenced by $ref across file boundaries, and indexes every schema and
// parameter by (file, name).
//
// Grounded on the teacher's own pkg/applyconfiguration/openapi.go
// NeedPackage/p.Schemata indexing-by-identity pattern.
package loader

import (
	"encoding/json"
	"os"
	"path"
	"strings"

	"k8s.io/utils/set"
	"sigs.k8s.io/yaml"

	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/oasdoc"
	"github.com/oasgen/oasgen/pkg/pathutil"
	"github.com/oasgen/oasgen/pkg/walk"
)

// Graph is the fully populated document graph plus its schema and
// parameter indexes (data model §3).
type Graph struct {
	// Documents maps a canonical file path to its parsed document. The
	// first root input file loaded is the root; there may be more than
	// one root for a multi-file package.
	Documents map[string]*oasdoc.Document

	// Roots lists the root input files in load order.
	Roots []string

	// PrimaryFiles is the set of input_files_paths: documents whose
	// definitions must all be emitted, as opposed to referenced-only
	// documents that contribute only reachable definitions.
	PrimaryFiles set.Set[string]

	// SchemaIndex and ParamIndex key every definitions/parameters entry by
	// (file, name), first-writer-wins on collision (duplicates warned).
	SchemaIndex map[diag.RefKey]*oasdoc.Schema
	ParamIndex  map[diag.RefKey]*oasdoc.Parameter
}

// Load reads rootFiles (already-canonical paths) and every document they
// transitively reference, building a Graph.
func Load(rootFiles []string) (*Graph, error) {
	g := &Graph{
		Documents:    map[string]*oasdoc.Document{},
		PrimaryFiles: set.New[string](),
		SchemaIndex:  map[diag.RefKey]*oasdoc.Schema{},
		ParamIndex:   map[diag.RefKey]*oasdoc.Parameter{},
	}

	for _, f := range rootFiles {
		canon := pathutil.Clean(f)
		g.Roots = append(g.Roots, canon)
		g.PrimaryFiles.Insert(canon)
		if err := g.loadRecursive(canon); err != nil {
			return nil, err
		}
	}

	for file, doc := range g.Documents {
		g.indexDocument(file, doc)
	}

	return g, nil
}

// loadRecursive loads file (if not already loaded) and every file it
// references, by walking it with pkg/walk and joining any $ref that
// carries a file component against file's own path.
func (g *Graph) loadRecursive(file string) error {
	if _, ok := g.Documents[file]; ok {
		return nil
	}

	doc, err := readDocument(file)
	if err != nil {
		return err
	}
	g.Documents[file] = doc

	refs := walk.Document(doc)
	for _, r := range refs {
		if r.File == "" {
			continue
		}
		if strings.HasPrefix(r.File, "http://") || strings.HasPrefix(r.File, "https://") {
			continue // remote refs are never auto-loaded
		}
		joined := pathutil.Join(file, r.File)
		if err := g.loadRecursive(joined); err != nil {
			return err
		}
	}

	return nil
}

// indexDocument inserts every definitions/parameters entry of doc into the
// graph's indexes, warning (not failing) on a (file, name) collision.
func (g *Graph) indexDocument(file string, doc *oasdoc.Document) {
	for name, schema := range doc.Definitions {
		key := diag.RefKey{File: file, Name: name}
		if _, exists := g.SchemaIndex[key]; exists {
			diag.Default.Warn("duplicate schema definition %s; keeping first", key)
			continue
		}
		s := schema
		g.SchemaIndex[key] = &s
	}

	for name, param := range doc.Parameters {
		key := diag.RefKey{File: file, Name: name}
		if _, exists := g.ParamIndex[key]; exists {
			diag.Default.Warn("duplicate parameter definition %s; keeping first", key)
			continue
		}
		p := param
		g.ParamIndex[key] = &p
	}
}

// IsPrimary reports whether file is one of the package's primary input
// files (as opposed to a referenced-only document).
func (g *Graph) IsPrimary(file string) bool {
	return g.PrimaryFiles.Has(file)
}

func readDocument(file string) (*oasdoc.Document, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, &diag.IOError{Path: file, Err: err}
	}

	var jsonBytes []byte
	ext := strings.ToLower(path.Ext(file))
	if ext == ".yaml" || ext == ".yml" {
		jsonBytes, err = yaml.YAMLToJSON(raw)
		if err != nil {
			return nil, &diag.DeserializeError{Path: file, Err: err}
		}
	} else {
		jsonBytes = raw
	}

	var doc oasdoc.Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, &diag.DeserializeError{Path: file, Err: err}
	}
	return &doc, nil
}
