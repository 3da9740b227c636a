// Package resolve implements the reference resolver (component F): it
// turns a parsed $ref, together with the document it was found in, into a
// concrete schema or parameter by consulting the document graph's
// indexes built by pkg/loader.
//
// Grounded on the teacher's own p.Schemata[refIdent] lookup pattern in
// pkg/applyconfiguration/openapi.go (resolveAllOfRefs): parse a ref into a
// type name + locator, look it up in an index, fail with a structured
// error naming the key if absent.
package resolve

import (
	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/loader"
	"github.com/oasgen/oasgen/pkg/oasdoc"
	"github.com/oasgen/oasgen/pkg/pathutil"
	"github.com/oasgen/oasgen/pkg/refparse"
)

// ResolvedSchema pairs a schema with the (file, name) it was looked up
// under; Key is nil for an inline schema that was never a $ref.
type ResolvedSchema struct {
	Schema *oasdoc.Schema
	Key    *diag.RefKey
}

// Resolver resolves references against one Graph.
type Resolver struct {
	Graph *loader.Graph
}

// New constructs a Resolver over g.
func New(g *loader.Graph) *Resolver {
	return &Resolver{Graph: g}
}

// canonicalKey turns a parsed reference found in currentDoc into the
// (file, name) index key it should resolve against: absent File means
// "look in currentDoc itself", otherwise join currentDoc against the ref's
// File to get the referenced document's canonical path.
func (r *Resolver) canonicalKey(currentDoc string, ref refparse.Reference) (diag.RefKey, error) {
	if !ref.HasName {
		return diag.RefKey{}, &diag.ReferenceSyntaxError{Raw: ref.String()}
	}

	file := currentDoc
	if ref.File != "" {
		file = pathutil.Join(currentDoc, ref.File)
	}
	return diag.RefKey{File: file, Name: ref.Name}, nil
}

// Schema resolves a schema $ref found in currentDoc to a ResolvedSchema.
func (r *Resolver) Schema(currentDoc string, ref refparse.Reference) (ResolvedSchema, error) {
	key, err := r.canonicalKey(currentDoc, ref)
	if err != nil {
		return ResolvedSchema{}, err
	}

	s, ok := r.Graph.SchemaIndex[key]
	if !ok {
		return ResolvedSchema{}, &diag.SchemaNotFoundError{Key: key}
	}
	return ResolvedSchema{Schema: s, Key: &key}, nil
}

// Parameter resolves a parameter $ref found in currentDoc.
func (r *Resolver) Parameter(currentDoc string, ref refparse.Reference) (*oasdoc.Parameter, error) {
	key, err := r.canonicalKey(currentDoc, ref)
	if err != nil {
		return nil, err
	}

	p, ok := r.Graph.ParamIndex[key]
	if !ok {
		return nil, &diag.ParameterNotFoundError{Key: key}
	}
	return p, nil
}

// PathItem resolves a path-item $ref. The core never implements this (§4.F):
// any such reference is a fatal NotImplemented.
func (r *Resolver) PathItem(currentDoc string, ref refparse.Reference) (*oasdoc.PathItem, error) {
	return nil, &diag.NotImplementedError{Feature: "path-item $ref resolution: " + ref.String()}
}

// SchemaOrInline resolves s: if it is itself a $ref, dispatch to Schema; if
// inline, return it with no Key.
func (r *Resolver) SchemaOrInline(currentDoc string, s *oasdoc.Schema) (ResolvedSchema, error) {
	if s.IsRef() {
		return r.Schema(currentDoc, refparse.Parse(*s.Ref))
	}
	return ResolvedSchema{Schema: s}, nil
}
