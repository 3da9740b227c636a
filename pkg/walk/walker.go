// Package walk implements the reference walker (component G): a pure
// traversal that enumerates every $ref in a document, typed by the role it
// was found under, in a deterministic order (map keys sorted at every
// level, since a decoded document keeps no key order). It is the shared
// traversal both the
// document graph loader (which files to pull in) and the schema-to-type
// translator (which schemas are reachable) build on.
//
// The schema recursion mirrors the teacher's resolveAllOfRefs/convertRefs
// shape in pkg/applyconfiguration/openapi.go: recurse through Properties,
// AdditionalProperties.Schema, Items, and AllOf, emitting a reference at
// any depth without otherwise transforming the schema.
package walk

import (
	"sort"

	"github.com/oasgen/oasgen/pkg/oasdoc"
	"github.com/oasgen/oasgen/pkg/refparse"
)

// Document walks an entire document and returns every $ref found, typed by
// role, in a deterministic order (sorted by path key, then discovery
// order within that key) so that two runs over the same document produce
// an identical sequence — load-bearing for the Determinism invariant (§8).
func Document(doc *oasdoc.Document) []refparse.Typed {
	var out []refparse.Typed

	for _, name := range sortedKeys(doc.Definitions) {
		s := doc.Definitions[name]
		out = append(out, Schema(&s)...)
	}

	for _, name := range sortedKeys(doc.Parameters) {
		p := doc.Parameters[name]
		out = append(out, Parameter(&p)...)
	}

	for _, path := range sortedKeys(doc.Paths) {
		item := doc.Paths[path]
		out = append(out, PathItem(&item)...)
	}

	return out
}

// PathItem walks one path entry: a $ref on the item itself (PathItem
// role), then every parameter/response/example $ref under each verb's
// operation.
func PathItem(item *oasdoc.PathItem) []refparse.Typed {
	var out []refparse.Typed

	if item.Ref != "" {
		out = append(out, typed(item.Ref, refparse.RolePathItem))
	}

	for _, p := range item.Parameters {
		out = append(out, Parameter(&p)...)
	}

	for _, vo := range item.ByVerb() {
		out = append(out, Operation(vo.Operation)...)
	}

	return out
}

// Operation walks one operation: its parameters, response schemas, and
// x-ms-examples.
func Operation(op *oasdoc.Operation) []refparse.Typed {
	if op == nil {
		return nil
	}

	var out []refparse.Typed

	for _, p := range op.Parameters {
		out = append(out, Parameter(&p)...)
	}

	for _, code := range sortedKeys(op.Responses) {
		resp := op.Responses[code]
		if resp.Ref != "" {
			out = append(out, typed(resp.Ref, refparse.RoleSchema))
		}
		if resp.Schema != nil {
			out = append(out, Schema(resp.Schema)...)
		}
	}

	for _, name := range sortedKeys(op.XMSExamples) {
		ex := op.XMSExamples[name]
		if ex.Ref != "" {
			out = append(out, typed(ex.Ref, refparse.RoleExample))
		}
	}

	return out
}

// Parameter walks one parameter: a $ref on the parameter itself, or (for
// inline body parameters) its nested schema.
func Parameter(p *oasdoc.Parameter) []refparse.Typed {
	if p == nil {
		return nil
	}

	var out []refparse.Typed
	if p.Ref != "" {
		out = append(out, typed(p.Ref, refparse.RoleParameter))
	}
	if p.Schema != nil {
		out = append(out, Schema(p.Schema)...)
	}
	if p.Items != nil {
		out = append(out, Schema(p.Items)...)
	}
	return out
}

// Schema recurses through one schema's composition (properties,
// additionalProperties, items, allOf), emitting a Schema-role reference at
// any depth a $ref appears. Inline schemas are descended into further;
// references are emitted but not followed (that's the resolver's job).
func Schema(s *oasdoc.Schema) []refparse.Typed {
	if s == nil {
		return nil
	}

	var out []refparse.Typed

	if s.Ref != nil && *s.Ref != "" {
		out = append(out, typed(*s.Ref, refparse.RoleSchema))
		// A bare $ref schema carries no other structure worth descending
		// into; Swagger disallows siblings alongside $ref in practice.
		return out
	}

	if s.Items != nil {
		out = append(out, Schema(s.Items)...)
	}

	for _, name := range sortedKeys(s.Properties) {
		prop := s.Properties[name]
		out = append(out, Schema(&prop)...)
	}

	if s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil {
		out = append(out, Schema(s.AdditionalProperties.Schema)...)
	}

	for i := range s.AllOf {
		out = append(out, Schema(&s.AllOf[i])...)
	}

	return out
}

func typed(raw string, role refparse.Role) refparse.Typed {
	return refparse.Typed{Reference: refparse.Parse(raw), Role: role, Raw: raw}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

