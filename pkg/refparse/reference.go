// Package refparse implements the reference parser (component A): it turns
// a raw OpenAPI $ref string into its constituent file, JSON-pointer path,
// and name, without resolving or normalizing anything — that's pathutil's
// and resolve's job respectively.
package refparse

import "strings"

// Role tags a Reference by where it was found in the document, mirroring
// the "Typed reference" of the data model: the role decides which index a
// resolver consults, not anything about the reference's own shape.
type Role int

const (
	// RoleSchema marks a $ref found under a schema position (definitions,
	// properties, items, allOf, additionalProperties, response bodies).
	RoleSchema Role = iota
	// RoleParameter marks a $ref found in an operation's parameter list.
	RoleParameter
	// RolePathItem marks a $ref found directly under a paths entry.
	RolePathItem
	// RoleExample marks a $ref found under x-ms-examples.
	RoleExample
)

func (r Role) String() string {
	switch r {
	case RoleSchema:
		return "Schema"
	case RoleParameter:
		return "Parameter"
	case RolePathItem:
		return "PathItem"
	case RoleExample:
		return "Example"
	default:
		return "Unknown"
	}
}

// Reference is a parsed $ref string: Reference = { file?, path, name? }.
type Reference struct {
	// File is the document the ref points into; empty for intra-document
	// refs (a bare "#/..." string).
	File string
	// Path is the full slash-separated segment sequence after "#/", e.g.
	// ["definitions", "Widget"]. Empty when the ref has no fragment at all
	// (a file-only x-ms-examples reference).
	Path []string
	// Name is the last path segment, lifted out for convenience; absent
	// (empty string + false) when Path is empty.
	Name    string
	HasName bool
}

// Typed pairs a parsed Reference with the role it was discovered under.
type Typed struct {
	Reference
	Role Role
	// Raw is the original, unparsed $ref string, kept for diagnostics.
	Raw string
}

// Parse splits a raw $ref string into a Reference.
//
//   - No "#/" anywhere: the whole string is a File with no fragment (used
//     by x-ms-examples, which links straight to a file).
//   - "#/" at position zero: intra-document; File is empty.
//   - "file#/segments/name": cross-document; Name is the last segment.
//
// Parse never fails on well-formed input. Unnormalized file paths are kept
// verbatim; canonicalizing them against a base document is pathutil.Join's
// job, not Parse's.
func Parse(raw string) Reference {
	idx := strings.Index(raw, "#/")
	if idx < 0 {
		return Reference{File: raw}
	}

	file := raw[:idx]
	fragment := raw[idx+2:]

	var segments []string
	if fragment != "" {
		segments = strings.Split(fragment, "/")
	}

	ref := Reference{File: file, Path: segments}
	if len(segments) > 0 {
		ref.Name = segments[len(segments)-1]
		ref.HasName = true
	}
	return ref
}

// String reassembles a Reference into a $ref string, the inverse of Parse.
// Round-trip invariant: Parse(r.String()) == r for every Reference r
// produced by Parse.
func (r Reference) String() string {
	if len(r.Path) == 0 {
		return r.File
	}
	return r.File + "#/" + strings.Join(r.Path, "/")
}
