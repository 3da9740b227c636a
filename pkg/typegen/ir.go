// Package typegen implements the schema-to-type translator (component H,
// the heart of oasgen): it walks every schema reachable from a package's
// primary input files and emits Go type declarations for it — structs,
// enums, array aliases, allOf-composed records, and nested namespaced
// types for inline enums/objects.
//
// The Go type model is built on k8s.io/gengo/v2/types — the same
// code-generation type system the teacher (controller-tools) uses — so
// that "what Kind of Go declaration is this" is the same vocabulary gengo
// generators reason in (Struct, Alias, Slice, Pointer, Builtin), rather
// than a bespoke enum reinvented for this one generator.
package typegen

import (
	gengotypes "k8s.io/gengo/v2/types"
)

// GoType is one emitted (or about-to-be-emitted) Go type declaration or
// reference. A GoType with a non-empty Name is a top-level or nested named
// declaration; a GoType with an empty Name is an anonymous use (e.g. the
// element type of a slice).
type GoType struct {
	// Name is the exported Go identifier for this type, already run
	// through ident.CamelUpper. Empty for anonymous/element types.
	Name string

	// Kind tags what shape of Go declaration this is, using gengo's own
	// Kind vocabulary.
	Kind gengotypes.Kind

	// Elem is the slice element type (Kind == Slice) or the alias's
	// underlying type (Kind == Alias, used for array aliases and
	// primitive-top-level aliases).
	Elem *GoType

	// Fields holds the struct's fields, in declaration order (Kind ==
	// Struct).
	Fields []Field

	// EnumValues holds the tagged-union's cases (Kind == Alias with
	// IsEnum set): the underlying type is always string in this generator
	// since Swagger 2.0 enums are emitted as named string types with
	// sibling constants, the conventional idiomatic-Go shape.
	IsEnum     bool
	EnumValues []EnumValue

	// Doc is a doc-comment line, carried verbatim from the schema's
	// description when present.
	Doc string

	// Namespace is the nested-type prefix this type was synthesized under
	// (e.g. "Widget" for a type nested inside struct Widget), empty for
	// top-level types. The translator leaves it empty: a nested type's
	// prefix is folded straight into Name by concatenating the enclosing
	// Go name with the field's name (e.g. "WidgetColor").
	Namespace string

	// Ref marks a use-site of a type already declared elsewhere (by name):
	// when true, emit.go renders just the Name (or *Name), never the
	// Fields/EnumValues carried alongside it, and the translator never adds
	// it to a Package's declaration list a second time.
	Ref bool
}

// EnumValue is one enum case: GoName is the exported camel-upper constant
// name, Literal is the original wire value (preserved via the rename
// directive described in §4.C rule 4 whenever GoName's derivation altered
// the literal, e.g. "_10minutely" <- "10minutely").
type EnumValue struct {
	GoName  string
	Literal string
}

// Field is one struct field.
type Field struct {
	// GoName is the exported Go field name (camel-upper).
	GoName string
	// JSONName is the wire name, used verbatim in the struct tag.
	JSONName string
	// Type is the field's declared type.
	Type *GoType
	// Pointer marks the field as *Type in the emitted Go source — set
	// whenever the field is box-directed (§4.H field rule 4), or optional
	// (§4.H field rule 2) with a type that has no nil of its own (slices,
	// maps, and any stay unwrapped); OmitEmpty and Boxed distinguish why.
	Pointer bool
	// OmitEmpty marks the struct tag with `,omitempty`: true when the
	// field is not in the schema's `required` list, or is readOnly.
	OmitEmpty bool
	// Boxed records that this field's indirection exists to break a
	// reference cycle (§4.H field rule 4, §9), independent of whether the
	// field is also optional.
	Boxed bool
	// ReadOnly mirrors the schema's readOnly flag (SPEC_FULL.md §4
	// supplement): never required on input, carried through the JSON tag
	// as `,omitempty` so a zero-value on construction is never sent.
	ReadOnly bool
	// Flatten marks a field synthesized from an allOf $ref (§4.H
	// Composition): at (de)serialization time its referenced type's
	// fields should be promoted into the containing object. Represented
	// in emitted Go as an embedded (anonymous) struct field, which gives
	// Go's own encoding/json promotion semantics for free.
	Flatten bool
	Doc     string
}

// Package is the full set of types emitted for one generation package, in
// deterministic declaration order (§8 Determinism invariant).
type Package struct {
	Types []*GoType
}

// Builtin Kind helpers, so callers don't need to remember gengo's string
// constants for the primitives this translator actually emits.
var (
	KindString  = gengotypes.Builtin
	KindStruct  = gengotypes.Struct
	KindSlice   = gengotypes.Slice
	KindPointer = gengotypes.Pointer
	KindAlias   = gengotypes.Alias
	KindMap     = gengotypes.Map
)

// Primitive constructs an anonymous GoType for a Go builtin (string,
// int32, int64, float32, float64, bool, any).
func Primitive(name string) *GoType {
	return &GoType{Name: name, Kind: gengotypes.Builtin}
}

// SliceOf constructs an anonymous slice-of-elem GoType.
func SliceOf(elem *GoType) *GoType {
	return &GoType{Kind: gengotypes.Slice, Elem: elem}
}

// PointerTo constructs an anonymous pointer-to-elem GoType.
func PointerTo(elem *GoType) *GoType {
	return &GoType{Kind: gengotypes.Pointer, Elem: elem}
}

// MapOfString constructs an anonymous map[string]elem GoType, used for
// `type: object` with additionalProperties.
func MapOfString(elem *GoType) *GoType {
	return &GoType{Kind: gengotypes.Map, Elem: elem}
}

// Dynamic is the dynamic/JSON-value type used for `type: object` (or a
// missing type) per §4.H's declared-type rules.
func Dynamic() *GoType {
	return &GoType{Name: "any", Kind: gengotypes.Builtin}
}
