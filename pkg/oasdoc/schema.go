// Package oasdoc is the Swagger 2.0 (OpenAPI 2.0) document data model
// (spec §3): Document, PathItem, Operation, Parameter, Response, and
// Schema. Schema is modeled field-for-field after the shape
// apiextensionsv1.JSONSchemaProps exposes in the teacher's own
// pkg/applyconfiguration/openapi.go (Ref *string, Properties
// map[string]Schema, Items *SchemaOrArray, AdditionalProperties
// *SchemaOrBool, AllOf []Schema) — reimplemented locally because these
// documents are Swagger 2.0, not the CRD OpenAPI v3 subset that type
// encodes. See DESIGN.md for why the k8s package itself isn't imported.
//
// This package holds data only; it has no dependency on the loader,
// resolver, or walker so that all three (and the translators built on top
// of them) can depend on it without creating an import cycle.
package oasdoc

import "encoding/json"

// Document is one parsed Swagger 2.0 file.
type Document struct {
	Swagger     string                `json:"swagger,omitempty"`
	Info        Info                  `json:"info,omitempty"`
	BasePath    string                `json:"basePath,omitempty"`
	Consumes    []string              `json:"consumes,omitempty"`
	Produces    []string              `json:"produces,omitempty"`
	Paths       map[string]PathItem   `json:"paths,omitempty"`
	Definitions map[string]Schema     `json:"definitions,omitempty"`
	Parameters  map[string]Parameter  `json:"parameters,omitempty"`
	Responses   map[string]Response   `json:"responses,omitempty"`
}

// Info carries the document's title/version metadata; rarely load-bearing
// for code generation but kept so round-tripping a document is lossless.
type Info struct {
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// PathItem describes the operations available on one URL template.
type PathItem struct {
	Ref        string      `json:"$ref,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Get        *Operation  `json:"get,omitempty"`
	Put        *Operation  `json:"put,omitempty"`
	Post       *Operation  `json:"post,omitempty"`
	Delete     *Operation  `json:"delete,omitempty"`
	Options    *Operation  `json:"options,omitempty"`
	Head       *Operation  `json:"head,omitempty"`
	Patch      *Operation  `json:"patch,omitempty"`
}

// ByVerb returns the (verb, *Operation) pairs actually present on p, in a
// fixed, deterministic order — load-bearing for the Determinism invariant
// (§8): two runs over the same document must visit operations identically.
func (p PathItem) ByVerb() []VerbOperation {
	var out []VerbOperation
	add := func(verb string, op *Operation) {
		if op != nil {
			out = append(out, VerbOperation{Verb: verb, Operation: op})
		}
	}
	add("get", p.Get)
	add("put", p.Put)
	add("post", p.Post)
	add("delete", p.Delete)
	add("options", p.Options)
	add("head", p.Head)
	add("patch", p.Patch)
	return out
}

// VerbOperation pairs an HTTP verb with its operation.
type VerbOperation struct {
	Verb      string
	Operation *Operation
}

// Operation describes one HTTP verb on one path.
type Operation struct {
	OperationID string              `json:"operationId,omitempty"`
	Tags        []string            `json:"tags,omitempty"`
	Summary     string              `json:"summary,omitempty"`
	Description string              `json:"description,omitempty"`
	Consumes    []string            `json:"consumes,omitempty"`
	Produces    []string            `json:"produces,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	Responses   map[string]Response `json:"responses,omitempty"`
	XMSPageable *XMSPageable        `json:"x-ms-pageable,omitempty"`
	XMSExamples map[string]Example  `json:"x-ms-examples,omitempty"`
}

// XMSPageable carries the Azure x-ms-pageable extension, consulted by the
// operation translator's supplemented pagination-continuation behavior
// (SPEC_FULL.md §4 supplement).
type XMSPageable struct {
	NextLinkName string `json:"nextLinkName,omitempty"`
	ItemName     string `json:"itemName,omitempty"`
}

// Example is an x-ms-examples entry: a named reference to an example file.
type Example struct {
	Ref string `json:"$ref,omitempty"`
}

// Parameter describes one operation or shared parameter.
type Parameter struct {
	Ref             string  `json:"$ref,omitempty"`
	Name            string  `json:"name,omitempty"`
	In              string  `json:"in,omitempty"`
	Required        bool    `json:"required,omitempty"`
	Description     string  `json:"description,omitempty"`
	Type            string  `json:"type,omitempty"`
	Format          string  `json:"format,omitempty"`
	Schema          *Schema `json:"schema,omitempty"`
	Items           *Schema `json:"items,omitempty"`
	CollectionFormat string `json:"collectionFormat,omitempty"`
}

// Response describes one status-code response.
type Response struct {
	Ref         string         `json:"$ref,omitempty"`
	Description string         `json:"description,omitempty"`
	Schema      *Schema        `json:"schema,omitempty"`
	Examples    map[string]any `json:"examples,omitempty"`
}

// SchemaOrBool represents additionalProperties, which in Swagger 2.0 is
// either a boolean or a nested Schema.
type SchemaOrBool struct {
	Allows bool
	Schema *Schema
}

// MarshalJSON renders the bool/schema union back to its wire form.
func (s SchemaOrBool) MarshalJSON() ([]byte, error) {
	if s.Schema != nil {
		return json.Marshal(s.Schema)
	}
	return json.Marshal(s.Allows)
}

// UnmarshalJSON parses either a bare boolean or a nested schema object.
func (s *SchemaOrBool) UnmarshalJSON(data []byte) error {
	if string(data) == "true" || string(data) == "false" {
		return json.Unmarshal(data, &s.Allows)
	}
	s.Allows = true
	var sch Schema
	if err := json.Unmarshal(data, &sch); err != nil {
		return err
	}
	s.Schema = &sch
	return nil
}

// XMSEnum carries the Azure x-ms-enum extension's declared name, consulted
// by the schema translator's enum-naming supplement (SPEC_FULL.md §4).
type XMSEnum struct {
	Name          string `json:"name,omitempty"`
	ModelAsString bool   `json:"modelAsString,omitempty"`
}

// Schema is the Swagger 2.0 Schema Object, modeled after
// apiextensionsv1.JSONSchemaProps (see package doc).
type Schema struct {
	Ref                  *string         `json:"$ref,omitempty"`
	Type                 string          `json:"type,omitempty"`
	Format               string          `json:"format,omitempty"`
	Description          string          `json:"description,omitempty"`
	Title                string          `json:"title,omitempty"`
	Enum                 []any           `json:"enum,omitempty"`
	XMSEnum              *XMSEnum        `json:"x-ms-enum,omitempty"`
	Items                *Schema         `json:"items,omitempty"`
	Properties           map[string]Schema `json:"properties,omitempty"`
	AdditionalProperties *SchemaOrBool   `json:"additionalProperties,omitempty"`
	AllOf                []Schema        `json:"allOf,omitempty"`
	Required             []string        `json:"required,omitempty"`
	ReadOnly             bool            `json:"readOnly,omitempty"`
	Default              any             `json:"default,omitempty"`
}

// DeepCopy returns an independent copy of s, mirroring the teacher's own
// generated Schema.DeepCopy() (used before in-place AllOf flattening so the
// original indexed schema is never mutated).
func (s *Schema) DeepCopy() *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Ref != nil {
		r := *s.Ref
		out.Ref = &r
	}
	if s.Items != nil {
		out.Items = s.Items.DeepCopy()
	}
	if s.Properties != nil {
		out.Properties = make(map[string]Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = *v.DeepCopy()
		}
	}
	if s.AdditionalProperties != nil {
		ap := *s.AdditionalProperties
		ap.Schema = s.AdditionalProperties.Schema.DeepCopy()
		out.AdditionalProperties = &ap
	}
	if s.AllOf != nil {
		out.AllOf = make([]Schema, len(s.AllOf))
		for i, v := range s.AllOf {
			out.AllOf[i] = *v.DeepCopy()
		}
	}
	if s.Required != nil {
		out.Required = append([]string(nil), s.Required...)
	}
	if s.Enum != nil {
		out.Enum = append([]any(nil), s.Enum...)
	}
	return &out
}

// IsArray reports whether s is the array schema-view predicate of §3.
func (s *Schema) IsArray() bool { return s != nil && s.Type == "array" }

// IsLocalEnum reports whether s carries a non-empty enum literal list.
func (s *Schema) IsLocalEnum() bool { return s != nil && len(s.Enum) > 0 }

// IsLocalStruct reports whether s has properties and is neither a
// reference nor a bare primitive.
func (s *Schema) IsLocalStruct() bool {
	return s != nil && s.Ref == nil && len(s.Properties) > 0
}

// IsComposed reports whether s has a non-empty allOf.
func (s *Schema) IsComposed() bool { return s != nil && len(s.AllOf) > 0 }

// IsRef reports whether s is itself a bare $ref.
func (s *Schema) IsRef() bool { return s != nil && s.Ref != nil && *s.Ref != "" }
