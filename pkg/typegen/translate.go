package typegen

import (
	"fmt"
	"sort"

	"k8s.io/utils/set"

	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/ident"
	"github.com/oasgen/oasgen/pkg/loader"
	"github.com/oasgen/oasgen/pkg/oasdoc"
	"github.com/oasgen/oasgen/pkg/refparse"
	"github.com/oasgen/oasgen/pkg/resolve"
)

// Translator turns reachable schemas into Go type declarations.
type Translator struct {
	Graph    *loader.Graph
	Resolver *resolve.Resolver
	Boxes    BoxSet
	Sink     *diag.Sink

	named   map[diag.RefKey]*GoType
	emitted []*GoType
}

// New constructs a Translator. sink may be nil, in which case diag.Default
// is used.
func New(g *loader.Graph, r *resolve.Resolver, boxes BoxSet, sink *diag.Sink) *Translator {
	if sink == nil {
		sink = diag.Default
	}
	return &Translator{
		Graph:    g,
		Resolver: r,
		Boxes:    boxes,
		Sink:     sink,
		named:    map[diag.RefKey]*GoType{},
	}
}

// Translate computes the reachability closure from primaryFiles and emits a
// named Go declaration for every schema in it, in deterministic order.
func (t *Translator) Translate(primaryFiles []string) (*Package, error) {
	keys, err := t.reachable(primaryFiles)
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		schema, ok := t.Graph.SchemaIndex[key]
		if !ok {
			continue
		}
		if _, err := t.translateNamed(key, schema); err != nil {
			return nil, err
		}
	}

	return &Package{Types: t.emitted}, nil
}

// translateNamed resolves the Go declaration for a $ref'd schema, memoizing
// by key so a schema referenced from many places is declared exactly once.
func (t *Translator) translateNamed(key diag.RefKey, schema *oasdoc.Schema) (*GoType, error) {
	if gt, ok := t.named[key]; ok {
		return gt, nil
	}

	name, err := ident.CamelUpper(key.Name)
	if err != nil {
		return nil, err
	}

	// Reserve the slot before recursing so a cyclic chain of $refs (handled
	// at the field level via box-property pointers, §9) doesn't recurse
	// through translateNamed infinitely: a second encounter of key while
	// it's being built returns the reserved placeholder by reference.
	placeholder := &GoType{Name: name.Name}
	t.named[key] = placeholder

	full, err := t.translateSchema(name.Name, schema, key.File, key.Name)
	if err != nil {
		return nil, err
	}
	if full.Name == "" {
		// translateSchema returned an anonymous type (a bare primitive,
		// dynamic object, or map) rather than a named declaration — every
		// $ref'd definition needs a Go name of its own regardless, so wrap
		// it in a named alias here instead of inside translateSchema,
		// which must leave inline property types undeclared.
		aliased := &GoType{Name: name.Name, Kind: KindAlias, Elem: full, Doc: schema.Description}
		t.emitted = append(t.emitted, aliased)
		full = &GoType{Name: name.Name, Kind: KindAlias, Ref: true}
	}
	*placeholder = *full
	return placeholder, nil
}

// translateSchema builds the Go type for s, declared under goName, and
// registers any named declaration it produces into t.emitted. file is the
// document s was found in (for relative $ref resolution); enclosingSchema
// is the name of the nearest enclosing *named* schema, used to key
// box-property directives and nested-type namespacing.
func (t *Translator) translateSchema(goName string, s *oasdoc.Schema, file, enclosingSchema string) (*GoType, error) {
	switch {
	case s.IsRef():
		return t.translateRef(file, *s.Ref)

	case s.IsComposed():
		return t.translateComposed(goName, s, file, enclosingSchema)

	case s.IsLocalEnum():
		return t.translateEnum(goName, s)

	case s.IsArray():
		return t.translateArray(goName, s, file, enclosingSchema)

	case s.IsLocalStruct():
		return t.translateStruct(goName, s, file, enclosingSchema)

	case s.AdditionalProperties != nil && s.AdditionalProperties.Schema != nil:
		value, err := t.translateSchema(goName+"Value", s.AdditionalProperties.Schema, file, enclosingSchema)
		if err != nil {
			return nil, err
		}
		return MapOfString(value), nil

	default:
		return t.translatePrimitive(s)
	}
}

func (t *Translator) translateRef(file, raw string) (*GoType, error) {
	resolved, err := t.Resolver.Schema(file, refparse.Parse(raw))
	if err != nil {
		return nil, err
	}
	if resolved.Key == nil {
		// Defensive: the resolver only returns a nil Key for inline
		// schemas, never for a $ref lookup hit.
		return t.translatePrimitive(resolved.Schema)
	}
	target, err := t.translateNamed(*resolved.Key, resolved.Schema)
	if err != nil {
		return nil, err
	}
	return &GoType{Name: target.Name, Kind: target.Kind, Ref: true}, nil
}

func (t *Translator) translateEnum(goName string, s *oasdoc.Schema) (*GoType, error) {
	name := goName
	if s.XMSEnum != nil && s.XMSEnum.Name != "" {
		renamed, err := ident.CamelUpper(s.XMSEnum.Name)
		if err != nil {
			return nil, err
		}
		name = renamed.Name
	}

	values := make([]EnumValue, 0, len(s.Enum))
	for _, v := range s.Enum {
		literal := fmt.Sprint(v)
		renamed, err := ident.CamelUpper(literal)
		if err != nil {
			t.Sink.Warn("skipping unrepresentable enum literal %q on %s", literal, name)
			continue
		}
		values = append(values, EnumValue{GoName: renamed.Name, Literal: literal})
	}

	gt := &GoType{
		Name:       name,
		Kind:       KindAlias,
		Elem:       Primitive("string"),
		IsEnum:     true,
		EnumValues: values,
		Doc:        s.Description,
	}
	t.emitted = append(t.emitted, gt)
	return &GoType{Name: name, Kind: KindAlias, Ref: true}, nil
}

func (t *Translator) translateArray(goName string, s *oasdoc.Schema, file, enclosingSchema string) (*GoType, error) {
	if s.Items == nil {
		return nil, &diag.InvalidSchemaError{SchemaName: goName, Reason: "array schema has no items"}
	}
	elem, err := t.translateSchema(goName+"Item", s.Items, file, enclosingSchema)
	if err != nil {
		return nil, err
	}
	gt := &GoType{
		Name: goName,
		Kind: KindAlias,
		Elem: SliceOf(elem),
		Doc:  s.Description,
	}
	t.emitted = append(t.emitted, gt)
	return &GoType{Name: goName, Kind: KindAlias, Ref: true}, nil
}

func (t *Translator) translateStruct(goName string, s *oasdoc.Schema, file, enclosingSchema string) (*GoType, error) {
	required := set.New(s.Required...)
	fields, err := t.translateFields(goName, s.Properties, required, file, enclosingSchema)
	if err != nil {
		return nil, err
	}
	gt := &GoType{
		Name:   goName,
		Kind:   KindStruct,
		Fields: fields,
		Doc:    s.Description,
	}
	t.emitted = append(t.emitted, gt)
	return &GoType{Name: goName, Kind: KindStruct, Ref: true}, nil
}

// translateComposed flattens an allOf into one struct: a $ref member
// becomes an embedded (anonymous) field so encoding/json promotes its
// fields for free; an inline member's properties merge directly into the
// composed struct's own property set (§4.H Composition).
func (t *Translator) translateComposed(goName string, s *oasdoc.Schema, file, enclosingSchema string) (*GoType, error) {
	required := set.New(s.Required...)
	for i := range s.AllOf {
		for _, name := range s.AllOf[i].Required {
			required.Insert(name)
		}
	}

	var fields []Field
	for i := range s.AllOf {
		member := &s.AllOf[i]
		if member.IsRef() {
			refType, err := t.translateRef(file, *member.Ref)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{
				GoName:  refType.Name,
				Type:    refType,
				Flatten: true,
			})
			continue
		}
		memberFields, err := t.translateFields(goName, member.Properties, required, file, enclosingSchema)
		if err != nil {
			return nil, err
		}
		fields = append(fields, memberFields...)
	}

	ownFields, err := t.translateFields(goName, s.Properties, required, file, enclosingSchema)
	if err != nil {
		return nil, err
	}
	fields = append(fields, ownFields...)

	gt := &GoType{
		Name:   goName,
		Kind:   KindStruct,
		Fields: fields,
		Doc:    s.Description,
	}
	t.emitted = append(t.emitted, gt)
	return &GoType{Name: goName, Kind: KindStruct, Ref: true}, nil
}

// translateFields translates props into Field values in sorted-key order
// (§8 Determinism invariant).
func (t *Translator) translateFields(parentGoName string, props map[string]oasdoc.Schema, required set.Set[string], file, enclosingSchema string) ([]Field, error) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		prop := props[name]
		f, err := t.translateField(parentGoName, name, &prop, required, file, enclosingSchema)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (t *Translator) translateField(parentGoName, propName string, prop *oasdoc.Schema, required set.Set[string], file, enclosingSchema string) (Field, error) {
	goName, err := ident.CamelUpper(propName)
	if err != nil {
		return Field{}, err
	}

	nested := parentGoName + goName.Name
	fieldType, err := t.translateSchema(nested, prop, file, enclosingSchema)
	if err != nil {
		return Field{}, err
	}

	isRequired := required.Has(propName)
	readOnly := prop.ReadOnly
	boxed := t.Boxes.Has(BoxKey{File: file, Schema: enclosingSchema, Property: propName})

	collectionLike := fieldType.Kind == KindSlice || fieldType.Kind == KindMap ||
		(fieldType.Kind == KindString && fieldType.Name == "any")

	return Field{
		GoName:    goName.Name,
		JSONName:  propName,
		Type:      fieldType,
		Pointer:   boxed || (!isRequired && !collectionLike),
		OmitEmpty: !isRequired || readOnly,
		Boxed:     boxed,
		ReadOnly:  readOnly,
		Doc:       prop.Description,
	}, nil
}

func (t *Translator) translatePrimitive(s *oasdoc.Schema) (*GoType, error) {
	switch s.Type {
	case "integer":
		if s.Format == "int32" {
			return Primitive("int32"), nil
		}
		return Primitive("int64"), nil
	case "number":
		if s.Format == "float" {
			return Primitive("float32"), nil
		}
		return Primitive("float64"), nil
	case "boolean":
		return Primitive("bool"), nil
	case "string":
		return Primitive("string"), nil
	default:
		if s.Type == "" {
			t.Sink.Warn("schema has neither a type nor a $ref; emitting it as any")
		}
		return Dynamic(), nil
	}
}
