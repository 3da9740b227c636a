package opgen

import (
	"regexp"
	"sort"
	"strings"

	gengonamer "k8s.io/gengo/v2/namer"
	gengotypes "k8s.io/gengo/v2/types"

	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/ident"
	"github.com/oasgen/oasgen/pkg/oasdoc"
	"github.com/oasgen/oasgen/pkg/refparse"
	"github.com/oasgen/oasgen/pkg/resolve"
)

// publicNamer/privateNamer reuse gengo's own public/private naming
// strategies (the same ones controller-tools' generators use to toggle a
// declaration's exported-ness) to derive, respectively, a function's
// exported Go name and a parameter's unexported local name from the same
// sanitized base identifier.
var (
	publicNamer  = gengonamer.NewPublicNamer(0)
	privateNamer = gengonamer.NewPrivateNamer(0)
)

func publicName(raw string) (string, error) {
	base, err := ident.CamelUpper(raw)
	if err != nil {
		return "", err
	}
	return publicNamer.Name(&gengotypes.Type{Name: gengotypes.Name{Name: base.Name}}), nil
}

func privateName(raw string) (string, error) {
	base, err := ident.CamelUpper(raw)
	if err != nil {
		return "", err
	}
	return privateNamer.Name(&gengotypes.Type{Name: gengotypes.Name{Name: base.Name}}), nil
}

var pathParamPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Translator builds opgen.Functions for one document.
type Translator struct {
	Resolver        *resolve.Resolver
	ModelsPackage   string
	FixedAPIVersion string // "" when api-version is still a per-call parameter
	Sink            *diag.Sink
}

// New constructs a Translator. sink may be nil.
func New(r *resolve.Resolver, modelsPackage, fixedAPIVersion string, sink *diag.Sink) *Translator {
	if sink == nil {
		sink = diag.Default
	}
	return &Translator{Resolver: r, ModelsPackage: modelsPackage, FixedAPIVersion: fixedAPIVersion, Sink: sink}
}

// Translate builds one Function per operation in doc, in deterministic
// (path, then verb) order (§8 Determinism invariant).
func (t *Translator) Translate(doc *oasdoc.Document, file string) ([]*Function, error) {
	var out []*Function

	paths := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := doc.Paths[path]
		for _, vo := range item.ByVerb() {
			fn, err := t.translateOperation(path, vo.Verb, vo.Operation, item.Parameters, doc, file)
			if err != nil {
				return nil, err
			}
			out = append(out, fn)
		}
	}

	return out, nil
}

func (t *Translator) translateOperation(path, verb string, op *oasdoc.Operation, shared []oasdoc.Parameter, doc *oasdoc.Document, file string) (*Function, error) {
	name, err := t.functionName(path, verb, op)
	if err != nil {
		return nil, err
	}

	fn := &Function{
		Name:            name,
		OperationID:     op.OperationID,
		Doc:             op.Summary,
		Method:          strings.ToUpper(verb),
		PathTemplate:    path,
		ConsumesCT:      negotiate(op.Consumes, doc.Consumes, "application/json"),
		ProducesCT:      negotiate(op.Produces, doc.Produces, "application/json"),
		FixedAPIVersion: t.FixedAPIVersion,
	}

	all := append(append([]oasdoc.Parameter{}, shared...), op.Parameters...)
	for i := range all {
		p := &all[i]
		if t.FixedAPIVersion != "" && strings.EqualFold(p.Name, "api-version") {
			// A fixed package api-version (§6 Config.api_version) removes
			// the per-call parameter entirely: every request the package
			// issues carries the configured version instead.
			continue
		}
		if p.In == "body" {
			goName, err := privateName(p.Name)
			if err != nil {
				return nil, err
			}
			typ, err := t.schemaGoTypeName(p.Schema, file)
			if err != nil {
				return nil, err
			}
			bp := Param{GoName: goName, WireName: p.Name, In: "body", Required: p.Required, Type: typ}
			fn.BodyParam = &bp
			continue
		}

		goName, err := privateName(p.Name)
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, Param{
			GoName:   goName,
			WireName: p.Name,
			In:       p.In,
			Required: p.Required,
			Type:     primitiveGoType(p.Type, p.Format),
		})
	}

	respType, err := t.selectResponseType(op, file)
	if err != nil {
		return nil, err
	}
	fn.ResponseType = respType

	if op.XMSPageable != nil {
		fn.Pageable = &Pageable{
			NextLinkField: op.XMSPageable.NextLinkName,
			ItemField:     op.XMSPageable.ItemName,
		}
	}

	return fn, nil
}

// functionName derives the exported Go method name: operationId's
// "Tag_Name" shape splits into two CamelUpper'd parts per §4.I; an
// operation with no operationId falls back to the path's static segments
// (templated segments are skipped — they identify an instance, not the
// operation) followed by the HTTP verb, e.g. "/pets" + "get" -> "PetsGet".
func (t *Translator) functionName(path, verb string, op *oasdoc.Operation) (string, error) {
	if op.OperationID != "" {
		parts := strings.SplitN(op.OperationID, "_", 2)
		var b strings.Builder
		for _, part := range parts {
			n, err := publicName(part)
			if err != nil {
				return "", err
			}
			b.WriteString(n)
		}
		return b.String(), nil
	}

	b := strings.Builder{}
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		n, err := publicName(seg)
		if err != nil {
			return "", err
		}
		b.WriteString(n)
	}
	verbName, err := publicName(verb)
	if err != nil {
		return "", err
	}
	b.WriteString(verbName)
	return b.String(), nil
}

// selectResponseType picks the first schema-bearing 2xx response, in
// ascending status-code order, falling back to no response type (e.g. 204
// No Content operations return just an error).
func (t *Translator) selectResponseType(op *oasdoc.Operation, file string) (string, error) {
	codes := make([]string, 0, len(op.Responses))
	for c := range op.Responses {
		codes = append(codes, c)
	}
	sort.Strings(codes)

	for _, code := range codes {
		if len(code) != 3 || code[0] != '2' {
			continue
		}
		resp := op.Responses[code]
		if resp.Schema == nil {
			continue
		}
		return t.schemaGoTypeName(resp.Schema, file)
	}
	return "", nil
}

// schemaGoTypeName renders the Go type a body/response schema corresponds
// to. The common case in a well-formed service spec is a $ref to a named
// definition; an array maps to a slice of its items' type, an inline
// primitive to its Go builtin, and an inline object (or untyped) schema
// falls back to "any" with a warning rather than re-running the full
// typegen translator from inside opgen.
func (t *Translator) schemaGoTypeName(s *oasdoc.Schema, file string) (string, error) {
	if s == nil {
		return "", nil
	}
	if s.IsArray() {
		elem, err := t.schemaGoTypeName(s.Items, file)
		if err != nil {
			return "", err
		}
		return "[]" + elem, nil
	}
	if s.IsRef() {
		resolved, err := t.Resolver.Schema(file, refparse.Parse(*s.Ref))
		if err != nil {
			return "", err
		}
		if resolved.Key == nil {
			t.Sink.Warn("schema ref %s resolved with no key, falling back to any", *s.Ref)
			return "any", nil
		}
		name, err := ident.CamelUpper(resolved.Key.Name)
		if err != nil {
			return "", err
		}
		return t.ModelsPackage + "." + name.Name, nil
	}
	if s.Type == "" || s.Type == "object" {
		t.Sink.Warn("inline object schema in operation body/response, falling back to any")
		return "any", nil
	}
	return primitiveGoType(s.Type, s.Format), nil
}

func primitiveGoType(typ, format string) string {
	switch typ {
	case "integer":
		if format == "int32" {
			return "int32"
		}
		return "int64"
	case "number":
		if format == "float" {
			return "float32"
		}
		return "float64"
	case "boolean":
		return "bool"
	default:
		return "string"
	}
}

func negotiate(operationLevel, docLevel []string, fallback string) string {
	if len(operationLevel) > 0 {
		return operationLevel[0]
	}
	if len(docLevel) > 0 {
		return docLevel[0]
	}
	return fallback
}

// pathParamNames returns the {param} placeholders in template, in the
// order they appear — load-bearing for matching fmt.Sprintf verbs to
// arguments positionally in the emitted path-building statement.
func pathParamNames(template string) []string {
	matches := pathParamPattern.FindAllStringSubmatch(template, -1)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m[1]
	}
	return out
}
