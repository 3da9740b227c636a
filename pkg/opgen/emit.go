package opgen

import (
	"fmt"
	"strings"
)

// Emit renders fns as Go source: one method per operation on receiver
// clientType, plus a "*Next" sibling for every pageable operation
// (SPEC_FULL.md §4 supplement).
func Emit(pkgName, clientType string, fns []*Function) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	fmt.Fprint(&b, "// Code generated by oasgen. DO NOT EDIT.\n\n")
	emitImports(&b, fns)

	for _, fn := range fns {
		emitFunction(&b, clientType, fn)
		b.WriteString("\n")
		if fn.Pageable != nil {
			emitPageNext(&b, clientType, fn)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// emitImports writes only the imports this batch of functions actually
// uses: "context" whenever there is at least one function (every function
// takes a ctx parameter), "bytes"/"encoding/json" only when some function
// has a request body or a decoded response, and "fmt" only when some
// function's path, query, or header handling needs Sprintf/Sprint.
func emitImports(b *strings.Builder, fns []*Function) {
	if len(fns) == 0 {
		return
	}

	needsBytes, needsJSON, needsFmt := false, false, false
	for _, fn := range fns {
		if fn.BodyParam != nil {
			needsBytes = true
			needsJSON = true
		}
		if fn.ResponseType != "" {
			needsJSON = true
		}
		if len(pathParamNames(fn.PathTemplate)) > 0 || len(fn.QueryParams()) > 0 || len(fn.HeaderParams()) > 0 {
			needsFmt = true
		}
	}

	fmt.Fprint(b, "import (\n\t\"context\"\n")
	if needsBytes {
		fmt.Fprint(b, "\t\"bytes\"\n")
	}
	if needsJSON {
		fmt.Fprint(b, "\t\"encoding/json\"\n")
	}
	if needsFmt {
		fmt.Fprint(b, "\t\"fmt\"\n")
	}
	fmt.Fprint(b, ")\n\n")
}

func emitFunction(b *strings.Builder, clientType string, fn *Function) {
	if fn.Doc != "" {
		fmt.Fprintf(b, "// %s\n", fn.Doc)
	}

	fmt.Fprintf(b, "func (c *%s) %s(ctx context.Context", clientType, fn.Name)
	for _, p := range fn.PathParams() {
		fmt.Fprintf(b, ", %s %s", p.GoName, p.Type)
	}
	for _, p := range fn.QueryParams() {
		fmt.Fprintf(b, ", %s %s", p.GoName, p.Type)
	}
	for _, p := range fn.HeaderParams() {
		fmt.Fprintf(b, ", %s %s", p.GoName, p.Type)
	}
	if fn.BodyParam != nil {
		fmt.Fprintf(b, ", %s %s", fn.BodyParam.GoName, fn.BodyParam.Type)
	}

	ret := "error"
	if fn.ResponseType != "" {
		ret = fmt.Sprintf("(*%s, error)", fn.ResponseType)
	}
	fmt.Fprintf(b, ") %s {\n", ret)

	emitPathBuild(b, fn)

	bodyExpr := "nil"
	if fn.BodyParam != nil {
		fmt.Fprintf(b, "\tpayload, err := json.Marshal(%s)\n", fn.BodyParam.GoName)
		emitErrCheck(b, fn.ResponseType != "")
		bodyExpr = "bytes.NewReader(payload)"
	}

	fmt.Fprintf(b, "\treq, err := c.newRequest(ctx, %q, path, %s)\n", fn.Method, bodyExpr)
	emitErrCheck(b, fn.ResponseType != "")

	if fn.BodyParam != nil && fn.ConsumesCT != "" {
		fmt.Fprintf(b, "\treq.Header.Set(\"Content-Type\", %q)\n", fn.ConsumesCT)
	}
	if fn.ProducesCT != "" {
		fmt.Fprintf(b, "\treq.Header.Set(\"Accept\", %q)\n", fn.ProducesCT)
	}
	for _, p := range fn.HeaderParams() {
		fmt.Fprintf(b, "\treq.Header.Set(%q, fmt.Sprint(%s))\n", p.WireName, p.GoName)
	}

	qp := fn.QueryParams()
	if len(qp) > 0 || fn.FixedAPIVersion != "" {
		fmt.Fprint(b, "\tq := req.URL.Query()\n")
		for _, p := range qp {
			if p.Required {
				fmt.Fprintf(b, "\tq.Set(%q, fmt.Sprint(%s))\n", p.WireName, p.GoName)
				continue
			}
			fmt.Fprintf(b, "\tif %s {\n\t\tq.Set(%q, fmt.Sprint(%s))\n\t}\n", zeroCheck(p), p.WireName, p.GoName)
		}
		if fn.FixedAPIVersion != "" {
			// The per-call api-version parameter was filtered out during
			// translation; the fixed value is pulled from the client's own
			// configuration instead (§4.I).
			fmt.Fprint(b, "\tq.Set(\"api-version\", c.apiVersion)\n")
		}
		fmt.Fprint(b, "\treq.URL.RawQuery = q.Encode()\n")
	}

	fmt.Fprint(b, "\tresp, err := c.do(req)\n")
	emitErrCheck(b, fn.ResponseType != "")
	fmt.Fprint(b, "\tdefer resp.Body.Close()\n")

	if fn.ResponseType == "" {
		fmt.Fprint(b, "\treturn nil\n")
		fmt.Fprint(b, "}\n")
		return
	}

	fmt.Fprintf(b, "\tvar out %s\n", fn.ResponseType)
	fmt.Fprint(b, "\tif err := json.NewDecoder(resp.Body).Decode(&out); err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprint(b, "\treturn &out, nil\n")
	fmt.Fprint(b, "}\n")
}

// emitPageNext emits the continuation function for an x-ms-pageable
// operation: given the previous page's next-link value, issue a raw GET
// against it and decode the same response shape.
func emitPageNext(b *strings.Builder, clientType string, fn *Function) {
	fmt.Fprintf(b, "// %sNext follows the %q continuation link returned alongside a %s page.\n", fn.Name, fn.Pageable.NextLinkField, fn.Name)
	ret := "error"
	if fn.ResponseType != "" {
		ret = fmt.Sprintf("(*%s, error)", fn.ResponseType)
	}
	fmt.Fprintf(b, "func (c *%s) %sNext(ctx context.Context, nextLink string) %s {\n", clientType, fn.Name, ret)
	fmt.Fprint(b, "\treq, err := c.newRequest(ctx, \"GET\", nextLink, nil)\n")
	emitErrCheck(b, fn.ResponseType != "")
	if fn.ProducesCT != "" {
		fmt.Fprintf(b, "\treq.Header.Set(\"Accept\", %q)\n", fn.ProducesCT)
	}
	fmt.Fprint(b, "\tresp, err := c.do(req)\n")
	emitErrCheck(b, fn.ResponseType != "")
	fmt.Fprint(b, "\tdefer resp.Body.Close()\n")
	if fn.ResponseType == "" {
		fmt.Fprint(b, "\treturn nil\n}\n")
		return
	}
	fmt.Fprintf(b, "\tvar out %s\n", fn.ResponseType)
	fmt.Fprint(b, "\tif err := json.NewDecoder(resp.Body).Decode(&out); err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprint(b, "\treturn &out, nil\n}\n")
}

func emitPathBuild(b *strings.Builder, fn *Function) {
	names := pathParamNames(fn.PathTemplate)
	if len(names) == 0 {
		fmt.Fprintf(b, "\tpath := %q\n", fn.PathTemplate)
		return
	}

	format := pathParamPattern.ReplaceAllString(fn.PathTemplate, "%s")
	args := make([]string, 0, len(names))
	byWire := map[string]string{}
	for _, p := range fn.PathParams() {
		byWire[p.WireName] = p.GoName
	}
	for _, n := range names {
		args = append(args, byWire[n])
	}
	fmt.Fprintf(b, "\tpath := fmt.Sprintf(%q, %s)\n", format, strings.Join(args, ", "))
}

func emitErrCheck(b *strings.Builder, twoReturn bool) {
	if twoReturn {
		fmt.Fprint(b, "\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		return
	}
	fmt.Fprint(b, "\tif err != nil {\n\t\treturn err\n\t}\n")
}

func zeroCheck(p Param) string {
	switch p.Type {
	case "string":
		return p.GoName + ` != ""`
	case "bool":
		return p.GoName
	default:
		return p.GoName + " != 0"
	}
}
