package genall

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oasgen/oasgen/pkg/typegen"
)

// moduleSpec carries everything emitModule needs to render the optional
// module unit (§6): it re-exports every generated model type and the
// operations client under one package, and defines the fixed API version
// the package's operations were generated against.
type moduleSpec struct {
	pkgName       string
	modelsPkg     string
	modelsImport  string
	operationsPkg string
	operationsImp string
	clientType    string
	apiVersion    string
	modelsPackage *typegen.Package
}

// emitModule renders the module unit: a thin re-export package over
// models/operations plus an APIVersion constant, emitted only when a
// package has a resolved api version (§6: "module — emitted only when
// api_version is set").
func emitModule(spec moduleSpec) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", spec.pkgName)
	fmt.Fprint(&b, "// Code generated by oasgen. DO NOT EDIT.\n\n")
	fmt.Fprint(&b, "import (\n")
	fmt.Fprintf(&b, "\t%s %q\n", spec.modelsPkg, spec.modelsImport)
	fmt.Fprintf(&b, "\t%s %q\n", spec.operationsPkg, spec.operationsImp)
	fmt.Fprint(&b, ")\n\n")

	fmt.Fprint(&b, "// APIVersion is the api-version this package's operations were\n")
	fmt.Fprint(&b, "// generated against and send on every request.\n")
	fmt.Fprintf(&b, "const APIVersion = %q\n\n", spec.apiVersion)

	fmt.Fprintf(&b, "// %s re-exports %s.%s, the receiver generated operation methods attach to.\n", spec.clientType, spec.operationsPkg, spec.clientType)
	fmt.Fprintf(&b, "type %s = %s.%s\n", spec.clientType, spec.operationsPkg, spec.clientType)

	names := make([]string, 0, len(spec.modelsPackage.Types))
	for _, t := range spec.modelsPackage.Types {
		if t.Name == "" {
			continue
		}
		names = append(names, t.Name)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString("\n")
	}
	for _, n := range names {
		fmt.Fprintf(&b, "type %s = %s.%s\n", n, spec.modelsPkg, n)
	}

	return b.String()
}
