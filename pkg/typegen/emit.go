package typegen

import (
	"fmt"
	"strings"
)

// Emit renders pkg as a complete Go source file in package pkgName. Callers
// (pkg/genall) are responsible for writing the result to the package's
// models.go and running it through gofmt-equivalent formatting if desired;
// Emit itself produces syntactically valid, if unformatted-to-gofmt-width,
// Go source.
func Emit(pkgName string, pkg *Package) string {
	var b strings.Builder

	fmt.Fprintf(&b, "package %s\n\n", pkgName)
	fmt.Fprint(&b, "// Code generated by oasgen. DO NOT EDIT.\n\n")

	for _, gt := range pkg.Types {
		emitDecl(&b, gt)
		b.WriteString("\n")
	}

	return b.String()
}

func emitDecl(b *strings.Builder, gt *GoType) {
	if gt.Doc != "" {
		writeDocComment(b, gt.Doc)
	}

	switch {
	case gt.IsEnum:
		emitEnum(b, gt)
	case gt.Kind == KindStruct:
		emitStruct(b, gt)
	default:
		fmt.Fprintf(b, "type %s %s\n", gt.Name, renderType(gt.Elem))
	}
}

func emitEnum(b *strings.Builder, gt *GoType) {
	fmt.Fprintf(b, "type %s string\n\n", gt.Name)
	if len(gt.EnumValues) == 0 {
		return
	}
	fmt.Fprint(b, "const (\n")
	for _, v := range gt.EnumValues {
		fmt.Fprintf(b, "\t%s%s %s = %q\n", gt.Name, v.GoName, gt.Name, v.Literal)
	}
	fmt.Fprint(b, ")\n")
}

func emitStruct(b *strings.Builder, gt *GoType) {
	fmt.Fprintf(b, "type %s struct {\n", gt.Name)
	for _, f := range gt.Fields {
		if f.Doc != "" {
			writeFieldComment(b, f.Doc)
		}
		if f.Flatten {
			fmt.Fprintf(b, "\t%s\n", renderType(f.Type))
			continue
		}
		typeStr := renderType(f.Type)
		if f.Pointer {
			typeStr = "*" + typeStr
		}
		tag := "json:\"" + f.JSONName
		if f.OmitEmpty {
			tag += ",omitempty"
		}
		tag += "\""
		fmt.Fprintf(b, "\t%s %s `%s`\n", f.GoName, typeStr, tag)
	}
	fmt.Fprint(b, "}\n")
}

func renderType(gt *GoType) string {
	if gt == nil {
		return "any"
	}
	switch gt.Kind {
	case KindSlice:
		return "[]" + renderType(gt.Elem)
	case KindMap:
		return "map[string]" + renderType(gt.Elem)
	case KindPointer:
		return "*" + renderType(gt.Elem)
	default:
		return gt.Name
	}
}

func writeDocComment(b *strings.Builder, doc string) {
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Fprintf(b, "// %s\n", line)
	}
}

func writeFieldComment(b *strings.Builder, doc string) {
	for _, line := range strings.Split(strings.TrimSpace(doc), "\n") {
		fmt.Fprintf(b, "\t// %s\n", line)
	}
}
