// Package genall is the orchestrator (component J): it wires the loader,
// resolver, schema-to-type translator, and operation-to-function
// translator together for one package's configuration, and owns writing
// the resulting models/operations (and optional module) source files (§6
// Config contract: input_files, output_folder, api_version,
// box_properties). The feature manifest is written by the caller through
// pkg/manifest, not here.
package genall

import (
	"os"
	"path/filepath"

	"github.com/oasgen/oasgen/pkg/config"
	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/loader"
	"github.com/oasgen/oasgen/pkg/opgen"
	"github.com/oasgen/oasgen/pkg/resolve"
	"github.com/oasgen/oasgen/pkg/typegen"
)

// Options configures names the orchestrator has no other source for: the
// generated package names and the operations' receiver type.
type Options struct {
	ModelsPackageName     string
	OperationsPackageName string
	ClientTypeName        string
	// ImportPath is the Go import path prefix under which output_folder
	// will be vendored, used to import the models/operations subpackages
	// from the optional module unit (§6). Defaults to the package's own
	// resolved Go package name when empty, which only resolves correctly
	// when output_folder is placed at the import root of its own module;
	// callers publishing into a larger module should set this explicitly.
	ImportPath string
	Sink       *diag.Sink
}

func (o Options) withDefaults() Options {
	if o.ModelsPackageName == "" {
		o.ModelsPackageName = "models"
	}
	if o.OperationsPackageName == "" {
		o.OperationsPackageName = "operations"
	}
	if o.ClientTypeName == "" {
		o.ClientTypeName = "Client"
	}
	if o.Sink == nil {
		o.Sink = diag.Default
	}
	return o
}

// Result is one package's generated output, ready to be written to disk.
type Result struct {
	Config           *config.PackageConfig
	ModelsSource     string
	OperationsSource string
	// ModuleSource and ModuleFilename are empty unless the package has a
	// resolved api version (§6: the optional module unit is only emitted
	// "if api_version set").
	ModuleSource       string
	ModelsFilename     string
	OperationsFilename string
	ModuleFilename     string
}

// Generate runs the full pipeline for one package configuration: load its
// input_files, resolve and translate every reachable schema into Go model
// declarations, translate every operation into a client method, and render
// both as Go source.
func Generate(cfg *config.PackageConfig, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	if len(cfg.InputFiles) == 0 {
		return nil, &diag.InvalidSchemaError{SchemaName: cfg.Tag, Reason: "package configuration has no input_files"}
	}

	graph, err := loader.Load(cfg.InputFiles)
	if err != nil {
		return nil, err
	}
	resolver := resolve.New(graph)

	boxes := typegen.NewBoxSet(cfg.BoxProperties)
	tg := typegen.New(graph, resolver, boxes, opts.Sink)
	modelsPkg, err := tg.Translate(cfg.InputFiles)
	if err != nil {
		return nil, err
	}
	modelsSrc := typegen.Emit(opts.ModelsPackageName, modelsPkg)

	apiVersion, hasVersion := cfg.ResolvedAPIVersion()
	fixedVersion := ""
	if hasVersion {
		fixedVersion = apiVersion
	}

	og := opgen.New(resolver, opts.ModelsPackageName, fixedVersion, opts.Sink)
	var fns []*opgen.Function
	for _, file := range cfg.InputFiles {
		doc, ok := graph.Documents[file]
		if !ok {
			continue
		}
		docFns, err := og.Translate(doc, file)
		if err != nil {
			return nil, err
		}
		fns = append(fns, docFns...)
	}
	opsSrc := opgen.Emit(opts.OperationsPackageName, opts.ClientTypeName, fns)

	result := &Result{
		Config:             cfg,
		ModelsSource:       modelsSrc,
		OperationsSource:   opsSrc,
		ModelsFilename:     filepath.Join(opts.ModelsPackageName, "models.go"),
		OperationsFilename: filepath.Join(opts.OperationsPackageName, "operations.go"),
	}

	if hasVersion {
		pkgName, err := cfg.ResolvedGoPackageName()
		if err != nil {
			return nil, err
		}
		importPath := opts.ImportPath
		if importPath == "" {
			importPath = pkgName
		}
		result.ModuleSource = emitModule(moduleSpec{
			pkgName:       pkgName,
			modelsPkg:     opts.ModelsPackageName,
			modelsImport:  importPath + "/" + opts.ModelsPackageName,
			operationsPkg: opts.OperationsPackageName,
			operationsImp: importPath + "/" + opts.OperationsPackageName,
			clientType:    opts.ClientTypeName,
			apiVersion:    apiVersion,
			modelsPackage: modelsPkg,
		})
		result.ModuleFilename = "module.go"
	}

	return result, nil
}

// Write renders r's output units under outputDir (§6 output_folder): always
// models/operations, plus module.go when the package resolved an api
// version.
func (r *Result) Write(outputDir string) error {
	units := []struct {
		rel     string
		content string
	}{
		{r.ModelsFilename, r.ModelsSource},
		{r.OperationsFilename, r.OperationsSource},
	}
	if r.ModuleFilename != "" {
		units = append(units, struct {
			rel     string
			content string
		}{r.ModuleFilename, r.ModuleSource})
	}

	for _, unit := range units {
		path := filepath.Join(outputDir, unit.rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return &diag.IOError{Path: path, Err: err}
		}
		if err := os.WriteFile(path, []byte(unit.content), 0o644); err != nil {
			return &diag.IOError{Path: path, Err: err}
		}
	}
	return nil
}
