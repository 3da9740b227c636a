package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oasgen/oasgen/pkg/config"
	"github.com/oasgen/oasgen/pkg/diag"
	"github.com/oasgen/oasgen/pkg/genall"
	"github.com/oasgen/oasgen/pkg/manifest"
)

func newGenerateCommand() *cobra.Command {
	var (
		specDir       string
		readme        string
		tag           string
		outputDir     string
		modelsPkg     string
		operationsPkg string
		clientType    string
		manifestPath  string
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Go client package for one tagged api-version",
		RunE: func(cmd *cobra.Command, args []string) error {
			sink := diag.Default
			if quiet {
				sink = &diag.Sink{Quiet: true}
			}
			return runGenerate(generateArgs{
				specDir:       specDir,
				readme:        readme,
				tag:           tag,
				outputDir:     outputDir,
				modelsPkg:     modelsPkg,
				operationsPkg: operationsPkg,
				clientType:    clientType,
				manifestPath:  manifestPath,
				sink:          sink,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&specDir, "spec-dir", ".", "Directory containing the service specification files")
	flags.StringVar(&readme, "readme", "readme.md", "Literate configuration document, relative to spec-dir")
	flags.StringVar(&tag, "tag", "", "Configuration tag to generate (required)")
	flags.StringVar(&outputDir, "output-dir", "generated", "Directory to write the generated package into")
	flags.StringVar(&modelsPkg, "models-package", "models", "Go package name for generated model types")
	flags.StringVar(&operationsPkg, "operations-package", "operations", "Go package name for generated operation functions")
	flags.StringVar(&clientType, "client-type", "Client", "Receiver type name the generated operation methods attach to")
	flags.StringVar(&manifestPath, "manifest", "", "Path to append this run's entry to (skipped if empty)")
	flags.BoolVar(&quiet, "quiet", false, "Suppress non-fatal diagnostics")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

type generateArgs struct {
	specDir, readme, tag, outputDir      string
	modelsPkg, operationsPkg, clientType string
	manifestPath                         string
	sink                                 *diag.Sink
}

func runGenerate(a generateArgs) error {
	readmePath := filepath.Join(a.specDir, a.readme)
	source, err := os.ReadFile(readmePath)
	if err != nil {
		return &diag.IOError{Path: readmePath, Err: err}
	}

	cfg, err := config.Parse(source, a.tag)
	if err != nil {
		return err
	}
	if len(cfg.InputFiles) == 0 {
		return fmt.Errorf("tag %q matched no input-file entries in %s", a.tag, readmePath)
	}
	for i, f := range cfg.InputFiles {
		cfg.InputFiles[i] = filepath.Join(a.specDir, f)
	}

	if _, ok := cfg.ResolvedAPIVersion(); !ok {
		a.sink.Warn("tag %q: no api-version token could be extracted, skipping", a.tag)
		return nil
	}

	result, err := genall.Generate(cfg, genall.Options{
		ModelsPackageName:     a.modelsPkg,
		OperationsPackageName: a.operationsPkg,
		ClientTypeName:        a.clientType,
		Sink:                  a.sink,
	})
	if err != nil {
		return err
	}

	if err := result.Write(a.outputDir); err != nil {
		return err
	}

	if a.manifestPath == "" {
		return nil
	}

	m, err := manifest.Load(a.manifestPath)
	switch {
	case err == nil:
		// an existing manifest loaded; new packages append to it.
	case os.IsNotExist(errors.Unwrap(err)):
		m = manifest.New(filepath.Base(a.outputDir))
	default:
		return err
	}

	modName, err := cfg.ModName()
	if err != nil {
		return err
	}
	m.Add(cfg.FeatureName(), modName)
	return m.Write(a.manifestPath)
}
