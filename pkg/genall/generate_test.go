package genall_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/oasgen/oasgen/pkg/config"
	"github.com/oasgen/oasgen/pkg/genall"
)

var _ = Describe("Generate", func() {
	var cfg *config.PackageConfig

	BeforeEach(func() {
		cfg = &config.PackageConfig{
			Tag:        "stable/2020-03-20",
			InputFiles: []string{"../loader/testdata/service/stable/2020-03-20/widget.json"},
		}
	})

	It("produces models and operations source for the widget service end to end", func() {
		result, err := genall.Generate(cfg, genall.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(result.ModelsSource).To(ContainSubstring("type Widget struct {"))
		Expect(result.ModelsSource).To(ContainSubstring("type Color string"))
		Expect(result.OperationsSource).To(ContainSubstring("func (c *Client) WidgetsGet(ctx context.Context, name string) (*models.Widget, error) {"))
	})

	It("writes both output units under output_folder", func() {
		result, err := genall.Generate(cfg, genall.Options{})
		Expect(err).NotTo(HaveOccurred())

		dir, err := os.MkdirTemp("", "oasgen-genall-*")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)

		Expect(result.Write(dir)).To(Succeed())

		modelsPath := filepath.Join(dir, "models", "models.go")
		content, err := os.ReadFile(modelsPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("package models"))

		opsPath := filepath.Join(dir, "operations", "operations.go")
		content, err = os.ReadFile(opsPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(ContainSubstring("package operations"))
	})

	It("rejects a configuration with no input files", func() {
		_, err := genall.Generate(&config.PackageConfig{Tag: "empty"}, genall.Options{})
		Expect(err).To(HaveOccurred())
	})

	It("emits a module unit re-exporting models/operations when the package has an api version", func() {
		result, err := genall.Generate(cfg, genall.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(result.ModuleFilename).To(Equal("module.go"))
		Expect(result.ModuleSource).To(ContainSubstring(`const APIVersion = "stable/2020-03-20"`))
		Expect(result.ModuleSource).To(ContainSubstring("type Client = operations.Client"))
		Expect(result.ModuleSource).To(ContainSubstring("type Widget = models.Widget"))
	})

	It("omits the module unit when no api version can be resolved from the tag", func() {
		cfg.Tag = "latest"
		result, err := genall.Generate(cfg, genall.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(result.ModuleFilename).To(BeEmpty())
		Expect(result.ModuleSource).To(BeEmpty())
	})
})
