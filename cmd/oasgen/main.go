// Command oasgen generates a Go REST client package from a Swagger 2.0
// specification and its accompanying literate configuration document.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "oasgen: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "oasgen",
		Short: "Generate Go REST clients from Swagger 2.0 specifications",
	}
	root.AddCommand(newGenerateCommand())
	return root
}
