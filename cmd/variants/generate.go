package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/variants/internal/codegen"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate typed Go props and resolvers from definition files",
		Long: `Parse the definition files and write one Go file with an option type per
axis, a props struct per component and a package-level resolver for each.`,
		PreRunE: configured,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := buildGenerateConfig()

			result, err := codegen.Generate(cfg)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if !getBool("quiet", false) {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Generated %s\n", cfg.Output)
				fmt.Fprintf(w, "  Files scanned: %d\n", result.FilesScanned)
				fmt.Fprintf(w, "  Components generated: %d\n", result.ComponentsGenerated)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("output", "variants.gen.go", "Output Go file")
	f.String("package", "ui", "Package name of the generated file")
	return cmd
}
