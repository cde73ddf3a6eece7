package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default .variants.yaml config file",
		Long:  `Create a .variants.yaml configuration file in the current directory with sensible defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")

			if _, err := os.Stat(defaultConfigFile); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
			}

			if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigFile)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite existing config file")
	return cmd
}

const defaultConfig = `# variants configuration

# Shared settings
verbose: false
definitions:
  - "**/*.variants.yaml"
  - "**/*.variants.yml"
# table: merge-table.yaml   # replaces the built-in Tailwind classifier table

# Code generation
generate:
  output: internal/web/ui/variants.gen.go
  package: ui

# Checking
check:
  sources:
    - "internal/web/**/*.templ"
    - "internal/web/**/*.go"
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true

# HTTP server
serve:
  addr: ":8080"
`
