package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/variants/internal/lint"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check",
		Aliases: []string{"lint"},
		Short:   "Validate definition files and detect class conflicts",
		Long: `Check every component in the definition files: configuration errors,
fragments whose classes are silently overridden and, with --sources, class
strings in Go/templ files that contain conflicting utilities.`,
		PreRunE: configured,
		RunE:    runCheck,
	}

	f := cmd.Flags()
	f.StringSlice("sources", nil, "Glob patterns of Go/templ files to scan for class conflicts")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.String("output-format", "", "Output format: issues|summary|full|json")
	f.Int("max-issues-per-linter", 0, "Max issues to show per linter (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (linter) suffix on issues")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg := buildCheckConfig()
	m, err := loadMerger()
	if err != nil {
		return err
	}
	cfg.Merger = m

	result, err := lint.Check(cfg)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	quiet := getBool("quiet", false)
	format := lint.DetermineOutputFormat(getString("check.output-format", ""), quiet)

	if !quiet {
		if err := lint.WriteOutput(cmd.OutOrStdout(), result, format, cfg); err != nil {
			return err
		}
	}

	// Soft gate: errors fail the build, warnings only in strict mode.
	if result.ErrorCount > 0 || (cfg.Strict && len(result.Issues) > 0) {
		return &exitError{code: 1}
	}
	return nil
}
