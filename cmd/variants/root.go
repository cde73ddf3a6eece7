package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yacobolo/variants"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "variants",
		Short: "Variant class resolver for Go/templ projects",
		Long: `Resolve component variant definitions into merged utility class strings.
Definitions live in YAML files; later conflicting classes replace earlier ones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags (inherited by all subcommands)
	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", defaultConfigFile, "Config file path")
	pf.StringSlice("definitions", nil, "Glob patterns of definition files")
	pf.String("table", "", "Classifier table file (.yaml or .toml) replacing the Tailwind table")

	root.AddCommand(
		newResolveCmd(),
		newMergeCmd(),
		newCheckCmd(),
		newGenerateCmd(),
		newServeCmd(),
		newInitCmd(),
		newCompletionCmd(root),
		newVersionCmd(),
	)
	return root
}

// setupLogging routes library logs to stderr: warnings by default, debug
// output with --verbose and nothing with --quiet.
func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	switch {
	case getBool("quiet", false):
		variants.SetLogger(nil)
		return
	case getBool("verbose", false):
		level = slog.LevelDebug
	}
	variants.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
}

// configured is the PreRunE shared by commands that read configuration.
func configured(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	setupLogging(cmd)
	return nil
}
