package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/variants/internal/codegen"
	"github.com/yacobolo/variants/internal/lint"
	"github.com/yacobolo/variants/merge"
)

const defaultConfigFile = ".variants.yaml"

var defaultDefinitions = []string{"**/*.variants.yaml", "**/*.variants.yml"}

var k = koanf.New(".")

// flagKeys maps command-line flags onto their config file keys.
var flagKeys = map[string]string{
	"sources":               "check.sources",
	"strict":                "check.strict",
	"output-format":         "check.output-format",
	"max-issues-per-linter": "check.max-issues-per-linter",
	"max-same-issues":       "check.max-same-issues",
	"print-lines":           "check.print-lines",
	"print-linter-name":     "check.print-linter-name",
	"output":                "generate.output",
	"package":               "generate.package",
	"addr":                  "serve.addr",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	k = koanf.New(".")

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Only flags that were explicitly set; defaults live in the build* helpers.
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed || f.Name == "config" {
			return "", nil
		}
		key := f.Name
		if mapped, ok := flagKeys[key]; ok {
			key = mapped
		}
		return key, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads the config file, a .env file next to it and
// VARIANTS_* environment variables. Separate from loadConfig for testing
// without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. .env never overrides variables that are already set
	dotenv := filepath.Join(filepath.Dir(configPath), ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return fmt.Errorf("loading %s: %w", dotenv, err)
		}
	}

	// 3. Environment variables (VARIANTS_* prefix)
	if err := k.Load(env.Provider("VARIANTS_", ".", func(s string) string {
		// VARIANTS_GENERATE_PACKAGE -> generate.package
		// VARIANTS_CHECK_STRICT -> check.strict
		// VARIANTS_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "VARIANTS_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func definitionGlobs() []string {
	return getStrings("definitions", defaultDefinitions)
}

// loadMerger builds the merger from the configured classifier table, or
// returns nil for the built-in Tailwind table.
func loadMerger() (*merge.Merger, error) {
	path := getString("table", "")
	if path == "" {
		return nil, nil
	}

	table, err := merge.LoadTable(path)
	if err != nil {
		return nil, fmt.Errorf("loading classifier table: %w", err)
	}
	m, err := merge.New(table, merge.WithCache(1024))
	if err != nil {
		return nil, fmt.Errorf("classifier table %s: %w", path, err)
	}
	return m, nil
}

// buildCheckConfig constructs the lint Config from koanf state.
func buildCheckConfig() lint.Config {
	return lint.Config{
		Definitions:        definitionGlobs(),
		Sources:            getStrings("check.sources", nil),
		Strict:             getBool("check.strict", false),
		MaxIssuesPerLinter: getInt("check.max-issues-per-linter", 0),
		MaxSameIssues:      getInt("check.max-same-issues", 0),
		PrintIssuedLines:   getBool("check.print-lines", true),
		PrintLinterName:    getBool("check.print-linter-name", true),
		UseColors:          getBool("color", false),
	}
}

// buildGenerateConfig constructs the codegen Config from koanf state.
func buildGenerateConfig() codegen.Config {
	return codegen.Config{
		Definitions: definitionGlobs(),
		Output:      getString("generate.output", "variants.gen.go"),
		PackageName: getString("generate.package", "ui"),
	}
}

func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

func getStrings(key string, defaultVal []string) []string {
	// Comma separated env values: VARIANTS_DEFINITIONS="a/*.yaml,b/*.yaml"
	if v, ok := k.Get(key).(string); ok {
		if list := splitList(v); len(list) > 0 {
			return list
		}
		return defaultVal
	}
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if k.Exists(key) {
		return k.Int(key)
	}
	return defaultVal
}

// splitList splits comma-separated values into a slice
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
