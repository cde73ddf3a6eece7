package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".variants.yaml")
	configContent := `
verbose: true
definitions:
  - "ui/**/*.variants.yaml"
table: tables/custom.yaml

generate:
  output: gen/variants.gen.go
  package: custom

check:
  strict: true
  max-issues-per-linter: 10
  sources:
    - "custom/**/*.templ"

serve:
  addr: ":9000"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"ui/**/*.variants.yaml"}, definitionGlobs())
	assert.Equal(t, "tables/custom.yaml", k.String("table"))
	assert.Equal(t, "gen/variants.gen.go", k.String("generate.output"))
	assert.Equal(t, "custom", k.String("generate.package"))
	assert.True(t, k.Bool("check.strict"))
	assert.Equal(t, 10, k.Int("check.max-issues-per-linter"))
	assert.Equal(t, ":9000", k.String("serve.addr"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// A missing config file is not an error
	require.NoError(t, loadConfigFromPath("/nonexistent/.variants.yaml"))

	config := buildGenerateConfig()
	assert.Equal(t, "variants.gen.go", config.Output)
	assert.Equal(t, "ui", config.PackageName)
	assert.Equal(t, defaultDefinitions, config.Definitions)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".variants.yaml")
	configContent := `
generate:
  package: from-file
check:
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	t.Setenv("VARIANTS_GENERATE_PACKAGE", "from-env")
	t.Setenv("VARIANTS_CHECK_STRICT", "true")
	t.Setenv("VARIANTS_DEFINITIONS", "a/*.variants.yaml, b/*.variants.yaml")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", buildGenerateConfig().PackageName)
	assert.True(t, buildCheckConfig().Strict)
	assert.Equal(t, []string{"a/*.variants.yaml", "b/*.variants.yaml"}, definitionGlobs())
}

func TestDotEnvNextToConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VARIANTS_SERVE_ADDR=:7070\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("VARIANTS_SERVE_ADDR")
	})

	require.NoError(t, loadConfigFromPath(filepath.Join(dir, ".variants.yaml")))
	assert.Equal(t, ":7070", getString("serve.addr", ":8080"))
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("VARIANTS_SERVE_ADDR=:7070\n"), 0o644))
	t.Setenv("VARIANTS_SERVE_ADDR", ":6060")

	require.NoError(t, loadConfigFromPath(filepath.Join(dir, ".variants.yaml")))
	assert.Equal(t, ":6060", getString("serve.addr", ":8080"))
}

func TestBuildCheckConfig_Defaults(t *testing.T) {
	resetKoanf()

	config := buildCheckConfig()
	assert.Equal(t, defaultDefinitions, config.Definitions)
	assert.Empty(t, config.Sources)
	assert.False(t, config.Strict)
	assert.Equal(t, 0, config.MaxIssuesPerLinter)
	assert.Equal(t, 0, config.MaxSameIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.False(t, config.UseColors)
}

func TestBuildCheckConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".variants.yaml")
	configContent := `
check:
  strict: true
  sources:
    - "src/**/*.go"
  max-issues-per-linter: 10
  max-same-issues: 2
  print-lines: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildCheckConfig()
	assert.True(t, config.Strict)
	assert.Equal(t, []string{"src/**/*.go"}, config.Sources)
	assert.Equal(t, 10, config.MaxIssuesPerLinter)
	assert.Equal(t, 2, config.MaxSameIssues)
	assert.False(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
}

func TestLoadMerger(t *testing.T) {
	resetKoanf()

	m, err := loadMerger()
	require.NoError(t, err)
	assert.Nil(t, m)

	require.NoError(t, k.Set("table", filepath.Join(t.TempDir(), "missing.yaml")))
	_, err = loadMerger()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading classifier table")
}

func TestGetters(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getString("config.key", "default"))
	assert.False(t, getBool("config.key", false))
	assert.True(t, getBool("config.key", true))
	assert.Equal(t, 42, getInt("config.key", 42))
	assert.Equal(t, []string{"x"}, getStrings("config.key", []string{"x"}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Empty(t, splitList(""))
}
