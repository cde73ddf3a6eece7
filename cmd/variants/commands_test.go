package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const buttonDefinitions = `components:
  button:
    base: px-5 py-2
    variants:
      size:
        small: text-xs
        large: text-lg
      color:
        neutral: bg-slate-500
        accent: bg-teal-500
      outlined:
        "true": border
    defaultVariants:
      size: small
    compoundVariants:
      - variants: {color: accent, outlined: true}
        class: border-teal-600
`

// execute runs a fresh command tree with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// project writes definitions into a temp dir and returns the flags that
// point the CLI at it without reading any config from the working directory.
func project(t *testing.T, defs string) (dir string, flags []string) {
	t.Helper()

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.variants.yaml"), []byte(defs), 0o644))
	return dir, []string{
		"--config", filepath.Join(dir, ".variants.yaml"),
		"--definitions", filepath.Join(dir, "*.variants.yaml"),
	}
}

func TestResolveCommand(t *testing.T) {
	_, flags := project(t, buttonDefinitions)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "defaults", args: []string{"button"}, want: "px-5 py-2 text-xs\n"},
		{name: "selection", args: []string{"button", "size=large", "color=accent"}, want: "px-5 py-2 text-lg bg-teal-500\n"},
		{name: "compound", args: []string{"button", "color=accent", "outlined=true"}, want: "px-5 py-2 text-xs bg-teal-500 border border-teal-600\n"},
		{name: "class override", args: []string{"button", "--class", "px-3"}, want: "py-2 text-xs px-3\n"},
		{name: "class key", args: []string{"button", "class=px-3"}, want: "py-2 text-xs px-3\n"},
		{name: "unknown option ignored", args: []string{"button", "size=huge"}, want: "px-5 py-2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"resolve"}, append(tt.args, flags...)...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestResolveCommandJSON(t *testing.T) {
	_, flags := project(t, buttonDefinitions)

	out, err := execute(t, append([]string{"resolve", "button", "color=accent", "--json"}, flags...)...)
	require.NoError(t, err)

	var got resolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, resolveOutput{
		Component: "button",
		Class:     "px-5 py-2 text-xs bg-teal-500",
		Effective: map[string]string{"size": "small", "color": "accent", "outlined": "false"},
		Fragments: []string{"px-5 py-2", "text-xs", "bg-teal-500"},
	}, got)
}

func TestResolveCommandExplain(t *testing.T) {
	_, flags := project(t, buttonDefinitions)

	out, err := execute(t, append([]string{"resolve", "button", "size=large", "--explain"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, `Component: button
  outlined = false
  size = large
Fragments:
  1. px-5 py-2
  2. text-lg
Class: px-5 py-2 text-lg
`, out)
}

func TestResolveCommandErrors(t *testing.T) {
	_, flags := project(t, buttonDefinitions)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown component", args: []string{"card"}, wantErr: `unknown component "card"`},
		{name: "bad selection", args: []string{"button", "size"}, wantErr: `invalid selection "size" (want axis=option)`},
		{name: "duplicate axis", args: []string{"button", "size=small", "size=large"}, wantErr: `axis "size" selected more than once`},
		{name: "class twice", args: []string{"button", "class=px-3", "--class", "px-4"}, wantErr: "class given both as class= and --class"},
		{name: "strict unknown option", args: []string{"button", "size=huge", "--strict"}, wantErr: `"huge"`},
		{name: "strict unknown axis", args: []string{"button", "shape=round", "--strict"}, wantErr: `"shape"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"resolve"}, append(tt.args, flags...)...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeCommand(t *testing.T) {
	dir := t.TempDir()
	config := []string{"--config", filepath.Join(dir, ".variants.yaml")}

	out, err := execute(t, append([]string{"merge", "px-2 py-1", "p-3"}, config...)...)
	require.NoError(t, err)
	assert.Equal(t, "p-3\n", out)

	out, err = execute(t, append([]string{"merge", "bg-red-500 text-sm bg-blue-500", "--conflicts"}, config...)...)
	require.NoError(t, err)
	assert.Equal(t, "text-sm bg-blue-500\n  bg-red-500 overridden by bg-blue-500\n", out)
}

func TestCheckCommand(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	_, flags := project(t, `components:
  button:
    base: px-2 py-1 px-4
`)

	out, err := execute(t, append([]string{"check"}, flags...)...)
	require.NoError(t, err, "warnings pass outside strict mode")
	assert.Contains(t, out, `component "button" base: class "px-2" is overridden by "px-4" (classconflict)`)
	assert.Contains(t, out, "    base: px-2 py-1 px-4")

	_, err = execute(t, append([]string{"lint", "--strict"}, flags...)...)
	var exit *exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.code)
}

func TestCheckCommandFailsOnErrors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	_, flags := project(t, `components:
  button:
    variants:
      size:
        small: text-xs
    defaultVariants:
      size: xl
`)

	out, err := execute(t, append([]string{"check", "--print-linter-name=false"}, flags...)...)
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Contains(t, out, `component "button": defaultVariants: axis "size": option "xl": unknown option`)
	assert.NotContains(t, out, "(variantconfig)")
}

func TestCheckCommandJSON(t *testing.T) {
	_, flags := project(t, buttonDefinitions)

	out, err := execute(t, append([]string{"check", "--output-format", "json"}, flags...)...)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, got, "issues")
}

func TestCheckCommandQuiet(t *testing.T) {
	_, flags := project(t, `components:
  button:
    base: px-2 px-4
`)

	out, err := execute(t, append([]string{"check", "--quiet", "--strict"}, flags...)...)
	require.Error(t, err)
	assert.Empty(t, out)
}

func TestGenerateCommand(t *testing.T) {
	dir, flags := project(t, buttonDefinitions)
	output := filepath.Join(dir, "ui", "variants.gen.go")

	out, err := execute(t, append([]string{"generate", "--output", output, "--package", "widgets"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Components generated: 1")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package widgets")
	assert.Contains(t, string(data), "type ButtonProps struct")
}

func TestGenerateCommand_FlagsOverrideConfigFile(t *testing.T) {
	dir, flags := project(t, buttonDefinitions)
	output := filepath.Join(dir, "variants.gen.go")

	config := "generate:\n  package: fromfile\n  output: " + output + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".variants.yaml"), []byte(config), 0o644))

	_, err := execute(t, append([]string{"gen"}, flags...)...)
	require.NoError(t, err)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package fromfile")

	_, err = execute(t, append([]string{"gen", "--package", "fromflag"}, flags...)...)
	require.NoError(t, err)
	data, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package fromflag")
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	out, err := execute(t, "init")
	require.NoError(t, err)
	assert.Equal(t, "Created .variants.yaml\n", out)

	// Verify file was created and loads
	data, err := os.ReadFile(".variants.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "generate:")
	assert.Contains(t, string(data), "check:")

	resetKoanf()
	require.NoError(t, loadConfigFromPath(".variants.yaml"))
	assert.Equal(t, "internal/web/ui/variants.gen.go", buildGenerateConfig().Output)
	assert.Equal(t, ":8080", getString("serve.addr", ""))
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".variants.yaml", []byte("existing"), 0o644))

	_, err := execute(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	require.NoError(t, os.WriteFile(".variants.yaml", []byte("existing"), 0o644))

	_, err := execute(t, "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(".variants.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "package: ui")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "variants dev\n", out)
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "variants")

	_, err = execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}
