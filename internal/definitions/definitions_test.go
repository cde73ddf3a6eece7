package definitions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/variants"
)

const buttonYAML = `components:
  button:
    base: px-5 py-2 text-white
    variants:
      size:
        small: text-xs
        large: text-lg
      color:
        neutral: bg-slate-500
        accent: [bg-teal-500, ["hover:bg-teal-600"]]
      outlined:
        "true": border-2
        false: ~
    defaultVariants:
      size: small
      outlined: false
    compoundVariants:
      - variants: {color: accent, outlined: true}
        class: border-teal-600
      - variants:
          size: [small, large]
        className: rounded
  badge:
    base: inline-flex
`

func TestParse(t *testing.T) {
	f, err := Parse("ui/button.variants.yaml", []byte(buttonYAML))
	require.NoError(t, err)
	require.Len(t, f.Components, 2)

	button := f.Components[0]
	assert.Equal(t, "button", button.Name)
	assert.Equal(t, Position{File: "ui/button.variants.yaml", Line: 2, Column: 3}, button.Pos)

	cfg := button.Config
	assert.Equal(t, "px-5 py-2 text-white", cfg.Base)

	names := make([]string, len(cfg.Variants))
	for i, a := range cfg.Variants {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"size", "color", "outlined"}, names)
	assert.Equal(t, []variants.ClassValue{"bg-teal-500", []variants.ClassValue{"hover:bg-teal-600"}}, cfg.Variants[1].Options["accent"])
	assert.Equal(t, variants.Options{"true": "border-2", "false": nil}, cfg.Variants[2].Options)
	assert.True(t, cfg.Variants[2].IsBoolean())

	assert.Equal(t, variants.Selection{"size": "small", "outlined": false}, cfg.DefaultVariants)
	require.Len(t, cfg.CompoundVariants, 2)
	assert.Equal(t, variants.Match{"color": "accent", "outlined": true}, cfg.CompoundVariants[0].Variants)
	assert.Equal(t, "border-teal-600", cfg.CompoundVariants[0].Class)
	assert.Equal(t, variants.Match{"size": []any{"small", "large"}}, cfg.CompoundVariants[1].Variants)
	assert.Equal(t, "rounded", cfg.CompoundVariants[1].Class)

	assert.Equal(t, "inline-flex", f.Components[1].Config.Base)
}

func TestParsedConfigResolves(t *testing.T) {
	f, err := Parse("button.variants.yaml", []byte(buttonYAML))
	require.NoError(t, err)

	r, err := variants.New(f.Components[0].Config)
	require.NoError(t, err)

	assert.Equal(t, "px-5 py-2 text-white text-xs rounded", r.Resolve(nil))
	assert.Equal(t,
		"px-5 py-2 text-white text-lg bg-teal-500 hover:bg-teal-600 border-2 border-teal-600 rounded",
		r.Resolve(variants.Selection{"size": "large", "color": "accent", "outlined": true}))
}

func TestFragments(t *testing.T) {
	f, err := Parse("button.variants.yaml", []byte(buttonYAML))
	require.NoError(t, err)

	var fields []string
	for _, frag := range f.Components[0].Fragments {
		fields = append(fields, frag.Field)
	}
	assert.Equal(t, []string{
		"base",
		"variants.size.small",
		"variants.size.large",
		"variants.color.neutral",
		"variants.color.accent",
		"variants.outlined.true",
		"compoundVariants[0]",
		"compoundVariants[1]",
	}, fields)

	accent := f.Components[0].Fragments[4]
	assert.Equal(t, "bg-teal-500 hover:bg-teal-600", accent.Class)
	assert.Equal(t, Position{File: "button.variants.yaml", Line: 10, Column: 17}, accent.Pos)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "syntax",
			src:  "components: [",
			want: []string{"f.yaml: yaml: "},
		},
		{
			name: "root is not a mapping",
			src:  "- a\n",
			want: []string{"f.yaml:1:1: expected a mapping with a components key"},
		},
		{
			name: "unknown fields",
			src:  "theme: {}\ncomponents:\n  card:\n    bse: p-2\n",
			want: []string{
				`f.yaml:1:1: unknown field "theme"`,
				`f.yaml:4:5: unknown field "bse" in component "card"`,
			},
		},
		{
			name: "axis must be a mapping",
			src:  "components:\n  card:\n    variants:\n      size: small\n",
			want: []string{`f.yaml:4:13: axis "size" must be a mapping of options`},
		},
		{
			name: "class value mapping",
			src:  "components:\n  card:\n    base: {a: b}\n",
			want: []string{"f.yaml:3:11: class value must be a string or a list"},
		},
		{
			name: "compound list",
			src:  "components:\n  card:\n    compoundVariants:\n      - variants: {size: {a: b}}\n        klass: p-2\n",
			want: []string{
				`f.yaml:4:26: match for axis "size" must be a scalar or a list`,
				`f.yaml:5:9: unknown field "klass" in compoundVariants[0]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("f.yaml", []byte(tt.src))
			require.Error(t, err)
			for _, want := range tt.want {
				assert.Contains(t, err.Error(), want)
			}

			var perr *Error
			assert.ErrorAs(t, err, &perr)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse("empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, f.Components)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	write("a.variants.yaml", "components:\n  button:\n    base: p-2\n  card:\n    base: p-4\n")
	write("b.variants.yaml", "components:\n  button:\n    base: p-3\n  badge:\n    base: p-1\n")
	write("c.variants.yaml", "components: [\n")

	set, err := LoadAll([]string{filepath.Join(dir, "*.variants.yaml")})
	require.NoError(t, err)

	assert.Equal(t, 3, set.Stats.FilesScanned)
	require.Len(t, set.Files, 2)
	require.Len(t, set.Errors, 2)
	assert.Contains(t, set.Errors[0].Error(), `component "button" already defined at `+filepath.Join(dir, "a.variants.yaml")+":2:3")
	assert.Contains(t, set.Errors[1].Error(), "c.variants.yaml")

	var names []string
	for _, c := range set.Components() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"button", "card", "badge"}, names)

	c, ok := set.Lookup("badge")
	require.True(t, ok)
	assert.Equal(t, "p-1", c.Config.Base)

	_, ok = set.Lookup("missing")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
