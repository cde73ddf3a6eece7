// Package codegen writes typed Go props for component definitions.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/yacobolo/variants"
	"github.com/yacobolo/variants/internal/definitions"
)

// Config holds generator configuration.
type Config struct {
	Definitions []string // ["ui/**/*.variants.yaml"]
	Output      string   // "internal/web/ui/variants.gen.go"
	PackageName string   // "ui"
}

// Result contains generation stats.
type Result struct {
	FilesScanned        int
	ComponentsGenerated int
}

// Generate loads every definition file and writes one Go file with a props
// type per component.
func Generate(cfg Config) (*Result, error) {
	set, err := definitions.LoadAll(cfg.Definitions)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	if len(set.Errors) > 0 {
		return nil, fmt.Errorf("load failed: %w", set.Errors[0])
	}

	components := set.Components()
	src, err := Render(components, cfg.PackageName, sources(set))
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
	}
	if err := os.WriteFile(cfg.Output, src, 0o644); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	variants.Logger().Info("generated props",
		"output", cfg.Output,
		"components", len(components))

	return &Result{
		FilesScanned:        set.Stats.FilesScanned,
		ComponentsGenerated: len(components),
	}, nil
}

func sources(set *definitions.Set) []string {
	out := make([]string, len(set.Files))
	for i, f := range set.Files {
		out[i] = filepath.ToSlash(f.Path)
	}
	return out
}

// Render returns the gofmt-ed Go source for components. Components that do
// not build with variants.New are rejected.
func Render(components []*definitions.Component, pkg string, sources []string) ([]byte, error) {
	if pkg == "" {
		return nil, fmt.Errorf("package name is required")
	}

	var b bytes.Buffer
	fmt.Fprintln(&b, "// Code generated by variants generate. DO NOT EDIT.")
	for _, s := range sources {
		fmt.Fprintf(&b, "// Source: %s\n", s)
	}
	fmt.Fprintf(&b, "\npackage %s\n\n", pkg)
	fmt.Fprintln(&b, `import "github.com/yacobolo/variants"`)

	seen := make(map[string]string)
	for _, c := range components {
		r, err := variants.New(c.Config)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", c.Name, err)
		}

		g := &component{Component: c, resolver: r, goName: goName(c.Name)}
		if prev, dup := seen[g.goName]; dup {
			return nil, fmt.Errorf("components %q and %q both map to Go name %s", prev, c.Name, g.goName)
		}
		seen[g.goName] = c.Name

		if err := g.write(&b); err != nil {
			return nil, err
		}
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

type component struct {
	*definitions.Component
	resolver *variants.Resolver
	goName   string
}

type field struct {
	axis     variants.Axis
	name     string // Go field name
	typ      string // option type, "bool" for boolean axes
	required bool
}

func (c *component) fields() ([]field, error) {
	required := make(map[string]bool)
	for _, name := range c.resolver.RequiredAxes() {
		required[name] = true
	}

	names := map[string]string{"ClassName": variants.ClassKey}
	out := make([]field, 0, len(c.Config.Variants))
	for _, a := range c.Config.Variants {
		f := field{axis: a, name: goName(a.Name), required: required[a.Name]}
		if prev, dup := names[f.name]; dup {
			return nil, fmt.Errorf("component %q: axes %q and %q both map to field %s", c.Name, prev, a.Name, f.name)
		}
		names[f.name] = a.Name

		if a.IsBoolean() {
			f.typ = "bool"
		} else {
			f.typ = c.goName + f.name
			if f.name == "Props" || f.name == "Variants" {
				f.typ += "Option"
			}
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *component) write(b *bytes.Buffer) error {
	fields, err := c.fields()
	if err != nil {
		return err
	}

	varName := lowerFirst(c.goName) + "Variants"

	for _, f := range fields {
		if f.typ == "bool" {
			continue
		}
		fmt.Fprintf(b, "\n// %s is an option of the %s %s axis.\n", f.typ, c.Name, f.axis.Name)
		fmt.Fprintf(b, "type %s string\n\nconst (\n", f.typ)

		consts := make(map[string]string)
		for _, opt := range slices.Sorted(maps.Keys(f.axis.Options)) {
			name := f.typ + goName(opt)
			if prev, dup := consts[name]; dup {
				return fmt.Errorf("component %q: options %q and %q of axis %q both map to %s",
					c.Name, prev, opt, f.axis.Name, name)
			}
			consts[name] = opt
			fmt.Fprintf(b, "\t%s %s = %s\n", name, f.typ, strconv.Quote(opt))
		}
		fmt.Fprintln(b, ")")
	}

	fmt.Fprintf(b, "\n// %sProps selects the variants of the %s component.\n", c.goName, c.Name)
	fmt.Fprintf(b, "type %sProps struct {\n", c.goName)
	for _, f := range fields {
		if f.required {
			fmt.Fprintf(b, "\t%s %s\n", f.name, f.typ)
		} else {
			fmt.Fprintf(b, "\t%s *%s\n", f.name, f.typ)
		}
	}
	fmt.Fprintln(b, "\tClassName string")
	fmt.Fprintln(b, "}")

	fmt.Fprintf(b, "\nvar %s = variants.MustNew(%s)\n", varName, configLiteral(c.Config))

	fmt.Fprintf(b, "\n// Class resolves p to a class string.\n")
	fmt.Fprintf(b, "func (p %sProps) Class() string {\n", c.goName)
	fmt.Fprintf(b, "\tsel := make(variants.Selection, %d)\n", len(fields)+1)
	for _, f := range fields {
		key := strconv.Quote(f.axis.Name)
		switch {
		case f.required:
			fmt.Fprintf(b, "\tif p.%s != \"\" {\n\t\tsel[%s] = string(p.%s)\n\t}\n", f.name, key, f.name)
		case f.typ == "bool":
			fmt.Fprintf(b, "\tif p.%s != nil {\n\t\tsel[%s] = *p.%s\n\t}\n", f.name, key, f.name)
		default:
			fmt.Fprintf(b, "\tif p.%s != nil {\n\t\tsel[%s] = string(*p.%s)\n\t}\n", f.name, key, f.name)
		}
	}
	fmt.Fprintf(b, "\tif p.ClassName != \"\" {\n\t\tsel[variants.ClassKey] = p.ClassName\n\t}\n")
	fmt.Fprintf(b, "\treturn %s.Resolve(sel)\n}\n", varName)

	fmt.Fprintf(b, "\n// %sVariants returns the resolver behind %sProps.\n", c.goName, c.goName)
	fmt.Fprintf(b, "func %sVariants() *variants.Resolver {\n\treturn %s\n}\n", c.goName, varName)
	return nil
}

func configLiteral(cfg *variants.Config) string {
	var b strings.Builder
	b.WriteString("&variants.Config{\n")
	if cfg.Base != nil {
		fmt.Fprintf(&b, "Base: %s,\n", classLiteral(cfg.Base))
	}

	if len(cfg.Variants) > 0 {
		b.WriteString("Variants: []variants.Axis{\n")
		for _, a := range cfg.Variants {
			fmt.Fprintf(&b, "{Name: %s, Options: variants.Options{\n", strconv.Quote(a.Name))
			for _, opt := range slices.Sorted(maps.Keys(a.Options)) {
				fmt.Fprintf(&b, "%s: %s,\n", strconv.Quote(opt), classLiteral(a.Options[opt]))
			}
			b.WriteString("}},\n")
		}
		b.WriteString("},\n")
	}

	if len(cfg.DefaultVariants) > 0 {
		b.WriteString("DefaultVariants: variants.Selection{\n")
		for _, axis := range slices.Sorted(maps.Keys(cfg.DefaultVariants)) {
			fmt.Fprintf(&b, "%s: %s,\n", strconv.Quote(axis), valueLiteral(cfg.DefaultVariants[axis]))
		}
		b.WriteString("},\n")
	}

	if len(cfg.CompoundVariants) > 0 {
		b.WriteString("CompoundVariants: []variants.Compound{\n")
		for _, c := range cfg.CompoundVariants {
			b.WriteString("{Variants: variants.Match{")
			for i, axis := range slices.Sorted(maps.Keys(c.Variants)) {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s: %s", strconv.Quote(axis), valueLiteral(c.Variants[axis]))
			}
			fmt.Fprintf(&b, "}, Class: %s},\n", classLiteral(c.Class))
		}
		b.WriteString("},\n")
	}

	b.WriteString("}")
	return b.String()
}

func classLiteral(v variants.ClassValue) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case []string:
		items := make([]string, len(x))
		for i, s := range x {
			items[i] = strconv.Quote(s)
		}
		return "[]string{" + strings.Join(items, ", ") + "}"
	case []variants.ClassValue:
		items := make([]string, len(x))
		for i, item := range x {
			items[i] = classLiteral(item)
		}
		return "[]variants.ClassValue{" + strings.Join(items, ", ") + "}"
	}
	return strconv.Quote(variants.Join(v))
}

func valueLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case bool, int, int64, uint64, float64:
		return fmt.Sprintf("%#v", x)
	case []any:
		items := make([]string, len(x))
		for i, item := range x {
			items[i] = valueLiteral(item)
		}
		return "[]any{" + strings.Join(items, ", ") + "}"
	}
	if key, ok := variants.OptionKey(v); ok {
		return strconv.Quote(key)
	}
	return "nil"
}

// goName converts kebab-case, snake_case or dotted names to PascalCase.
func goName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for i, part := range parts {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		parts[i] = string(runes)
	}

	result := strings.Join(parts, "")
	if result == "" || !unicode.IsLetter([]rune(result)[0]) {
		result = "X" + result
	}
	return result
}

func lowerFirst(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
