// Package definitions loads component variant configurations from YAML.
//
// A definition file holds one or more components:
//
//	components:
//	  button:
//	    base: px-5 py-2
//	    variants:
//	      color:
//	        neutral: bg-slate-500
//	        accent: [bg-teal-500, text-white]
//	      outlined:
//	        "true": border
//	    defaultVariants:
//	      color: neutral
//	    compoundVariants:
//	      - variants: {color: accent, outlined: true}
//	        class: border-teal-600
//
// Axis and component order follow the file.
package definitions

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yacobolo/variants"
	"github.com/yacobolo/variants/internal/scan"
)

// Position is a location in a definition file.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Error is a problem in a definition file.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Fragment is one class fragment of a component with its source position.
type Fragment struct {
	Field string // base, variants.color.accent, compoundVariants[0]
	Class string
	Pos   Position
}

// Component is a named variant configuration.
type Component struct {
	Name      string
	Config    *variants.Config
	Pos       Position
	Fragments []Fragment
}

// File is a parsed definition file.
type File struct {
	Path       string
	Components []*Component
}

// Set is the result of loading every definition file matching a set of globs.
type Set struct {
	Files  []*File
	Errors []error // per-file load errors
	Stats  scan.Stats
}

// Load reads and parses one definition file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	return Parse(path, data)
}

// LoadAll loads every file matching globs. A file that fails to load is
// recorded in Set.Errors and the rest are still loaded. Component names must
// be unique across the set.
func LoadAll(globs []string) (*Set, error) {
	files, stats, err := scan.Expand(globs)
	if err != nil {
		return nil, fmt.Errorf("expanding definition globs: %w", err)
	}

	set := &Set{Stats: stats}
	seen := make(map[string]Position)

	for _, path := range files {
		f, err := Load(path)
		if err != nil {
			set.Errors = append(set.Errors, err)
			continue
		}

		kept := f.Components[:0]
		for _, c := range f.Components {
			if prev, dup := seen[c.Name]; dup {
				set.Errors = append(set.Errors, &Error{
					Pos: c.Pos,
					Msg: fmt.Sprintf("component %q already defined at %s", c.Name, prev),
				})
				continue
			}
			seen[c.Name] = c.Pos
			kept = append(kept, c)
		}
		f.Components = kept
		set.Files = append(set.Files, f)
	}

	return set, nil
}

// Components lists every component in file order.
func (s *Set) Components() []*Component {
	var out []*Component
	for _, f := range s.Files {
		out = append(out, f.Components...)
	}
	return out
}

// Lookup finds a component by name.
func (s *Set) Lookup(name string) (*Component, bool) {
	for _, f := range s.Files {
		if i := slices.IndexFunc(f.Components, func(c *Component) bool { return c.Name == name }); i >= 0 {
			return f.Components[i], true
		}
	}
	return nil, false
}

// Parse parses the contents of a definition file. Every structural problem
// is reported as an *Error, joined with errors.Join.
func Parse(path string, data []byte) (*File, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Pos: Position{File: path}, Msg: err.Error()}
	}

	p := &parser{path: path}
	f := &File{Path: path}

	if len(doc.Content) == 0 {
		return f, nil
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		p.errorf(root, "expected a mapping with a components key")
		return nil, p.err()
	}

	for k, v := range pairs(root) {
		if k.Value != "components" {
			p.errorf(k, "unknown field %q", k.Value)
			continue
		}
		if v.Kind != yaml.MappingNode {
			p.errorf(v, "components must be a mapping")
			continue
		}
		for name, body := range pairs(v) {
			if c := p.component(name, body); c != nil {
				f.Components = append(f.Components, c)
			}
		}
	}

	if err := p.err(); err != nil {
		return nil, err
	}
	return f, nil
}

type parser struct {
	path string
	errs []error
}

func (p *parser) pos(n *yaml.Node) Position {
	return Position{File: p.path, Line: n.Line, Column: n.Column}
}

func (p *parser) errorf(n *yaml.Node, format string, args ...any) {
	p.errs = append(p.errs, &Error{Pos: p.pos(n), Msg: fmt.Sprintf(format, args...)})
}

func (p *parser) err() error {
	return errors.Join(p.errs...)
}

func (p *parser) component(name, body *yaml.Node) *Component {
	body = resolve(body)
	if body.Kind != yaml.MappingNode {
		p.errorf(body, "component %q must be a mapping", name.Value)
		return nil
	}

	c := &Component{Name: name.Value, Config: &variants.Config{}, Pos: p.pos(name)}
	before := len(p.errs)

	for k, v := range pairs(body) {
		switch k.Value {
		case "base":
			c.Config.Base = p.classValue(v)
			c.addFragment("base", c.Config.Base, p.pos(v))
		case "variants":
			p.axes(c, v)
		case "defaultVariants":
			c.Config.DefaultVariants = p.defaults(v)
		case "compoundVariants":
			p.compounds(c, v)
		default:
			p.errorf(k, "unknown field %q in component %q", k.Value, name.Value)
		}
	}

	if len(p.errs) > before {
		return nil
	}
	return c
}

func (p *parser) axes(c *Component, n *yaml.Node) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		p.errorf(n, "variants must be a mapping of axes")
		return
	}

	for name, opts := range pairs(n) {
		opts = resolve(opts)
		if opts.Kind != yaml.MappingNode {
			p.errorf(opts, "axis %q must be a mapping of options", name.Value)
			continue
		}

		axis := variants.Axis{Name: name.Value, Options: make(variants.Options, len(opts.Content)/2)}
		for opt, frag := range pairs(opts) {
			v := p.classValue(frag)
			axis.Options[opt.Value] = v
			c.addFragment("variants."+name.Value+"."+opt.Value, v, p.pos(frag))
		}
		c.Config.Variants = append(c.Config.Variants, axis)
	}
}

func (p *parser) defaults(n *yaml.Node) variants.Selection {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		p.errorf(n, "defaultVariants must be a mapping")
		return nil
	}

	sel := make(variants.Selection, len(n.Content)/2)
	for axis, v := range pairs(n) {
		v = resolve(v)
		if v.Kind != yaml.ScalarNode {
			p.errorf(v, "default for axis %q must be a scalar", axis.Value)
			continue
		}
		sel[axis.Value] = p.scalar(v)
	}
	return sel
}

func (p *parser) compounds(c *Component, n *yaml.Node) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		p.errorf(n, "compoundVariants must be a list")
		return
	}

	for i, item := range n.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			p.errorf(item, "compoundVariants[%d] must be a mapping", i)
			continue
		}

		var rule variants.Compound
		for k, v := range pairs(item) {
			switch k.Value {
			case "variants":
				rule.Variants = p.match(v)
			case "class", "className":
				rule.Class = p.classValue(v)
				c.addFragment(fmt.Sprintf("compoundVariants[%d]", i), rule.Class, p.pos(v))
			default:
				p.errorf(k, "unknown field %q in compoundVariants[%d]", k.Value, i)
			}
		}
		c.Config.CompoundVariants = append(c.Config.CompoundVariants, rule)
	}
}

func (p *parser) match(n *yaml.Node) variants.Match {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		p.errorf(n, "compound variants must be a mapping")
		return nil
	}

	m := make(variants.Match, len(n.Content)/2)
	for axis, v := range pairs(n) {
		v = resolve(v)
		switch v.Kind {
		case yaml.ScalarNode:
			m[axis.Value] = p.scalar(v)
		case yaml.SequenceNode:
			values := make([]any, 0, len(v.Content))
			for _, item := range v.Content {
				item = resolve(item)
				if item.Kind != yaml.ScalarNode {
					p.errorf(item, "match for axis %q must list scalars", axis.Value)
					continue
				}
				values = append(values, p.scalar(item))
			}
			m[axis.Value] = values
		default:
			p.errorf(v, "match for axis %q must be a scalar or a list", axis.Value)
		}
	}
	return m
}

// scalar decodes a scalar into a bool, int, float, string or nil.
func (p *parser) scalar(n *yaml.Node) any {
	var v any
	if err := n.Decode(&v); err != nil {
		p.errorf(n, "%v", err)
		return nil
	}
	return v
}

// classValue turns a string, null or (nested) list into a ClassValue.
func (p *parser) classValue(n *yaml.Node) variants.ClassValue {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil
		}
		return n.Value
	case yaml.SequenceNode:
		out := make([]variants.ClassValue, 0, len(n.Content))
		for _, item := range n.Content {
			out = append(out, p.classValue(item))
		}
		return out
	}
	p.errorf(n, "class value must be a string or a list")
	return nil
}

func (c *Component) addFragment(field string, v variants.ClassValue, pos Position) {
	if class := variants.Join(v); class != "" {
		c.Fragments = append(c.Fragments, Fragment{Field: field, Class: class, Pos: pos})
	}
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// pairs iterates a mapping node's key/value pairs in order.
func pairs(n *yaml.Node) func(yield func(k, v *yaml.Node) bool) {
	return func(yield func(k, v *yaml.Node) bool) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			if !yield(n.Content[i], n.Content[i+1]) {
				return
			}
		}
	}
}
