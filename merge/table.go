package merge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Table is the classifier the merger uses to decide which class tokens
// conflict. It is plain data so it can be versioned, loaded from a file
// (see LoadTable) or swapped for another naming scheme entirely.
type Table struct {
	Version   string              `yaml:"version" toml:"version"`
	Prefix    string              `yaml:"prefix" toml:"prefix"`       // utility prefix, e.g. "tw-"
	Separator string              `yaml:"separator" toml:"separator"` // modifier separator, ":" when empty
	Groups    []Group             `yaml:"groups" toml:"groups"`
	Conflicts map[string][]string `yaml:"conflicts" toml:"conflicts"` // group ID -> groups it also overrides
}

// Group is one conflict category. A class belongs to the group when it is
// listed in Classes, or when it is Prefix followed by "-" and a value the
// group accepts.
type Group struct {
	ID        string   `yaml:"id" toml:"id"`
	Classes   []string `yaml:"classes,omitempty" toml:"classes,omitempty"`
	Prefix    string   `yaml:"prefix,omitempty" toml:"prefix,omitempty"`
	Values    []string `yaml:"values,omitempty" toml:"values,omitempty"`
	Bare      bool     `yaml:"bare,omitempty" toml:"bare,omitempty"`     // the prefix alone is a member ("border", "shadow")
	Number    bool     `yaml:"number,omitempty" toml:"number,omitempty"` // any numeric value ("border-3")
	Any       bool     `yaml:"any,omitempty" toml:"any,omitempty"`       // any value at all
	Arbitrary []string `yaml:"arbitrary,omitempty" toml:"arbitrary,omitempty"`
}

// Arbitrary value kinds a group may accept inside "[...]".
const (
	KindAny    = "any"
	KindLength = "length"
	KindColor  = "color"
	KindNumber = "number"
	KindImage  = "image" // url(), gradients and image-set(); also the "url:" label
)

var (
	// ErrInvalidTable is wrapped by every table validation failure.
	ErrInvalidTable = errors.New("invalid classifier table")
)

// Validate checks that group IDs are unique, every group can match something
// and conflicts only reference known groups.
func (t *Table) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidTable)
	}

	var errs []error
	seen := make(map[string]bool, len(t.Groups))
	for i, g := range t.Groups {
		switch {
		case g.ID == "":
			errs = append(errs, fmt.Errorf("%w: group %d has no id", ErrInvalidTable, i))
			continue
		case seen[g.ID]:
			errs = append(errs, fmt.Errorf("%w: duplicate group %q", ErrInvalidTable, g.ID))
		case len(g.Classes) == 0 && g.Prefix == "":
			errs = append(errs, fmt.Errorf("%w: group %q has neither classes nor prefix", ErrInvalidTable, g.ID))
		}
		seen[g.ID] = true

		for _, kind := range g.Arbitrary {
			switch kind {
			case KindAny, KindLength, KindColor, KindNumber, KindImage:
			default:
				errs = append(errs, fmt.Errorf("%w: group %q: unknown arbitrary kind %q", ErrInvalidTable, g.ID, kind))
			}
		}
	}

	for id, targets := range t.Conflicts {
		if !seen[id] {
			errs = append(errs, fmt.Errorf("%w: conflicts reference unknown group %q", ErrInvalidTable, id))
		}
		for _, target := range targets {
			if !seen[target] {
				errs = append(errs, fmt.Errorf("%w: group %q conflicts with unknown group %q", ErrInvalidTable, id, target))
			}
		}
	}

	return errors.Join(errs...)
}

// index is the compiled, read-only lookup form of a Table.
type index struct {
	prefix    string
	separator string
	exact     map[string]string   // class -> group ID
	byPrefix  map[string][]*Group // prefix -> candidate groups in table order
	bare      map[string][]*Group // prefix -> groups accepting the bare prefix
	conflicts map[string][]string
}

func compile(t *Table) *index {
	idx := &index{
		prefix:    t.Prefix,
		separator: t.Separator,
		exact:     make(map[string]string),
		byPrefix:  make(map[string][]*Group),
		bare:      make(map[string][]*Group),
		conflicts: t.Conflicts,
	}
	if idx.separator == "" {
		idx.separator = ":"
	}

	for i := range t.Groups {
		g := &t.Groups[i]
		for _, c := range g.Classes {
			if _, taken := idx.exact[c]; !taken {
				idx.exact[c] = g.ID
			}
		}
		if g.Prefix == "" {
			continue
		}
		idx.byPrefix[g.Prefix] = append(idx.byPrefix[g.Prefix], g)
		if g.Bare {
			idx.bare[g.Prefix] = append(idx.bare[g.Prefix], g)
		}
	}

	return idx
}

// classify returns the group ID for a base class (modifiers, "!" and a
// leading "-" already removed).
func (idx *index) classify(base string) (string, bool) {
	if idx.prefix != "" {
		if !strings.HasPrefix(base, idx.prefix) {
			return "", false
		}
		base = base[len(idx.prefix):]
	}
	if base == "" {
		return "", false
	}

	// Arbitrary property: [mask-type:luminance]
	if strings.HasPrefix(base, "[") && strings.HasSuffix(base, "]") {
		if prop, _, ok := strings.Cut(base[1:len(base)-1], ":"); ok && prop != "" {
			return "arbitrary.." + prop, true
		}
		return "", false
	}

	if id, ok := idx.exact[base]; ok {
		return id, true
	}

	if groups, ok := idx.bare[base]; ok && len(groups) > 0 {
		return groups[0].ID, true
	}

	// Longest prefix first: "border-t-2" tries "border-t" before "border".
	for i := strings.LastIndexByte(base, '-'); i > 0; i = strings.LastIndexByte(base[:i], '-') {
		groups, ok := idx.byPrefix[base[:i]]
		if !ok {
			continue
		}
		value := base[i+1:]
		for _, g := range groups {
			if g.accepts(value) {
				return g.ID, true
			}
		}
	}

	return "", false
}

func (g *Group) accepts(value string) bool {
	if value == "" {
		return false
	}

	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return g.acceptsArbitrary(value[1 : len(value)-1])
	}

	if g.Any {
		return true
	}
	for _, v := range g.Values {
		if v == value {
			return true
		}
	}
	if g.Number && isNumber(value) {
		return true
	}
	return false
}

func (g *Group) acceptsArbitrary(inner string) bool {
	kinds := g.Arbitrary
	if len(kinds) == 0 {
		if !g.Any {
			return false
		}
		kinds = []string{KindAny}
	}

	label, _, labeled := strings.Cut(inner, ":")
	if labeled && !isLabel(label) {
		labeled = false
	}

	for _, kind := range kinds {
		if kind == KindAny {
			return true
		}
		if labeled {
			if label == kind || (kind == KindImage && label == "url") {
				return true
			}
			continue
		}
		switch kind {
		case KindLength:
			if isLength(inner) {
				return true
			}
		case KindColor:
			if isColor(inner) {
				return true
			}
		case KindNumber:
			if isNumber(inner) {
				return true
			}
		case KindImage:
			if isImage(inner) {
				return true
			}
		}
	}
	return false
}

func isLabel(s string) bool {
	switch s {
	case KindLength, KindColor, KindNumber, "image", "url", "position", "percentage", "family-name", "shadow":
		return true
	}
	return false
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

var lengthUnits = []string{
	"px", "rem", "em", "%", "vh", "vw", "dvh", "dvw", "svh", "svw", "lvh", "lvw",
	"vmin", "vmax", "ch", "ex", "lh", "rlh", "pt", "pc", "in", "cm", "mm", "q", "fr",
	"cqw", "cqh", "cqi", "cqb", "cqmin", "cqmax",
}

func isLength(s string) bool {
	if s == "0" || s == "px" {
		return true
	}
	for _, fn := range []string{"calc(", "min(", "max(", "clamp("} {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	for _, unit := range lengthUnits {
		if strings.HasSuffix(s, unit) && isNumber(strings.TrimSuffix(s, unit)) {
			return true
		}
	}
	return false
}

func isImage(s string) bool {
	for _, fn := range []string{"url(", "image(", "image-set(", "cross-fade(", "element(",
		"linear-gradient(", "radial-gradient(", "conic-gradient(",
		"repeating-linear-gradient(", "repeating-radial-gradient(", "repeating-conic-gradient("} {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return false
}

func isColor(s string) bool {
	if strings.HasPrefix(s, "#") {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla(", "hwb(", "lab(", "lch(", "oklab(", "oklch(", "color-mix("} {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return false
}
