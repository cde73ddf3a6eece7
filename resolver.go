package variants

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/yacobolo/variants/merge"
)

// Resolver computes class strings for one Config. It is read-only after New
// and safe for concurrent use.
type Resolver struct {
	cfg    *Config
	merger *merge.Merger
	strict bool

	base      ClassValue
	order     []Axis
	axes      map[string]Axis
	defaults  Selection
	compounds []Compound
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMerger resolves class conflicts with m instead of the default Tailwind
// merger.
func WithMerger(m *merge.Merger) Option {
	return func(r *Resolver) {
		r.merger = m
	}
}

// WithStrictConstruction makes New fail with ErrEmptyConfig when the
// configuration declares no axes, even if it has a base fragment. Without it
// such a configuration resolves to the merged base and class override.
func WithStrictConstruction() Option {
	return func(r *Resolver) {
		r.strict = true
	}
}

// New validates cfg and builds a Resolver for it. Every problem found is
// reported as a *ConfigError, joined with errors.Join.
func New(cfg *Config, opts ...Option) (*Resolver, error) {
	r := &Resolver{cfg: cfg}
	for _, opt := range opts {
		opt(r)
	}
	if r.merger == nil {
		r.merger = merge.Default()
	}

	if cfg == nil || len(cfg.Variants) == 0 {
		if r.strict {
			return nil, ErrEmptyConfig
		}
	}
	if cfg == nil {
		return r, nil
	}

	axes, err := validateConfig(cfg)
	if err != nil {
		return nil, err
	}

	r.base = cfg.Base
	r.order = cfg.Variants
	r.axes = axes
	r.defaults = cfg.DefaultVariants
	r.compounds = cfg.CompoundVariants
	return r, nil
}

// MustNew is like New but panics on error. Intended for package-level
// component definitions.
func MustNew(cfg *Config, opts ...Option) *Resolver {
	r, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("variants: %v", err))
	}
	return r
}

func validateConfig(cfg *Config) (map[string]Axis, error) {
	var errs []error
	axes := make(map[string]Axis, len(cfg.Variants))

	for _, a := range cfg.Variants {
		if a.Name == ClassKey {
			errs = append(errs, &ConfigError{Field: "variants", Axis: a.Name, Err: ErrReservedAxis})
			continue
		}
		if _, dup := axes[a.Name]; dup {
			errs = append(errs, &ConfigError{Field: "variants", Axis: a.Name, Err: ErrDuplicateAxis})
			continue
		}
		axes[a.Name] = a
	}

	for _, name := range slices.Sorted(maps.Keys(cfg.DefaultVariants)) {
		if err := checkReference(axes, "defaultVariants", name, cfg.DefaultVariants[name]); err != nil {
			errs = append(errs, err)
		}
	}

	for i, c := range cfg.CompoundVariants {
		field := fmt.Sprintf("compoundVariants[%d]", i)
		for _, name := range slices.Sorted(maps.Keys(c.Variants)) {
			for _, v := range matchValues(c.Variants[name]) {
				if err := checkReference(axes, field, name, v); err != nil {
					errs = append(errs, err)
				}
			}
		}
	}

	return axes, errors.Join(errs...)
}

func checkReference(axes map[string]Axis, field, axis string, value any) error {
	a, ok := axes[axis]
	if !ok {
		return &ConfigError{Field: field, Axis: axis, Err: ErrUnknownAxis}
	}
	if value == nil {
		return nil
	}
	key, ok := OptionKey(value)
	if !ok || !a.HasOption(key) {
		return &ConfigError{Field: field, Axis: axis, Option: fmt.Sprint(value), Err: ErrUnknownOption}
	}
	return nil
}

func matchValues(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	case []bool:
		out := make([]any, len(x))
		for i, b := range x {
			out[i] = b
		}
		return out
	}
	return []any{v}
}

// Config returns the configuration the resolver was built from.
func (r *Resolver) Config() *Config {
	return r.cfg
}

// HasAxis reports whether name is a declared axis.
func (r *Resolver) HasAxis(name string) bool {
	_, ok := r.axes[name]
	return ok
}

// RequiredAxes lists, in declaration order, the axes that have neither a
// default nor boolean semantics and so must be selected by the caller.
func (r *Resolver) RequiredAxes() []string {
	var names []string
	for _, a := range r.order {
		if !r.optional(a) {
			names = append(names, a.Name)
		}
	}
	return names
}

// OptionalAxes lists, in declaration order, the boolean and defaulted axes.
func (r *Resolver) OptionalAxes() []string {
	var names []string
	for _, a := range r.order {
		if r.optional(a) {
			names = append(names, a.Name)
		}
	}
	return names
}

func (r *Resolver) optional(a Axis) bool {
	return a.IsBoolean() || r.defaults[a.Name] != nil
}

// Resolve returns the merged class string for sel: base, one fragment per
// axis in declaration order, every matching compound rule and finally the
// ClassKey override. Unknown axes and options in sel are ignored.
func (r *Resolver) Resolve(sel Selection) string {
	return CxWith(r.merger, r.Fragments(sel)...)
}

// ResolveStrict validates sel before resolving it.
func (r *Resolver) ResolveStrict(sel Selection) (string, error) {
	if err := r.Validate(sel); err != nil {
		return "", err
	}
	return r.Resolve(sel), nil
}

// Fragments returns the unmerged fragments Resolve would merge, in order.
func (r *Resolver) Fragments(sel Selection) []ClassValue {
	r.logIgnored(sel)

	frags := make([]ClassValue, 0, len(r.order)+len(r.compounds)+2)
	frags = append(frags, r.base)

	for _, a := range r.order {
		key, ok := r.effective(a.Name, sel)
		if !ok {
			continue
		}
		// A selected option without a fragment contributes nothing.
		if frag, found := a.Options[key]; found {
			frags = append(frags, frag)
		}
	}

	for _, c := range r.compounds {
		if r.matches(c, sel) {
			frags = append(frags, c.Class)
		}
	}

	if class, ok := sel[ClassKey]; ok {
		frags = append(frags, class)
	}
	return frags
}

// Effective reports the option each axis resolves to for sel. Axes that
// resolve to nothing are absent from the result.
func (r *Resolver) Effective(sel Selection) map[string]string {
	out := make(map[string]string, len(r.order))
	for _, a := range r.order {
		if key, ok := r.effective(a.Name, sel); ok {
			out[a.Name] = key
		}
	}
	return out
}

// effective applies the precedence selection > default > "false" for
// boolean axes.
func (r *Resolver) effective(axis string, sel Selection) (string, bool) {
	if v := sel[axis]; v != nil {
		if key, ok := OptionKey(v); ok {
			return key, true
		}
		Logger().Debug("ignoring unsupported selection value",
			"axis", axis,
			"type", fmt.Sprintf("%T", v))
	}
	if key, ok := OptionKey(r.defaults[axis]); ok {
		return key, true
	}
	if a, ok := r.axes[axis]; ok && a.IsBoolean() {
		return "false", true
	}
	return "", false
}

func (r *Resolver) matches(c Compound, sel Selection) bool {
	for axis, want := range c.Variants {
		got, ok := r.effective(axis, sel)
		if !matchesOption(want, got, ok) {
			return false
		}
	}
	return true
}

func matchesOption(want any, got string, selected bool) bool {
	for _, v := range matchValues(want) {
		if v == nil {
			if !selected {
				return true
			}
			continue
		}
		if key, ok := OptionKey(v); ok && selected && key == got {
			return true
		}
	}
	return false
}

// Validate reports unknown axes, unknown options and missing required axes
// in sel.
func (r *Resolver) Validate(sel Selection) error {
	var errs []error

	for _, name := range slices.Sorted(maps.Keys(sel)) {
		if name == ClassKey {
			continue
		}
		v := sel[name]
		a, ok := r.axes[name]
		if !ok {
			errs = append(errs, &ConfigError{Field: "selection", Axis: name, Err: ErrUnknownAxis})
			continue
		}
		if v == nil {
			continue
		}
		if key, ok := OptionKey(v); !ok || !a.HasOption(key) {
			errs = append(errs, &ConfigError{Field: "selection", Axis: name, Option: fmt.Sprint(v), Err: ErrUnknownOption})
		}
	}

	for _, name := range r.RequiredAxes() {
		if sel[name] == nil {
			errs = append(errs, &ConfigError{Field: "selection", Axis: name, Err: ErrMissingAxis})
		}
	}

	return errors.Join(errs...)
}

func (r *Resolver) logIgnored(sel Selection) {
	logger := Logger()
	if len(sel) == 0 || !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	for _, name := range slices.Sorted(maps.Keys(sel)) {
		if name == ClassKey {
			continue
		}
		a, ok := r.axes[name]
		if !ok {
			logger.Debug("ignoring unknown axis in selection", "axis", name)
			continue
		}
		if key, ok := OptionKey(sel[name]); ok && !a.HasOption(key) {
			logger.Debug("unknown option selected", "axis", name, "option", key)
		}
	}
}
