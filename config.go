package variants

// ClassKey is the reserved selection key carrying the caller's class override.
// It cannot be used as an axis name.
const ClassKey = "class"

// Options maps option names to the class fragment each contributes.
type Options map[string]ClassValue

// Axis is one named variant dimension, e.g. "color" or "size".
type Axis struct {
	Name    string
	Options Options
}

// IsBoolean reports whether the axis declares a "true" or "false" option.
// A boolean axis that is neither selected nor defaulted resolves to "false".
func (a Axis) IsBoolean() bool {
	if _, ok := a.Options["true"]; ok {
		return true
	}
	_, ok := a.Options["false"]
	return ok
}

// HasOption reports whether name is a valid option reference for the axis.
// Boolean axes accept both "true" and "false" even when only one is declared.
func (a Axis) HasOption(name string) bool {
	if _, ok := a.Options[name]; ok {
		return true
	}
	return a.IsBoolean() && (name == "true" || name == "false")
}

// Selection maps axis names to option values: strings, bools, numbers or
// fmt.Stringers. A nil value means unset. The ClassKey entry holds the
// override fragment appended last.
type Selection map[string]any

// Match maps axis names to an option value or a slice of option values.
type Match map[string]any

// Compound adds Class when every axis in Variants resolves to the given
// option, or to one of the given options.
type Compound struct {
	Variants Match
	Class    ClassValue
}

// Config is a declarative variant definition. Treat it as immutable once it
// has been passed to New.
type Config struct {
	Base             ClassValue
	Variants         []Axis
	DefaultVariants  Selection
	CompoundVariants []Compound
}

// Axis returns the axis with the given name.
func (c *Config) Axis(name string) (Axis, bool) {
	if c == nil {
		return Axis{}, false
	}
	for _, a := range c.Variants {
		if a.Name == name {
			return a, true
		}
	}
	return Axis{}, false
}
