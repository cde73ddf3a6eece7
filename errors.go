package variants

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyConfig is returned under WithStrictConstruction when the
	// configuration declares no axes.
	ErrEmptyConfig = errors.New("variants configuration must not be empty")

	ErrDuplicateAxis = errors.New("duplicate axis")
	ErrReservedAxis  = errors.New("reserved axis name")
	ErrUnknownAxis   = errors.New("unknown axis")
	ErrUnknownOption = errors.New("unknown option")
	ErrMissingAxis   = errors.New("missing required axis")
)

// ConfigError is a bad axis or option reference. Field names where it was
// found: "variants", "defaultVariants", "compoundVariants[2]" or "selection".
type ConfigError struct {
	Field  string
	Axis   string
	Option string
	Err    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	if e.Axis != "" {
		fmt.Fprintf(&b, "axis %q: ", e.Axis)
	}
	if e.Option != "" {
		fmt.Fprintf(&b, "option %q: ", e.Option)
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
