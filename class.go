package variants

import (
	"fmt"
	"strings"

	"github.com/yacobolo/variants/merge"
)

// ClassValue is a class fragment: a string, a slice of class values nested
// to any depth ([]string, []ClassValue), a fmt.Stringer, or nil.
type ClassValue = any

// Cx flattens classes, drops nil and empty entries and merges the result with
// the default Tailwind merger.
func Cx(classes ...ClassValue) string {
	return CxWith(merge.Default(), classes...)
}

// CxWith is Cx with an explicit merger. A nil merger selects the default.
func CxWith(m *merge.Merger, classes ...ClassValue) string {
	if m == nil {
		m = merge.Default()
	}
	return m.Merge(Join(classes...))
}

// Join flattens classes and joins them with single spaces without resolving
// conflicts.
func Join(classes ...ClassValue) string {
	var parts []string
	for _, c := range classes {
		parts = appendClass(parts, c)
	}
	return strings.Join(parts, " ")
}

func appendClass(dst []string, v ClassValue) []string {
	switch c := v.(type) {
	case nil:
		return dst
	case string:
		if s := strings.TrimSpace(c); s != "" {
			dst = append(dst, s)
		}
	case []string:
		for _, s := range c {
			dst = appendClass(dst, s)
		}
	case []any:
		for _, inner := range c {
			dst = appendClass(dst, inner)
		}
	case fmt.Stringer:
		dst = appendClass(dst, c.String())
	default:
		Logger().Debug("dropping unsupported class value", "type", fmt.Sprintf("%T", v))
	}
	return dst
}
