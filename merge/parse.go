package merge

import (
	"sort"
	"strings"
)

// parsedClass is one whitespace-delimited class token split into its parts.
//
//	hover:md:!-mt-2/50
//	└─modifiers─┘│└─base──┘
//	          important
type parsedClass struct {
	Modifiers []string // ["hover", "md"]
	Important bool     // "!" prefix (v3) or suffix (v4)
	Negative  bool     // leading "-" on the base
	Base      string   // "mt-2/50" (without "!" and "-")
	Postfix   int      // index of the top-level "/" in Base, -1 when absent
}

// parseClass splits a token on the modifier separator, ignoring separators that
// appear inside [] or () so arbitrary values like "bg-[url(a:b)]" stay intact.
func parseClass(token, separator string) parsedClass {
	if separator == "" {
		separator = ":"
	}

	var modifiers []string
	depth := 0
	start := 0
	postfix := -1
	sepLen := len(separator)

	for i := 0; i < len(token); i++ {
		ch := token[i]
		switch ch {
		case '[', '(':
			depth++
			continue
		case ']', ')':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth != 0 {
			continue
		}
		if strings.HasPrefix(token[i:], separator) {
			modifiers = append(modifiers, token[start:i])
			start = i + sepLen
			i += sepLen - 1
			postfix = -1
			continue
		}
		if ch == '/' {
			postfix = i
		}
	}

	base := token[start:]
	if postfix >= 0 {
		postfix -= start
	}

	p := parsedClass{Modifiers: modifiers, Postfix: postfix}

	switch {
	case strings.HasPrefix(base, "!"):
		p.Important = true
		base = base[1:]
		if p.Postfix > 0 {
			p.Postfix--
		}
	case strings.HasSuffix(base, "!"):
		p.Important = true
		base = base[:len(base)-1]
	}

	if strings.HasPrefix(base, "-") && len(base) > 1 {
		p.Negative = true
		base = base[1:]
		if p.Postfix > 0 {
			p.Postfix--
		}
	}

	p.Base = base
	return p
}

// modifierKey builds the conflict scope for a set of modifiers. Ordinary
// modifiers commute ("hover:focus:" == "focus:hover:") so runs of them are
// sorted; arbitrary variants like "[&>*]" keep their position.
func modifierKey(modifiers []string, important bool) string {
	if len(modifiers) == 0 && !important {
		return ""
	}

	sorted := make([]string, 0, len(modifiers))
	var run []string
	for _, m := range modifiers {
		if strings.HasPrefix(m, "[") {
			sort.Strings(run)
			sorted = append(sorted, run...)
			sorted = append(sorted, m)
			run = run[:0]
			continue
		}
		run = append(run, m)
	}
	sort.Strings(run)
	sorted = append(sorted, run...)

	key := strings.Join(sorted, ":")
	if important {
		key += "!"
	}
	return key + "|"
}
