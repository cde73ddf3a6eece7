// Package merge joins utility class strings and resolves conflicts between
// them: when two classes set the same thing ("px-4" and "px-8"), only the one
// occurring last survives.
//
// Which classes conflict is decided by a Table. DefaultTable follows Tailwind
// CSS naming; any other scheme can be supplied to New.
//
//	merge.Merge("px-4 py-2 px-8")            // "py-2 px-8"
//	merge.Merge("text-lg xl:text-lg text-xl") // "xl:text-lg text-xl"
package merge

import (
	"slices"
	"strings"
	"sync"
)

// Merger resolves class conflicts with a compiled classifier table.
// A Merger is safe for concurrent use.
type Merger struct {
	idx     *index
	version string

	cacheSize int
	cacheMu   sync.RWMutex
	cache     map[string]string
}

// Option configures a Merger.
type Option func(*Merger)

// WithCache memoizes up to n merge results. The cache is cleared when full.
func WithCache(n int) Option {
	return func(m *Merger) {
		if n > 0 {
			m.cacheSize = n
			m.cache = make(map[string]string, n)
		}
	}
}

// New validates and compiles a classifier table. A nil table selects
// DefaultTable.
func New(table *Table, opts ...Option) (*Merger, error) {
	if table == nil {
		table = DefaultTable()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}

	m := &Merger{
		idx:     compile(table),
		version: table.Version,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

var (
	defaultOnce   sync.Once
	defaultMerger *Merger
)

// Default returns the shared Merger built from DefaultTable.
func Default() *Merger {
	defaultOnce.Do(func() {
		m, err := New(DefaultTable(), WithCache(1024))
		if err != nil {
			panic("merge: built-in table is invalid: " + err.Error())
		}
		defaultMerger = m
	})
	return defaultMerger
}

// Merge resolves conflicts in classes using the default Tailwind table.
func Merge(classes string) string {
	return Default().Merge(classes)
}

// Version reports the version string of the table the merger was built from.
func (m *Merger) Version() string {
	return m.version
}

// Merge splits classes on whitespace and drops every class that is overridden
// by a later class of the same group under the same modifiers. Classes the
// table does not recognize are always kept. Survivors keep their relative
// order and are joined by single spaces.
func (m *Merger) Merge(classes string) string {
	if m.cache == nil {
		return m.merge(classes)
	}

	m.cacheMu.RLock()
	if cached, ok := m.cache[classes]; ok {
		m.cacheMu.RUnlock()
		return cached
	}
	m.cacheMu.RUnlock()

	result := m.merge(classes)

	m.cacheMu.Lock()
	if len(m.cache) >= m.cacheSize {
		m.cache = make(map[string]string, m.cacheSize)
	}
	m.cache[classes] = result
	m.cacheMu.Unlock()

	return result
}

// Group reports the conflict group a single class token belongs to, with its
// modifier scope, e.g. "hover:px-4" -> ("px", "hover|"). ok is false for
// classes the table does not recognize.
func (m *Merger) Group(class string) (group, scope string, ok bool) {
	p := parseClass(class, m.idx.separator)
	group, ok = m.classify(p)
	if !ok {
		return "", "", false
	}
	return group, modifierKey(p.Modifiers, p.Important), true
}

func (m *Merger) classify(p parsedClass) (string, bool) {
	// "text-lg/7", "bg-red-500/50": the part before the line-height or
	// opacity postfix decides the group, so catch-alls like text colors
	// cannot claim the whole token.
	if p.Postfix > 0 {
		if id, ok := m.idx.classify(p.Base[:p.Postfix]); ok {
			return id, true
		}
	}
	return m.idx.classify(p.Base)
}

func (m *Merger) merge(classes string) string {
	tokens := strings.Fields(classes)
	if len(tokens) == 0 {
		return ""
	}

	seen := make(map[string]struct{}, len(tokens))
	kept := make([]string, 0, len(tokens))

	// Walk backwards so the last occurrence of each group wins.
	for i := len(tokens) - 1; i >= 0; i-- {
		token := tokens[i]
		p := parseClass(token, m.idx.separator)

		group, ok := m.classify(p)
		if !ok {
			kept = append(kept, token)
			continue
		}

		scope := modifierKey(p.Modifiers, p.Important)
		key := scope + group
		if _, dup := seen[key]; dup {
			continue
		}

		seen[key] = struct{}{}
		for _, other := range m.idx.conflicts[group] {
			seen[scope+other] = struct{}{}
		}
		kept = append(kept, token)
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, " ")
}

// Conflict is a class that Merge drops because a later class overrides it.
type Conflict struct {
	Class       string
	Index       int // token index of Class
	Winner      string
	WinnerIndex int
}

// Conflicts lists, in input order, every class Merge would drop from classes
// together with the class that overrides it.
func (m *Merger) Conflicts(classes string) []Conflict {
	tokens := strings.Fields(classes)
	winners := make(map[string]int, len(tokens))

	var out []Conflict
	for i := len(tokens) - 1; i >= 0; i-- {
		p := parseClass(tokens[i], m.idx.separator)
		group, ok := m.classify(p)
		if !ok {
			continue
		}

		scope := modifierKey(p.Modifiers, p.Important)
		if w, dup := winners[scope+group]; dup {
			out = append(out, Conflict{Class: tokens[i], Index: i, Winner: tokens[w], WinnerIndex: w})
			continue
		}

		winners[scope+group] = i
		for _, other := range m.idx.conflicts[group] {
			if _, claimed := winners[scope+other]; !claimed {
				winners[scope+other] = i
			}
		}
	}

	slices.Reverse(out)
	return out
}
