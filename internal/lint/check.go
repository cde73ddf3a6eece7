// Package lint checks variant definition files and the class strings used in
// Go and templ sources.
package lint

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yacobolo/variants"
	"github.com/yacobolo/variants/internal/definitions"
	"github.com/yacobolo/variants/internal/scan"
	"github.com/yacobolo/variants/merge"
)

// Check loads every definition file, builds each component with
// variants.New and reports configuration errors and classes that are
// silently dropped by conflict resolution.
func Check(cfg Config) (*Result, error) {
	m := cfg.Merger
	if m == nil {
		m = merge.Default()
	}

	c := &checker{cfg: cfg, merger: m, result: &Result{}, lines: make(map[string][]string)}

	set, err := definitions.LoadAll(cfg.Definitions)
	if err != nil {
		return nil, fmt.Errorf("loading definitions: %w", err)
	}
	c.result.DefinitionFiles = set.Stats.FilesScanned
	c.result.FilesSkipped = set.Stats.FilesSkipped

	for _, err := range set.Errors {
		c.definitionError(err)
	}
	for _, comp := range set.Components() {
		c.component(comp)
	}

	if len(cfg.Sources) > 0 {
		refs, stats, err := scan.Files(cfg.Sources)
		if err != nil {
			return nil, fmt.Errorf("scanning sources: %w", err)
		}
		c.result.SourceFiles = stats.FilesScanned
		c.result.FilesSkipped += stats.FilesSkipped
		for _, ref := range refs {
			c.source(ref)
		}
	}

	if cfg.MaxIssuesPerLinter > 0 || cfg.MaxSameIssues > 0 {
		c.result.Issues, c.result.TruncatedCount = limitIssues(c.result.Issues, cfg)
	}
	c.result.ErrorCount, c.result.WarningCount = countSeverities(c.result.Issues)

	variants.Logger().Debug("check complete",
		"components", c.result.ComponentsChecked,
		"class_strings", c.result.ClassStringsChecked,
		"issues", len(c.result.Issues))
	return c.result, nil
}

type checker struct {
	cfg    Config
	merger *merge.Merger
	result *Result
	lines  map[string][]string
}

func (c *checker) component(comp *definitions.Component) {
	c.result.ComponentsChecked++

	opts := []variants.Option{variants.WithMerger(c.merger)}
	if c.cfg.Strict {
		opts = append(opts, variants.WithStrictConstruction())
	}

	if _, err := variants.New(comp.Config, opts...); err != nil {
		for _, e := range flatten(err) {
			c.add(LinterConfig, SeverityError, comp.Pos, fmt.Sprintf(IssueComponentConfig, comp.Name, e))
		}
	} else if len(comp.Config.Variants) == 0 && comp.Config.Base == nil {
		c.add(LinterConfig, SeverityWarning, comp.Pos, fmt.Sprintf(IssueEmptyComponent, comp.Name))
	}

	for _, frag := range comp.Fragments {
		c.result.FragmentsChecked++
		for _, conflict := range c.merger.Conflicts(frag.Class) {
			c.add(LinterConflict, SeverityWarning, frag.Pos,
				fmt.Sprintf(IssueFragmentConflict, comp.Name, frag.Field, conflict.Class, conflict.Winner))
		}
	}
}

func (c *checker) source(ref scan.Reference) {
	c.result.ClassStringsChecked++

	for _, conflict := range c.merger.Conflicts(ref.Class) {
		pos := definitions.Position{
			File:   ref.Location.File,
			Line:   ref.Location.Line,
			Column: ref.Location.Column + tokenOffset(ref.Class, conflict.Index),
		}
		c.add(LinterConflict, SeverityWarning, pos,
			fmt.Sprintf(IssueSourceConflict, conflict.Class, conflict.Winner))
	}
}

func (c *checker) definitionError(err error) {
	for _, e := range flatten(err) {
		var derr *definitions.Error
		if errors.As(e, &derr) {
			c.add(LinterConfig, SeverityError, derr.Pos, derr.Msg)
			continue
		}
		c.result.Issues = append(c.result.Issues, Issue{
			FromLinter: LinterConfig,
			Text:       fmt.Sprintf(IssueDefinitionFailure, e),
			Severity:   SeverityError,
		})
	}
}

func (c *checker) add(linter, severity string, pos definitions.Position, text string) {
	issue := Issue{
		FromLinter: linter,
		Text:       text,
		Severity:   severity,
		Pos: IssuePos{
			Filename: pos.File,
			Line:     pos.Line,
			Column:   pos.Column,
		},
	}
	if line, ok := c.sourceLine(pos.File, pos.Line); ok {
		issue.SourceLines = []string{line}
	}
	c.result.Issues = append(c.result.Issues, issue)
}

// sourceLine returns line n (1-based) of file, caching file contents.
func (c *checker) sourceLine(file string, n int) (string, bool) {
	lines, ok := c.lines[file]
	if !ok {
		data, err := os.ReadFile(file)
		if err == nil {
			lines = strings.Split(string(data), "\n")
		}
		c.lines[file] = lines
	}
	if n < 1 || n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// flatten expands errors.Join trees into their leaves.
func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// tokenOffset is the byte offset of the idx-th whitespace separated token in
// s, relative to the first token.
func tokenOffset(s string, idx int) int {
	first := -1
	n := 0
	inToken := false
	for i, r := range s {
		space := r == ' ' || r == '\t' || r == '\n'
		if !space && !inToken {
			if first < 0 {
				first = i
			}
			if n == idx {
				return i - first
			}
			n++
		}
		inToken = !space
	}
	return 0
}

func countSeverities(issues []Issue) (errs, warnings int) {
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
	}
	return errs, warnings
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints.
func limitIssues(issues []Issue, cfg Config) ([]Issue, int) {
	originalCount := len(issues)

	if cfg.MaxIssuesPerLinter > 0 {
		perLinter := make(map[string]int)
		filtered := issues[:0:0]
		for _, issue := range issues {
			if perLinter[issue.FromLinter] < cfg.MaxIssuesPerLinter {
				filtered = append(filtered, issue)
				perLinter[issue.FromLinter]++
			}
		}
		issues = filtered
	}

	if cfg.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, cfg.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears.
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
