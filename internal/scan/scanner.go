// Package scan finds class strings in Go and templ sources.
package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/yacobolo/variants"
)

// Reference is a class string literal found in a source file.
type Reference struct {
	Class    string   // Full attribute value: "px-2 py-1 px-4"
	Location Location // Where it was found
}

// Location tracks where a reference was found.
type Location struct {
	File   string
	Line   int
	Column int    // 1-based column of the first class in the string
	Text   string // Trimmed line content for source display
}

// Stats tracks file discovery statistics.
type Stats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files kept after filtering
	FilesSkipped    int // Generated or gitignored files
}

type pattern struct {
	name  string
	regex *regexp.Regexp
}

var (
	// Ordered from most specific to least specific.
	patterns = []pattern{
		{name: "class attribute with quotes", regex: regexp.MustCompile(`class="([^"]+)"`)},
		{name: "class with string literal in braces", regex: regexp.MustCompile(`class=\{\s*"([^"]+)"`)},
		{name: "variants.Cx call", regex: regexp.MustCompile(`variants\.Cx\(\s*"([^"]+)"`)},
	}

	templClassesMulti = regexp.MustCompile(`templ\.Classes\(([^)]+)\)`)
	templKVMulti      = regexp.MustCompile(`templ\.KV\(([^)]+)\)`)

	commentPattern = regexp.MustCompile(`^\s*//`)

	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isTemplGenerated handles both the _templ.go and .templ.go suffixes.
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// loadGitIgnore loads ./.gitignore once. A missing file is not an error.
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// ShouldSkip reports whether path is excluded from scanning: templ output
// always, gitignored files only for relative paths.
func ShouldSkip(path string) bool {
	if isTemplGenerated(path) {
		return true
	}

	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// Expand expands doublestar glob patterns into a deduplicated file list.
// Directories and skipped files are left out.
func Expand(globs []string) ([]string, Stats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := Stats{}

	for _, glob := range globs {
		matches, err := doublestar.FilepathGlob(glob)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if ShouldSkip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// Files scans every file matching globs. Unreadable files are logged and
// skipped.
func Files(globs []string) ([]Reference, Stats, error) {
	files, stats, err := Expand(globs)
	if err != nil {
		return nil, stats, err
	}

	var all []Reference
	for _, file := range files {
		refs, err := File(file)
		if err != nil {
			variants.Logger().Warn("skipping unreadable source", "file", file, "error", err)
			continue
		}
		all = append(all, refs...)
	}

	return all, stats, nil
}

// File scans a single file.
func File(path string) ([]Reference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var refs []Reference
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		refs = append(refs, Line(scanner.Text(), lineNum, path)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// Line extracts the class strings on one line of file.
func Line(line string, lineNum int, file string) []Reference {
	if commentPattern.MatchString(line) {
		return nil
	}

	hasClasses := strings.Contains(line, "templ.Classes(")
	hasKV := strings.Contains(line, "templ.KV(")
	if hasClasses || hasKV {
		var refs []Reference
		if hasClasses {
			refs = append(refs, fromTemplCall(templClassesMulti, line, lineNum, file, false)...)
		}
		if hasKV && !hasClasses {
			refs = append(refs, fromTemplCall(templKVMulti, line, lineNum, file, true)...)
		}
		return refs
	}

	var refs []Reference
	for _, p := range patterns {
		for _, m := range p.regex.FindAllStringSubmatchIndex(line, -1) {
			if len(m) < 4 {
				continue
			}
			class := line[m[2]:m[3]]
			if strings.TrimSpace(class) == "" {
				continue
			}
			refs = append(refs, Reference{
				Class:    class,
				Location: location(file, lineNum, line, m[2]+firstTokenOffset(class)+1),
			})
		}
	}

	return refs
}

// fromTemplCall handles templ.Classes("a b", "c", templ.KV("d", ok)) and
// templ.KV("a b", ok). For KV only the first argument is a class.
func fromTemplCall(re *regexp.Regexp, line string, lineNum int, file string, firstOnly bool) []Reference {
	var refs []Reference

	for _, m := range re.FindAllStringSubmatchIndex(line, -1) {
		if len(m) < 4 {
			continue
		}
		args := splitArgs(line[m[2]:m[3]])
		if firstOnly && len(args) > 1 {
			args = args[:1]
		}

		for _, arg := range args {
			arg = strings.TrimSpace(arg)
			arg = strings.TrimPrefix(arg, "templ.KV(")
			if !strings.HasPrefix(arg, `"`) {
				continue
			}
			end := strings.Index(arg[1:], `"`)
			if end <= 0 {
				continue
			}
			class := arg[1 : end+1]
			refs = append(refs, Reference{
				Class:    class,
				Location: location(file, lineNum, line, findClassColumn(line, class)),
			})
		}
	}

	return refs
}

func location(file string, lineNum int, line string, col int) Location {
	return Location{
		File:   file,
		Line:   lineNum,
		Column: col,
		Text:   strings.TrimSpace(line),
	}
}

func firstTokenOffset(class string) int {
	return len(class) - len(strings.TrimLeft(class, " \t"))
}

// splitArgs splits comma-separated arguments outside parentheses.
func splitArgs(s string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	inString := false

	for _, r := range s {
		switch {
		case r == '"':
			inString = !inString
			current.WriteRune(r)
		case inString:
			current.WriteRune(r)
		case r == '(':
			depth++
			current.WriteRune(r)
		case r == ')':
			depth--
			current.WriteRune(r)
		case r == ',' && depth == 0:
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// findClassColumn locates the 1-based column where the first token of class
// starts within line, or 0 if it cannot be found.
func findClassColumn(line string, class string) int {
	target := class
	if tokens := strings.Fields(class); len(tokens) > 0 {
		target = tokens[0]
	}
	if target == "" {
		return 0
	}

	if attr := strings.Index(line, "class="); attr != -1 {
		if q := strings.IndexAny(line[attr:], `"'`); q != -1 {
			start := attr + q + 1
			value := line[start:]
			if end := strings.IndexAny(value, `"'`); end != -1 {
				value = value[:end]
			}
			if idx := strings.Index(value, target); idx != -1 {
				return start + idx + 1
			}
		}
	}

	if idx := strings.Index(line, `"`+target); idx != -1 {
		return idx + 2
	}

	if idx := strings.Index(line, target); idx != -1 {
		return idx + 1
	}

	return 0
}

// RelativePath returns path relative to the working directory when possible.
func RelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}

	return rel
}
