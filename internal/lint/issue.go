package lint

// Issue is a single check finding in golangci-lint format.
type Issue struct {
	FromLinter  string   `json:"FromLinter"`  // "variantconfig" or "classconflict"
	Text        string   `json:"Text"`        // `class "px-2" is overridden by "px-4"`
	Severity    string   `json:"Severity"`    // "error", "warning"
	SourceLines []string `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos `json:"Pos"`
}

// IssuePos specifies the exact location of an issue.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based
}

// Severities.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Linter names.
const (
	LinterConfig   = "variantconfig"
	LinterConflict = "classconflict"
)

// Issue texts.
const (
	IssueComponentConfig   = "component %q: %v"
	IssueFragmentConflict  = "component %q %s: class %q is overridden by %q"
	IssueSourceConflict    = "class %q is overridden by %q"
	IssueEmptyComponent    = "component %q defines no classes"
	IssueDefinitionFailure = "%v"
)
