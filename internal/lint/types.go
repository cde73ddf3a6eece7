package lint

import "github.com/yacobolo/variants/merge"

// OutputFormat represents the check output format.
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics only
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues and statistics
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
)

// Config configures a check run.
type Config struct {
	Definitions []string      // Globs of definition files: "**/*.variants.yaml"
	Sources     []string      // Globs of Go/templ files to scan for class strings
	Merger      *merge.Merger // nil uses the built-in Tailwind table
	Strict      bool          // Components without axes are errors

	MaxIssuesPerLinter int  // 0 = unlimited (default)
	MaxSameIssues      int  // 0 = unlimited (default)
	PrintIssuedLines   bool // Show source lines with issues
	PrintLinterName    bool // Show (linter) suffix
	UseColors          bool // Force color output (default: auto-detect)
}

// Result contains check results.
type Result struct {
	Issues []Issue

	DefinitionFiles     int
	SourceFiles         int
	FilesSkipped        int
	ComponentsChecked   int
	FragmentsChecked    int
	ClassStringsChecked int

	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits
}

// FilesScanned is the number of definition and source files read.
func (r *Result) FilesScanned() int {
	return r.DefinitionFiles + r.SourceFiles
}
