package lint

import (
	"fmt"
	"io"
)

// DetermineOutputFormat maps the --output-format flag to a format. Unknown
// or empty values fall back to OutputIssues.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	if quiet {
		return OutputIssues
	}

	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// WriteOutput writes result in format.
func WriteOutput(w io.Writer, result *Result, format OutputFormat, cfg Config) error {
	switch format {
	case OutputSummary:
		r := NewReporter(w, cfg)
		r.PrintStatistics(*result)

	case OutputFull:
		r := NewReporter(w, cfg)
		r.PrintIssues(result.Issues)
		r.PrintSummary(*result)
		r.PrintStatistics(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}

	default:
		r := NewReporter(w, cfg)
		r.PrintIssues(result.Issues)
		r.PrintSummary(*result)
	}
	return nil
}
