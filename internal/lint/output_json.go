package lint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput is the JSON export schema.
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
}

// JSONSummary contains high-level issue counts.
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains what the check looked at.
type JSONStats struct {
	DefinitionFiles int `json:"definition_files"`
	SourceFiles     int `json:"source_files"`
	FilesSkipped    int `json:"files_skipped"`
	Components      int `json:"components"`
	Fragments       int `json:"fragments"`
	ClassStrings    int `json:"class_strings"`
}

// JSONIssue is a single issue.
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"`
}

// WriteJSON writes result as indented JSON.
func WriteJSON(w io.Writer, result *Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result, time.Now()))
}

func buildJSONOutput(result *Result, now time.Time) JSONOutput {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: now.Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned(),
		},
		Stats: JSONStats{
			DefinitionFiles: result.DefinitionFiles,
			SourceFiles:     result.SourceFiles,
			FilesSkipped:    result.FilesSkipped,
			Components:      result.ComponentsChecked,
			Fragments:       result.FragmentsChecked,
			ClassStrings:    result.ClassStringsChecked,
		},
		Issues: issues,
	}
}
