package lint

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Message is a single ESLint finding. Only the presence of messages matters
// for pass/fail bookkeeping; the fields are kept for display.
type Message struct {
	RuleID   string `json:"ruleId"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// FileResult is one record of the ESLint JSON report.
type FileResult struct {
	FilePath     string    `json:"filePath"`
	ErrorCount   int       `json:"errorCount"`
	WarningCount int       `json:"warningCount"`
	Messages     []Message `json:"messages"`
}

// Report is the parsed ESLint JSON report, in the order ESLint wrote it.
type Report []FileResult

// ReadReport parses the JSON report at path.
func ReadReport(path string) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReportParseError{Op: "lint.ReadReport", Path: path, Err: err}
	}
	return ParseReport(path, data)
}

// ParseReport decodes report bytes. path is used only for error messages.
func ParseReport(path string, data []byte) (Report, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &ReportParseError{Op: "lint.ParseReport", Path: path, Err: fmt.Errorf("report is empty")}
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &ReportParseError{Op: "lint.ParseReport", Path: path, Err: err}
	}
	if report == nil {
		// A literal `null` is not a report.
		return nil, &ReportParseError{Op: "lint.ParseReport", Path: path, Err: fmt.Errorf("report is not a list")}
	}
	return report, nil
}

// Totals holds aggregate counts across a report.
type Totals struct {
	Files    int
	Errors   int
	Warnings int
}

// Totals sums error and warning counts over all records.
// An empty report yields zero totals.
func (r Report) Totals() Totals {
	t := Totals{Files: len(r)}
	for _, f := range r {
		t.Errors += f.ErrorCount
		t.Warnings += f.WarningCount
	}
	return t
}

// FailedPaths returns the paths of records with at least one message,
// preserving report order.
func (r Report) FailedPaths() []string {
	paths := []string{}
	for _, f := range r {
		if len(f.Messages) > 0 {
			paths = append(paths, f.FilePath)
		}
	}
	return paths
}

// Summary formats the report for humans, e.g.
// "2 files inspected, 3 errors detected, no warning detected".
func (r Report) Summary() string {
	t := r.Totals()

	var b strings.Builder
	b.WriteString(pluralize(t.Files, "file", false))
	b.WriteString(" inspected, ")
	b.WriteString(pluralize(t.Errors, "error", true))
	b.WriteString(" detected, ")
	b.WriteString(pluralize(t.Warnings, "warning", true))
	b.WriteString(" detected")
	return b.String()
}

// pluralize renders a count and noun. With noForZero a zero count reads
// "no <noun>" and the noun stays singular.
func pluralize(n int, noun string, noForZero bool) string {
	if n == 0 && noForZero {
		return "no " + noun
	}
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
