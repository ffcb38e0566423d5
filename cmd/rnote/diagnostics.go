package main

import (
	"fmt"
	"io"

	rnote "github.com/alnah/go-rnote"
)

// displayPath names an input in messages.
func displayPath(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}

// formatDiagnostic renders d as "file:line: severity: message", dropping
// the line for diagnostics not tied to one.
func formatDiagnostic(path string, d rnote.Diagnostic) string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s: %s", path, d.Line, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", path, d.Severity, d.Message)
}

// printDiagnostics writes diags to w. Quiet keeps errors only.
func printDiagnostics(w io.Writer, path string, diags []rnote.Diagnostic, quiet bool) {
	for _, d := range diags {
		if quiet && d.Severity != rnote.SeverityError {
			continue
		}
		fmt.Fprintln(w, formatDiagnostic(path, d))
	}
}

// countSeverities tallies errors and warnings.
func countSeverities(diags []rnote.Diagnostic) (errs, warnings int) {
	for _, d := range diags {
		if d.Severity == rnote.SeverityError {
			errs++
		} else {
			warnings++
		}
	}
	return errs, warnings
}
