package compiler

import "fmt"

// Severity classifies a diagnostic.
type Severity int

const (
	// Warning marks a recoverable problem; output was produced with a fallback.
	Warning Severity = iota
	// Error marks input that was skipped.
	Error
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a problem found while compiling. Line is 1-based; zero means
// the diagnostic is not tied to a source line (compiler defaults, for example).
type Diagnostic struct {
	Line     int
	Severity Severity
	Message  string
	Text     string // offending source text, if any
}

func (d Diagnostic) String() string {
	loc := "-"
	if d.Line > 0 {
		loc = fmt.Sprintf("line %d", d.Line)
	}
	if d.Text == "" {
		return fmt.Sprintf("%s: %s: %s", loc, d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s: %q", loc, d.Severity, d.Message, d.Text)
}
