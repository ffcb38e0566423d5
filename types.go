package rnote

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/compiler"
	"github.com/alnah/go-rnote/internal/style"
)

// Severity classifies a diagnostic.
type Severity int

const (
	// SeverityWarning marks a recoverable problem; a fallback was used.
	SeverityWarning Severity = iota
	// SeverityError marks input that was skipped.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Diagnostic is a problem found while compiling. Line is 1-based; zero means
// the diagnostic is not tied to a source line.
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

// PageStyle is the page style a document ended with. Lengths are in
// centimeters.
type PageStyle struct {
	Theme         string // theme name
	Margin        string // margin preset name
	PageSize      string
	Orientation   string // "portrait" or "landscape"
	Title         string
	Template      string // last template applied
	MarginTop     float64
	MarginLeft    float64
	ContentWidth  float64
	ContentHeight float64
}

// PaperSize returns the sheet dimensions in centimeters, rotated for
// landscape. ok is false for an unknown page size.
func (p PageStyle) PaperSize() (width, height float64, ok bool) {
	d, ok := style.LookupPageSize(p.PageSize)
	if !ok {
		return 0, 0, false
	}
	if p.Orientation == string(style.Landscape) {
		return d.Height, d.Width, true
	}
	return d.Width, d.Height, true
}

// Defaults is the page style applied before the first source line.
// Empty fields keep the built-in defaults (light, normal, letter, portrait).
type Defaults struct {
	Theme       string
	Margin      string
	PageSize    string
	Orientation string
}

// Input contains conversion parameters.
type Input struct {
	Source    string // RNote source text (required)
	SourceDir string // directory relative image paths are resolved against (optional)
	CSS       string // extra CSS appended after the theme (optional)
	HTMLOnly  bool   // skip PDF generation

	// RemoteImagesOnly drops images whose source is not an http, https or
	// data URL. Set it when the source is untrusted.
	RemoteImagesOnly bool
}

// CompileResult is the output of Converter.Compile.
type CompileResult struct {
	HTML        string
	Style       PageStyle
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic has error severity.
func (r *CompileResult) HasErrors() bool {
	return hasErrors(r.Diagnostics)
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	HTML        []byte // final HTML document, theme included
	PDF         []byte // nil when Input.HTMLOnly is set
	Style       PageStyle
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic has error severity.
func (r *ConvertResult) HasErrors() bool {
	return hasErrors(r.Diagnostics)
}

func hasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout          time.Duration
	assetPath        string
	dateFormat       string
	defaults         Defaults
	maxTemplateDepth int
	now              func() time.Time
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("rnote: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithAssetPath loads themes and templates from path, falling back to the
// embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithLogger sets the logger. Nil keeps the no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock sets the clock used for $date.
func WithClock(now func() time.Time) Option {
	return func(c *Converter) {
		c.cfg.now = now
	}
}

// WithDateFormat sets the $date format: tokens (YYYY, MM, DD, ...) or a
// preset name (iso, european, us, long).
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithDefaults sets the page style applied before the first source line.
func WithDefaults(d Defaults) Option {
	return func(c *Converter) {
		c.cfg.defaults = d
	}
}

// WithMaxTemplateDepth bounds nested template expansion.
func WithMaxTemplateDepth(n int) Option {
	return func(c *Converter) {
		c.cfg.maxTemplateDepth = n
	}
}

// toPublicStyle converts the compiler's final state.
func toPublicStyle(s style.State) PageStyle {
	return PageStyle{
		Theme:         s.ThemeName,
		Margin:        s.Margin,
		PageSize:      s.PageSize,
		Orientation:   string(s.Orientation),
		Title:         s.Title,
		Template:      s.Template,
		MarginTop:     s.TopBottom,
		MarginLeft:    s.LeftRight,
		ContentWidth:  s.ContentWidth,
		ContentHeight: s.ContentHeight,
	}
}

func toPublicDiagnostics(diags []compiler.Diagnostic) []Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		sev := SeverityWarning
		if d.Severity == compiler.Error {
			sev = SeverityError
		}
		out[i] = Diagnostic{Line: d.Line, Severity: sev, Message: d.Message, Text: d.Text}
	}
	return out
}
