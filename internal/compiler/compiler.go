// Package compiler turns RNote source lines into an HTML document.
//
// Each line is classified by its prefix and handed to one handler of an
// ordered dispatch table; a handler may consume the lines that follow it
// (lists and tables). Problems never stop compilation: they are collected
// as diagnostics and the offending input is skipped or replaced by a
// fallback.
//
//	.pp <command> [args]   preprocessor directive (theme, margin, size, ...)
//	$<command> [args]      insert (br, hr, date, wi, li) or $table ... $endtable
//	# / @ / ! <text>       headings of level 1 to 3
//	-<text>                bullet item, depth = number of leading dashes
//	= <text>               paragraph
//	// <text>              comment
package compiler

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/assets"
	"github.com/alnah/go-rnote/internal/htmldoc"
	"github.com/alnah/go-rnote/internal/inline"
	"github.com/alnah/go-rnote/internal/style"
)

// DefaultMaxTemplateDepth bounds nested template expansion.
const DefaultMaxTemplateDepth = 8

// TemplateLoader returns the raw text of a named preprocessor template.
type TemplateLoader interface {
	LoadTemplate(name string) (string, error)
}

// ThemeLoader returns the CSS of a named theme.
type ThemeLoader = style.ThemeLoader

// Defaults are applied before the first source line. Empty fields keep the
// built-in defaults (light theme, normal margins, letter, portrait).
type Defaults struct {
	Theme       string
	Margin      string
	PageSize    string
	Orientation string
}

// Result is the output of one compilation.
type Result struct {
	HTML        string
	Style       style.State
	Diagnostics []Diagnostic
}

// HasErrors reports whether any diagnostic has Error severity.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Compiler compiles source lines. It holds configuration only; every call to
// Compile works on private state, so one Compiler may be shared by goroutines.
type Compiler struct {
	templates  TemplateLoader
	themes     ThemeLoader
	log        *zap.Logger
	now        func() time.Time
	dateFormat string
	defaults   Defaults
	maxDepth   int
	formatter  *inline.Formatter
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger. Dispatch decisions are logged at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.log = log
		}
	}
}

// WithClock sets the clock used for $date.
func WithClock(now func() time.Time) Option {
	return func(c *Compiler) {
		if now != nil {
			c.now = now
		}
	}
}

// WithDateFormat sets the $date format (dateutil tokens or preset name).
func WithDateFormat(format string) Option {
	return func(c *Compiler) {
		c.dateFormat = format
	}
}

// WithDefaults sets the style applied before the first line.
func WithDefaults(d Defaults) Option {
	return func(c *Compiler) {
		c.defaults = d
	}
}

// WithMaxTemplateDepth bounds nested template expansion.
func WithMaxTemplateDepth(n int) Option {
	return func(c *Compiler) {
		if n > 0 {
			c.maxDepth = n
		}
	}
}

// New creates a Compiler. Returns an error if the date format is invalid.
func New(templates TemplateLoader, themes ThemeLoader, opts ...Option) (*Compiler, error) {
	c := &Compiler{
		templates: templates,
		themes:    themes,
		log:       zap.NewNop(),
		now:       time.Now,
		maxDepth:  DefaultMaxTemplateDepth,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.Named("compiler")

	f, err := inline.NewFormatter(c.now, c.dateFormat)
	if err != nil {
		return nil, fmt.Errorf("configuring date format: %w", err)
	}
	c.formatter = f
	return c, nil
}

// SplitLines splits source text into lines, accepting \n and \r\n endings.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// CompileSource compiles source text.
func (c *Compiler) CompileSource(source string) *Result {
	return c.Compile(SplitLines(source))
}

// Compile compiles lines into an HTML document, the final style, and the
// diagnostics collected along the way.
func (c *Compiler) Compile(lines []string) *Result {
	r := c.newRun(lines)
	r.applyDefaults()

	for r.pos < len(r.lines) {
		r.pos += r.step()
	}

	c.log.Debug("Compiled document",
		zap.Int("lines", len(lines)),
		zap.Int("diagnostics", len(r.diags)),
		zap.String("size", r.style.PageSize),
		zap.String("orientation", string(r.style.Orientation)))

	return &Result{
		HTML:        r.doc.String(),
		Style:       *r.style,
		Diagnostics: r.diags,
	}
}

// run is the mutable state of one compilation.
type run struct {
	c         *Compiler
	lines     []string
	pos       int // index of the line being dispatched
	style     *style.State
	doc       *htmldoc.Document
	diags     []Diagnostic
	templates []string // expansion stack, innermost last
}

func (c *Compiler) newRun(lines []string) *run {
	r := &run{c: c, lines: lines}

	themeName := assets.DefaultThemeName
	css, err := c.themes.LoadTheme(themeName)
	if err != nil {
		r.addf(0, Warning, "", "default theme %q unavailable: %v", themeName, err)
	}
	r.style = style.New(themeName, css)
	r.doc = htmldoc.New(r.frame())
	return r
}

func (r *run) applyDefaults() {
	d := r.c.defaults
	if d.Theme != "" {
		if err := r.style.SetTheme(r.c.themes, d.Theme); err != nil {
			r.addf(0, Warning, "", "%v", err)
		}
	}
	_, err := r.style.Apply(style.Patch{PageSize: d.PageSize, Orientation: d.Orientation, Margin: d.Margin})
	r.fallbackWarnings(0, "", err)
	r.doc.SetPageFrame(r.frame())
}

// step dispatches the line under the cursor and returns how many lines
// were consumed.
func (r *run) step() int {
	raw := r.lines[r.pos]
	line := strings.TrimSpace(raw)
	for _, rl := range rules {
		if rl.match(line) {
			r.c.log.Debug("Dispatch", zap.Int("line", r.lineNo()), zap.String("rule", rl.name))
			if n := rl.handle(r, line); n > 0 {
				return n
			}
			return 1
		}
	}
	return 1
}

// lineNo is the 1-based number of the line under the cursor.
func (r *run) lineNo() int {
	return r.pos + 1
}

func (r *run) frame() htmldoc.PageFrame {
	s := r.style
	return htmldoc.PageFrame{
		Size:        s.PageSize,
		Orientation: string(s.Orientation),
		Top:         s.TopBottom,
		Left:        s.LeftRight,
		Width:       s.ContentWidth,
		Height:      s.ContentHeight,
	}
}

// format applies inline markup and records its warnings against line.
func (r *run) format(line int, text string) string {
	out, warnings := r.c.formatter.Format(text)
	for _, w := range warnings {
		r.add(line, Warning, w, text)
	}
	return out
}

func (r *run) add(line int, sev Severity, msg, text string) {
	if n := len(r.templates); n > 0 {
		msg = fmt.Sprintf("template %q: %s", r.templates[n-1], msg)
	}
	d := Diagnostic{Line: line, Severity: sev, Message: msg, Text: text}
	r.c.log.Debug("Diagnostic", zap.Stringer("diagnostic", d))
	r.diags = append(r.diags, d)
}

func (r *run) addf(line int, sev Severity, text, format string, args ...any) {
	r.add(line, sev, fmt.Sprintf(format, args...), text)
}
