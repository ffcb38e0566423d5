package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-rnote/internal/config"
)

// ErrInvalidFlags wraps flag parsing failures.
var ErrInvalidFlags = errors.New("invalid flags")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds the starting page style and asset flags.
type documentFlags struct {
	theme       string
	size        string
	margin      string
	orientation string
	dateFormat  string
	assetPath   string
}

// renderFlags holds rendering resource flags.
type renderFlags struct {
	workers int
	timeout string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	document documentFlags
	render   renderFlags
	output   string
	css      string
	html     bool
	htmlOnly bool
	strict   bool
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common   commonFlags
	document documentFlags
	strict   bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common   commonFlags
	document documentFlags
	render   renderFlags
	addr     string
}

// themesFlags holds flags for the themes command.
type themesFlags struct {
	common    commonFlags
	assetPath string
	check     bool
}

// configFlags holds flags for the config command.
type configFlags struct {
	common   commonFlags
	document documentFlags
	render   renderFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addDocumentFlags adds page style and asset flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.theme, "theme", "", "starting theme name")
	fs.StringVar(&f.size, "size", "", "starting page size: letter, a4, a5, legal")
	fs.StringVar(&f.margin, "margin", "", "starting margin preset: normal, narrow, moderate, wide")
	fs.StringVar(&f.orientation, "orientation", "", "starting orientation: portrait, landscape")
	fs.StringVar(&f.dateFormat, "date-format", "", "$date format: tokens or iso, european, us, long")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with themes/ and templates/ overrides")
}

// addRenderFlags adds rendering resource flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel browsers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
}

// applyTo overrides config values with the flags that were set.
func (f documentFlags) applyTo(cfg *config.Config) {
	if f.theme != "" {
		cfg.Document.Theme = f.theme
	}
	if f.size != "" {
		cfg.Document.Size = f.size
	}
	if f.margin != "" {
		cfg.Document.Margin = f.margin
	}
	if f.orientation != "" {
		cfg.Document.Orientation = f.orientation
	}
	if f.dateFormat != "" {
		cfg.Date.Format = f.dateFormat
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

func (f renderFlags) applyTo(cfg *config.Config) {
	if f.workers > 0 {
		cfg.Render.Workers = f.workers
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse and wraps failures so they map to ExitUsage.
// flag.ErrHelp is returned unwrapped.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}
	return fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, w io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newFlagSet("convert", printConvertUsage, w)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the theme")
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	fs.BoolVar(&f.strict, "strict", false, "fail documents with error diagnostics")
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newFlagSet("check", printCheckUsage, w)

	fs.BoolVar(&f.strict, "strict", false, "treat warnings as failures")
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", printServeUsage, w)

	fs.StringVar(&f.addr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string, w io.Writer) (*themesFlags, []string, error) {
	f := &themesFlags{}
	fs := newFlagSet("themes", printThemesUsage, w)

	fs.StringVar(&f.assetPath, "asset-path", "", "directory with themes/ and templates/ overrides")
	fs.BoolVar(&f.check, "check", false, "check theme CSS grammar")
	addCommonFlags(fs, &f.common)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string, w io.Writer) (*configFlags, []string, error) {
	f := &configFlags{}
	fs := newFlagSet("config", printConfigUsage, w)

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addRenderFlags(fs, &f.render)

	rest, err := parse(fs, args)
	return f, rest, err
}
