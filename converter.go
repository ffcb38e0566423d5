package rnote

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/assets"
	"github.com/alnah/go-rnote/internal/compiler"
	"github.com/alnah/go-rnote/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.ThemeInjector = (*pipeline.ThemeInjection)(nil)
	_ compiler.ThemeLoader   = (*internalAssetLoader)(nil)
	_ compiler.ThemeLoader   = (*assets.AssetResolver)(nil)
)

// Converter orchestrates the RNote-to-PDF pipeline.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
//
// Compile and Convert may be called from several goroutines; PDF rendering
// is serialized on the converter's browser. Use ConverterPool for parallelism.
type Converter struct {
	cfg               converterConfig
	log               *zap.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader // from WithAssetLoader
	compiler          *compiler.Compiler
	themeInjector     pipeline.ThemeInjector
	pdfConverter      pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithAssetPath, WithDefaults).
// Returns error if the asset path or date format is invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:           converterConfig{timeout: defaultTimeout},
		log:           zap.NewNop(),
		assetLoader:   assets.NewEmbeddedLoader(),
		themeInjector: &pipeline.ThemeInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if c.publicAssetLoader != nil {
		c.assetLoader = &internalAssetLoader{pub: c.publicAssetLoader}
	}

	compilerOpts := []compiler.Option{
		compiler.WithLogger(c.log),
		compiler.WithDateFormat(c.cfg.dateFormat),
		compiler.WithDefaults(compiler.Defaults(c.cfg.defaults)),
		compiler.WithMaxTemplateDepth(c.cfg.maxTemplateDepth),
	}
	if c.cfg.now != nil {
		compilerOpts = append(compilerOpts, compiler.WithClock(c.cfg.now))
	}
	comp, err := compiler.New(c.assetLoader, c.assetLoader, compilerOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	c.compiler = comp
	c.log = c.log.Named("converter")

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.log)
	}

	return c, nil
}

// Compile compiles source into an HTML document without the theme CSS and
// without touching the browser. Problems are reported as diagnostics.
func (c *Converter) Compile(source string) *CompileResult {
	res := c.compiler.CompileSource(source)
	return &CompileResult{
		HTML:        res.HTML,
		Style:       toPublicStyle(res.Style),
		Diagnostics: toPublicDiagnostics(res.Diagnostics),
	}
}

// Convert runs the full pipeline and returns the result containing HTML and PDF.
// The context is used for cancellation and timeout.
// If input.HTMLOnly is true, PDF generation is skipped.
// Diagnostics never fail a conversion; check ConvertResult.HasErrors.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if input.Source == "" {
		return nil, ErrEmptySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	compiled := c.compiler.CompileSource(input.Source)
	for _, d := range compiled.Diagnostics {
		c.log.Debug("Diagnostic", zap.Int("line", d.Line), zap.Stringer("severity", d.Severity),
			zap.String("message", d.Message))
	}

	// Theme first, caller CSS last so it can override.
	css := compiled.Style.Theme
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	htmlContent := c.themeInjector.InjectTheme(ctx, compiled.HTML, css)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	diagnostics := toPublicDiagnostics(compiled.Diagnostics)
	if input.RemoteImagesOnly {
		var removed []string
		htmlContent, removed, err = pipeline.RestrictImageSources(htmlContent)
		if err != nil {
			return nil, fmt.Errorf("restricting image sources: %w", err)
		}
		for _, src := range removed {
			c.log.Warn("Blocked image source", zap.String("src", src))
			diagnostics = append(diagnostics, Diagnostic{
				Severity: SeverityWarning,
				Message:  "image source not allowed, use an http, https or data URL",
				Text:     src,
			})
		}
	}

	res := &ConvertResult{
		HTML:        []byte(htmlContent),
		Style:       toPublicStyle(compiled.Style),
		Diagnostics: diagnostics,
	}

	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, newPDFOptions(res.Style))
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	c.log.Debug("Rendered PDF", zap.Int("bytes", len(pdfBytes)),
		zap.String("size", res.Style.PageSize), zap.String("orientation", res.Style.Orientation))

	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
