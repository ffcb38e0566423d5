package rnote

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/fileutil"
	"github.com/alnah/go-rnote/internal/process"
)

// pdfConverter abstracts HTML to PDF conversion to allow different backends.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// Compile-time interface checks
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

const cmPerInch = 2.54

// pdfOptions holds the sheet and margins in inches.
type pdfOptions struct {
	PaperWidth   float64
	PaperHeight  float64
	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64
}

// newPDFOptions derives print options from the final page style. Chrome does
// not honor @frame, so the frame offsets become print margins.
func newPDFOptions(s PageStyle) *pdfOptions {
	w, h, ok := s.PaperSize()
	if !ok {
		letter := PageStyle{PageSize: "letter", Orientation: s.Orientation}
		w, h, _ = letter.PaperSize()
	}
	return &pdfOptions{
		PaperWidth:   w / cmPerInch,
		PaperHeight:  h / cmPerInch,
		MarginTop:    s.MarginTop / cmPerInch,
		MarginBottom: s.MarginTop / cmPerInch,
		MarginLeft:   s.MarginLeft / cmPerInch,
		MarginRight:  s.MarginLeft / cmPerInch,
	}
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	log      *zap.Logger
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration, log *zap.Logger) *rodRenderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &rodRenderer{timeout: timeout, log: log}
}

// sandboxDisabled reports whether Chrome must run without its sandbox:
// CI runners, containers with a pre-installed browser, or an explicit opt-out.
func sandboxDisabled() bool {
	return os.Getenv("CI") == "true" ||
		os.Getenv("ROD_NO_SANDBOX") != "" ||
		os.Getenv("ROD_BROWSER_BIN") != ""
}

// ensureBrowser lazily connects to the browser. Caller holds r.mu.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if sandboxDisabled() {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	r.log.Debug("Browser started", zap.Int("pid", l.PID()))
	return nil
}

// Close releases browser resources. Chrome helper processes are killed
// with the whole process group.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = multierr.Append(err, r.browser.Close())
		r.browser = nil
	}
	if r.launcher != nil {
		pid := r.launcher.PID()
		grouped := process.KillProcessGroup(pid)
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
		r.log.Debug("Browser stopped", zap.Int("pid", pid), zap.Bool("group", grouped))
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions constructs proto.PagePrintToPDF. Nil opts print a
// portrait letter sheet with normal margins.
func buildPrintOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	if opts == nil {
		opts = newPDFOptions(PageStyle{PageSize: "letter", MarginTop: 2, MarginLeft: 2})
	}
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(opts.PaperWidth),
		PaperHeight:     floatPtr(opts.PaperHeight),
		MarginTop:       floatPtr(opts.MarginTop),
		MarginBottom:    floatPtr(opts.MarginBottom),
		MarginLeft:      floatPtr(opts.MarginLeft),
		MarginRight:     floatPtr(opts.MarginRight),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF using headless Chrome via go-rod.
type rodConverter struct {
	renderer pdfRenderer
}

// newRodConverter creates a rodConverter with production renderer.
func newRodConverter(timeout time.Duration, log *zap.Logger) *rodConverter {
	return &rodConverter{
		renderer: newRodRenderer(timeout, log),
	}
}

// ToPDF writes the document to a temp file and renders it, so relative
// file:// URLs resolve the same way they would for a saved page.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
