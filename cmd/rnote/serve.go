package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/config"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second

	// formField is the form field carrying the RNote source.
	formField = "code"
)

// runServe starts the HTTP front end and blocks until the context is canceled.
func runServe(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %q", ErrInvalidFlags, positional[0])
	}
	if err := validateWorkers(flags.render.workers); err != nil {
		return err
	}

	sess, err := openSession(flags.common, env, func(cfg *config.Config) {
		flags.document.applyTo(cfg)
		flags.render.applyTo(cfg)
		if flags.addr != "" {
			cfg.Server.Addr = flags.addr
		}
	})
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, sess.close()) }()

	pool, err := env.NewPool(sess.cfg, sess.log, env.Now)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, pool.Close()) }()

	ln, err := net.Listen("tcp", sess.cfg.Server.ListenAddr())
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	srv := newRenderServer(pool, sess.cfg.Server.SourceLimit(), sess.log)
	return srv.serve(ctx, ln)
}

// renderServer is the HTTP front end: a form page, PDF rendering, JSON
// compilation, and a health probe.
type renderServer struct {
	pool  Pool
	limit int64
	log   *zap.Logger
	newID func() string
}

func newRenderServer(pool Pool, limit int64, log *zap.Logger) *renderServer {
	if log == nil {
		log = zap.NewNop()
	}
	return &renderServer{
		pool:  pool,
		limit: limit,
		log:   log.Named("server"),
		newID: uuid.NewString,
	}
}

func (s *renderServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /render", s.handleRender)
	mux.HandleFunc("POST /compile", s.handleCompile)
	return mux
}

// serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *renderServer) serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(ln)
	}()
	s.log.Info("Listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *renderServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *renderServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "workers": s.pool.Size()})
}

// handleRender converts the posted source to a PDF served inline.
func (s *renderServer) handleRender(w http.ResponseWriter, r *http.Request) {
	id := s.newID()
	log := s.log.With(zap.String("request", id))
	w.Header().Set("X-Request-Id", id)

	source, status, err := s.readSource(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	conv, err := s.pool.Acquire()
	if err != nil {
		log.Error("Acquiring converter", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "no converter available")
		return
	}
	defer s.pool.Release(conv)

	start := time.Now()
	res, err := conv.Convert(r.Context(), rnote.Input{Source: source, RemoteImagesOnly: true})
	if err != nil {
		log.Error("Rendering", zap.Error(err))
		writeError(w, renderStatus(err), "rendering failed")
		return
	}
	log.Info("Rendered",
		zap.String("title", res.Style.Title),
		zap.Int("diagnostics", len(res.Diagnostics)),
		zap.Int("bytes", len(res.PDF)),
		zap.Duration("took", time.Since(start)))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", downloadName(res.Style.Title, id)))
	w.Header().Set("X-Rnote-Diagnostics", strconv.Itoa(len(res.Diagnostics)))
	_, _ = w.Write(res.PDF)
}

// handleCompile returns the compiled HTML, final page style and diagnostics.
func (s *renderServer) handleCompile(w http.ResponseWriter, r *http.Request) {
	id := s.newID()
	w.Header().Set("X-Request-Id", id)

	source, status, err := s.readSource(w, r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	conv, err := s.pool.Acquire()
	if err != nil {
		s.log.Error("Acquiring converter", zap.String("request", id), zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "no converter available")
		return
	}
	defer s.pool.Release(conv)

	writeJSON(w, http.StatusOK, newCompileResponse(conv.Compile(source)))
}

// readSource extracts the form field, bounded by the source limit.
func (s *renderServer) readSource(w http.ResponseWriter, r *http.Request) (string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.limit)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", http.StatusRequestEntityTooLarge, fmt.Errorf("source exceeds %d bytes", s.limit)
		}
		return "", http.StatusBadRequest, fmt.Errorf("invalid form: %v", err)
	}
	source := r.PostFormValue(formField)
	if strings.TrimSpace(source) == "" {
		return "", http.StatusBadRequest, fmt.Errorf("%s is required", formField)
	}
	return source, http.StatusOK, nil
}

// renderStatus maps a conversion error to an HTTP status.
func renderStatus(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, rnote.ErrBrowserConnect):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// downloadName derives the PDF file name from the document title, falling
// back to the request id.
func downloadName(title, id string) string {
	name := slug.Make(title)
	if name == "" {
		name = "rnote-" + id
	}
	return name + pdfExt
}

type diagnosticJSON struct {
	Line     int    `json:"line"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Text     string `json:"text,omitempty"`
}

type styleJSON struct {
	Theme       string  `json:"theme"`
	Margin      string  `json:"margin"`
	PageSize    string  `json:"pageSize"`
	Orientation string  `json:"orientation"`
	Title       string  `json:"title,omitempty"`
	Template    string  `json:"template,omitempty"`
	WidthCM     float64 `json:"contentWidth"`
	HeightCM    float64 `json:"contentHeight"`
}

type compileResponse struct {
	HTML        string           `json:"html"`
	Style       styleJSON        `json:"style"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
}

func newCompileResponse(res *rnote.CompileResult) compileResponse {
	out := compileResponse{
		HTML: res.HTML,
		Style: styleJSON{
			Theme:       res.Style.Theme,
			Margin:      res.Style.Margin,
			PageSize:    res.Style.PageSize,
			Orientation: res.Style.Orientation,
			Title:       res.Style.Title,
			Template:    res.Style.Template,
			WidthCM:     res.Style.ContentWidth,
			HeightCM:    res.Style.ContentHeight,
		},
		Diagnostics: make([]diagnosticJSON, 0, len(res.Diagnostics)),
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, diagnosticJSON{
			Line:     d.Line,
			Severity: d.Severity.String(),
			Message:  d.Message,
			Text:     d.Text,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

const indexPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>rnote</title></head>
<body>
<form method="post" action="/render" target="pdf">
<textarea name="code" rows="30" cols="80">.pp title Untitled
# Untitled
= Start writing here.</textarea>
<p><button type="submit">Render</button></p>
</form>
<iframe name="pdf" width="100%" height="800"></iframe>
</body>
</html>
`
