package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/config"
)

// fixedNow is the clock of every test environment.
var fixedNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

// fakePDF is what fakeConverter renders.
var fakePDF = []byte("%PDF-1.7 fake")

// fakeConverter compiles with a real converter and fakes the PDF step,
// so results carry real HTML, style and diagnostics without a browser.
type fakeConverter struct {
	real       *rnote.Converter
	convertErr error

	mu        sync.Mutex
	calls     int
	lastInput rnote.Input
}

func newFakeConverter(t *testing.T) *fakeConverter {
	t.Helper()
	conv, err := rnote.NewConverter(rnote.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return &fakeConverter{real: conv}
}

func (f *fakeConverter) Convert(ctx context.Context, input rnote.Input) (*rnote.ConvertResult, error) {
	f.mu.Lock()
	f.calls++
	f.lastInput = input
	f.mu.Unlock()

	if f.convertErr != nil {
		return nil, f.convertErr
	}
	htmlOnly := input.HTMLOnly
	input.HTMLOnly = true
	res, err := f.real.Convert(ctx, input)
	if err != nil {
		return nil, err
	}
	if !htmlOnly {
		res.PDF = fakePDF
	}
	return res, nil
}

func (f *fakeConverter) Compile(source string) *rnote.CompileResult {
	return f.real.Compile(source)
}

func (f *fakeConverter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakePool hands out one shared fakeConverter.
type fakePool struct {
	conv       *fakeConverter
	size       int
	acquireErr error

	mu     sync.Mutex
	closed bool
}

func (p *fakePool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return p.conv, nil
}

func (p *fakePool) Release(CLIConverter) {}

func (p *fakePool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

func (p *fakePool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testEnvironment struct {
	*Environment
	stdout *syncBuffer
	stderr *syncBuffer
	pool   *fakePool
}

// newTestEnv returns an environment whose pool renders fake PDFs.
func newTestEnv(t *testing.T) *testEnvironment {
	t.Helper()
	pool := &fakePool{conv: newFakeConverter(t), size: 2}
	te := &testEnvironment{stdout: &syncBuffer{}, stderr: &syncBuffer{}, pool: pool}
	te.Environment = &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: te.stdout,
		Stderr: te.stderr,
		Config: config.DefaultConfig(),
		NewPool: func(*config.Config, *zap.Logger, func() time.Time) (Pool, error) {
			return pool, nil
		},
	}
	return te
}

// withRealPool switches the environment to the production pool.
func (te *testEnvironment) withRealPool() *testEnvironment {
	te.NewPool = newConverterPool
	return te
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

var errFake = errors.New("fake failure")
