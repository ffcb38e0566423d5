package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-rnote/internal/config"
)

// Uses t.Setenv, so it does not run in parallel.
func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("RNOTE_CONFIG", "ci")
	t.Setenv("RNOTE_THEME", "dark")
	t.Setenv("RNOTE_PAGE_SIZE", "a4")
	t.Setenv("RNOTE_TIMEOUT", "45s")
	t.Setenv("RNOTE_WORKERS", "3")
	t.Setenv("RNOTE_OUTPUT_DIR", "build")
	t.Setenv("RNOTE_ADDR", ":9000")
	t.Setenv("RNOTE_LOG_LEVEL", "debug")

	want := &envConfig{
		ConfigPath: "ci",
		Theme:      "dark",
		PageSize:   "a4",
		Timeout:    45 * time.Second,
		Workers:    3,
		OutputDir:  "build",
		Addr:       ":9000",
		LogLevel:   "debug",
	}
	if diff := cmp.Diff(want, loadEnvConfig()); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

// Uses t.Setenv, so it does not run in parallel.
func TestLoadEnvConfig_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("RNOTE_TIMEOUT", "soon")
	t.Setenv("RNOTE_WORKERS", "-2")

	got := loadEnvConfig()
	if got.Timeout != 0 || got.Workers != 0 {
		t.Errorf("Timeout = %v, Workers = %d, want zero values", got.Timeout, got.Workers)
	}
}

func TestUnknownEnvVars(t *testing.T) {
	t.Parallel()

	environ := []string{"HOME=/root", "RNOTE_THEME=dark", "RNOTE_THEMES=dark", "RNOTE_WORKER=2", "XRNOTE_X=1"}
	want := []string{"RNOTE_THEMES", "RNOTE_WORKER"}
	if diff := cmp.Diff(want, unknownEnvVars(environ)); diff != "" {
		t.Errorf("unknownEnvVars() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Document.Theme = "light"
	cfg.Document.Margin = "wide"

	applyEnvConfig(&envConfig{
		Theme:    "dark",
		Timeout:  time.Minute,
		Workers:  4,
		Addr:     ":9000",
		LogLevel: "none",
	}, cfg)

	want := config.DefaultConfig()
	want.Document.Theme = "dark"
	want.Document.Margin = "wide"
	want.Render.Timeout = "1m0s"
	want.Render.Workers = 4
	want.Server.Addr = ":9000"
	want.Logging.Level = "none"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("applyEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}
