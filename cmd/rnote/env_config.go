package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-rnote/internal/config"
)

const envPrefix = "RNOTE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // RNOTE_CONFIG: config file name or path
	Theme      string        // RNOTE_THEME: starting theme
	PageSize   string        // RNOTE_PAGE_SIZE: starting page size
	Timeout    time.Duration // RNOTE_TIMEOUT: PDF generation timeout
	Workers    int           // RNOTE_WORKERS: parallel browsers
	OutputDir  string        // RNOTE_OUTPUT_DIR: default output directory
	Addr       string        // RNOTE_ADDR: serve listen address
	LogLevel   string        // RNOTE_LOG_LEVEL: none, normal, debug
}

// knownEnvVars lists valid RNOTE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RNOTE_CONFIG":     true,
	"RNOTE_THEME":      true,
	"RNOTE_PAGE_SIZE":  true,
	"RNOTE_TIMEOUT":    true,
	"RNOTE_WORKERS":    true,
	"RNOTE_OUTPUT_DIR": true,
	"RNOTE_ADDR":       true,
	"RNOTE_LOG_LEVEL":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("RNOTE_CONFIG"),
		Theme:      os.Getenv("RNOTE_THEME"),
		PageSize:   os.Getenv("RNOTE_PAGE_SIZE"),
		OutputDir:  os.Getenv("RNOTE_OUTPUT_DIR"),
		Addr:       os.Getenv("RNOTE_ADDR"),
		LogLevel:   os.Getenv("RNOTE_LOG_LEVEL"),
	}

	if timeout := os.Getenv("RNOTE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("RNOTE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// unknownEnvVars returns the RNOTE_* variables that are not recognized.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// warnUnknownEnvVars logs a warning for each unrecognized RNOTE_* variable.
// Helps catch typos like RNOTE_THEMES instead of RNOTE_THEME.
func warnUnknownEnvVars(log *zap.Logger) {
	for _, name := range unknownEnvVars(os.Environ()) {
		log.Warn("Unknown environment variable (typo?)", zap.String("name", name))
	}
}

// applyEnvConfig applies environment values over the config file.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Document.Theme = env.Theme
	}
	if env.PageSize != "" {
		cfg.Document.Size = env.PageSize
	}
	if env.Timeout > 0 {
		cfg.Render.Timeout = env.Timeout.String()
	}
	if env.Workers > 0 {
		cfg.Render.Workers = env.Workers
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
}
