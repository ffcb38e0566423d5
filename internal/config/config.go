package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-rnote/internal/assets"
	"github.com/alnah/go-rnote/internal/dateutil"
	"github.com/alnah/go-rnote/internal/fileutil"
	"github.com/alnah/go-rnote/internal/style"
	"github.com/alnah/go-rnote/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxNameLength        = 64 // theme, margin preset, page size
	MaxOrientationLength = 10
	MaxAddrLength        = 256
	MaxDurationLength    = 20
)

// appDir is the directory name under the user config dir.
const appDir = "go-rnote"

// Defaults for render and server settings.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultAddr           = "127.0.0.1:8080"
	DefaultMaxSourceBytes = 1 << 20
)

// Config holds all configuration for document generation.
type Config struct {
	Assets   AssetsConfig   `yaml:"assets"`
	Document DocumentConfig `yaml:"document"`
	Date     DateConfig     `yaml:"date"`
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DocumentConfig is the page style applied before the first source line.
// Empty fields keep the compiler defaults.
type DocumentConfig struct {
	Theme       string `yaml:"theme"`
	Margin      string `yaml:"margin"`      // normal, narrow, moderate, wide
	Size        string `yaml:"size"`        // letter, a4, legal, ...
	Orientation string `yaml:"orientation"` // portrait, landscape or a synonym
}

// DateConfig defines how $date is rendered.
type DateConfig struct {
	Format string `yaml:"format"` // dateutil tokens or preset name (default: YYYY-MM-DD)
}

// RenderConfig defines PDF rendering options.
type RenderConfig struct {
	Timeout string `yaml:"timeout"` // Go duration (default: 30s)
	Workers int    `yaml:"workers"` // 0 = auto
}

// ServerConfig defines the HTTP front end.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxSourceBytes int64  `yaml:"maxSourceBytes"`
}

// TimeoutDuration returns the parsed render timeout, or DefaultTimeout when unset.
// Validate guarantees the value parses.
func (r RenderConfig) TimeoutDuration() time.Duration {
	if r.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(r.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// ListenAddr returns the configured address or DefaultAddr.
func (s ServerConfig) ListenAddr() string {
	if s.Addr == "" {
		return DefaultAddr
	}
	return s.Addr
}

// SourceLimit returns the request body limit or DefaultMaxSourceBytes.
func (s ServerConfig) SourceLimit() int64 {
	if s.MaxSourceBytes <= 0 {
		return DefaultMaxSourceBytes
	}
	return s.MaxSourceBytes
}

// Validate checks field lengths and enumerated values. Called automatically
// by LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	d := c.Document
	if d.Theme != "" {
		if err := assets.ValidateAssetName(d.Theme); err != nil {
			return fmt.Errorf("document.theme: %w", err)
		}
	}
	if err := validateFieldLength("document.margin", d.Margin, MaxNameLength); err != nil {
		return err
	}
	if _, ok := style.LookupMargin(d.Margin); d.Margin != "" && !ok {
		return fmt.Errorf("%w: document.margin %q (must be one of %s)",
			ErrInvalidValue, d.Margin, strings.Join(style.MarginPresets(), ", "))
	}
	if err := validateFieldLength("document.size", d.Size, MaxNameLength); err != nil {
		return err
	}
	if _, ok := style.LookupPageSize(d.Size); d.Size != "" && !ok {
		return fmt.Errorf("%w: document.size %q (must be one of %s)",
			ErrInvalidValue, d.Size, strings.Join(style.PageSizes(), ", "))
	}
	if err := validateFieldLength("document.orientation", d.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if _, ok := style.ParseOrientation(d.Orientation); d.Orientation != "" && !ok {
		return fmt.Errorf("%w: document.orientation %q", ErrInvalidValue, d.Orientation)
	}

	if _, err := dateutil.Layout(c.Date.Format); err != nil {
		return fmt.Errorf("date.format: %w", err)
	}

	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if c.Render.Timeout != "" {
		t, err := time.ParseDuration(c.Render.Timeout)
		if err != nil || t <= 0 {
			return fmt.Errorf("%w: render.timeout %q (must be a positive duration such as 30s)", ErrInvalidValue, c.Render.Timeout)
		}
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("%w: render.workers must not be negative, got %d", ErrInvalidValue, c.Render.Workers)
	}

	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.MaxSourceBytes < 0 {
		return fmt.Errorf("%w: server.maxSourceBytes must not be negative, got %d", ErrInvalidValue, c.Server.MaxSourceBytes)
	}

	return c.Logging.validate()
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that keeps every compiler default.
func DefaultConfig() *Config {
	return &Config{
		Date:    DateConfig{Format: dateutil.DefaultDateFormat},
		Render:  RenderConfig{Timeout: DefaultTimeout.String()},
		Server:  ServerConfig{Addr: DefaultAddr, MaxSourceBytes: DefaultMaxSourceBytes},
		Logging: LoggingConfig{Level: LevelNormal},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths returns the files LoadConfig tries for a config name, in order:
// ./name.yaml, ./name.yml, then the same names under the user config dir.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
