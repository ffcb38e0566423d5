package main

import (
	"errors"
	"os"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/config"
	"github.com/alnah/go-rnote/internal/dateutil"
)

// Exit codes for the rnote CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0 // Successful run
	ExitGeneral     = 1 // General/unexpected error
	ExitUsage       = 2 // Invalid flags, config, or validation
	ExitIO          = 3 // File not found, permission denied
	ExitBrowser     = 4 // Browser/Chrome errors
	ExitDiagnostics = 5 // Source or theme problems reported by check, themes --check or --strict
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, rnote.ErrBrowserConnect) ||
		errors.Is(err, rnote.ErrPageCreate) ||
		errors.Is(err, rnote.ErrPageLoad) ||
		errors.Is(err, rnote.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Diagnostics (exit 5)
	if errors.Is(err, ErrDiagnostics) ||
		errors.Is(err, ErrStrict) ||
		errors.Is(err, ErrThemeCheck) {
		return ExitDiagnostics
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrInvalidLogLevel) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, rnote.ErrEmptySource) ||
		errors.Is(err, rnote.ErrInvalidDateFormat) ||
		errors.Is(err, rnote.ErrThemeNotFound) ||
		errors.Is(err, rnote.ErrTemplateNotFound) ||
		errors.Is(err, rnote.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
