package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	rnote "github.com/alnah/go-rnote"
	"github.com/alnah/go-rnote/internal/config"
	"github.com/alnah/go-rnote/internal/dateutil"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unexpected", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},

		{"browser connect", rnote.ErrBrowserConnect, ExitBrowser},
		{"wrapped pdf generation", fmt.Errorf("converting to PDF: %w", rnote.ErrPDFGeneration), ExitBrowser},
		{"page load", rnote.ErrPageLoad, ExitBrowser},

		{"check diagnostics", fmt.Errorf("%w: 1 errors", ErrDiagnostics), ExitDiagnostics},
		{"strict", ErrStrict, ExitDiagnostics},
		{"theme check", ErrThemeCheck, ExitDiagnostics},

		{"not exist", os.ErrNotExist, ExitIO},
		{"read source", fmt.Errorf("%w: denied", ErrReadSource), ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},

		{"flags", ErrInvalidFlags, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"log level", config.ErrInvalidLogLevel, ExitUsage},
		{"date format", fmt.Errorf("date.format: %w", dateutil.ErrInvalidDateFormat), ExitUsage},
		{"theme not found", rnote.ErrThemeNotFound, ExitUsage},
		{"asset path", rnote.ErrInvalidAssetPath, ExitUsage},
		{"empty source", rnote.ErrEmptySource, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
