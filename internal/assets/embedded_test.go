package assets

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedLoader_LoadTheme(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name        string
		themeName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads light theme",
			themeName:   "light",
			wantContain: "font-family",
		},
		{
			name:        "loads dark theme",
			themeName:   "dark",
			wantContain: "background",
		},
		{
			name:      "returns ErrThemeNotFound for nonexistent",
			themeName: "nonexistent-theme-xyz",
			wantErr:   ErrThemeNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			themeName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			themeName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := loader.LoadTheme(tt.themeName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTheme(%q) error = %v, want %v", tt.themeName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTheme(%q) unexpected error: %v", tt.themeName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadTheme(%q) missing %q", tt.themeName, tt.wantContain)
			}
		})
	}
}

func TestEmbeddedLoader_LoadTemplate(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	t.Run("loads report template", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate("report")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, "size a4") {
			t.Errorf("LoadTemplate(report) = %q, want size directive", got)
		}
	})

	t.Run("poster nests report", func(t *testing.T) {
		t.Parallel()

		got, err := loader.LoadTemplate("poster")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if !strings.Contains(got, "template report") {
			t.Errorf("LoadTemplate(poster) = %q, want nested template reference", got)
		}
	})

	t.Run("returns ErrTemplateNotFound for nonexistent", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("nonexistent")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("LoadTemplate() error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("returns ErrInvalidAssetName for dotted name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.LoadTemplate("report.rntp")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestEmbeddedLoader_List(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	themes, err := loader.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}
	if diff := cmp.Diff([]string{"dark", "light"}, themes); diff != "" {
		t.Errorf("Themes() mismatch (-want +got):\n%s", diff)
	}

	templates, err := loader.Templates()
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	if diff := cmp.Diff([]string{"memo", "poster", "report"}, templates); diff != "" {
		t.Errorf("Templates() mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedThemes_ParseCleanly(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()
	names, err := loader.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}

	for _, name := range names {
		css, err := loader.LoadTheme(name)
		if err != nil {
			t.Fatalf("LoadTheme(%q) error = %v", name, err)
		}
		report := InspectTheme(css)
		if !report.OK() {
			t.Errorf("theme %q has %d grammar errors, first: %v", name, report.Errors, report.FirstErr)
		}
		if report.Rulesets == 0 {
			t.Errorf("theme %q has no rulesets", name)
		}
	}
}
