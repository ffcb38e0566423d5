package assets

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_CustomWithFallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeAsset(t, tmpDir, "themes", "light.css", "/* custom light */")
	writeAsset(t, tmpDir, "themes", "sepia.css", "/* sepia */")
	writeAsset(t, tmpDir, "templates", "memo.rntp", "size a5\n")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom overrides embedded theme", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTheme("light")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if got != "/* custom light */" {
			t.Errorf("LoadTheme(light) = %q, want custom override", got)
		}
	})

	t.Run("falls back to embedded theme", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTheme("dark")
		if err != nil {
			t.Fatalf("LoadTheme() error = %v", err)
		}
		if got == "" {
			t.Error("LoadTheme(dark) returned empty content")
		}
	})

	t.Run("custom overrides embedded template", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate("memo")
		if err != nil {
			t.Fatalf("LoadTemplate() error = %v", err)
		}
		if got != "size a5\n" {
			t.Errorf("LoadTemplate(memo) = %q, want custom override", got)
		}
	})

	t.Run("falls back to embedded template", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadTemplate("report"); err != nil {
			t.Errorf("LoadTemplate(report) error = %v", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTheme("neon")
		if !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadTheme() error = %v, want ErrThemeNotFound", err)
		}
	})

	t.Run("lists merged names", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.Themes()
		if err != nil {
			t.Fatalf("Themes() error = %v", err)
		}
		if diff := cmp.Diff([]string{"dark", "light", "sepia"}, got); diff != "" {
			t.Errorf("Themes() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestAssetResolver_ValidationErrorsNotFallenBack(t *testing.T) {
	t.Parallel()

	resolver, err := NewAssetResolver(t.TempDir())
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	_, err = resolver.LoadTheme("../secret")
	if !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTheme() error = %v, want ErrInvalidAssetName (no fallback)", err)
	}

	_, err = resolver.LoadTemplate("../secret")
	if !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTemplate() error = %v, want ErrInvalidAssetName (no fallback)", err)
	}
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"ErrThemeNotFound", ErrThemeNotFound, true},
		{"ErrTemplateNotFound", ErrTemplateNotFound, true},
		{"wrapped message only", errors.New("wrap: " + ErrThemeNotFound.Error()), false},
		{"ErrInvalidAssetName", ErrInvalidAssetName, false},
		{"ErrAssetRead", ErrAssetRead, false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
