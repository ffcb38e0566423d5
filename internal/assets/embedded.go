package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

//go:embed themes/*.css
var themes embed.FS

//go:embed templates/*.rntp
var templates embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a CSS theme from embedded assets by name.
func (e *EmbeddedLoader) LoadTheme(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := themes.ReadFile(themesDir + "/" + name + themeExtension)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	return string(content), nil
}

// LoadTemplate loads a preprocessor template from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile(templatesDir + "/" + name + templateExtension)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// Themes lists the embedded theme names.
func (e *EmbeddedLoader) Themes() ([]string, error) {
	return listNames(themes, themesDir, themeExtension)
}

// Templates lists the embedded template names.
func (e *EmbeddedLoader) Templates() ([]string, error) {
	return listNames(templates, templatesDir, templateExtension)
}

// listNames returns the base names of files in dir having ext, naturally sorted.
func listNames(fsys fs.FS, dir, ext string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetRead, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if ValidateAssetName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names, nil
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*EmbeddedLoader)(nil)
	_ Lister      = (*EmbeddedLoader)(nil)
)
