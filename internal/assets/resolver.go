package assets

import (
	"errors"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the asset is not found in the custom location.
type AssetResolver struct {
	custom   *FilesystemLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a CSS theme, trying the custom loader first if available.
func (r *AssetResolver) LoadTheme(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadTheme(name)
	})
}

// LoadTemplate loads a preprocessor template, trying the custom loader first if available.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.loadWithFallback(func(loader AssetLoader) (string, error) {
		return loader.LoadTemplate(name)
	})
}

// Themes lists custom and embedded themes, deduplicated and naturally sorted.
func (r *AssetResolver) Themes() ([]string, error) {
	return r.merge(func(l Lister) ([]string, error) { return l.Themes() })
}

// Templates lists custom and embedded templates, deduplicated and naturally sorted.
func (r *AssetResolver) Templates() ([]string, error) {
	return r.merge(func(l Lister) ([]string, error) { return l.Templates() })
}

// loadWithFallback implements the custom-first, fallback-to-embedded logic.
func (r *AssetResolver) loadWithFallback(loadFn func(AssetLoader) (string, error)) (string, error) {
	if r.custom == nil {
		return loadFn(r.embedded)
	}

	content, err := loadFn(r.custom)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFoundError(err) {
		return "", err
	}

	return loadFn(r.embedded)
}

func (r *AssetResolver) merge(listFn func(Lister) ([]string, error)) ([]string, error) {
	listers := []Lister{r.embedded}
	if r.custom != nil {
		listers = append(listers, r.custom)
	}

	seen := make(map[string]bool)
	var names []string
	var errs error
	for _, l := range listers {
		got, err := listFn(l)
		errs = multierr.Append(errs, err)
		for _, name := range got {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Sort(natural.StringSlice(names))
	return names, errs
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrThemeNotFound) ||
		errors.Is(err, ErrTemplateNotFound)
}

// HasCustomLoader returns true if a custom asset loader is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface checks.
var (
	_ AssetLoader = (*AssetResolver)(nil)
	_ Lister      = (*AssetResolver)(nil)
)
