package rnote

import (
	"errors"
	"fmt"

	"github.com/alnah/go-rnote/internal/assets"
)

// DefaultTheme is the name of the theme every document starts with.
const DefaultTheme = assets.DefaultThemeName

// AssetLoader defines the contract for loading themes and preprocessor
// templates. Implementations may load from filesystem, embedded assets,
// a database, etc.
type AssetLoader interface {
	// LoadTheme loads theme CSS by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (string, error)

	// LoadTemplate loads a preprocessor template by name (without .rntp extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// ThemeCheck summarizes the grammar check of one theme.
type ThemeCheck struct {
	Name         string
	Rulesets     int
	AtRules      int
	Declarations int
	Errors       int
	FirstErr     error
}

// OK reports whether the theme parsed without grammar errors.
func (c ThemeCheck) OK() bool {
	return c.Errors == 0 && c.FirstErr == nil
}

// AssetStore loads themes and templates from a directory, falling back to
// the embedded ones, and lists what is available.
type AssetStore struct {
	resolver *assets.AssetResolver
}

// Compile-time interface check.
var _ AssetLoader = (*AssetStore)(nil)

// NewAssetLoader creates an AssetStore for the given base path.
// If basePath is empty, only embedded assets are used.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - themes/{name}.css for themes
//   - templates/{name}.rntp for preprocessor templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (*AssetStore, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &AssetStore{resolver: resolver}, nil
}

func (a *AssetStore) LoadTheme(name string) (string, error) {
	content, err := a.resolver.LoadTheme(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *AssetStore) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// Themes lists available theme names in natural order.
func (a *AssetStore) Themes() ([]string, error) {
	names, err := a.resolver.Themes()
	return names, convertAssetError(err)
}

// Templates lists available template names in natural order.
func (a *AssetStore) Templates() ([]string, error) {
	names, err := a.resolver.Templates()
	return names, convertAssetError(err)
}

// CheckTheme loads a theme and checks its CSS grammar.
func (a *AssetStore) CheckTheme(name string) (ThemeCheck, error) {
	css, err := a.LoadTheme(name)
	if err != nil {
		return ThemeCheck{Name: name}, err
	}
	r := assets.InspectTheme(css)
	return ThemeCheck{
		Name:         name,
		Rulesets:     r.Rulesets,
		AtRules:      r.AtRules,
		Declarations: r.Declarations,
		Errors:       r.Errors,
		FirstErr:     r.FirstErr,
	}, nil
}

// internalAssetLoader wraps a public AssetLoader for the compiler.
type internalAssetLoader struct {
	pub AssetLoader
}

func (a *internalAssetLoader) LoadTheme(name string) (string, error) {
	return a.pub.LoadTheme(name)
}

func (a *internalAssetLoader) LoadTemplate(name string) (string, error) {
	return a.pub.LoadTemplate(name)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, fmt.Errorf("%w", err)) // an invalid name can never be found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
