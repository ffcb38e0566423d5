package assets

// Asset directories and extensions, shared by the embedded and filesystem loaders.
const (
	themesDir         = "themes"
	templatesDir      = "templates"
	themeExtension    = ".css"
	templateExtension = ".rntp"
)

// DefaultThemeName is the theme a document starts with.
const DefaultThemeName = "light"

// AssetLoader defines the contract for loading themes and preprocessor templates.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadTheme loads a CSS theme by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (string, error)

	// LoadTemplate loads a preprocessor template by name (without .rntp extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// Lister enumerates the assets a loader can serve.
type Lister interface {
	Themes() ([]string, error)
	Templates() ([]string, error)
}
