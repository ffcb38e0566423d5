// Package assets provides CSS themes and preprocessor templates for documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in themes (light, dark) and templates
// (report, memo, poster) embedded at compile time.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding specific assets while keeping defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── themes/
//	│   └── {name}.css      # theme stylesheet, selected with ".pp theme {name}"
//	└── templates/
//	    └── {name}.rntp     # preprocessor lines, expanded by ".pp template {name}"
//
// A template holds one preprocessor command per line, with or without the
// ".pp" prefix. Blank lines and lines starting with "//" are ignored.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
