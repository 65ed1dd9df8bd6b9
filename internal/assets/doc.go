// Package assets provides the HTML deck templates used for rendering.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in deck templates (default, minimal,
// print) embedded at compile time.
//
// FilesystemLoader allows users to provide custom templates from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the primary loader used by the renderer. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the
// template is not found. This enables overriding specific templates while
// keeping the defaults.
//
// # Directory Structure
//
// Custom template directories mirror the embedded layout:
//
//	{basePath}/
//	└── templates/
//	    └── {name}.html          # Deck template (e.g. default.html)
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
