// Package assets provides the CSS styles inlined into standalone HTML documents.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - styles compiled into the binary
//	    ├── FilesystemLoader  - styles from a directory on disk
//	    └── Resolver          - custom directory first, embedded fallback
//
// Styles live under a styles/ directory as {name}.css, both in the binary
// and in a custom base path:
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// # Security
//
// Style names are restricted to letters, digits, '-' and '_'.
// FilesystemLoader resolves symlinks and refuses paths outside basePath.
package assets
