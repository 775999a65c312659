package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates a name that is empty or could escape
	// the styles directory.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the custom base path is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error while reading a style.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates a resolved path outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
