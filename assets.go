package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/assets"
)

// DefaultStyle is the name of the built-in CSS style.
const DefaultStyle = assets.DefaultStyle

// AssetLoader loads CSS styles by name.
// Implementations may read from disk, embedded files, a database, etc.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// Styles lists the available style names.
	Styles() ([]string, error)
}

// NewAssetLoader creates an AssetLoader for basePath.
// An empty basePath uses only the embedded styles; otherwise
// {basePath}/styles/{name}.css takes precedence over them.
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.Resolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) Styles() ([]string, error) {
	names, err := a.resolver.Styles()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound),
		errors.Is(err, assets.ErrInvalidAssetName): // an invalid name cannot exist
		return &assetError{sentinel: ErrStyleNotFound, original: err}
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return &assetError{sentinel: ErrInvalidAssetPath, original: err}
	default:
		return err
	}
}

// assetError reports the internal message and matches the public sentinel.
type assetError struct {
	sentinel error
	original error
}

func (e *assetError) Error() string {
	return e.original.Error()
}

// Unwrap exposes only the public sentinel; internal errors live in internal/.
func (e *assetError) Unwrap() error {
	return e.sentinel
}
