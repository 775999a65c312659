package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// stylesDir is the subdirectory of a base path holding {name}.css files.
const stylesDir = "styles"

// FilesystemLoader loads styles from {basePath}/styles.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
}

// NewFilesystemLoader creates a FilesystemLoader for basePath.
// Returns ErrInvalidBasePath if basePath is not a readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	dir, err := resolveBaseDir(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return &FilesystemLoader{basePath: dir}, nil
}

// resolveBaseDir returns basePath as an absolute, symlink-free directory
// that can be listed.
func resolveBaseDir(basePath string) (string, error) {
	if basePath == "" {
		return "", errors.New("empty path")
	}
	dir, err := filepath.Abs(basePath)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	_, err = os.ReadDir(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("directory does not exist: %s", dir)
	case err != nil:
		if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
			return "", fmt.Errorf("not a directory: %s", dir)
		}
		return "", fmt.Errorf("cannot read directory: %v", err)
	}
	return dir, nil
}

// LoadStyle reads {basePath}/styles/{name}.css.
func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	path := filepath.Join(f.basePath, stylesDir, name+styleExt)
	if !f.contains(path) {
		return "", fmt.Errorf("%w: %s escapes %s", ErrPathTraversal, name, f.basePath)
	}

	css, err := os.ReadFile(path) // #nosec G304 -- name validated, containment checked
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	case err != nil:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(css), nil
}

// Styles lists the styles in {basePath}/styles. A missing directory is empty.
func (f *FilesystemLoader) Styles() ([]string, error) {
	names, err := listStyles(os.DirFS(f.basePath), stylesDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return names, err
}

// contains reports whether path, after following symlinks, stays under basePath.
// A path that does not exist yet is judged unresolved.
func (f *FilesystemLoader) contains(path string) bool {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	rel, err := filepath.Rel(f.basePath, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

var _ Loader = (*FilesystemLoader)(nil)
