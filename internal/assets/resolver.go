package assets

import (
	"errors"
	"sort"
)

// Resolver tries a custom directory first and falls back to embedded styles
// when the custom directory does not have the requested style.
type Resolver struct {
	custom   Loader // nil when no custom path is configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath means embedded only.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadStyle loads name, preferring the custom directory.
// Only not-found errors fall back; validation and I/O errors are returned.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadStyle(name)
	}
	css, err := r.custom.LoadStyle(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrStyleNotFound) {
		return "", err
	}
	return r.embedded.LoadStyle(name)
}

// Styles lists the union of custom and embedded style names.
func (r *Resolver) Styles() ([]string, error) {
	names, err := r.embedded.Styles()
	if err != nil || r.custom == nil {
		return names, err
	}
	custom, err := r.custom.Styles()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names)+len(custom))
	var all []string
	for _, n := range append(names, custom...) {
		if !seen[n] {
			seen[n] = true
			all = append(all, n)
		}
	}
	sort.Strings(all)
	return all, nil
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ Loader = (*Resolver)(nil)
