package assets

import (
	"fmt"
	"regexp"
)

// DefaultStyle is the style used when none is configured.
const DefaultStyle = "default"

// styleExt is appended to style names to form file names.
const styleExt = ".css"

var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Loader loads CSS styles by name.
type Loader interface {
	// LoadStyle returns the CSS for name (without extension).
	// Returns ErrStyleNotFound if it does not exist and
	// ErrInvalidAssetName if the name is not a plain identifier.
	LoadStyle(name string) (string, error)

	// Styles lists the available style names, sorted.
	Styles() ([]string, error)
}

// ValidateAssetName checks that name is a plain identifier usable as a file name.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
