package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple name", "default", nil},
		{"dash and underscore", "my_style-2", nil},
		{"empty", "", ErrInvalidAssetName},
		{"parent traversal", "../secret", ErrInvalidAssetName},
		{"backslash traversal", "..\\secret", ErrInvalidAssetName},
		{"dot in name", "style.css", ErrInvalidAssetName},
		{"slash in name", "a/b", ErrInvalidAssetName},
		{"space in name", "my style", ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
