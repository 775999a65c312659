package md2html

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-md2html/internal/assets"
)

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader(\"\") error = %v", err)
		}
		css, err := loader.LoadStyle(DefaultStyle)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if css == "" {
			t.Error("LoadStyle() returned empty content")
		}
	})

	t.Run("custom directory adds styles", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o755); err != nil {
			t.Fatalf("failed to create styles dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "styles", "brand.css"), []byte("a{}"), 0o644); err != nil {
			t.Fatalf("failed to write style: %v", err)
		}

		loader, err := NewAssetLoader(dir)
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		names, err := loader.Styles()
		if err != nil {
			t.Fatalf("Styles() error = %v", err)
		}
		if !slices.Contains(names, "brand") || !slices.Contains(names, DefaultStyle) {
			t.Errorf("Styles() = %v, want brand and %s", names, DefaultStyle)
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})

	t.Run("missing style maps to public sentinel", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader() error = %v", err)
		}
		_, err = loader.LoadStyle("nonexistent-xyz")
		if !errors.Is(err, ErrStyleNotFound) {
			t.Errorf("LoadStyle() error = %v, want ErrStyleNotFound", err)
		}
	})
}

func TestConvertAssetError(t *testing.T) {
	t.Parallel()

	other := errors.New("disk on fire")

	tests := []struct {
		name  string
		input error
		want  error
	}{
		{"nil", nil, nil},
		{"style not found", assets.ErrStyleNotFound, ErrStyleNotFound},
		{"invalid name", assets.ErrInvalidAssetName, ErrStyleNotFound},
		{"invalid base path", assets.ErrInvalidBasePath, ErrInvalidAssetPath},
		{"path traversal", assets.ErrPathTraversal, ErrInvalidAssetPath},
		{"unrelated error passes through", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := convertAssetError(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("convertAssetError(nil) = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("convertAssetError(%v) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Error() != tt.input.Error() {
				t.Errorf("convertAssetError() message = %q, want %q", got.Error(), tt.input.Error())
			}
		})
	}
}
