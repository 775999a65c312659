package config

// Notes:
// - Name resolution tests use t.Chdir and t.Setenv and cannot run in parallel.
// - The user config directory test only runs where os.UserConfigDir honors
//   XDG_CONFIG_HOME (Linux and the BSDs).

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// writeConfig creates name in dir with content and returns its path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Engine != "line" {
		t.Errorf("Engine = %q, want %q", cfg.Engine, "line")
	}
	if cfg.Output.Standalone {
		t.Error("Output.Standalone = true, want false")
	}
	if cfg.Document.Lang != "en" {
		t.Errorf("Document.Lang = %q, want %q", cfg.Document.Lang, "en")
	}
	if cfg.CSS.Style != "" {
		t.Errorf("CSS.Style = %q, want empty", cfg.CSS.Style)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"commonmark engine", func(c *Config) { c.Engine = "commonmark" }, nil},
		{"engine case insensitive", func(c *Config) { c.Engine = "CommonMark" }, nil},
		{"empty engine", func(c *Config) { c.Engine = "" }, nil},
		{"unknown engine", func(c *Config) { c.Engine = "pandoc" }, ErrInvalidEngine},
		{"regional lang", func(c *Config) { c.Document.Lang = "pt-BR" }, nil},
		{"malformed lang", func(c *Config) { c.Document.Lang = "en_US" }, ErrInvalidLang},
		{"title too long", func(c *Config) { c.Document.Title = strings.Repeat("x", MaxTitleLength+1) }, ErrFieldTooLong},
		{"lang too long", func(c *Config) { c.Document.Lang = strings.Repeat("a", MaxLangLength+1) }, ErrFieldTooLong},
		{"input dir too long", func(c *Config) { c.Input.DefaultDir = strings.Repeat("d", MaxPathLength+1) }, ErrFieldTooLong},
		{"output dir too long", func(c *Config) { c.Output.DefaultDir = strings.Repeat("d", MaxPathLength+1) }, ErrFieldTooLong},
		{"style too long", func(c *Config) { c.CSS.Style = strings.Repeat("s", MaxStyleLength+1) }, ErrFieldTooLong},
		{"asset path too long", func(c *Config) { c.Assets.BasePath = strings.Repeat("p", MaxPathLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "site.yaml", `engine: commonmark
input:
  defaultDir: docs
output:
  defaultDir: site
  standalone: true
document:
  title: Handbook
css:
  style: minimal
assets:
  basePath: ./assets
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := Config{
			Engine:   "commonmark",
			Input:    InputConfig{DefaultDir: "docs"},
			Output:   OutputConfig{DefaultDir: "site", Standalone: true},
			Document: DocumentConfig{Title: "Handbook", Lang: "en"},
			CSS:      CSSConfig{Style: "minimal"},
			Assets:   AssetsConfig{BasePath: "./assets"},
		}
		if *cfg != want {
			t.Errorf("LoadConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("absent fields keep defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "css:\n  style: minimal\n")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != "line" || cfg.Document.Lang != "en" {
			t.Errorf("LoadConfig() = %+v, want default engine and lang", *cfg)
		}
	})

	t.Run("empty file yields defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "empty.yaml", "")
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if *cfg != *DefaultConfig() {
			t.Errorf("LoadConfig() = %+v, want defaults", *cfg)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "invalid.yaml", "engine: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "unknown.yaml", "engine: line\nfooter: {}\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid engine fails validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "engine.yaml", "engine: pandoc\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidEngine) {
			t.Errorf("error = %v, want ErrInvalidEngine", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" || os.Geteuid() == 0 {
			t.Skip("permission bits not enforced")
		}

		path := writeConfig(t, t.TempDir(), "unreadable.yaml", "engine: line\n")
		if err := os.Chmod(path, 0o000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer func() { _ = os.Chmod(path, 0o600) }()

		_, err := LoadConfig(path)
		if err == nil || errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want read error", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "work.yml", "engine: commonmark\n")
		t.Chdir(dir)
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := LoadConfig("work")
		if err != nil {
			t.Fatalf("LoadConfig(\"work\") error = %v", err)
		}
		if cfg.Engine != "commonmark" {
			t.Errorf("Engine = %q, want %q", cfg.Engine, "commonmark")
		}
	})

	t.Run("user config directory", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME only consulted on unix")
		}

		home := t.TempDir()
		writeConfig(t, home, filepath.Join(AppDir, "site.yaml"), "css:\n  style: minimal\n")
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", home)

		cfg, err := LoadConfig("site")
		if err != nil {
			t.Fatalf("LoadConfig(\"site\") error = %v", err)
		}
		if cfg.CSS.Style != "minimal" {
			t.Errorf("CSS.Style = %q, want %q", cfg.CSS.Style, "minimal")
		}
	})

	t.Run("not found lists searched paths", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		_, err := LoadConfig("missing")
		var nf *NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("error = %v, want *NotFoundError", err)
		}
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
		if len(nf.Searched) < 2 || nf.Searched[0] != "missing.yaml" || nf.Searched[1] != "missing.yml" {
			t.Errorf("Searched = %v, want local candidates first", nf.Searched)
		}
	})
}
