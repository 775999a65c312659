package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-md2html"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidEngine   = errors.New("invalid engine")
	ErrInvalidLang     = errors.New("invalid language tag")
)

// Engines lists the accepted engine names.
var Engines = []string{"line", "commonmark"}

// langPattern is a loose BCP 47 shape: "en", "pt-BR", "zh-Hant-TW".
var langPattern = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{1,8})*$`)

// Field length limits.
const (
	MaxTitleLength = 200  // <title> text
	MaxLangLength  = 35   // longest practical BCP 47 tag
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxStyleLength = 4096 // style name or path
)

// Config holds all configuration for document conversion.
type Config struct {
	Engine   string         `yaml:"engine"`
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	CSS      CSSConfig      `yaml:"css"`
	Assets   AssetsConfig   `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
	Standalone bool   `yaml:"standalone"` // Wrap fragments in a full HTML5 document
}

// DocumentConfig defines standalone document metadata.
type DocumentConfig struct {
	Title string `yaml:"title"` // Empty = first <h1>
	Lang  string `yaml:"lang"`
}

// CSSConfig defines CSS styling options.
type CSSConfig struct {
	Style string `yaml:"style"` // Style name, .css path, or raw CSS (empty = default)
}

// AssetsConfig defines where custom styles are looked up.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory containing styles/ (empty = embedded only)
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	if c.Engine != "" && !slices.Contains(Engines, strings.ToLower(c.Engine)) {
		return fmt.Errorf("%w: %q", ErrInvalidEngine, c.Engine)
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.lang", c.Document.Lang, MaxLangLength); err != nil {
		return err
	}
	if c.Document.Lang != "" && !langPattern.MatchString(c.Document.Lang) {
		return fmt.Errorf("%w: %q", ErrInvalidLang, c.Document.Lang)
	}
	if err := validateFieldLength("css.style", c.CSS.Style, MaxStyleLength); err != nil {
		return err
	}
	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// line engine, HTML fragments, English.
func DefaultConfig() *Config {
	return &Config{
		Engine:   Engines[0],
		Document: DocumentConfig{Lang: "en"},
	}
}

// applyDefaults fills fields left empty with their DefaultConfig values.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Engine == "" {
		c.Engine = def.Engine
	}
	if c.Document.Lang == "" {
		c.Document.Lang = def.Document.Lang
	}
}

// NotFoundError reports a config name that matched no file.
type NotFoundError struct {
	Searched []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Searched, ", "))
}

// Unwrap returns ErrConfigNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrConfigNotFound
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Searched: []string{configPath}}
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	// An empty file is a valid config with every default
	if err := yamlutil.DecodeStrict(f, &cfg); err != nil && !errors.Is(err, yamlutil.ErrEmptyInput) {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, user config dir/go-md2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, AppDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", &NotFoundError{Searched: triedPaths}
}
