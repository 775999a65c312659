package md2html

import (
	"fmt"
	"strings"
)

// Engine selects the Markdown implementation.
type Engine string

// Engine constants.
const (
	// EngineLine is the line-oriented regex engine.
	EngineLine Engine = "line"

	// EngineCommonMark renders CommonMark with GFM extensions.
	EngineCommonMark Engine = "commonmark"
)

// DefaultEngine is used when no engine is configured.
const DefaultEngine = EngineLine

// ParseEngine returns the engine named by s, case-insensitively.
// An empty string selects DefaultEngine.
func ParseEngine(s string) (Engine, error) {
	if s == "" {
		return DefaultEngine, nil
	}
	e := Engine(strings.ToLower(strings.TrimSpace(s)))
	if err := e.Validate(); err != nil {
		return "", err
	}
	return e, nil
}

// Validate checks that e is a known engine.
func (e Engine) Validate() error {
	switch e {
	case EngineLine, EngineCommonMark:
		return nil
	default:
		return fmt.Errorf("%w: %q (expected %s or %s)", ErrInvalidEngine, string(e), EngineLine, EngineCommonMark)
	}
}

// Input is one document to convert.
type Input struct {
	Markdown string   // raw source; ignored when Lines is non-nil
	Lines    []string // pre-split source lines
	Title    string   // standalone <title>; empty = first <h1>
	CSS      string   // appended after the converter style in standalone output

	// SourceDir and OutputDir enable rebasing of relative img src and a href
	// values when the HTML is written somewhere other than next to its source.
	SourceDir string
	OutputDir string
}

// Result holds the converted document.
type Result struct {
	Lines []string // output lines, without terminators
	HTML  []byte   // Lines joined, each terminated with "\n"
}

// Option configures a Converter.
type Option func(*Converter)

// WithEngine selects the conversion engine. Invalid values fail NewConverter.
func WithEngine(e Engine) Option {
	return func(c *Converter) {
		c.cfg.engine = e
	}
}

// WithStyle sets the standalone document style: a style name, a path to a
// .css file, or raw CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath sets a directory whose styles/ override the embedded ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom style loader. It takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithStandalone wraps output in a complete HTML5 document.
func WithStandalone(standalone bool) Option {
	return func(c *Converter) {
		c.cfg.standalone = standalone
	}
}

// WithLang sets the lang attribute of standalone documents.
func WithLang(lang string) Option {
	return func(c *Converter) {
		c.cfg.lang = lang
	}
}
