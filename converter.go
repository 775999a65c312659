package md2html

import (
	"context"
	"fmt"
	"os"

	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Preprocessor    = (*pipeline.LineSplitter)(nil)
	_ pipeline.HTMLConverter   = (*pipeline.LineConverter)(nil)
	_ pipeline.HTMLConverter   = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.DocumentWrapper = (*pipeline.DocumentInjection)(nil)
)

// defaultScanner backs the package-level helpers. Scanners are stateless.
var defaultScanner = pipeline.NewScanner()

// ConvertLines runs the line engine over lines and returns the HTML lines.
// It never fails: unknown syntax passes through unchanged.
func ConvertLines(lines []string) []string {
	return defaultScanner.Scan(lines)
}

// ConvertString converts Markdown text with the line engine.
// Every output line is terminated with "\n".
func ConvertString(markdown string) string {
	return pipeline.JoinLines(ConvertLines(pipeline.SplitLines(markdown)))
}

// converterConfig holds options resolved at construction.
type converterConfig struct {
	engine        Engine
	styleInput    string
	resolvedStyle string
	assetPath     string
	standalone    bool
	lang          string
}

// Converter runs the conversion pipeline. It holds no per-document state
// and is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.Loader
	publicAssetLoader AssetLoader
	preprocessor      pipeline.Preprocessor
	htmlConverter     pipeline.HTMLConverter
	wrapper           pipeline.DocumentWrapper
}

// publicToInternalAdapter wraps a public AssetLoader as an internal assets.Loader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *publicToInternalAdapter) Styles() ([]string, error) {
	return a.pub.Styles()
}

// NewConverter creates a Converter. Without options it uses the line engine
// and returns HTML fragments.
// Returns an error for an unknown engine, an unusable asset path, or a style
// that cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:          converterConfig{engine: DefaultEngine},
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.LineSplitter{},
		wrapper:      &pipeline.DocumentInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.cfg.engine.Validate(); err != nil {
		return nil, err
	}

	// Engine decides the HTML converter unless one was injected
	if c.htmlConverter == nil {
		switch c.cfg.engine {
		case EngineCommonMark:
			c.htmlConverter = pipeline.NewGoldmarkConverter()
		default:
			c.htmlConverter = pipeline.NewLineConverter()
		}
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewResolver(c.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		c.assetLoader = resolver
	}
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	return c, nil
}

// Engine returns the configured engine.
func (c *Converter) Engine() Engine {
	return c.cfg.engine
}

// Convert runs the pipeline on one document. The context is checked between
// stages. Recovers from internal panics so they do not reach callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	lines := input.Lines
	if lines == nil {
		lines = c.preprocessor.Preprocess(ctx, input.Markdown)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlLines, err := c.htmlConverter.ToHTML(ctx, lines)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if input.SourceDir != "" && input.OutputDir != "" {
		htmlLines, err = pipeline.RebaseRelativePaths(htmlLines, input.SourceDir, input.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPathRebase, err)
		}
	}

	if c.cfg.standalone {
		// Converter style first, per-document CSS last so it can override
		css := c.cfg.resolvedStyle
		if input.CSS != "" {
			if css != "" {
				css += "\n"
			}
			css += input.CSS
		}
		htmlLines = c.wrapper.Wrap(ctx, htmlLines, pipeline.DocumentMeta{
			Title: input.Title,
			Lang:  c.cfg.lang,
			CSS:   css,
		})
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &Result{
		Lines: htmlLines,
		HTML:  []byte(pipeline.JoinLines(htmlLines)),
	}, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS.
// Fragments carry no style, so nothing is loaded unless output is standalone.
func (c *Converter) resolveStyle() error {
	if !c.cfg.standalone {
		return nil
	}

	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	// CSS first: url(...) values may contain slashes
	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, convertAssetError(err))
	}
	c.cfg.resolvedStyle = css
	return nil
}
