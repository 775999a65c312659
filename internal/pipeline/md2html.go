package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates the CommonMark engine failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// codeStyle is the chroma style used for fenced code in the CommonMark engine.
const codeStyle = "github"

// HTMLConverter turns source lines into HTML fragment lines.
type HTMLConverter interface {
	ToHTML(ctx context.Context, lines []string) ([]string, error)
}

// LineConverter runs the line scanner. It never fails on content.
type LineConverter struct {
	scanner *Scanner
}

// NewLineConverter creates a LineConverter with the default rule chain.
func NewLineConverter() *LineConverter {
	return &LineConverter{scanner: NewScanner()}
}

// ToHTML converts lines with a fresh scan state.
func (c *LineConverter) ToHTML(ctx context.Context, lines []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.scanner.Scan(lines), nil
}

// GoldmarkConverter converts through goldmark for full CommonMark + GFM output.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(), // <br />, matching the line engine
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts lines as one document.
// Goldmark has no context support, so conversion runs in a goroutine
// and the call returns early on cancellation.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, lines []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		lines []string
		err   error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(strings.Join(lines, "\n")), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{lines: SplitLines(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.lines, r.err
	}
}
