package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Preprocessor splits raw Markdown into source lines.
type Preprocessor interface {
	Preprocess(ctx context.Context, content string) []string
}

// LineSplitter normalizes line endings and splits on "\n".
type LineSplitter struct{}

// Preprocess returns the lines of content. It returns nil when ctx is done.
func (p *LineSplitter) Preprocess(ctx context.Context, content string) []string {
	if ctx.Err() != nil {
		return nil
	}
	return SplitLines(content)
}

// SplitLines converts \r\n and \r to \n and splits content into lines.
// A trailing line break does not produce an empty last line, and empty
// content yields no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// JoinLines terminates every line with "\n" and concatenates them.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}
