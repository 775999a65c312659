package pipeline

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// DefaultTitle is used when a document has neither an explicit title nor an <h1>.
const DefaultTitle = "Document"

// DefaultLang is the html lang attribute used when none is configured.
const DefaultLang = "en"

var (
	// h1Pattern matches an <h1> produced by the header rule or goldmark.
	h1Pattern = regexp.MustCompile(`<h1[^>]*>(.*?)</h1>`)

	// htmlTagPattern matches HTML tags for stripping from title text.
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// DocumentMeta describes the standalone HTML wrapper.
type DocumentMeta struct {
	Title string // empty = first <h1>, then DefaultTitle
	Lang  string // empty = DefaultLang
	CSS   string // inlined in a <style> block when not empty
}

// DocumentWrapper turns an HTML fragment into a standalone document.
type DocumentWrapper interface {
	Wrap(ctx context.Context, body []string, meta DocumentMeta) []string
}

// DocumentInjection wraps fragment lines in an HTML5 skeleton.
type DocumentInjection struct{}

// Wrap returns the skeleton with body lines between <body> and </body>.
// When ctx is done the body is returned unwrapped.
func (d *DocumentInjection) Wrap(ctx context.Context, body []string, meta DocumentMeta) []string {
	if ctx.Err() != nil {
		return body
	}

	title := meta.Title
	if title == "" {
		title = ExtractTitle(body)
	}
	if title == "" {
		title = DefaultTitle
	}
	lang := meta.Lang
	if lang == "" {
		lang = DefaultLang
	}

	out := make([]string, 0, len(body)+10)
	out = append(out,
		"<!DOCTYPE html>",
		fmt.Sprintf(`<html lang="%s">`, html.EscapeString(lang)),
		"<head>",
		`<meta charset="utf-8">`,
		"<title>"+html.EscapeString(title)+"</title>",
	)
	if meta.CSS != "" {
		out = append(out, "<style>"+sanitizeCSS(meta.CSS)+"</style>")
	}
	out = append(out, "</head>", "<body>")
	out = append(out, body...)
	return append(out, "</body>", "</html>")
}

// ExtractTitle returns the text of the first <h1> in lines, tags stripped.
func ExtractTitle(lines []string) string {
	for _, l := range lines {
		if m := h1Pattern.FindStringSubmatch(l); m != nil {
			if t := stripHTMLTags(m[1]); t != "" {
				return t
			}
		}
	}
	return ""
}

// stripHTMLTags removes tags, decodes entities, and trims whitespace.
// Decoding avoids double-encoding when the text is escaped again.
func stripHTMLTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// sanitizeCSS escapes "</" so CSS content cannot close the style block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
