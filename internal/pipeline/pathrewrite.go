package pipeline

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

// rebaseAttrs lists the attribute rewritten for each element.
var rebaseAttrs = map[string]string{
	"img": "src",
	"a":   "href",
}

// RebaseRelativePaths rewrites relative img[src] and a[href] values so they
// keep pointing at the same files once the HTML is written to outputDir
// instead of sourceDir. Lines are tokenized individually and only the
// attribute value changes; everything else is copied byte for byte.
//
// URLs, anchors, and absolute paths are left alone, as are the lines of a
// code block. Equal directories or an empty directory return lines unchanged.
func RebaseRelativePaths(lines []string, sourceDir, outputDir string) ([]string, error) {
	if sourceDir == "" || outputDir == "" {
		return lines, nil
	}
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, err
	}
	absOutput, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}
	if absSource == absOutput {
		return lines, nil
	}

	out := make([]string, len(lines))
	inCode := false
	for i, l := range lines {
		switch {
		case l == CodeBlockOpen:
			inCode = true
		case l == CodeBlockClose:
			inCode = false
		case !inCode:
			l = rebaseLine(l, absSource, absOutput)
		}
		out[i] = l
	}
	return out, nil
}

// rebaseLine rewrites the attributes of one line.
func rebaseLine(line, sourceDir, outputDir string) string {
	if !strings.Contains(line, "<") {
		return line
	}

	z := html.NewTokenizer(strings.NewReader(line))
	var b strings.Builder
	changed := false
	consumed := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(z.Raw())
		consumed += len(raw)
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			if rewritten, ok := rebaseTag(raw, z.Token(), sourceDir, outputDir); ok {
				raw = rewritten
				changed = true
			}
		}
		b.WriteString(raw)
	}

	if !changed {
		return line
	}
	// An unterminated tag such as "x<y" ends tokenization early.
	b.WriteString(line[consumed:])
	return b.String()
}

// rebaseTag returns raw with its path attribute rebased, if it has one.
// Only double-quoted values are rewritten, which is what the line engine emits.
func rebaseTag(raw string, tok html.Token, sourceDir, outputDir string) (string, bool) {
	key, ok := rebaseAttrs[tok.Data]
	if !ok {
		return "", false
	}
	for _, attr := range tok.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		rebased, ok := rebasePath(attr.Val, sourceDir, outputDir)
		if !ok {
			return "", false
		}
		old := key + `="` + attr.Val + `"`
		if !strings.Contains(raw, old) {
			return "", false
		}
		return strings.Replace(raw, old, key+`="`+rebased+`"`, 1), true
	}
	return "", false
}

// rebasePath re-expresses p, relative to sourceDir, as a path relative to outputDir.
// A query or fragment suffix is preserved.
func rebasePath(p, sourceDir, outputDir string) (string, bool) {
	suffix := ""
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p, suffix = p[:i], p[i:]
	}
	if p == "" {
		return "", false
	}
	target := filepath.Join(sourceDir, filepath.FromSlash(p))
	rel, err := filepath.Rel(outputDir, target)
	if err != nil {
		return "", false
	}
	return path.Clean(filepath.ToSlash(rel)) + suffix, true
}

// isRelativePath returns true if the value is a relative filesystem path.
func isRelativePath(p string) bool {
	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "//") {
		return false
	}
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) {
		return false
	}
	u, err := url.Parse(p)
	if err != nil {
		return false
	}
	return u.Scheme == ""
}
