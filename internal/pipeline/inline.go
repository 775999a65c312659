package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule names, in chain order.
const (
	RuleHeader   = "header"
	RuleEmphasis = "emphasis"
	RuleCode     = "code"
	RuleHRule    = "hrule"
	RuleImage    = "image"
	RuleLink     = "link"
	RuleStrike   = "strike"
)

// maxHeaderLevel is the deepest heading HTML supports.
const maxHeaderLevel = 6

// Precompiled inline patterns. All spans are non-greedy.
var (
	boldItalicPattern = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.+?)\*`)
	codePattern       = regexp.MustCompile("`(.+?)`")
	hrulePattern      = regexp.MustCompile(`^-{3}-*[\s\p{Z}]*$`)
	imagePattern      = regexp.MustCompile(`!\[(.*?)\]\((.+?)\)`)
	linkPattern       = regexp.MustCompile(`\[(.+?)\]\((.+?)\)`)
	strikePattern     = regexp.MustCompile(`~~(.+?)~~`)

	// listItemPattern captures indentation, marker and item text.
	listItemPattern = regexp.MustCompile(`^( *)([*-]|[0-9]\.) (.+)$`)
)

// Rule is a named, total text rewrite of a single line.
type Rule struct {
	Name  string
	Apply func(line string) string
}

// Chain is an ordered list of rules. Each rule sees the previous rule's output.
type Chain []Rule

// InlineRules is the rewrite chain in its fixed order. Images must run
// before links since both share the bracket syntax.
var InlineRules = Chain{
	{Name: RuleHeader, Apply: rewriteHeader},
	{Name: RuleEmphasis, Apply: rewriteEmphasis},
	{Name: RuleCode, Apply: rewriteCode},
	{Name: RuleHRule, Apply: rewriteHRule},
	{Name: RuleImage, Apply: rewriteImage},
	{Name: RuleLink, Apply: rewriteLink},
	{Name: RuleStrike, Apply: rewriteStrike},
}

// Apply runs every rule of the chain over line, in order.
func (c Chain) Apply(line string) string {
	for _, r := range c {
		line = r.Apply(line)
	}
	return line
}

// Without returns a copy of the chain minus the named rules, order preserved.
func (c Chain) Without(names ...string) Chain {
	out := make(Chain, 0, len(c))
	for _, r := range c {
		if !containsName(names, r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// Names lists the rule names in chain order.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, r := range c {
		names[i] = r.Name
	}
	return names
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// RewriteInline applies the full inline chain to one line.
func RewriteInline(line string) string {
	return InlineRules.Apply(line)
}

// rewriteHeader turns "### Title" into "<h3>Title</h3>".
// No space is required after the hashes; 0 or more than 6 hashes leave the line alone.
func rewriteHeader(line string) string {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	if level < 1 || level > maxHeaderLevel {
		return line
	}
	text := strings.TrimSpace(line[level:])
	return fmt.Sprintf("<h%d>%s</h%d>", level, text, level)
}

// rewriteEmphasis runs bold-italic, bold, then italic as independent passes.
func rewriteEmphasis(line string) string {
	line = boldItalicPattern.ReplaceAllString(line, "<b><i>${1}</i></b>")
	line = boldPattern.ReplaceAllString(line, "<b>${1}</b>")
	return italicPattern.ReplaceAllString(line, "<i>${1}</i>")
}

func rewriteCode(line string) string {
	return codePattern.ReplaceAllString(line, "<code>${1}</code>")
}

// rewriteHRule replaces a line of three or more dashes with <hr>.
func rewriteHRule(line string) string {
	if hrulePattern.MatchString(line) {
		return "<hr>"
	}
	return line
}

func rewriteImage(line string) string {
	return imagePattern.ReplaceAllString(line, `<img alt="${1}" src="${2}">`)
}

func rewriteLink(line string) string {
	return linkPattern.ReplaceAllString(line, `<a href="${2}">${1}</a>`)
}

func rewriteStrike(line string) string {
	return strikePattern.ReplaceAllString(line, "<s>${1}</s>")
}

// listItem is a parsed list-item line.
type listItem struct {
	spaces  int
	ordered bool
	text    string
}

// parseListItem reports whether line is a list item and returns its parts.
func parseListItem(line string) (listItem, bool) {
	m := listItemPattern.FindStringSubmatch(line)
	if m == nil {
		return listItem{}, false
	}
	return listItem{
		spaces:  len(m[1]),
		ordered: m[2] != "*" && m[2] != "-",
		text:    m[3],
	}, true
}

// isListItem reports whether line matches the list-item pattern.
func isListItem(line string) bool {
	return listItemPattern.MatchString(line)
}

// rewriteListItem replaces the marker prefix with <li>...</li>.
func rewriteListItem(line string) string {
	return listItemPattern.ReplaceAllString(line, "<li>${3}</li>")
}
