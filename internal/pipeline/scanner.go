package pipeline

import "strings"

// Structural markers emitted by the scanner.
const (
	FenceMarker    = "```"
	CodeBlockOpen  = "<pre><code>"
	CodeBlockClose = "</code></pre>"
	LineBreak      = "<br />"
)

// spacesPerIndent is the number of leading spaces per list nesting level.
const spacesPerIndent = 4

// listTracker keeps the closing tags of currently open lists.
// indentLevel is 0 outside of any list.
type listTracker struct {
	active      bool
	indentLevel int
	history     []string
}

// depthOf returns the nesting depth of a list item, counting the top level as 1.
func depthOf(item listItem) int {
	return item.spaces/spacesPerIndent + 1
}

// enter records a list item and returns the open or close tag line the
// transition produces, if any. Only one level is opened or closed per call,
// even when the depth jumps by more than one.
func (t *listTracker) enter(item listItem) (string, bool) {
	t.active = true
	depth := depthOf(item)

	var tag string
	var emitted bool
	switch {
	case depth > t.indentLevel:
		open, closing := "<ul>", "</ul>"
		if item.ordered {
			open, closing = "<ol>", "</ol>"
		}
		t.history = append(t.history, closing)
		tag, emitted = open, true
	case depth < t.indentLevel:
		tag, emitted = t.pop()
	}

	t.indentLevel = depth
	return tag, emitted
}

func (t *listTracker) pop() (string, bool) {
	n := len(t.history)
	if n == 0 {
		return "", false
	}
	tag := t.history[n-1]
	t.history = t.history[:n-1]
	return tag, true
}

// drain closes every open list, deepest first, and leaves list mode.
func (t *listTracker) drain() []string {
	closed := make([]string, 0, len(t.history))
	for {
		tag, ok := t.pop()
		if !ok {
			break
		}
		closed = append(closed, tag)
	}
	t.active = false
	t.indentLevel = 0
	return closed
}

// ScanState is the mutable state of one conversion.
type ScanState struct {
	inCodeBlock bool
	lists       listTracker
}

// InCodeBlock reports whether the scanner is inside a fenced block.
func (s *ScanState) InCodeBlock() bool { return s.inCodeBlock }

// InList reports whether the scanner is inside a list.
func (s *ScanState) InList() bool { return s.lists.active }

// IndentLevel returns the current list nesting depth.
func (s *ScanState) IndentLevel() int { return s.lists.indentLevel }

// OpenLists returns the pending closing tags, outermost first.
func (s *ScanState) OpenLists() []string {
	return append([]string(nil), s.lists.history...)
}

// Scanner converts lines using fence and list state plus the inline chain.
// A Scanner holds no per-document state and is safe for concurrent use;
// each Scan call owns a fresh ScanState.
type Scanner struct {
	// rules run after emphasis and list handling on every normal line.
	rules Chain
}

// NewScanner returns a Scanner using InlineRules.
func NewScanner() *Scanner {
	return &Scanner{rules: InlineRules.Without(RuleEmphasis)}
}

// Scan converts a whole document.
func (s *Scanner) Scan(lines []string) []string {
	var state ScanState
	out := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		out = s.scanLine(&state, line, out)
	}
	return s.finish(&state, out)
}

// Step converts a single line against state, for incremental use.
// Call Finish once the input is exhausted.
func (s *Scanner) Step(state *ScanState, line string) []string {
	return s.scanLine(state, line, nil)
}

// Finish returns the closing tags still pending in state.
func (s *Scanner) Finish(state *ScanState) []string {
	return s.finish(state, nil)
}

// scanLine processes one source line and appends its output.
func (s *Scanner) scanLine(state *ScanState, line string, out []string) []string {
	if strings.HasPrefix(strings.TrimSpace(line), FenceMarker) {
		state.inCodeBlock = !state.inCodeBlock
		if state.inCodeBlock {
			return append(out, CodeBlockOpen)
		}
		return append(out, CodeBlockClose)
	}

	if state.inCodeBlock {
		return append(out, line)
	}

	if state.lists.active && !isListItem(line) {
		out = append(out, state.lists.drain()...)
	}

	// Emphasis runs before list detection, so a marker line can lose its
	// marker to an italic span.
	line = rewriteEmphasis(line)

	if item, ok := parseListItem(line); ok {
		if tag, emitted := state.lists.enter(item); emitted {
			out = append(out, tag)
		}
		line = rewriteListItem(line)
	}

	if strings.TrimSpace(line) == "" {
		return append(out, LineBreak)
	}

	return append(out, s.rules.Apply(line))
}

// finish closes lists left open at end of input.
func (s *Scanner) finish(state *ScanState, out []string) []string {
	if state.lists.active {
		out = append(out, state.lists.drain()...)
	}
	return out
}
