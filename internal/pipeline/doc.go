// Package pipeline implements the Markdown-to-HTML conversion stages:
//   - splitting raw text into normalized source lines
//   - the line scanner, which tracks code fences and list nesting
//   - the ordered inline rewrite chain applied to every normal line
//   - an alternate CommonMark engine backed by goldmark
//   - wrapping fragments into standalone documents
//   - rebasing relative asset paths when output moves away from its source
//
// The line engine is deliberately minimal: every rule is a regular
// expression over a single line and the only state carried between lines
// is the code fence flag and the stack of open lists.
package pipeline
