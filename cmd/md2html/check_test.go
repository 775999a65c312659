package main

// Notes:
// - diffOutput: up to date, changed, and missing outputs.
// - reportCheck: stale results produce ErrStaleOutput and print diffs.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDiffOutput - Comparison with existing files
// ---------------------------------------------------------------------------

func TestDiffOutput(t *testing.T) {
	t.Parallel()

	t.Run("up to date", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.html", "<p>same</p>\n")

		d, err := diffOutput(path, []byte("<p>same</p>\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d != "" {
			t.Errorf("diff = %q, want empty", d)
		}
	})

	t.Run("changed", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, t.TempDir(), "a.html", "<p>old</p>\n")

		d, err := diffOutput(path, []byte("<p>new</p>\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(d, "-<p>old</p>") || !strings.Contains(d, "+<p>new</p>") {
			t.Errorf("diff = %q, want removed old and added new line", d)
		}
	})

	t.Run("missing output", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.html")

		d, err := diffOutput(path, []byte("<p>new</p>\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(d, "+<p>new</p>") {
			t.Errorf("diff = %q, want added line", d)
		}
	})
}

// ---------------------------------------------------------------------------
// TestReportCheck - Stale reporting
// ---------------------------------------------------------------------------

func TestReportCheck(t *testing.T) {
	t.Parallel()

	t.Run("all fresh", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := newTestEnv("")

		err := reportCheck(env, []ConversionResult{{InputPath: "a.md"}, {InputPath: "b.md"}}, testOpts())

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if got := stdout.String(); got != "2 file(s) up to date\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("stale", func(t *testing.T) {
		t.Parallel()
		env, stdout, _ := newTestEnv("")
		results := []ConversionResult{
			{InputPath: "a.md"},
			{InputPath: "b.md", Stale: true, Diff: "--- b.html\n+++ b.html\n"},
		}

		err := reportCheck(env, results, testOpts())

		if !errors.Is(err, ErrStaleOutput) {
			t.Errorf("error = %v, want ErrStaleOutput", err)
		}
		if !strings.Contains(err.Error(), "1 of 2") {
			t.Errorf("error = %q, want count", err.Error())
		}
		if got := stdout.String(); got != "--- b.html\n+++ b.html\n" {
			t.Errorf("stdout = %q", got)
		}
	})
}
