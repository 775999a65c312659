package main

// Notes:
// - Shared helpers for the command tests: a buffer-backed Environment,
//   a goroutine-safe buffer for watch tests, and a mock converter.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
)

// ---------------------------------------------------------------------------
// Test Environment
// ---------------------------------------------------------------------------

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestEnv returns an Environment reading stdin and writing to buffers.
func newTestEnv(stdin string) (*Environment, *syncBuffer, *syncBuffer) {
	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	env := &Environment{
		Now:             func() time.Time { return fixedNow },
		Stdin:           strings.NewReader(stdin),
		Stdout:          stdout,
		Stderr:          stderr,
		StdinIsTerminal: func() bool { return false },
	}
	return env, stdout, stderr
}

// testOpts returns batch options using the fixed clock.
func testOpts() batchOptions {
	return batchOptions{now: func() time.Time { return fixedNow }}
}

// writeFile writes content under dir, creating parents, and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// staticMockConverter returns a fixed result and records inputs.
type staticMockConverter struct {
	mu     sync.Mutex
	html   string
	err    error
	inputs []md2html.Input
}

func (m *staticMockConverter) Convert(_ context.Context, in md2html.Input) (*md2html.Result, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &md2html.Result{Lines: strings.Split(strings.TrimSuffix(m.html, "\n"), "\n"), HTML: []byte(m.html)}, nil
}

var _ CLIConverter = (*staticMockConverter)(nil)
