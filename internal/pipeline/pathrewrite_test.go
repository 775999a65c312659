package pipeline

// Notes:
// - Paths are Unix-style; the table is skipped on Windows where the
//   absolute source and output directories would differ in form.
// - Only double-quoted attributes are rebased; the single-quote case pins that.

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRebaseRelativePaths(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("Unix paths")
	}

	const (
		sourceDir = "/work/docs"
		outputDir = "/work/site"
	)

	tests := []struct {
		name string
		line string
		out  string
		want string
	}{
		{
			name: "relative image",
			line: `<img alt="x" src="img/a.png">`,
			out:  outputDir,
			want: `<img alt="x" src="../docs/img/a.png">`,
		},
		{
			name: "relative link keeps fragment",
			line: `<a href="other.html#top">o</a>`,
			out:  outputDir,
			want: `<a href="../docs/other.html#top">o</a>`,
		},
		{
			name: "deeper output directory",
			line: `<img alt="" src="a.png">`,
			out:  "/work/site/deep",
			want: `<img alt="" src="../../docs/a.png">`,
		},
		{
			name: "both tags in one line",
			line: `text with <li><img alt="a" src="a.png"> and <a href="b.html">b</a></li>`,
			out:  outputDir,
			want: `text with <li><img alt="a" src="../docs/a.png"> and <a href="../docs/b.html">b</a></li>`,
		},
		{
			name: "external URL unchanged",
			line: `<a href="https://go.dev">go</a>`,
			out:  outputDir,
			want: `<a href="https://go.dev">go</a>`,
		},
		{
			name: "anchor unchanged",
			line: `<a href="#sec">s</a>`,
			out:  outputDir,
			want: `<a href="#sec">s</a>`,
		},
		{
			name: "mailto unchanged",
			line: `<a href="mailto:me@example.com">m</a>`,
			out:  outputDir,
			want: `<a href="mailto:me@example.com">m</a>`,
		},
		{
			name: "absolute path unchanged",
			line: `<img alt="" src="/abs.png">`,
			out:  outputDir,
			want: `<img alt="" src="/abs.png">`,
		},
		{
			name: "protocol-relative unchanged",
			line: `<img alt="" src="//cdn.example.com/a.png">`,
			out:  outputDir,
			want: `<img alt="" src="//cdn.example.com/a.png">`,
		},
		{
			name: "script not rewritten",
			line: `<script src="x.js"></script>`,
			out:  outputDir,
			want: `<script src="x.js"></script>`,
		},
		{
			name: "single-quoted attribute unchanged",
			line: `<img src='a.png'>`,
			out:  outputDir,
			want: `<img src='a.png'>`,
		},
		{
			name: "text after a bare less-than kept",
			line: `<a href="doc.html">d</a> x<y`,
			out:  outputDir,
			want: `<a href="../docs/doc.html">d</a> x<y`,
		},
		{
			name: "text after a bare less-than and closing tag kept",
			line: `<img alt="" src="a.png"> when a<b holds</li>`,
			out:  outputDir,
			want: `<img alt="" src="../docs/a.png"> when a<b holds</li>`,
		},
		{
			name: "plain text unchanged",
			line: "no tags here",
			out:  outputDir,
			want: "no tags here",
		},
		{
			name: "same directory unchanged",
			line: `<img alt="" src="a.png">`,
			out:  sourceDir,
			want: `<img alt="" src="a.png">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RebaseRelativePaths([]string{tt.line}, sourceDir, tt.out)
			if err != nil {
				t.Fatalf("RebaseRelativePaths() error = %v", err)
			}
			if diff := cmp.Diff([]string{tt.want}, got); diff != "" {
				t.Errorf("RebaseRelativePaths() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRebaseRelativePaths_CodeBlock(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("Unix paths")
	}

	lines := []string{
		`<img alt="" src="before.png">`,
		CodeBlockOpen,
		`<img src="a.png">`,
		`<a href="b.html">b</a>`,
		CodeBlockClose,
		`<img alt="" src="after.png">`,
	}
	want := []string{
		`<img alt="" src="../docs/before.png">`,
		CodeBlockOpen,
		`<img src="a.png">`,
		`<a href="b.html">b</a>`,
		CodeBlockClose,
		`<img alt="" src="../docs/after.png">`,
	}

	got, err := RebaseRelativePaths(lines, "/work/docs", "/work/site")
	if err != nil {
		t.Fatalf("RebaseRelativePaths() error = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("RebaseRelativePaths() mismatch (-want +got):\n%s", diff)
	}
}

func TestRebaseRelativePaths_EmptyDirs(t *testing.T) {
	t.Parallel()

	lines := []string{`<img alt="" src="a.png">`}
	for _, dirs := range [][2]string{{"", "/out"}, {"/src", ""}} {
		got, err := RebaseRelativePaths(lines, dirs[0], dirs[1])
		if err != nil {
			t.Fatalf("RebaseRelativePaths(%q, %q) error = %v", dirs[0], dirs[1], err)
		}
		if diff := cmp.Diff(lines, got); diff != "" {
			t.Errorf("RebaseRelativePaths(%q, %q) mismatch (-want +got):\n%s", dirs[0], dirs[1], diff)
		}
	}
}

func TestIsRelativePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"./a.png", true},
		{"../up/a.png", true},
		{"dir/page.html?x=1", true},
		{"", false},
		{"#anchor", false},
		{"/abs/a.png", false},
		{"//cdn/a.png", false},
		{"https://example.com", false},
		{"data:image/png;base64,AA", false},
		{"mailto:x@example.com", false},
	}

	for _, tt := range tests {
		if got := isRelativePath(tt.path); got != tt.want {
			t.Errorf("isRelativePath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
