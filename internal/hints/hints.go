// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// GOOS is the target OS used for key-binding hints. Tests override it.
var GOOS = runtime.GOOS

// ForInputNotFound returns hints for a missing input file.
// Suggests the .md file when the extension was left off.
func ForInputNotFound(path string) string {
	if filepath.Ext(path) == "" && fileutil.FileExists(path+".md") {
		return format("did you mean " + path + ".md?")
	}
	return format("check the path, or use - to read from stdin")
}

// ForNoInput returns a hint for a convert call without input.
func ForNoInput() string {
	return format("pass a file, directory, glob, or - for stdin; or set input.defaultDir in config")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2html/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-md2html") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidEngine returns the accepted engine names.
func ForInvalidEngine(engines []string) string {
	return format("use one of: " + strings.Join(engines, ", "))
}

// ForStdinTerminal explains how to end input typed at a terminal.
func ForStdinTerminal() string {
	eof := "Ctrl-D"
	if GOOS == "windows" {
		eof = "Ctrl-Z then Enter"
	}
	return format("reading Markdown from the terminal; finish with " + eof + ", or pipe a file in")
}

// ForStaleOutput returns a hint for --check failures.
func ForStaleOutput() string {
	return format("run again without --check to regenerate")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
