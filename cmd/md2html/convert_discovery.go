package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
)

// htmlExt is the extension of generated files.
const htmlExt = ".html"

// FileToConvert pairs an input markdown file with its output path.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// isGlob reports whether s contains glob metacharacters.
func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// isSingleInput reports whether input names one file rather than a directory or glob.
// A path that exists is taken literally even if it contains glob characters.
func isSingleInput(input string) bool {
	if input == stdinArg {
		return true
	}
	info, err := os.Stat(input)
	if err == nil {
		return !info.IsDir()
	}
	return !isGlob(input)
}

// discoverFiles expands input into the files to convert.
// input may be a file, a directory (walked recursively), or a doublestar glob.
func discoverFiles(input, output string) ([]FileToConvert, error) {
	info, err := os.Stat(input)
	switch {
	case err == nil && info.IsDir():
		return discoverDir(input, output)
	case err == nil:
		out, err := resolveOutputPath(input, output, "")
		if err != nil {
			return nil, err
		}
		return []FileToConvert{{InputPath: input, OutputPath: out}}, nil
	case errors.Is(err, os.ErrNotExist) && isGlob(input):
		return discoverGlob(input, output)
	default:
		return nil, readError(input, err)
	}
}

// discoverDir walks dir for markdown files. Outputs mirror the tree under output.
func discoverDir(dir, output string) ([]FileToConvert, error) {
	var files []FileToConvert
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !fileutil.IsMarkdownFile(path) {
			return nil
		}
		out, err := resolveOutputPath(path, output, dir)
		if err != nil {
			return err
		}
		files = append(files, FileToConvert{InputPath: path, OutputPath: out})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %w", ErrReadMarkdown, dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no markdown files in %s", ErrNoInput, dir)
	}
	return files, nil
}

// discoverGlob matches pattern relative to its static prefix. Every matching
// file is converted, whatever its extension.
func discoverGlob(pattern, output string) ([]FileToConvert, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	baseDir := filepath.FromSlash(base)

	matches, err := doublestar.Glob(os.DirFS(baseDir), rest, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern %q: %v", ErrUsage, pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrNoInput, pattern)
	}
	sort.Strings(matches)

	files := make([]FileToConvert, 0, len(matches))
	for _, m := range matches {
		in := filepath.Join(baseDir, filepath.FromSlash(m))
		out, err := resolveOutputPath(in, output, baseDir)
		if err != nil {
			return nil, err
		}
		files = append(files, FileToConvert{InputPath: in, OutputPath: out})
	}
	return files, nil
}

// resolveOutputPath determines the output path for inputPath.
//
//   - output empty: next to the input, with an .html extension
//   - output ending in .html or .htm with no baseDir: output itself
//   - otherwise output is a directory; the path of inputPath relative to
//     baseDir is kept beneath it
func resolveOutputPath(inputPath, output, baseDir string) (string, error) {
	if output == "" {
		return fileutil.ReplaceExt(inputPath, htmlExt)
	}
	if baseDir == "" && isHTMLPath(output) {
		return output, nil
	}

	rel := filepath.Base(inputPath)
	if baseDir != "" {
		r, err := filepath.Rel(baseDir, inputPath)
		if err != nil {
			return "", fmt.Errorf("computing relative path: %w", err)
		}
		rel = r
	}
	name, err := fileutil.ReplaceExt(rel, htmlExt)
	if err != nil {
		return "", err
	}
	return filepath.Join(output, name), nil
}

func isHTMLPath(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".html" || ext == ".htm"
}

// validateWorkers checks a --workers value. 0 means auto.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, n)
	}
	if n > md2html.MaxWorkers {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkerCount, n, md2html.MaxWorkers)
	}
	return nil
}
