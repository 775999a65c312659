package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Permissions for created directories and files.
const (
	dirPermissions  = 0o750
	filePermissions = 0o644
)

// CLIConverter is the subset of the converter the CLI uses.
type CLIConverter interface {
	Convert(ctx context.Context, input md2html.Input) (*md2html.Result, error)
}

var _ CLIConverter = (*md2html.Converter)(nil)

// ConversionResult holds the outcome of converting one file.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Lines      int
	Size       int
	Diff       string // unified diff against the existing output, check mode only
	Stale      bool
	Err        error
	Duration   time.Duration
}

// batchOptions controls per-file conversion and reporting.
type batchOptions struct {
	title   string
	quiet   bool
	verbose bool
	check   bool
	now     func() time.Time
}

// runBatch converts files concurrently and prints a report.
// Returns an error if any file failed, or ErrStaleOutput in check mode.
func runBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, p *convertParams, env *Environment) error {
	results := convertBatch(ctx, conv, files, p.workers, p.opts)

	if p.opts.check {
		if failed := printFailures(env, results); failed > 0 {
			return fmt.Errorf("%d of %d file(s) could not be checked", failed, len(results))
		}
		return reportCheck(env, results, p.opts)
	}

	if failed := printResults(env, results, p.opts); failed > 0 {
		return fmt.Errorf("%d of %d conversion(s) failed", failed, len(results))
	}
	return nil
}

// convertBatch fans files out to workers. Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, workers int, opts batchOptions) []ConversionResult {
	results := make([]ConversionResult, len(files))
	if len(files) == 0 {
		return results
	}
	workers = max(1, min(workers, len(files)))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = convertFile(ctx, conv, files[i], opts)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

// convertFile converts one file. In check mode the output is compared
// with the file on disk instead of being written.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, opts batchOptions) (r ConversionResult) {
	start := opts.now()
	r = ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	defer func() { r.Duration = opts.now().Sub(start) }()

	if err := ctx.Err(); err != nil {
		r.Err = err
		return r
	}

	md, err := fileutil.ReadText(f.InputPath)
	if err != nil {
		r.Err = readError(f.InputPath, err)
		return r
	}

	res, err := conv.Convert(ctx, md2html.Input{
		Markdown:  md,
		Title:     opts.title,
		SourceDir: filepath.Dir(f.InputPath),
		OutputDir: filepath.Dir(f.OutputPath),
	})
	if err != nil {
		r.Err = err
		return r
	}
	r.Lines = len(res.Lines)
	r.Size = len(res.HTML)

	if opts.check {
		r.Diff, r.Err = diffOutput(f.OutputPath, res.HTML)
		r.Stale = r.Diff != ""
		return r
	}

	r.Err = writeOutput(f.OutputPath, res.HTML)
	return r
}

// writeOutput creates the parent directory and writes data atomically.
func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w%s", ErrWriteHTML, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(path, data, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteHTML, err)
	}
	return nil
}

// countResults returns succeeded and failed counts.
func countResults(results []ConversionResult) (succeeded, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

// printResults prints a line per file plus a summary and returns the failure count.
// Failures always go to stderr; the rest is suppressed by quiet.
func printResults(env *Environment, results []ConversionResult, opts batchOptions) int {
	succeeded, failed := countResults(results)

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
		case opts.quiet:
		case opts.verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%d lines, %s, %v)\n",
				r.InputPath, r.OutputPath, r.Lines, humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Wrote %s\n", r.OutputPath)
		}
	}

	if !opts.quiet {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed
}

// printFailures prints failed results to stderr and returns their count.
func printFailures(env *Environment, results []ConversionResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			n++
		}
	}
	return n
}

// verboseTiming returns " (size, duration)" in verbose mode, else "".
func verboseTiming(r ConversionResult, opts batchOptions) string {
	if !opts.verbose {
		return ""
	}
	return fmt.Sprintf(" (%s, %v)", humanize.Bytes(uint64(r.Size)), r.Duration.Round(time.Millisecond))
}
