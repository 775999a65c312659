package main

import (
	"errors"
	"fmt"
	"os"

	diff "github.com/shogoki/gotextdiff"

	"github.com/alnah/go-md2html/internal/hints"
)

// diffOutput returns a unified diff from the file at path to want.
// An empty string means the file is up to date. A missing file diffs
// against empty content.
func diffOutput(path string, want []byte) (string, error) {
	current, err := os.ReadFile(path) // #nosec G304 -- output path chosen by the user
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(diff.Diff(path, current, path, want)), nil
}

// reportCheck prints diffs for stale results and returns ErrStaleOutput if any.
func reportCheck(env *Environment, results []ConversionResult, opts batchOptions) error {
	stale := 0
	for _, r := range results {
		if !r.Stale {
			continue
		}
		stale++
		if !opts.quiet {
			fmt.Fprint(env.Stdout, r.Diff)
		}
	}

	if stale > 0 {
		return fmt.Errorf("%w: %d of %d file(s)%s", ErrStaleOutput, stale, len(results), hints.ForStaleOutput())
	}
	if !opts.quiet {
		fmt.Fprintf(env.Stdout, "%d file(s) up to date\n", len(results))
	}
	return nil
}
