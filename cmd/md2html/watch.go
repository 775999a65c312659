package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the bursts of events editors emit for one save.
var watchDebounce = 100 * time.Millisecond

// watchAndConvert reconverts files when they change, until ctx is done.
// Parent directories are watched rather than the files so that editors
// which save by rename are still seen.
func watchAndConvert(ctx context.Context, conv CLIConverter, files []FileToConvert, opts batchOptions, env *Environment) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	byPath, dirs, err := watchTargets(files)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	if !opts.quiet {
		fmt.Fprintf(env.Stdout, "Watching %d file(s), press Ctrl-C to stop\n", len(files))
	}

	timer := time.NewTimer(watchDebounce)
	timer.Stop()
	pending := make(map[string]FileToConvert)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			f, ok := byPath[abs]
			if !ok {
				continue
			}
			pending[abs] = f
			timer.Reset(watchDebounce)

		case <-timer.C:
			for key, f := range pending {
				r := convertFile(ctx, conv, f, opts)
				printWatchResult(env, r, opts)
				delete(pending, key)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(env.Stderr, "watch error: %v\n", err)
		}
	}
}

// watchTargets indexes files by absolute input path and lists their unique directories.
func watchTargets(files []FileToConvert) (map[string]FileToConvert, []string, error) {
	byPath := make(map[string]FileToConvert, len(files))
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range files {
		abs, err := filepath.Abs(f.InputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %s: %w", f.InputPath, err)
		}
		byPath[abs] = f
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return byPath, dirs, nil
}

func printWatchResult(env *Environment, r ConversionResult, opts batchOptions) {
	if r.Err != nil {
		fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
		return
	}
	if opts.quiet {
		return
	}
	fmt.Fprintf(env.Stdout, "%s Wrote %s%s\n", env.Now().Format(time.TimeOnly), r.OutputPath, verboseTiming(r, opts))
}
