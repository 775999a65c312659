package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// Sentinel errors for the convert command.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadMarkdown       = errors.New("failed to read markdown")
	ErrWriteHTML          = errors.New("failed to write HTML")
	ErrOutputConflict     = errors.New("conflicting output options")
	ErrStaleOutput        = errors.New("output is out of date")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrUsage              = errors.New("invalid usage")
)

// stdinArg is the input argument that reads markdown from stdin.
const stdinArg = "-"

// convertParams is the fully merged configuration of one convert run.
type convertParams struct {
	cfg     *config.Config
	input   string
	output  string
	workers int
	opts    batchOptions
	watch   bool
}

// runConvert implements the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	p, err := prepareConvert(args, env)
	if err != nil {
		return err
	}

	conv, err := newConverter(p.cfg)
	if err != nil {
		return err
	}

	if p.input == stdinArg {
		return convertStdin(ctx, conv, p, env)
	}

	files, err := discoverFiles(p.input, p.output)
	if err != nil {
		return err
	}

	if isSingleInput(p.input) {
		if p.output == "" {
			return convertToStdout(ctx, conv, files[0], p, env)
		}
		if err := convertSingle(ctx, conv, files[0], p, env); err != nil {
			return err
		}
	} else if err := runBatch(ctx, conv, files, p, env); err != nil {
		return err
	}

	if p.watch {
		return watchAndConvert(ctx, conv, files, p.opts, env)
	}
	return nil
}

// prepareConvert parses flags and merges them with the environment and config file.
func prepareConvert(args []string, env *Environment) (*convertParams, error) {
	f, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	switch len(positional) {
	case 0, 1:
	case 2:
		if f.output != "" && f.output != positional[1] {
			return nil, fmt.Errorf("%w: output given both as argument and -o", ErrOutputConflict)
		}
		f.output = positional[1]
	default:
		return nil, fmt.Errorf("%w: too many arguments", ErrUsage)
	}

	warnUnknownEnvVars(env.Stderr)
	envs, err := loadEnvConfig()
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(f.common.config, envs.Config)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(cfg, envs)
	mergeFlags(f, cfg)
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrInvalidEngine) {
			return nil, fmt.Errorf("%w%s", err, hints.ForInvalidEngine(config.Engines))
		}
		return nil, err
	}

	workers := f.workers
	if workers == 0 {
		workers = envs.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return nil, err
	}

	p := &convertParams{
		cfg:     cfg,
		output:  f.output,
		workers: md2html.ResolveWorkers(workers),
		watch:   f.mode.watch,
		opts: batchOptions{
			title:   cfg.Document.Title,
			quiet:   f.common.quiet,
			verbose: f.common.verbose,
			check:   f.mode.check,
			now:     env.Now,
		},
	}

	if len(positional) > 0 {
		p.input = positional[0]
	} else {
		p.input = cfg.Input.DefaultDir
	}
	if p.input == "" {
		return nil, fmt.Errorf("%w%s", ErrNoInput, hints.ForNoInput())
	}
	if p.output == "" {
		p.output = cfg.Output.DefaultDir
	}

	if p.watch && p.opts.check {
		return nil, fmt.Errorf("%w: --watch and --check cannot be combined", ErrOutputConflict)
	}
	if p.watch && p.input == stdinArg {
		return nil, fmt.Errorf("%w: --watch cannot read from stdin", ErrOutputConflict)
	}
	if p.watch && p.output == "" && isSingleInput(p.input) {
		return nil, fmt.Errorf("%w: --watch needs an output file", ErrOutputConflict)
	}
	if p.opts.check && p.output == "" && isSingleInput(p.input) {
		return nil, fmt.Errorf("%w: --check needs an output file to compare with", ErrOutputConflict)
	}

	return p, nil
}

// loadConfig loads the named config, falling back to MD2HTML_CONFIG.
// With neither set, defaults are returned.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		var nf *config.NotFoundError
		if errors.As(err, &nf) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(nf.Searched))
		}
		return nil, err
	}
	return cfg, nil
}

// mergeFlags overlays explicitly set flags onto cfg.
func mergeFlags(f *convertFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.Engine = f.engine
	}
	if f.document.standaloneSet {
		cfg.Output.Standalone = f.document.standalone
	}
	if f.document.title != "" {
		cfg.Document.Title = f.document.title
	}
	if f.document.lang != "" {
		cfg.Document.Lang = f.document.lang
	}
	if f.assets.style != "" {
		cfg.CSS.Style = f.assets.style
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
}

// newConverter builds a converter from the merged config.
func newConverter(cfg *config.Config) (*md2html.Converter, error) {
	engine, err := md2html.ParseEngine(cfg.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForInvalidEngine(config.Engines))
	}

	conv, err := md2html.NewConverter(
		md2html.WithEngine(engine),
		md2html.WithStandalone(cfg.Output.Standalone),
		md2html.WithStyle(cfg.CSS.Style),
		md2html.WithAssetPath(cfg.Assets.BasePath),
		md2html.WithLang(cfg.Document.Lang),
	)
	if err != nil {
		if errors.Is(err, md2html.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(availableStyles(cfg.Assets.BasePath)))
		}
		return nil, err
	}
	return conv, nil
}

// availableStyles lists style names for hints. Errors yield an empty list.
func availableStyles(assetPath string) []string {
	loader, err := md2html.NewAssetLoader(assetPath)
	if err != nil {
		return nil
	}
	names, err := loader.Styles()
	if err != nil {
		return nil
	}
	return names
}

// convertToStdout converts one file and prints the HTML (no progress output).
func convertToStdout(ctx context.Context, conv CLIConverter, f FileToConvert, p *convertParams, env *Environment) error {
	md, err := fileutil.ReadText(f.InputPath)
	if err != nil {
		return readError(f.InputPath, err)
	}
	res, err := conv.Convert(ctx, md2html.Input{Markdown: md, Title: p.opts.title})
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(res.HTML)
	return err
}

// convertSingle converts one file to an output file with progress lines.
func convertSingle(ctx context.Context, conv CLIConverter, f FileToConvert, p *convertParams, env *Environment) error {
	if !p.opts.quiet {
		fmt.Fprintf(env.Stdout, "Reading %s\n", f.InputPath)
	}

	r := convertFile(ctx, conv, f, p.opts)
	if r.Err != nil {
		return r.Err
	}

	if p.opts.check {
		return reportCheck(env, []ConversionResult{r}, p.opts)
	}

	if !p.opts.quiet {
		fmt.Fprintf(env.Stdout, "Converted %d lines%s\n", r.Lines, verboseTiming(r, p.opts))
		fmt.Fprintf(env.Stdout, "Wrote %s\n", f.OutputPath)
	}
	return nil
}

// convertStdin converts markdown read from stdin.
func convertStdin(ctx context.Context, conv CLIConverter, p *convertParams, env *Environment) error {
	if env.StdinIsTerminal != nil && env.StdinIsTerminal() {
		fmt.Fprintln(env.Stderr, strings.TrimPrefix(hints.ForStdinTerminal(), "\n"))
	}

	md, err := fileutil.DecodeText(env.Stdin)
	if err != nil {
		return fmt.Errorf("%w: stdin: %w", ErrReadMarkdown, err)
	}

	input := md2html.Input{Markdown: md, Title: p.opts.title}
	if p.output != "" {
		input.SourceDir = "."
		input.OutputDir = filepath.Dir(p.output)
	}
	res, err := conv.Convert(ctx, input)
	if err != nil {
		return err
	}

	if p.output == "" {
		_, err = env.Stdout.Write(res.HTML)
		return err
	}

	if p.opts.check {
		d, err := diffOutput(p.output, res.HTML)
		if err != nil {
			return err
		}
		return reportCheck(env, []ConversionResult{{InputPath: stdinArg, OutputPath: p.output, Diff: d, Stale: d != ""}}, p.opts)
	}

	if err := writeOutput(p.output, res.HTML); err != nil {
		return err
	}
	if !p.opts.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s\n", p.output)
	}
	return nil
}

// readError wraps a read failure, adding a hint when the file is missing.
func readError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w%s", ErrReadMarkdown, err, hints.ForInputNotFound(path))
	}
	return fmt.Errorf("%w: %w", ErrReadMarkdown, err)
}
