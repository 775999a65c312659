package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds standalone document flags.
type documentFlags struct {
	standalone    bool
	standaloneSet bool // --standalone given explicitly, true or false
	title         string
	lang          string
}

// assetFlags holds style-related flags.
type assetFlags struct {
	style     string // name, .css path, or raw CSS
	assetPath string // custom asset directory
}

// modeFlags holds flags that change what convert does with its output.
type modeFlags struct {
	watch bool
	check bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	workers  int
	engine   string
	document documentFlags
	assets   assetFlags
	mode     modeFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds standalone document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "wrap output in a full HTML5 document")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = auto from H1)")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute (default: en)")
}

// addAssetFlags adds style flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or inline CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addModeFlags adds watch and check flags to a FlagSet.
func addModeFlags(fs *flag.FlagSet, f *modeFlags) {
	fs.BoolVar(&f.watch, "watch", false, "reconvert inputs when they change")
	fs.BoolVar(&f.check, "check", false, "report stale outputs without writing")
}

// newConvertFlagSet registers every convert flag into f.
// Parsing and shell completion share it.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(cmdConvert, flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.engine, "engine", "e", "", "conversion engine: line, commonmark")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addAssetFlags(fs, &f.assets)
	addModeFlags(fs, &f.mode)

	fs.Usage = func() { printConvertUsage(os.Stderr) }
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.document.standaloneSet = fs.Changed("standalone")

	return f, fs.Args(), nil
}

// configFlags holds flags for the config and styles commands.
type configFlags struct {
	config    string
	assetPath string
}

// newConfigFlagSet registers the flags of the styles and config commands.
func newConfigFlagSet(name string, f *configFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.Usage = func() { printCommandUsage(os.Stderr, name) }
	return fs
}

// parseConfigFlags parses flags for commands that only read configuration.
func parseConfigFlags(name string, args []string) (*configFlags, []string, error) {
	f := &configFlags{}
	fs := newConfigFlagSet(name, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
