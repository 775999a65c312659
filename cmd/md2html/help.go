package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown to HTML")
	fmt.Fprintln(w, "  styles     List available CSS styles")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shorthand: 'md2html file.md' is 'md2html convert file.md'.")
	fmt.Fprintln(w, "Run 'md2html help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html convert <input> [output] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to HTML. With a single file and no output, HTML is")
	fmt.Fprintln(w, "printed to stdout; otherwise it is written to .html files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input     Markdown file, directory, glob (\"docs/**/*.md\"), or - for stdin")
	fmt.Fprintln(w, "            (optional if config has input.defaultDir)")
	fmt.Fprintln(w, "  output    Output file or directory (same as -o)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -e, --engine <s>          Engine: line (default), commonmark")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -s, --standalone          Wrap output in a full HTML5 document")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = auto from H1)")
	fmt.Fprintln(w, "      --lang <s>            html lang attribute (default: en)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling (standalone only):")
	fmt.Fprintln(w, "      --style <s>           Style name, .css path, or inline CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/{name}.css overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Modes:")
	fmt.Fprintln(w, "      --watch               Reconvert inputs when they change (Ctrl-C to stop)")
	fmt.Fprintln(w, "      --check               Print a diff for stale outputs, write nothing, exit 4")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and sizes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2HTML_CONFIG, MD2HTML_ENGINE, MD2HTML_STYLE, MD2HTML_LANG,")
	fmt.Fprintln(w, "  MD2HTML_ASSET_PATH, MD2HTML_INPUT_DIR, MD2HTML_OUTPUT_DIR, MD2HTML_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printCommandUsage prints usage for the commands without their own printer.
func printCommandUsage(w io.Writer, command string) {
	switch command {
	case "styles":
		fmt.Fprintln(w, "Usage: md2html styles [--asset-path <dir>] [--config <name>]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List the embedded styles and any found in <dir>/styles.")
	case "config":
		fmt.Fprintln(w, "Usage: md2html config [--config <name>]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Print the configuration after applying the config file and environment.")
	case "version":
		fmt.Fprintln(w, "Usage: md2html version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: md2html help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	}
}

// runHelp prints help for a specific command.
// Returns false for an unknown command.
func runHelp(args []string, env *Environment) bool {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return true
	}

	switch args[0] {
	case cmdConvert:
		printConvertUsage(env.Stdout)
	case cmdStyles, cmdConfig, cmdVersion, cmdHelp:
		printCommandUsage(env.Stdout, args[0])
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return false
	}
	return true
}
