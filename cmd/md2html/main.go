// Command md2html converts Markdown files to HTML.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdConvert    = "convert"
	cmdStyles     = "styles"
	cmdConfig     = "config"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

func main() {
	// GOMAXPROCS follows the container CPU quota; auto worker counts derive from it.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args to a command and returns the process exit code.
// args[0] is the program name.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]

	// Shorthand: md2html file.md == md2html convert file.md
	if !isCommand(cmd) && (looksLikeMarkdown(cmd) || cmd == "-") {
		cmd, rest = cmdConvert, args[1:]
	}

	var err error
	switch cmd {
	case cmdConvert:
		err = runConvert(ctx, rest, env)
	case cmdStyles:
		err = runStyles(rest, env)
	case cmdConfig:
		err = runConfigCmd(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "md2html %s\n", Version)
	case cmdCompletion:
		err = runCompletion(rest, env)
	case cmdHelp:
		if !runHelp(rest, env) {
			return ExitUsage
		}
	case "-h", "--help":
		printUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	switch arg {
	case cmdConvert, cmdStyles, cmdConfig, cmdVersion, cmdHelp, cmdCompletion:
		return true
	}
	return false
}

// looksLikeMarkdown reports whether arg is a markdown path or a glob for one.
func looksLikeMarkdown(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	return fileutil.IsMarkdownFile(arg) || isGlob(arg)
}

// notifyContext returns a context canceled on SIGINT or SIGTERM.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
