package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2html/internal/config"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// shells lists the supported shells in help order.
var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// markdownGlob matches the files convert picks up in a directory walk.
const markdownGlob = "*.md,*.markdown,*.mdown"

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values (shell names, command names)
	FilePattern string   // glob for file arguments, empty if none
}

// completionMeta holds the completion hints a FlagSet cannot express.
// Names, types, and descriptions come from the FlagSet itself.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine":     {Values: config.Engines},
	"config":     {FileGlob: "*.yaml,*.yml"},
	"style":      {FileGlob: "*.css"},
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet converts a FlagSet into completion definitions.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type, fd.Values = flagEnum, meta.Values
			case meta.FileGlob != "":
				fd.Type, fd.FileGlob = flagFile, meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are read from the FlagSets the commands parse with.
func getCommands() []commandDef {
	shellNames := make([]string, len(shells))
	for i, s := range shells {
		shellNames[i] = string(s)
	}

	return []commandDef{
		{
			Name:        cmdConvert,
			Desc:        "Convert markdown to HTML",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			FilePattern: markdownGlob,
		},
		{
			Name:  cmdStyles,
			Desc:  "List available CSS styles",
			Flags: extractFlagsFromFlagSet(newConfigFlagSet(cmdStyles, &configFlags{})),
		},
		{
			Name:  cmdConfig,
			Desc:  "Print the effective configuration",
			Flags: extractFlagsFromFlagSet(newConfigFlagSet(cmdConfig, &configFlags{})),
		},
		{Name: cmdVersion, Desc: "Show version information"},
		{
			Name: cmdHelp,
			Desc: "Show help for a command",
			Args: []string{cmdConvert, cmdStyles, cmdConfig, cmdVersion, cmdCompletion},
		},
		{Name: cmdCompletion, Desc: "Generate shell completion script", Args: shellNames},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()

	var script string
	switch shell {
	case ShellBash:
		script = generateBash(cmds)
	case ShellZsh:
		script = generateZsh(cmds)
	case ShellFish:
		script = generateFish(cmds)
	case ShellPowerShell:
		script = generatePowerShell(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell name", ErrUsage)
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2html completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(md2html completion bash)\"          # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(md2html completion zsh)\"           # ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:        md2html completion fish > ~/.config/fish/completions/md2html.fish")
	fmt.Fprintln(w, "  PowerShell:  md2html completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// globExts returns the extensions of a "*.a,*.b" glob list: ["a", "b"].
func globExts(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// flagNames returns "--long" and "-s" spellings of every flag.
func flagNames(flags []flagDef) []string {
	var names []string
	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

// commandNames returns the names of cmds in order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// takesValue reports whether the flag consumes the next word.
func takesValue(f flagDef) bool {
	return f.Type != flagBool
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func generateBash(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for md2html\n")
	b.WriteString("_md2html_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n")

	fmt.Fprintf(&b, "    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") $(compgen -f -X '!*.@(%s)' -- \"$cur\") )\n",
		strings.Join(commandNames(cmds), " "), strings.Join(globExts(markdownGlob), "|"))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valueCases []string
		for _, f := range c.Flags {
			if !takesValue(f) {
				continue
			}
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern += "|-" + f.Short
			}
			var action string
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf("compgen -W \"%s\" -- \"$cur\"", strings.Join(f.Values, " "))
			case flagFile:
				action = fmt.Sprintf("compgen -f -X '!*.@(%s)' -- \"$cur\"", strings.Join(globExts(f.FileGlob), "|"))
			case flagDir:
				action = "compgen -d -- \"$cur\""
			default:
				action = ""
			}
			if action == "" {
				valueCases = append(valueCases, fmt.Sprintf("            %s) return ;;\n", pattern))
				continue
			}
			valueCases = append(valueCases, fmt.Sprintf("            %s) COMPREPLY=( $(%s) ); return ;;\n", pattern, action))
		}
		if len(valueCases) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, vc := range valueCases {
				b.WriteString(vc)
			}
			b.WriteString("        esac\n")
		}

		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(flagNames(c.Flags), " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch {
		case c.FilePattern != "":
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"$cur\") $(compgen -d -- \"$cur\") )\n",
				strings.Join(globExts(c.FilePattern), "|"))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=( $(compgen -W \"%s\" -- \"$cur\") )\n", strings.Join(c.Args, " "))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _md2html_completions md2html\n")
	return b.String()
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

// zshEscape escapes text for use inside a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// zshAction returns the _arguments action for a flag value.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return "(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return "_files -g \"*.(" + strings.Join(globExts(f.FileGlob), "|") + ")\""
	case flagDir:
		return "_files -/"
	default:
		return ""
	}
}

func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"
	if takesValue(f) {
		desc += ":" + f.Long + ":" + zshAction(f)
	}
	if f.Short == "" {
		return fmt.Sprintf("'--%s%s'", f.Long, desc)
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s'", f.Short, f.Long, f.Short, f.Long, desc)
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef md2html\n\n")
	b.WriteString("_md2html() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe -t commands 'md2html command' commands\n")
	fmt.Fprintf(&b, "        _files -g \"*.(%s)\"\n", strings.Join(globExts(markdownGlob), "|"))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    local cmd=${words[2]}\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		specs := make([]string, 0, len(c.Flags)+1)
		for _, f := range c.Flags {
			specs = append(specs, zshFlagSpec(f))
		}
		switch {
		case c.FilePattern != "":
			specs = append(specs, fmt.Sprintf("'*:file:_files -g \"*.(%s)\"'", strings.Join(globExts(c.FilePattern), "|")))
		case len(c.Args) > 0:
			specs = append(specs, fmt.Sprintf("'1:%s:(%s)'", c.Name, strings.Join(c.Args, " ")))
		}
		if len(specs) > 0 {
			b.WriteString("            _arguments -s")
			for _, s := range specs {
				b.WriteString(" \\\n                " + s)
			}
			b.WriteString("\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2html md2html\n")
	return b.String()
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s) + "'"
}

func fishSuffixes(glob string) string {
	exts := globExts(glob)
	for i, e := range exts {
		exts[i] = "." + e
	}
	return "(__fish_complete_suffix " + strings.Join(exts, " ") + ")"
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for md2html\n\n")
	b.WriteString("function __fish_md2html_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2html_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2html -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2html -n __fish_md2html_needs_command -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}
	fmt.Fprintf(&b, "complete -c md2html -n __fish_md2html_needs_command -a %s\n", fishQuote(fishSuffixes(markdownGlob)))

	for _, c := range cmds {
		cond := fishQuote("__fish_md2html_using_command " + c.Name)
		b.WriteString("\n")
		for _, f := range c.Flags {
			line := "complete -c md2html -n " + cond
			if f.Short != "" {
				line += " -s " + f.Short
			}
			line += " -l " + f.Long
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += " -x -a " + fishQuote(strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -a " + fishQuote(fishSuffixes(f.FileGlob))
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += " -d " + fishQuote(f.Desc)
			b.WriteString(line + "\n")
		}
		switch {
		case c.FilePattern != "":
			fmt.Fprintf(&b, "complete -c md2html -n %s -a %s\n", cond, fishQuote(fishSuffixes(c.FilePattern)))
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c md2html -n %s -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

// psQuote single-quotes s for PowerShell.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psArray(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = psQuote(s)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for md2html\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2html -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(flagNames(c.Flags)))
		}
	}
	b.WriteString("    }\n")

	// Enum values are keyed by every spelling of the flag.
	b.WriteString("    $values = @{\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        %s = %s\n", psQuote("--"+f.Long), psArray(f.Values))
			if f.Short != "" {
				fmt.Fprintf(&b, "        %s = %s\n", psQuote("-"+f.Short), psArray(f.Values))
			}
		}
	}
	b.WriteString("    }\n")

	b.WriteString("    $positional = @{\n")
	for _, c := range cmds {
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psArray(c.Args))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    if ($elements.Count -lt 2 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    $prev = if ($wordToComplete) { $elements[-2] } else { $elements[-1] }\n")
	b.WriteString("    $candidates = @()\n")
	b.WriteString("    if ($values.ContainsKey($prev)) {\n")
	b.WriteString("        $candidates = $values[$prev]\n")
	b.WriteString("    } elseif ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $candidates = $flags[$cmd]\n")
	b.WriteString("    } elseif ($positional.ContainsKey($cmd)) {\n")
	b.WriteString("        $candidates = $positional[$cmd]\n")
	b.WriteString("    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}
