package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rnote <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert RNote sources to PDF")
	fmt.Fprintln(w, "  check      Report diagnostics without rendering")
	fmt.Fprintln(w, "  serve      Run the HTTP front end")
	fmt.Fprintln(w, "  themes     List themes and templates, or check theme CSS")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'rnote help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

func printDocumentUsage(w io.Writer) {
	fmt.Fprintln(w, "Document Defaults (a source can still change them):")
	fmt.Fprintln(w, "      --theme <name>        Starting theme")
	fmt.Fprintln(w, "      --size <s>            Page size: letter, a4, a5, legal")
	fmt.Fprintln(w, "      --margin <s>          Margin preset: normal, narrow, moderate, wide")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --date-format <s>     $date format")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with themes/*.css and templates/*.rntp")
	fmt.Fprintln(w)
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel browsers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rnote convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert RNote sources to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .rn file, directory, or - for stdin (named after the title)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "      --css <path>          Extra CSS appended after the theme")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "      --strict              Fail documents with error diagnostics")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printRenderUsage(w)
	printCommonUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rnote check <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile sources without rendering and print diagnostics as")
	fmt.Fprintln(w, "file:line: severity: message. Fails on error diagnostics.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --strict              Fail on warnings too")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rnote serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP front end.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET  /           Editor form")
	fmt.Fprintln(w, "  POST /render     Form field 'code' -> PDF")
	fmt.Fprintln(w, "  POST /compile    Form field 'code' -> JSON (html, style, diagnostics)")
	fmt.Fprintln(w, "  GET  /healthz    Health probe")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printRenderUsage(w)
	printCommonUsage(w)
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rnote themes [name]... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List themes and templates. With --check, check the CSS grammar of")
	fmt.Fprintln(w, "the named themes, or all of them.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --check               Check theme CSS")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with themes/*.css and templates/*.rntp")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rnote config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration as YAML.")
	fmt.Fprintln(w, "Precedence: flags > RNOTE_* environment > config file > defaults.")
	fmt.Fprintln(w)
	printDocumentUsage(w)
	printRenderUsage(w)
	printCommonUsage(w)
}

// commandUsage maps command names to their usage printers.
var commandUsage = map[string]func(io.Writer){
	"convert": printConvertUsage,
	"check":   printCheckUsage,
	"serve":   printServeUsage,
	"themes":  printThemesUsage,
	"config":  printConfigUsage,
	"version": func(w io.Writer) {
		fmt.Fprintln(w, "Usage: rnote version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	},
	"help": func(w io.Writer) {
		fmt.Fprintln(w, "Usage: rnote help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	},
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	usage, ok := commandUsage[args[0]]
	if !ok {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	usage(env.Stdout)
	return ExitSuccess
}
