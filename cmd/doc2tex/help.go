package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: doc2tex [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert .docx and Markdown files to LaTeX (default)")
	fmt.Fprintln(w, "  repair     Fix escaping artifacts in existing .tex files")
	fmt.Fprintln(w, "  doctor     Check engine and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'doc2tex help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: doc2tex convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert .docx, .md and .markdown files to LaTeX fragments.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    File or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .tex file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --integration <name>  Write <name>.tex with one \\input per document")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Engine:")
	fmt.Fprintln(w, "      --engine <s>          Translation engine: native, pandoc")
	fmt.Fprintln(w, "      --no-repair           Skip the escaping repair pass")
	fmt.Fprintln(w, "      --max-passes <n>      Repair passes per document (0-10)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show per-file details and debug logs")
	fmt.Fprintln(w, "      --strict              Exit 4 when any file fails")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOC2TEX_CONFIG, DOC2TEX_OUTPUT_DIR, DOC2TEX_ENGINE, DOC2TEX_WORKERS")
}

// printRepairUsage prints usage for the repair command.
func printRepairUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: doc2tex repair <file-or-dir> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Remove over-escaping artifacts from existing .tex files.")
	fmt.Fprintln(w, "Files are rewritten in place unless --output is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Write repaired files here")
	fmt.Fprintln(w, "      --dry-run             Report issues without writing")
	fmt.Fprintln(w, "      --max-passes <n>      Passes per file until stable (1-10)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             List unchanged files too")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "repair":
		printRepairUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: doc2tex doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that the configured engine is usable.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: doc2tex version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: doc2tex help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
