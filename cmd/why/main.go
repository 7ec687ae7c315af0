// Command why is the thin CLI wrapper around the semantic-analysis
// pipeline (SPEC_FULL.md §6.3): it reads a .why source file, drives it
// through lex/parse/check/validate, optionally dumps an intermediate
// stage, and reports the first failure with a caret diagram. Flags are
// parsed by hand off os.Args, matching cmd/funxy/main.go in the teacher
// repo rather than reaching for flag.FlagSet or a CLI framework.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/H1ghBre4k3r/y-lang-sub001/internal/diag"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/pipeline"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/printer"
	"github.com/H1ghBre4k3r/y-lang-sub001/internal/span"
)

type options struct {
	path           string
	printLexed     bool
	printParsed    bool
	printChecked   bool
	printValidated bool
	out            string
}

// operational CLI messages (bad flags, missing file) are logged through
// this plain logger, kept distinct from diag.Render's user-facing
// compiler diagnostics — the same separation the teacher draws between
// fmt.Fprintf(os.Stderr, ...) CLI errors and diagnostics.DiagnosticError.
var opLog = log.New(os.Stderr, "", 0)

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-l", "--print-lexed":
			o.printLexed = true
		case "-p", "--print-parsed":
			o.printParsed = true
		case "-c", "--print-checked":
			o.printChecked = true
		case "-v", "--print-validated":
			o.printValidated = true
		case "-o":
			if i+1 >= len(args) {
				return o, fmt.Errorf("-o requires an output path")
			}
			i++
			o.out = args[i]
		default:
			if o.path != "" {
				return o, fmt.Errorf("unexpected argument %q", args[i])
			}
			o.path = args[i]
		}
	}
	if o.path == "" {
		return o, fmt.Errorf("usage: why [-l] [-p] [-c] [-v] [-o out] <source.why>")
	}
	return o, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		opLog.Println(err)
		return 1
	}

	text, err := os.ReadFile(opts.path)
	if err != nil {
		opLog.Printf("cannot read %s: %v", opts.path, err)
		return 1
	}

	sources := span.NewSourceSet()
	ctx, runErr := pipeline.Run(sources, opts.path, string(text))

	if opts.printLexed && ctx.Tokens != nil {
		fmt.Print(printer.Tokens(ctx.Tokens))
	}
	if opts.printParsed && ctx.Untyped != nil {
		fmt.Print(printer.Untyped(ctx.Untyped))
	}
	if opts.printChecked && ctx.Checked != nil {
		fmt.Print(printer.Checked(ctx.Checked, ctx.Arena))
	}
	if opts.printValidated && ctx.Validated != nil {
		fmt.Print(printer.Validated(ctx.Validated))
	}

	if runErr != nil {
		colorize := isatty.IsTerminal(os.Stderr.Fd())
		if de, ok := runErr.(*diag.Error); ok {
			fmt.Fprintln(os.Stderr, diag.Render(de, sources.Text(ctx.Source), colorize))
		} else {
			fmt.Fprintln(os.Stderr, runErr)
		}
		return 1
	}

	if opts.out != "" {
		opLog.Println("no code generator configured")
		return 1
	}

	return 0
}
