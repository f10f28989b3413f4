package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"accumula/asm"
	"accumula/internal/pipeline"
)

// compileCmd lowers a source file straight to target assembly text,
// written to the given output file.
type compileCmd struct{}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile a source file to target assembly" }
func (*compileCmd) Usage() string {
	return `compile <input.src> <output.mr>:
  Read a source file, verify it, compile it, and write textual assembly.
`
}

func (cmd *compileCmd) SetFlags(f *flag.FlagSet) {}

func (cmd *compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "💥 usage: compile <input.src> <output.mr>")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	prog, err := pipeline.Compile(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(args[1], []byte(asm.Print(prog)), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to write %s: %v\n", args[1], err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
