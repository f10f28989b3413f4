package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"accumula/internal/pipeline"
	"accumula/vm"
)

// runFileCmd compiles a source file and runs it in one step, against the
// console for I/O.
type runFileCmd struct {
	verbose bool
}

func (*runFileCmd) Name() string     { return "run_file" }
func (*runFileCmd) Synopsis() string { return "Compile and run a source file" }
func (*runFileCmd) Usage() string {
	return `run_file [-v] <source.acc>:
  Compile a source file and execute it immediately, reading Get input and
  writing Put output on the console.
`
}

func (cmd *runFileCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.verbose, "v", false, "log every instruction executed")
}

func (cmd *runFileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "💥 source file not provided")
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

	world := vm.NewConsoleWorld(os.Stdin, os.Stdout, cmd.verbose)
	interp := vm.New(world, prog)
	if _, err := interp.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "💥 runtime error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Run successful, cost: %d\n", interp.Cost())
	return subcommands.ExitSuccess
}
