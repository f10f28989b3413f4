package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"accumula/asm"
	"accumula/vm"
)

// vmCmd runs a pre-compiled assembly file directly, bypassing the compiler
// entirely. It runs in extended mode, since a hand-assembled .mr file may
// use Mul/Div/Mod even though the compiler itself never emits them.
type vmCmd struct {
	verbose bool
}

func (*vmCmd) Name() string     { return "vm" }
func (*vmCmd) Synopsis() string { return "Run a pre-compiled assembly file" }
func (*vmCmd) Usage() string {
	return `vm <input.mr> [-v]:
  Parse and interpret a pre-compiled assembly file.
`
}

func (cmd *vmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.verbose, "v", false, "log every instruction executed")
}

func (cmd *vmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "💥 usage: vm <input.mr> [-v]")
		return subcommands.ExitUsageError
	}
	for _, a := range args[1:] {
		if a == "-v" {
			cmd.verbose = true
		}
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	prog, err := asm.Parse(string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}

	world := vm.NewConsoleWorld(os.Stdin, os.Stdout, cmd.verbose)
	interp := vm.NewExtended(world, prog)
	if _, err := interp.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "💥 runtime error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Run successful, cost: %d\n", interp.Cost())
	return subcommands.ExitSuccess
}
