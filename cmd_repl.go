package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"accumula/asm"
	"accumula/internal/pipeline"
	"accumula/vm"
)

// replCmd is an interactive session: a snippet is entered line by line,
// terminated by a blank line, then compiled (if it looks like a
// DECLARE/BEGIN/END program) or assembled (if it looks like target
// assembly) and run immediately, printing its cost.
type replCmd struct {
	verbose bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive session" }
func (*replCmd) Usage() string {
	return `repl [-v]:
  Read a snippet of either source or target assembly, terminated by a
  blank line, and run it. Type "exit" on its own line to quit.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.verbose, "v", false, "log every instruction executed")
}

func (cmd *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to start readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("accumula interactive session — enter a snippet, blank line to run, \"exit\" to quit")

	var buffer strings.Builder
	for {
		prompt := ">>> "
		if buffer.Len() > 0 {
			prompt = "... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return subcommands.ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if strings.TrimSpace(line) == "" {
			if buffer.Len() == 0 {
				continue
			}
			cmd.runSnippet(buffer.String())
			buffer.Reset()
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")
	}
}

func (cmd *replCmd) runSnippet(snippet string) {
	var prog vm.Program
	extended := pipeline.LooksLikeAssembly(snippet)
	if extended {
		p, err := asm.Parse(snippet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return
		}
		prog = p
	} else {
		p, err := pipeline.Compile(snippet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return
		}
		prog = p
	}

	world := vm.NewConsoleWorld(os.Stdin, os.Stdout, cmd.verbose)
	var interp *vm.Interpreter
	if extended {
		interp = vm.NewExtended(world, prog)
	} else {
		interp = vm.New(world, prog)
	}
	if _, err := interp.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "💥 runtime error: %v\n", err)
		return
	}
	fmt.Printf("Run successful, cost: %d\n", interp.Cost())
}
