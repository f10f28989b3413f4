// Package pipeline wires the front end (lexer, parser, verifier) and back
// end (ir, codegen) together into the two operations every CLI verb needs:
// compiling source text down to a vm.Program, and telling raw assembly text
// apart from source. It exists so main's subcommands stay thin dispatchers.
package pipeline

import (
	"fmt"
	"strings"

	"accumula/asm"
	"accumula/codegen"
	"accumula/ir"
	"accumula/lexer"
	"accumula/parser"
	"accumula/verifier"
	"accumula/vm"
)

// Compile lexes, parses, verifies, and translates src into a target
// program. The returned error, when non-nil, already has the lexer's first
// failure, or every parser or verifier failure, folded into its message.
func Compile(src string) (vm.Program, error) {
	toks, err := lexer.New(src).Scan()
	if err != nil {
		return vm.Program{}, fmt.Errorf("lexing error: %w", err)
	}

	program, errs := parser.Create(toks).Parse()
	if len(errs) > 0 {
		return vm.Program{}, fmt.Errorf("parse errors:\n%s", joinErrors(errs))
	}

	if errs := verifier.Verify(program); len(errs) > 0 {
		return vm.Program{}, fmt.Errorf("semantic errors:\n%s", joinErrors(errs))
	}

	ctx := ir.Build(program)
	return codegen.Generate(ctx), nil
}

// LooksLikeAssembly guesses whether text is already target assembly rather
// than source to compile, by checking whether asm.Parse accepts the whole
// text and finds at least one instruction in it. Source programs always
// open with DECLARE or BEGIN, neither of which is a mnemonic, so this is
// unambiguous for any well-formed input.
func LooksLikeAssembly(text string) bool {
	prog, err := asm.Parse(text)
	return err == nil && len(prog.Instructions) > 0
}

func joinErrors(errs []error) string {
	var b strings.Builder
	for _, err := range errs {
		fmt.Fprintf(&b, "\t%v\n", err)
	}
	return b.String()
}
