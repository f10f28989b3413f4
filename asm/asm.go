// Package asm is the line-oriented textual assembly format for vm.Program:
// Print emits it, Parse reads it back. Grounded on the original virtual
// machine's InstructionListPrinter (one uppercase mnemonic per line, operand
// space-separated) and its pest-grammar assembler parser, reimplemented
// here as a small hand-written scanner since this module's own lexer/parser
// packages are built around the much larger surface-syntax grammar instead.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"accumula/vm"
)

// SyntaxError reports a malformed assembly line.
type SyntaxError struct {
	Line    int
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 asm syntax error: line %d: %s", e.Line, e.Message)
}

var mnemonics = map[string]vm.Op{
	"GET":    vm.OpGet,
	"PUT":    vm.OpPut,
	"LOAD":   vm.OpLoad,
	"LOADI":  vm.OpLoadi,
	"STORE":  vm.OpStore,
	"STOREI": vm.OpStorei,
	"ADD":    vm.OpAdd,
	"SUB":    vm.OpSub,
	"SHIFT":  vm.OpShift,
	"MUL":    vm.OpMul,
	"DIV":    vm.OpDiv,
	"MOD":    vm.OpMod,
	"INC":    vm.OpInc,
	"DEC":    vm.OpDec,
	"JUMP":   vm.OpJump,
	"JPOS":   vm.OpJpos,
	"JZERO":  vm.OpJzero,
	"JNEG":   vm.OpJneg,
	"HALT":   vm.OpHalt,
}

// Print renders prog as one mnemonic per line, in instruction order, with
// operands (addresses, jump targets) space-separated after
// the mnemonic.
func Print(prog vm.Program) string {
	var b strings.Builder
	for _, instr := range prog.Instructions {
		b.WriteString(instr.Op.Mnemonic())
		if instr.Op.HasOperand() {
			b.WriteByte(' ')
			b.WriteString(strconv.FormatInt(instr.Operand, 10))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse is Print's inverse. It tolerates blank lines and "[...]"-bracketed
// comments — a comment may share a line with an instruction (stripped
// before the line is tokenized) or stand alone.
func Parse(text string) (vm.Program, error) {
	var prog vm.Program

	for i, rawLine := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := stripComment(rawLine)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		mnemonic := strings.ToUpper(fields[0])
		op, ok := mnemonics[mnemonic]
		if !ok {
			return vm.Program{}, SyntaxError{Line: lineNo, Message: fmt.Sprintf("unknown instruction %q", fields[0])}
		}

		instr := vm.Instruction{Op: op}
		if op.HasOperand() {
			if len(fields) != 2 {
				return vm.Program{}, SyntaxError{Line: lineNo, Message: fmt.Sprintf("%s requires exactly one operand", mnemonic)}
			}
			operand, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				return vm.Program{}, SyntaxError{Line: lineNo, Message: fmt.Sprintf("invalid operand %q", fields[1])}
			}
			instr.Operand = operand
		} else if len(fields) != 1 {
			return vm.Program{}, SyntaxError{Line: lineNo, Message: fmt.Sprintf("%s takes no operand", mnemonic)}
		}

		prog.Instructions = append(prog.Instructions, instr)
	}

	return prog, nil
}

// stripComment drops everything from the first unmatched "[" to its
// closing "]", and anything after an unclosed "[" to end of line.
func stripComment(line string) string {
	start := strings.IndexByte(line, '[')
	if start == -1 {
		return line
	}
	end := strings.IndexByte(line[start:], ']')
	if end == -1 {
		return line[:start]
	}
	return line[:start] + stripComment(line[start+end+1:])
}
