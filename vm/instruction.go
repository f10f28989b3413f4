// Package vm is the target accumulator machine: a flat program of
// addressed instructions operating on an accumulator and an associative
// memory, executed by Interpreter against a World.
package vm

// Op identifies one target instruction. The compiler (package codegen)
// never emits Mul, Div or Mod — multiplication, division and modulo are
// synthesized from Shift/Add/Sub/Inc/Dec/Jump — but the machine still
// implements them, matching the original virtual machine's extended
// instruction set, so hand-written or hand-assembled programs can use them.
type Op int

const (
	OpGet Op = iota
	OpPut
	OpLoad
	OpLoadi
	OpStore
	OpStorei
	OpAdd
	OpSub
	OpShift
	OpMul
	OpDiv
	OpMod
	OpInc
	OpDec
	OpJump
	OpJpos
	OpJzero
	OpJneg
	OpHalt
)

// HasOperand reports whether an instruction of this Op carries an address
// or jump-target operand, as opposed to Get/Put/Inc/Dec/Halt which don't.
func (op Op) HasOperand() bool {
	switch op {
	case OpGet, OpPut, OpInc, OpDec, OpHalt:
		return false
	default:
		return true
	}
}

// Mnemonic is the uppercase textual form used by package asm.
func (op Op) Mnemonic() string {
	switch op {
	case OpGet:
		return "GET"
	case OpPut:
		return "PUT"
	case OpLoad:
		return "LOAD"
	case OpLoadi:
		return "LOADI"
	case OpStore:
		return "STORE"
	case OpStorei:
		return "STOREI"
	case OpAdd:
		return "ADD"
	case OpSub:
		return "SUB"
	case OpShift:
		return "SHIFT"
	case OpMul:
		return "MUL"
	case OpDiv:
		return "DIV"
	case OpMod:
		return "MOD"
	case OpInc:
		return "INC"
	case OpDec:
		return "DEC"
	case OpJump:
		return "JUMP"
	case OpJpos:
		return "JPOS"
	case OpJzero:
		return "JZERO"
	case OpJneg:
		return "JNEG"
	case OpHalt:
		return "HALT"
	default:
		return "???"
	}
}

// Cost is the cycle count the interpreter charges for executing this
// instruction, following the original machine's accounting exactly: memory
// traffic (Get/Put) is the most expensive, indirection (Loadi/Storei) costs
// more than direct addressing, and control flow/increment are cheapest.
func (op Op) Cost() int64 {
	switch op {
	case OpGet, OpPut:
		return 100
	case OpLoad, OpStore, OpAdd, OpSub:
		return 10
	case OpLoadi, OpStorei:
		return 20
	case OpShift:
		return 5
	case OpMul, OpDiv, OpMod:
		return 50
	case OpInc, OpDec, OpJump, OpJpos, OpJzero, OpJneg:
		return 1
	case OpHalt:
		return 0
	default:
		return 0
	}
}

// Instruction is one instruction of a target program. Operand is an
// address for Load/Loadi/Store/Storei/Add/Sub/Mul/Div/Mod, a jump target
// for Jump/Jpos/Jzero/Jneg, the address of the cell holding the shift
// amount for Shift, and unused (zero) for Get/Put/Inc/Dec/Halt.
type Instruction struct {
	Op      Op
	Operand int64
}

// Program is a complete target program: a flat, already-resolved list of
// instructions (every jump operand is a concrete index, not a label).
type Program struct {
	Instructions []Instruction
}
