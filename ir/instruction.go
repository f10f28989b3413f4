package ir

import "accumula/ast"

// Instruction is one step of the intermediate program the Builder emits.
// It operates on Access values rather than raw memory addresses — that
// translation is the translator package's job.
type Instruction interface {
	isInstruction()
}

// LabelMark marks the position a Jump*/Label instruction may target.
type LabelMark struct{ Label Label }

func (LabelMark) isInstruction() {}

// Load brings a value into the accumulator.
type Load struct{ Access Access }

func (Load) isInstruction() {}

// PreStore is emitted just before the value that will be stored is
// computed. For a plain or statically-indexed access this is a no-op at
// translation time; for a dynamically-indexed array store it gives the
// translator a chance to capture the index before the accumulator is
// clobbered computing the right-hand side.
type PreStore struct{ Access Access }

func (PreStore) isInstruction() {}

// Store writes the accumulator into Access.
type Store struct{ Access Access }

func (Store) isInstruction() {}

// Operation computes Left Op Right and leaves the result in the
// accumulator. The translator may lower this to a Load followed by a run
// of Inc/Dec (Plus/Minus against a small constant) or to a whole
// synthesized subroutine (Times, Div, Mod).
type Operation struct {
	Left  Access
	Op    ast.ExprOp
	Right Access
}

func (Operation) isInstruction() {}

// Jump is an unconditional jump to Label.
type Jump struct{ Label Label }

func (Jump) isInstruction() {}

// JNegative jumps to Label if the accumulator is negative.
type JNegative struct{ Label Label }

func (JNegative) isInstruction() {}

// JPositive jumps to Label if the accumulator is strictly positive.
type JPositive struct{ Label Label }

func (JPositive) isInstruction() {}

// JZero jumps to Label if the accumulator is zero.
type JZero struct{ Label Label }

func (JZero) isInstruction() {}

// Get reads one input value into the accumulator.
type Get struct{}

func (Get) isInstruction() {}

// Put writes the accumulator to output.
type Put struct{}

func (Put) isInstruction() {}
