// Package ir builds the intermediate representation the translator lowers
// onto the target accumulator machine: a symbol table of variables, a flat
// list of label-addressed instructions operating on "accesses" (constant,
// scalar, or array cell), and a Builder that walks the source ast and
// emits that instruction list — the Go counterpart of the teacher's
// compiler.ASTCompiler, generalized from a stack bytecode target to this
// one's accumulator/memory-cell target.
package ir

// Variable is either a single memory cell (Unit) or a contiguous range of
// cells (Array). It carries only what the translator needs to lay out
// memory: a name for debugging and a size in cells.
type Variable interface {
	Name() string
	Size() int64
}

// UnitVariable is a scalar, a for-loop counter, a materialized constant, or
// an internal temporary — anything occupying exactly one memory cell.
type UnitVariable struct {
	Name_ string
}

func (v UnitVariable) Name() string { return v.Name_ }
func (v UnitVariable) Size() int64  { return 1 }

// ArrayVariable is a declared array spanning the inclusive range [Lo, Hi].
type ArrayVariable struct {
	Name_  string
	Lo, Hi int64
}

func (v ArrayVariable) Name() string { return v.Name_ }
func (v ArrayVariable) Size() int64  { return v.Hi - v.Lo + 1 }

// VariableIndex identifies a Variable within a Context's symbol table.
// It is not a memory address — the translator assigns addresses later,
// during layout.
type VariableIndex struct {
	id int
}

// UniqueVariable pairs a VariableIndex with the Variable it names. Two
// UniqueVariables are the same variable iff their indices match, even if
// (as with shadowed for-loop counters) their names collide.
type UniqueVariable struct {
	Index    VariableIndex
	Variable Variable
}
