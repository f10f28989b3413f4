package ir

import "strconv"

// Context is the symbol table and instruction stream a Builder accumulates
// while walking a program, and what it hands to the translator when done.
type Context struct {
	variables    []UniqueVariable
	constants    map[int64]VariableIndex
	instructions []Instruction
	nextLabel    int
}

// NewContext preregisters cell p0, a scratch unit the translator reserves
// as memory address zero — the one cell every program can assume exists
// before any user variable is laid out, mirroring the original compiler's
// eager p0 registration.
func NewContext() *Context {
	c := &Context{constants: map[int64]VariableIndex{}}
	c.AddVariable(UnitVariable{Name_: "p0"})
	return c
}

// AddVariable registers a new variable and returns its index. Each call
// allocates a fresh index; callers needing deduplication (constants) must
// check first.
func (c *Context) AddVariable(v Variable) VariableIndex {
	idx := VariableIndex{id: len(c.variables)}
	c.variables = append(c.variables, UniqueVariable{Index: idx, Variable: v})
	return idx
}

// GetVariable looks up a variable by index. It panics on an unknown index
// since that can only happen from a builder bug, never from user input.
func (c *Context) GetVariable(idx VariableIndex) UniqueVariable {
	if idx.id < 0 || idx.id >= len(c.variables) {
		panic("ir: nonexistent variable requested")
	}
	return c.variables[idx.id]
}

// GetOrRegisterConstant returns the variable index backing the literal
// value, registering a fresh one-cell variable for it on first use. Later
// references to the same literal reuse the same cell.
func (c *Context) GetOrRegisterConstant(value int64) VariableIndex {
	if idx, ok := c.constants[value]; ok {
		return idx
	}
	idx := c.AddVariable(UnitVariable{Name_: strconv.FormatInt(value, 10)})
	c.constants[value] = idx
	return idx
}

// NewLabel allocates a fresh, as-yet-unplaced jump target.
func (c *Context) NewLabel() Label {
	l := Label{id: c.nextLabel}
	c.nextLabel++
	return l
}

// Emit appends an instruction to the stream.
func (c *Context) Emit(instr Instruction) {
	c.instructions = append(c.instructions, instr)
}

// Variables returns every registered variable, in registration order.
func (c *Context) Variables() []UniqueVariable { return c.variables }

// Constants returns every literal value registered via GetOrRegisterConstant,
// mapped to the variable index backing it. The translator uses this to
// materialize each constant's value once memory locations are assigned.
func (c *Context) Constants() map[int64]VariableIndex {
	out := make(map[int64]VariableIndex, len(c.constants))
	for value, idx := range c.constants {
		out[value] = idx
	}
	return out
}

// Instructions returns the full emitted instruction stream.
func (c *Context) Instructions() []Instruction { return c.instructions }
