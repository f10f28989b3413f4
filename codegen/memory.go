// Package codegen is the translator: it lowers a finished ir.Context into a
// vm.Program, resolving every Access to a concrete memory address, every
// Label to a concrete instruction index, and every arithmetic Operation the
// target machine can't do natively into a synthesized instruction sequence.
// It is the Go counterpart of the original code generator's translator.rs.
package codegen

import (
	"sort"

	"accumula/ir"
)

// memoryLocation is a resolved absolute address in the target machine's
// memory map. Location 0 is reserved for the accumulator; real variables
// start at 1.
type memoryLocation int64

// memory assigns absolute addresses to every ir.Variable. Arrays are laid
// out first as a contiguous raw segment starting at address 1 — each
// array's individual cells are never registered here, only addressed by
// arithmetic from its bookkeeping cell's base value. Scalars (including
// each array's own bookkeeping cell, and constants) follow, one cell
// apiece, starting wherever the array segment left off.
type memory struct {
	location map[ir.VariableIndex]memoryLocation
	value    map[ir.VariableIndex]int64
	hasValue map[ir.VariableIndex]bool
	next     memoryLocation
}

func newMemory() *memory {
	return &memory{
		location: map[ir.VariableIndex]memoryLocation{},
		value:    map[ir.VariableIndex]int64{},
		hasValue: map[ir.VariableIndex]bool{},
		next:     1,
	}
}

func (m *memory) addVariable(idx ir.VariableIndex, value int64, hasValue bool) memoryLocation {
	loc := m.next
	m.next++
	m.location[idx] = loc
	if hasValue {
		m.value[idx] = value
		m.hasValue[idx] = true
	}
	return loc
}

func (m *memory) locationOf(idx ir.VariableIndex) memoryLocation {
	loc, ok := m.location[idx]
	if !ok {
		panic("codegen: variable was never assigned a memory location")
	}
	return loc
}

// baseOf returns an array variable's precomputed base value: the address
// its index-0-relative element would occupy, so that base+k addresses
// element k directly.
func (m *memory) baseOf(idx ir.VariableIndex) int64 {
	v, ok := m.value[idx]
	if !ok {
		panic("codegen: array has not been allocated a base value")
	}
	return v
}

// allocate partitions ctx's variables into arrays (sorted ascending by
// size, so smaller arrays sit first — matching the original layout's
// ordering, which has no semantic effect but keeps address assignment
// deterministic) and scalars, lays out the array raw-data segment, then
// registers every array's bookkeeping cell and every scalar as a one-cell
// variable in the segment that follows.
func (m *memory) allocate(ctx *ir.Context) {
	vars := ctx.Variables()
	var arrays, scalars []ir.UniqueVariable
	for i, v := range vars {
		if i == 0 {
			// p0, registered first by ir.NewContext, is the accumulator cell.
			m.location[v.Index] = 0
			continue
		}
		if _, ok := v.Variable.(ir.ArrayVariable); ok {
			arrays = append(arrays, v)
		} else {
			scalars = append(scalars, v)
		}
	}
	sort.SliceStable(arrays, func(i, j int) bool {
		return arrays[i].Variable.Size() < arrays[j].Variable.Size()
	})

	rawNext := int64(1)
	var arraysEnd int64
	for _, v := range arrays {
		arraysEnd += v.Variable.Size()
	}
	if len(arrays) > 0 {
		m.next = memoryLocation(arraysEnd + 1)
	}

	for _, v := range arrays {
		arr := v.Variable.(ir.ArrayVariable)
		start := rawNext
		rawNext += arr.Size()
		base := start - arr.Lo
		m.addVariable(v.Index, base, true)
	}
	for _, v := range scalars {
		m.addVariable(v.Index, 0, false)
	}
}
