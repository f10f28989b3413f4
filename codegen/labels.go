package codegen

import (
	"accumula/ir"
	"accumula/vm"
)

// pendingTarget marks a jump instruction's operand as not-yet-resolved; it
// is patched to a real instruction index once the label it targets is
// placed.
const pendingTarget = -1

// instructionStream accumulates the resolved vm.Instruction list, handling
// forward references to labels that haven't been placed yet via
// back-patching — the translator's counterpart to a linker's relocation
// table.
type instructionStream struct {
	instructions []vm.Instruction
	positions    map[ir.Label]int
	backPatches  map[ir.Label][]int
}

func newInstructionStream() *instructionStream {
	return &instructionStream{
		positions:   map[ir.Label]int{},
		backPatches: map[ir.Label][]int{},
	}
}

func (s *instructionStream) emit(instr vm.Instruction) int {
	s.instructions = append(s.instructions, instr)
	return len(s.instructions) - 1
}

func (s *instructionStream) load(loc memoryLocation)   { s.emit(vm.Instruction{Op: vm.OpLoad, Operand: int64(loc)}) }
func (s *instructionStream) loadi(loc memoryLocation)  { s.emit(vm.Instruction{Op: vm.OpLoadi, Operand: int64(loc)}) }
func (s *instructionStream) store(loc memoryLocation)  { s.emit(vm.Instruction{Op: vm.OpStore, Operand: int64(loc)}) }
func (s *instructionStream) storei(loc memoryLocation) { s.emit(vm.Instruction{Op: vm.OpStorei, Operand: int64(loc)}) }
func (s *instructionStream) add(loc memoryLocation)    { s.emit(vm.Instruction{Op: vm.OpAdd, Operand: int64(loc)}) }
func (s *instructionStream) sub(loc memoryLocation)    { s.emit(vm.Instruction{Op: vm.OpSub, Operand: int64(loc)}) }
func (s *instructionStream) shift(loc memoryLocation)  { s.emit(vm.Instruction{Op: vm.OpShift, Operand: int64(loc)}) }
func (s *instructionStream) inc()                      { s.emit(vm.Instruction{Op: vm.OpInc}) }
func (s *instructionStream) dec()                      { s.emit(vm.Instruction{Op: vm.OpDec}) }
func (s *instructionStream) getInput()                 { s.emit(vm.Instruction{Op: vm.OpGet}) }
func (s *instructionStream) put()                      { s.emit(vm.Instruction{Op: vm.OpPut}) }
func (s *instructionStream) halt()                     { s.emit(vm.Instruction{Op: vm.OpHalt}) }

// placeLabel records label's position as the next instruction slot and
// patches every jump that referenced it before it was placed.
func (s *instructionStream) placeLabel(label ir.Label) {
	target := len(s.instructions)
	s.positions[label] = target
	for _, idx := range s.backPatches[label] {
		s.instructions[idx].Operand = int64(target)
	}
	delete(s.backPatches, label)
}

// emitJump emits a jump-family instruction targeting label, resolving it
// immediately if the label has already been placed, or reserving a
// back-patch slot otherwise.
func (s *instructionStream) emitJump(op vm.Op, label ir.Label) {
	if target, ok := s.positions[label]; ok {
		s.emit(vm.Instruction{Op: op, Operand: int64(target)})
		return
	}
	idx := s.emit(vm.Instruction{Op: op, Operand: pendingTarget})
	s.backPatches[label] = append(s.backPatches[label], idx)
}
