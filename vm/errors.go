package vm

import "fmt"

// UninitializedMemoryAccess is returned when an instruction reads a memory
// cell that has never been written. Reading before writing is always a
// compiler or hand-written-assembly bug, never a legitimate program state,
// so the interpreter treats it as fatal rather than defaulting to zero.
type UninitializedMemoryAccess struct {
	Address int64
	IP      int
}

func (e UninitializedMemoryAccess) Error() string {
	return fmt.Sprintf("💥 RuntimeError: read from uninitialized memory cell %d at ip %d", e.Address, e.IP)
}

// InstructionPointerOutOfBound is returned when execution falls off the
// end of the program without reaching a Halt.
type InstructionPointerOutOfBound struct {
	IP  int
	Len int
}

func (e InstructionPointerOutOfBound) Error() string {
	return fmt.Sprintf("💥 RuntimeError: instruction pointer %d out of bound (program has %d instructions)", e.IP, e.Len)
}

// WorldError wraps a failure reported by the World a program is running
// against — e.g. Console input exhausted, or a Memory world's input vector
// drained.
type WorldError struct {
	IP      int
	Message string
}

func (e WorldError) Error() string {
	return fmt.Sprintf("💥 RuntimeError: %s at ip %d", e.Message, e.IP)
}
