package vm_test

import (
	"testing"

	"accumula/vm"
)

func run(t *testing.T, prog vm.Program, inputs []int64) *vm.MemoryWorld {
	t.Helper()
	world := vm.NewMemoryWorld(inputs)
	interp := vm.New(world, prog)
	if _, err := interp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return world
}

func TestInterpretLoadAddPut(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
		{Op: vm.OpStore, Operand: 1},
		{Op: vm.OpGet},
		{Op: vm.OpAdd, Operand: 1},
		{Op: vm.OpPut},
		{Op: vm.OpHalt},
	}}
	world := run(t, prog, []int64{3, 4})
	out := world.Output()
	if len(out) != 1 || out[0] != 7 {
		t.Fatalf("expected [7], got %v", out)
	}
}

func TestInterpretUninitializedReadIsFatal(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpLoad, Operand: 5},
		{Op: vm.OpHalt},
	}}
	world := vm.NewMemoryWorld(nil)
	interp := vm.New(world, prog)
	if _, err := interp.Run(); err == nil {
		t.Fatal("expected an error reading the uninitialized cell 5")
	}
}

func TestInterpretIndirectLoadStore(t *testing.T) {
	// cell 10 holds the address 20; STOREI 10 writes the accumulator to
	// whatever address cell 10 holds.
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},                  // acc = 20
		{Op: vm.OpStore, Operand: 10},   // cell[10] = 20
		{Op: vm.OpGet},                  // acc = 99
		{Op: vm.OpStorei, Operand: 10},  // cell[cell[10]] = cell[20] = 99
		{Op: vm.OpLoadi, Operand: 10},   // acc = cell[cell[10]] = cell[20] = 99
		{Op: vm.OpPut},
		{Op: vm.OpHalt},
	}}
	world := run(t, prog, []int64{20, 99})
	out := world.Output()
	if len(out) != 1 || out[0] != 99 {
		t.Fatalf("expected [99], got %v", out)
	}
}

func TestInterpretShiftLeftAndRight(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
		{Op: vm.OpStore, Operand: 1},
		{Op: vm.OpGet}, // shift amount
		{Op: vm.OpStore, Operand: 2},
		{Op: vm.OpLoad, Operand: 1},
		{Op: vm.OpShift, Operand: 2},
		{Op: vm.OpPut},
		{Op: vm.OpHalt},
	}}
	world := run(t, prog, []int64{3, 2}) // 3 << 2 == 12
	out := world.Output()
	if len(out) != 1 || out[0] != 12 {
		t.Fatalf("expected [12], got %v", out)
	}

	world = run(t, prog, []int64{12, -2}) // 12 >> 2 == 3
	out = world.Output()
	if len(out) != 1 || out[0] != 3 {
		t.Fatalf("expected [3], got %v", out)
	}
}

func TestInterpretJumpsDrivenByAccumulatorSign(t *testing.T) {
	// acc = a - b; zero branch reloads a (index 7), non-zero falls through
	// to an unreachable GET, proving control actually took the jump.
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
		{Op: vm.OpStore, Operand: 1},
		{Op: vm.OpGet},
		{Op: vm.OpSub, Operand: 1},
		{Op: vm.OpJzero, Operand: 7},
		{Op: vm.OpGet},
		{Op: vm.OpJump, Operand: 8},
		{Op: vm.OpLoad, Operand: 1}, // index 7
		{Op: vm.OpHalt},             // index 8
	}}
	world := vm.NewMemoryWorld([]int64{5, 5})
	interp := vm.New(world, prog)
	if _, err := interp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInterpretMulDivModRequireExtended(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
		{Op: vm.OpStore, Operand: 1},
		{Op: vm.OpGet},
		{Op: vm.OpMul, Operand: 1},
		{Op: vm.OpPut},
		{Op: vm.OpHalt},
	}}
	world := vm.NewMemoryWorld([]int64{6, 7})
	interp := vm.New(world, prog)
	if _, err := interp.Run(); err == nil {
		t.Fatal("expected MUL without the extended instruction set to fail")
	}

	world = vm.NewMemoryWorld([]int64{6, 7})
	interp = vm.NewExtended(world, prog)
	if _, err := interp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := world.Output()
	if len(out) != 1 || out[0] != 42 {
		t.Fatalf("expected [42], got %v", out)
	}
}

func TestInterpretFlooredDivAndMod(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
		{Op: vm.OpStore, Operand: 1},
		{Op: vm.OpGet},
		{Op: vm.OpDiv, Operand: 1},
		{Op: vm.OpPut},
		{Op: vm.OpHalt},
	}}
	// -7 / 2 floors to -4, matching the source language's floored division.
	world := vm.NewMemoryWorld([]int64{2, -7})
	interp := vm.NewExtended(world, prog)
	if _, err := interp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := world.Output()
	if len(out) != 1 || out[0] != -4 {
		t.Fatalf("expected [-4], got %v", out)
	}

	prog.Instructions[3] = vm.Instruction{Op: vm.OpMod, Operand: 1}
	world = vm.NewMemoryWorld([]int64{2, -7})
	interp = vm.NewExtended(world, prog)
	if _, err := interp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out = world.Output()
	if len(out) != 1 || out[0] != 1 {
		t.Fatalf("expected [1], got %v", out)
	}
}

func TestInterpretDivByZeroIsZero(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
		{Op: vm.OpStore, Operand: 1},
		{Op: vm.OpGet},
		{Op: vm.OpDiv, Operand: 1},
		{Op: vm.OpPut},
		{Op: vm.OpHalt},
	}}
	world := vm.NewMemoryWorld([]int64{0, 5})
	interp := vm.NewExtended(world, prog)
	if _, err := interp.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := world.Output()
	if len(out) != 1 || out[0] != 0 {
		t.Fatalf("expected [0], got %v", out)
	}
}

func TestInterpretCostAccounting(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},               // 100
		{Op: vm.OpStore, Operand: 1}, // 10
		{Op: vm.OpInc},               // 1
		{Op: vm.OpHalt},              // 0
	}}
	world := vm.NewMemoryWorld([]int64{1})
	interp := vm.New(world, prog)
	cost, err := interp.Run()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 111 {
		t.Fatalf("expected cost 111, got %d", cost)
	}
}

func TestInterpretInstructionPointerOutOfBound(t *testing.T) {
	prog := vm.Program{Instructions: []vm.Instruction{
		{Op: vm.OpGet},
	}}
	world := vm.NewMemoryWorld([]int64{1})
	interp := vm.New(world, prog)
	if _, err := interp.Run(); err == nil {
		t.Fatal("expected falling off the end of the program to be an error")
	}
}
