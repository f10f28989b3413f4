package vm

import (
	"fmt"
	"math/rand"
)

// Address 0 is not a variable — it is the accumulator, mirrored into the
// associative memory so that every instruction can address it the same way
// it addresses anything else. LOADI/STOREI with operand 0 dereference
// whatever the accumulator currently holds, which is how the translator
// synthesizes indirect array access without a dedicated "indirect via
// accumulator" opcode.
const accumulatorAddress int64 = 0

// Interpreter runs a Program against a World, one instruction at a time,
// accounting cost as it goes.
type Interpreter struct {
	world       World
	memory      map[int64]int64
	cost        int64
	ip          int
	program     []Instruction
	extended    bool
	debugLogged bool
}

// New constructs an Interpreter for program running against world. Cell 0
// (the accumulator) starts at a random value rather than zero — any
// program that reads the accumulator before writing it is a compiler or
// assembly bug, and a random seed makes that bug visible immediately
// instead of accidentally working because zero happened to be a valid
// initial value.
func New(world World, program Program) *Interpreter {
	return newInterpreter(world, program, false)
}

// NewExtended is like New but additionally permits OpMul/OpDiv/OpMod,
// which the compiler itself never emits but hand-written or hand-assembled
// programs may use.
func NewExtended(world World, program Program) *Interpreter {
	return newInterpreter(world, program, true)
}

func newInterpreter(world World, program Program, extended bool) *Interpreter {
	return &Interpreter{
		world:    world,
		memory:   map[int64]int64{accumulatorAddress: rand.Int63()},
		program:  program.Instructions,
		extended: extended,
	}
}

// Cost returns the total cycles charged so far.
func (in *Interpreter) Cost() int64 { return in.cost }

// Run executes the program to completion (a Halt instruction) and returns
// the total cost, or the first error encountered.
func (in *Interpreter) Run() (int64, error) {
	for {
		halted, err := in.Step()
		if err != nil {
			return in.cost, err
		}
		if halted {
			return in.cost, nil
		}
	}
}

func (in *Interpreter) getInitialized(addr int64) (int64, error) {
	value, ok := in.memory[addr]
	if !ok {
		return 0, UninitializedMemoryAccess{Address: addr, IP: in.ip}
	}
	return value, nil
}

func (in *Interpreter) assign(addr, fromAddr int64) error {
	value, err := in.getInitialized(fromAddr)
	if err != nil {
		return err
	}
	in.memory[addr] = value
	return nil
}

func (in *Interpreter) mutate(addr int64, f func(int64) int64) error {
	value, err := in.getInitialized(addr)
	if err != nil {
		return err
	}
	in.memory[addr] = f(value)
	return nil
}

func (in *Interpreter) mutateBin(addr, operandAddr int64, f func(a, b int64) int64) error {
	a, err := in.getInitialized(addr)
	if err != nil {
		return err
	}
	b, err := in.getInitialized(operandAddr)
	if err != nil {
		return err
	}
	in.memory[addr] = f(a, b)
	return nil
}

func shift(a, b int64) int64 {
	switch {
	case b > 0:
		return a << uint(b)
	case b < 0:
		return a >> uint(-b)
	default:
		return a
	}
}

func floorDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Step executes a single instruction and reports whether the program has
// halted. It returns an error and leaves the interpreter positioned at the
// failing instruction, so callers (e.g. a debugging repl) can inspect
// state before deciding what to do next.
func (in *Interpreter) Step() (halted bool, err error) {
	if in.ip < 0 || in.ip >= len(in.program) {
		return false, InstructionPointerOutOfBound{IP: in.ip, Len: len(in.program)}
	}
	instr := in.program[in.ip]
	in.world.Log("%d: %s %d", in.ip, instr.Op.Mnemonic(), instr.Operand)
	in.cost += instr.Op.Cost()

	switch instr.Op {
	case OpGet:
		value, getErr := in.world.Get()
		if getErr != nil {
			return false, WorldError{IP: in.ip, Message: getErr.Error()}
		}
		in.memory[accumulatorAddress] = value
		in.ip++
	case OpPut:
		in.world.Put(in.memory[accumulatorAddress])
		in.ip++
	case OpLoad:
		if err = in.assign(accumulatorAddress, instr.Operand); err != nil {
			return false, err
		}
		in.ip++
	case OpLoadi:
		indirect, getErr := in.getInitialized(instr.Operand)
		if getErr != nil {
			return false, getErr
		}
		if err = in.assign(accumulatorAddress, indirect); err != nil {
			return false, err
		}
		in.ip++
	case OpStore:
		if err = in.assign(instr.Operand, accumulatorAddress); err != nil {
			return false, err
		}
		in.ip++
	case OpStorei:
		indirect, getErr := in.getInitialized(instr.Operand)
		if getErr != nil {
			return false, getErr
		}
		if err = in.assign(indirect, accumulatorAddress); err != nil {
			return false, err
		}
		in.ip++
	case OpAdd:
		if err = in.mutateBin(accumulatorAddress, instr.Operand, func(a, b int64) int64 { return a + b }); err != nil {
			return false, err
		}
		in.ip++
	case OpSub:
		if err = in.mutateBin(accumulatorAddress, instr.Operand, func(a, b int64) int64 { return a - b }); err != nil {
			return false, err
		}
		in.ip++
	case OpShift:
		if err = in.mutateBin(accumulatorAddress, instr.Operand, shift); err != nil {
			return false, err
		}
		in.ip++
	case OpMul:
		if !in.extended {
			return false, fmt.Errorf("🤖 DeveloperError: MUL requires the extended instruction set")
		}
		if err = in.mutateBin(accumulatorAddress, instr.Operand, func(a, b int64) int64 { return a * b }); err != nil {
			return false, err
		}
		in.ip++
	case OpDiv:
		if !in.extended {
			return false, fmt.Errorf("🤖 DeveloperError: DIV requires the extended instruction set")
		}
		if err = in.mutateBin(accumulatorAddress, instr.Operand, floorDiv); err != nil {
			return false, err
		}
		in.ip++
	case OpMod:
		if !in.extended {
			return false, fmt.Errorf("🤖 DeveloperError: MOD requires the extended instruction set")
		}
		if err = in.mutateBin(accumulatorAddress, instr.Operand, floorMod); err != nil {
			return false, err
		}
		in.ip++
	case OpInc:
		if err = in.mutate(accumulatorAddress, func(a int64) int64 { return a + 1 }); err != nil {
			return false, err
		}
		in.ip++
	case OpDec:
		if err = in.mutate(accumulatorAddress, func(a int64) int64 { return a - 1 }); err != nil {
			return false, err
		}
		in.ip++
	case OpJump:
		in.ip = int(instr.Operand)
	case OpJpos:
		if in.memory[accumulatorAddress] > 0 {
			in.ip = int(instr.Operand)
		} else {
			in.ip++
		}
	case OpJzero:
		if in.memory[accumulatorAddress] == 0 {
			in.ip = int(instr.Operand)
		} else {
			in.ip++
		}
	case OpJneg:
		if in.memory[accumulatorAddress] < 0 {
			in.ip = int(instr.Operand)
		} else {
			in.ip++
		}
	case OpHalt:
		return true, nil
	default:
		return false, fmt.Errorf("🤖 DeveloperError: unknown opcode %v", instr.Op)
	}

	return false, nil
}
