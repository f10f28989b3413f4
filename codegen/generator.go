package codegen

import (
	"fmt"

	"accumula/ast"
	"accumula/ir"
	"accumula/vm"
)

// Generator lowers a finished ir.Context into a vm.Program. It owns memory
// layout, constant materialization, and the instruction stream, and is the
// single translation pass the package's exported Generate function drives.
type Generator struct {
	context *ir.Context
	memory  *memory
	instr   *instructionStream
	temps   map[string]ir.VariableIndex
}

// Generate lowers ctx — the output of ir.Build — into a flat vm.Program
// with every label resolved to a concrete instruction index. It panics on
// any inconsistency between the IR and its own invariants (an
// unregistered constant, an unallocated variable); those can only follow
// from a bug upstream in the builder, never from anything a user program
// can trigger, since ctx is assumed already built from a verified AST.
func Generate(ctx *ir.Context) vm.Program {
	g := &Generator{
		context: ctx,
		memory:  newMemory(),
		instr:   newInstructionStream(),
		temps:   map[string]ir.VariableIndex{},
	}
	return g.generate()
}

func (g *Generator) generate() vm.Program {
	for _, c := range simpleConstants {
		g.context.GetOrRegisterConstant(c)
	}

	g.memory.allocate(g.context)
	g.generateConstants()

	for _, instr := range g.context.Instructions() {
		g.translateInstruction(instr)
	}

	g.instr.halt()

	return vm.Program{Instructions: g.instr.instructions}
}

func (g *Generator) translateInstruction(instr ir.Instruction) {
	switch in := instr.(type) {
	case ir.LabelMark:
		g.instr.placeLabel(in.Label)
	case ir.Load:
		g.translateLoadAccess(in.Access)
	case ir.PreStore:
		// Every access shape is a no-op here: plain and statically-indexed
		// stores need no preparation, and a dynamically-indexed store's
		// address is recomputed from scratch in translateStoreAccess once
		// the right-hand side has already clobbered the accumulator. This
		// carries the original translator's same limitation forward rather
		// than silently fixing it.
	case ir.Store:
		g.translateStoreAccess(in.Access)
	case ir.Operation:
		g.translateOperation(in.Left, in.Op, in.Right)
	case ir.Jump:
		g.instr.emitJump(vm.OpJump, in.Label)
	case ir.JNegative:
		g.instr.emitJump(vm.OpJneg, in.Label)
	case ir.JPositive:
		g.instr.emitJump(vm.OpJpos, in.Label)
	case ir.JZero:
		g.instr.emitJump(vm.OpJzero, in.Label)
	case ir.Get:
		g.instr.getInput()
	case ir.Put:
		g.instr.put()
	default:
		panic(fmt.Sprintf("codegen: unhandled IR instruction %T", instr))
	}
}

func (g *Generator) translateOperation(left ir.Access, op ast.ExprOp, right ir.Access) {
	switch op {
	case ast.Plus:
		g.translatePlus(left, right)
	case ast.Minus:
		g.translateMinus(left, right)
	case ast.Times:
		g.translateMultiplication(left, right)
	case ast.Div:
		g.translateDivMod(left, right, true)
	case ast.Mod:
		g.translateDivMod(left, right, false)
	default:
		panic(fmt.Sprintf("codegen: unhandled operator %v", op))
	}
}

// getOrRegisterTemp returns the memory location of the internal scratch
// cell named tmp$<name>, allocating and registering it with the context on
// first use. Unlike the builder's locals, a temp is never scoped — every
// arithmetic lowering that needs a "bin_op" or "mul_left" cell shares the
// very same one, since translation is a single straight-line pass with no
// concurrent in-flight uses of the same temp.
func (g *Generator) getOrRegisterTemp(name string) memoryLocation {
	if idx, ok := g.temps[name]; ok {
		return g.memory.locationOf(idx)
	}
	idx := g.context.AddVariable(ir.UnitVariable{Name_: "tmp$" + name})
	g.temps[name] = idx
	return g.memory.addVariable(idx, 0, false)
}

func (g *Generator) translateLoadAccess(access ir.Access) {
	switch a := access.(type) {
	case ir.ConstantAccess:
		g.instr.load(g.constantLocation(a.Value))
	case ir.VariableAccess:
		g.instr.load(g.memory.locationOf(a.Index))
	case ir.ArrayStaticAccess:
		base := g.memory.baseOf(a.Array)
		g.instr.load(memoryLocation(base + a.Index))
	case ir.ArrayDynamicAccess:
		g.instr.load(g.memory.locationOf(a.Array))
		g.instr.add(g.memory.locationOf(a.Index))
		g.instr.loadi(0)
	default:
		panic(fmt.Sprintf("codegen: unhandled access %T", access))
	}
}

func (g *Generator) translateStoreAccess(access ir.Access) {
	switch a := access.(type) {
	case ir.ConstantAccess:
		panic("codegen: cannot store into a constant")
	case ir.VariableAccess:
		g.instr.store(g.memory.locationOf(a.Index))
	case ir.ArrayStaticAccess:
		base := g.memory.baseOf(a.Array)
		g.instr.store(memoryLocation(base + a.Index))
	case ir.ArrayDynamicAccess:
		tmp1 := g.getOrRegisterTemp("store_tmp1")
		g.instr.store(tmp1)

		g.instr.load(g.memory.locationOf(a.Array))
		g.instr.add(g.memory.locationOf(a.Index))

		tmp2 := g.getOrRegisterTemp("store_tmp2")
		g.instr.store(tmp2)

		g.instr.load(tmp1)
		g.instr.storei(tmp2)
	default:
		panic(fmt.Sprintf("codegen: unhandled access %T", access))
	}
}
