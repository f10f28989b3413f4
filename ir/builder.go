package ir

import "accumula/ast"

// order selects which arm of emitIfElse's caller runs first versus second,
// following the original code generator's own If/Else ordering trick: the
// branch that takes the fall-through path (no extra jump) is picked based
// on which conditional jump the relational operator compiles to most
// directly.
type order int

const (
	orderFirst order = iota
	orderSecond
)

// Builder walks a verified ast.Program and emits its Context: a symbol
// table of variables and a flat, label-addressed instruction stream. It
// implements every ast visitor interface, following the same Accept-driven
// recursive descent the teacher's compiler.ASTCompiler uses, generalized
// to this package's accumulator-oriented instruction set.
type Builder struct {
	context     *Context
	globals     []VariableIndex
	locals      []VariableIndex
	accessStack []Access
}

// Build runs the builder over a program and returns the populated Context.
// program must already have passed verifier.Verify — Build does not
// re-check names, array bounds, or for-counter immutability, and will
// panic on a malformed program rather than report a user-facing error.
func Build(program ast.Program) *Context {
	b := &Builder{context: NewContext()}
	for _, decl := range program.Declarations {
		decl.Accept(b)
	}
	b.visitCommands(program.Commands)
	return b.context
}

func (b *Builder) addGlobal(v Variable) {
	idx := b.context.AddVariable(v)
	b.globals = append(b.globals, idx)
}

func (b *Builder) addLocal(v Variable) VariableIndex {
	idx := b.context.AddVariable(v)
	b.locals = append(b.locals, idx)
	return idx
}

func (b *Builder) popLocal() {
	b.locals = b.locals[:len(b.locals)-1]
}

func (b *Builder) findVariableByName(name string) (VariableIndex, bool) {
	for _, idx := range b.locals {
		if b.context.GetVariable(idx).Variable.Name() == name {
			return idx, true
		}
	}
	for _, idx := range b.globals {
		if b.context.GetVariable(idx).Variable.Name() == name {
			return idx, true
		}
	}
	return VariableIndex{}, false
}

func (b *Builder) pushAccess(a Access) { b.accessStack = append(b.accessStack, a) }

func (b *Builder) peekAccess() Access { return b.accessStack[len(b.accessStack)-1] }

func (b *Builder) popAccess() Access {
	a := b.peekAccess()
	b.accessStack = b.accessStack[:len(b.accessStack)-1]
	return a
}

func (b *Builder) emitLoadVisited()     { b.context.Emit(Load{Access: b.popAccess()}) }
func (b *Builder) emitPreStoreVisited() { b.context.Emit(PreStore{Access: b.peekAccess()}) }
func (b *Builder) emitStoreVisited()    { b.context.Emit(Store{Access: b.popAccess()}) }

func (b *Builder) visitCommands(cmds ast.Commands) {
	for _, c := range cmds {
		c.Accept(b)
	}
}

func (b *Builder) visitValue(val ast.Value) { val.Accept(b) }

// emitIfElse is the single lowering shared by IfCmd, IfElseCmd, DoCmd and
// WhileCmd: evaluate Left-Right, pick the conditional jump whose polarity
// matches the relational operator, and call emitBody once per branch with
// orderFirst for the branch taken when cond holds and orderSecond for the
// one taken when it does not. Which of the two falls straight through and
// which is reached via the jump depends on the operator.
func (b *Builder) emitIfElse(cond ast.Condition, emitBody func(order)) {
	negative := b.context.NewLabel()
	endif := b.context.NewLabel()

	b.visitCondition(cond)

	var first, second order
	switch cond.Op {
	case ast.NEQ, ast.LEQ, ast.GEQ:
		first, second = orderFirst, orderSecond
	default: // EQ, LT, GT
		first, second = orderSecond, orderFirst
	}

	switch cond.Op {
	case ast.EQ, ast.NEQ:
		b.context.Emit(JZero{Label: negative})
	case ast.GT, ast.LEQ:
		b.context.Emit(JPositive{Label: negative})
	case ast.LT, ast.GEQ:
		b.context.Emit(JNegative{Label: negative})
	}

	emitBody(first)
	b.context.Emit(Jump{Label: endif})
	b.context.Emit(LabelMark{Label: negative})
	emitBody(second)
	b.context.Emit(LabelMark{Label: endif})
}

// emitDo lowers "do body while cond": start: body; if(cond) jump start
// else done.
func (b *Builder) emitDo(cond ast.Condition, emitBody func()) {
	start := b.context.NewLabel()
	b.context.Emit(LabelMark{Label: start})
	emitBody()
	b.emitIfElse(cond, func(o order) {
		if o == orderFirst {
			b.context.Emit(Jump{Label: start})
		}
	})
}

// emitWhile lowers "while cond do body" as "if(cond) { repeat body until
// !cond }" — the loop test runs once up front, then emitDo folds the
// repeated test into the loop body itself.
func (b *Builder) emitWhile(cond ast.Condition, emitBody func()) {
	b.emitIfElse(cond, func(o order) {
		if o == orderFirst {
			b.emitDo(cond, emitBody)
		}
	})
}

// visitCondition lowers Left Op Right by emitting Left-Right into the
// accumulator; emitIfElse's conditional jump then tests the accumulator's
// sign, which is enough to discriminate every RelOp.
func (b *Builder) visitCondition(cond ast.Condition) {
	b.emitCompoundOp(cond.Left, ast.Minus, cond.Right)
}

// --- ast.DeclarationVisitor ---

func (b *Builder) VisitVarDecl(decl ast.VarDecl) any {
	b.addGlobal(UnitVariable{Name_: decl.Name_})
	return nil
}

func (b *Builder) VisitArrayDecl(decl ast.ArrayDecl) any {
	b.addGlobal(ArrayVariable{Name_: decl.Name_, Lo: decl.Lo, Hi: decl.Hi})
	return nil
}

// --- ast.CommandVisitor ---

func (b *Builder) VisitIfElse(cmd ast.IfElseCmd) any {
	b.emitIfElse(cmd.Cond, func(o order) {
		if o == orderFirst {
			b.visitCommands(cmd.Then)
		} else {
			b.visitCommands(cmd.Else_)
		}
	})
	return nil
}

func (b *Builder) VisitIf(cmd ast.IfCmd) any {
	b.emitIfElse(cmd.Cond, func(o order) {
		if o == orderFirst {
			b.visitCommands(cmd.Then)
		}
	})
	return nil
}

func (b *Builder) VisitWhile(cmd ast.WhileCmd) any {
	b.emitWhile(cmd.Cond, func() { b.visitCommands(cmd.Body) })
	return nil
}

func (b *Builder) VisitDo(cmd ast.DoCmd) any {
	b.emitDo(cmd.Cond, func() { b.visitCommands(cmd.Body) })
	return nil
}

// VisitFor lowers a counted loop into two hidden locals (the counter and a
// fixed copy of its bound) plus a while loop, exactly as the original
// code generator does: the bound is evaluated and frozen once, so mutating
// whatever expression produced "to" inside the loop body can never change
// how many iterations run.
func (b *Builder) VisitFor(cmd ast.ForCmd) any {
	counterVar := b.addLocal(UnitVariable{Name_: cmd.Counter})
	toVar := b.addLocal(UnitVariable{Name_: cmd.Counter + "$to"})

	b.context.Emit(PreStore{Access: VariableAccess{Index: counterVar}})
	b.visitValue(cmd.From)
	b.emitLoadVisited()
	b.context.Emit(Store{Access: VariableAccess{Index: counterVar}})

	b.context.Emit(PreStore{Access: VariableAccess{Index: toVar}})
	b.visitValue(cmd.To)
	b.emitLoadVisited()
	b.context.Emit(Store{Access: VariableAccess{Index: toVar}})

	cond := ast.Condition{
		Left:  ast.VarAccess{Name_: cmd.Counter},
		Right: ast.VarAccess{Name_: cmd.Counter + "$to"},
	}
	if cmd.Ascending {
		cond.Op = ast.LEQ
	} else {
		cond.Op = ast.GEQ
	}

	step := ast.Minus
	if cmd.Ascending {
		step = ast.Plus
	}

	b.emitWhile(cond, func() {
		b.visitCommands(cmd.Body)
		b.VisitAssign(ast.AssignCmd{
			Target: ast.VarAccess{Name_: cmd.Counter},
			Expr: ast.CompoundExpr{
				Left:  ast.VarAccess{Name_: cmd.Counter},
				Op:    step,
				Right: ast.NumValue{Value: 1},
			},
		})
	})

	b.popLocal()
	b.popLocal()
	return nil
}

func (b *Builder) VisitRead(cmd ast.ReadCmd) any {
	b.visitValue(cmd.Target)
	b.emitPreStoreVisited()
	b.context.Emit(Get{})
	b.emitStoreVisited()
	return nil
}

func (b *Builder) VisitWrite(cmd ast.WriteCmd) any {
	b.visitValue(cmd.Value)
	b.emitLoadVisited()
	b.context.Emit(Put{})
	return nil
}

func (b *Builder) VisitAssign(cmd ast.AssignCmd) any {
	b.visitValue(cmd.Target)
	b.emitPreStoreVisited()
	cmd.Expr.Accept(b)
	b.emitStoreVisited()
	return nil
}

// --- ast.ExpressionVisitor ---

func (b *Builder) VisitSimpleExpr(expr ast.SimpleExpr) any {
	b.visitValue(expr.Value)
	b.emitLoadVisited()
	return nil
}

func (b *Builder) VisitCompoundExpr(expr ast.CompoundExpr) any {
	b.emitCompoundOp(expr.Left, expr.Op, expr.Right)
	return nil
}

func (b *Builder) emitCompoundOp(left ast.Value, op ast.ExprOp, right ast.Value) {
	b.visitValue(left)
	leftAccess := b.popAccess()
	b.visitValue(right)
	rightAccess := b.popAccess()
	b.context.Emit(Operation{Left: leftAccess, Op: op, Right: rightAccess})
}

// --- ast.ValueVisitor ---

func (b *Builder) VisitNumValue(value ast.NumValue) any {
	b.context.GetOrRegisterConstant(value.Value)
	b.pushAccess(ConstantAccess{Value: value.Value})
	return nil
}

func (b *Builder) VisitIdentifierValue(id ast.Identifier) any {
	id.AcceptIdentifier(b)
	return nil
}

// --- ast.IdentifierVisitor ---

func (b *Builder) VisitVarAccess(id ast.VarAccess) any {
	idx, _ := b.findVariableByName(id.Name_)
	b.pushAccess(VariableAccess{Index: idx})
	return nil
}

func (b *Builder) VisitArrAccess(id ast.ArrAccess) any {
	arrayIdx, _ := b.findVariableByName(id.Name_)
	indexIdx, _ := b.findVariableByName(id.IndexVarName)
	b.pushAccess(ArrayDynamicAccess{Array: arrayIdx, Index: indexIdx})
	return nil
}

func (b *Builder) VisitArrConstAccess(id ast.ArrConstAccess) any {
	arrayIdx, _ := b.findVariableByName(id.Name_)
	b.context.GetOrRegisterConstant(id.IndexLiteral)
	b.pushAccess(ArrayStaticAccess{Array: arrayIdx, Index: id.IndexLiteral})
	return nil
}
