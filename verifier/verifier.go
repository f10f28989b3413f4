// Package verifier implements the semantic pass that runs between parsing
// and IR construction: every name used anywhere in the program must trace
// back to a declaration or an enclosing for-loop counter, array bounds
// must be sane, and for-loop counters may never be written to from within
// their own body.
//
// Unlike the codegen/translator passes below it, verification never
// panics on a bad program — it is the one component whose whole job is to
// describe what's wrong with user input, so every problem found is
// collected and returned together rather than stopping at the first one.
package verifier

import "accumula/ast"

// SemanticVerifier walks a Program accumulating every semantic error it
// finds. It implements every ast visitor interface; most Visit* methods
// return nil and communicate solely by appending to errs, mirroring the
// teacher's compiler.ASTCompiler in spirit (recursive descent driven by
// Accept) but with error accumulation instead of instruction emission.
type SemanticVerifier struct {
	globals map[string]ast.Declaration
	locals  []string
	errs    []error
}

// Verify checks program and returns every semantic error found, in the
// order encountered. A nil/empty result means the program is well-formed
// and safe to hand to the IR builder.
func Verify(program ast.Program) []error {
	v := &SemanticVerifier{globals: map[string]ast.Declaration{}}
	v.visitDeclarations(program.Declarations)
	v.visitCommands(program.Commands)
	return v.errs
}

func (v *SemanticVerifier) fail(err error) {
	v.errs = append(v.errs, err)
}

func (v *SemanticVerifier) getGlobal(name string) (ast.Declaration, bool) {
	d, ok := v.globals[name]
	return d, ok
}

func (v *SemanticVerifier) isLocal(name string) bool {
	for _, l := range v.locals {
		if l == name {
			return true
		}
	}
	return false
}

func (v *SemanticVerifier) visitDeclarations(decls []ast.Declaration) {
	for _, d := range decls {
		d.Accept(v)
		v.globals[d.Name()] = d
	}
}

func (v *SemanticVerifier) VisitVarDecl(decl ast.VarDecl) any { return nil }

func (v *SemanticVerifier) VisitArrayDecl(decl ast.ArrayDecl) any {
	if decl.Lo > decl.Hi {
		v.fail(InvalidArrayRange{Name: decl.Name_, Start: decl.Lo, End: decl.Hi})
	}
	return nil
}

func (v *SemanticVerifier) visitCommands(cmds ast.Commands) {
	for _, c := range cmds {
		c.Accept(v)
	}
}

func (v *SemanticVerifier) VisitIfElse(cmd ast.IfElseCmd) any {
	v.visitCondition(cmd.Cond)
	v.visitCommands(cmd.Then)
	v.visitCommands(cmd.Else_)
	return nil
}

func (v *SemanticVerifier) VisitIf(cmd ast.IfCmd) any {
	v.visitCondition(cmd.Cond)
	v.visitCommands(cmd.Then)
	return nil
}

func (v *SemanticVerifier) VisitWhile(cmd ast.WhileCmd) any {
	v.visitCondition(cmd.Cond)
	v.visitCommands(cmd.Body)
	return nil
}

func (v *SemanticVerifier) VisitDo(cmd ast.DoCmd) any {
	v.visitCommands(cmd.Body)
	v.visitCondition(cmd.Cond)
	return nil
}

func (v *SemanticVerifier) VisitFor(cmd ast.ForCmd) any {
	v.visitValue(cmd.From)
	v.visitValue(cmd.To)
	v.locals = append(v.locals, cmd.Counter)
	v.visitCommands(cmd.Body)
	v.locals = v.locals[:len(v.locals)-1]
	return nil
}

func (v *SemanticVerifier) VisitRead(cmd ast.ReadCmd) any {
	v.visitIdentifierTarget(cmd.Target)
	return nil
}

func (v *SemanticVerifier) VisitWrite(cmd ast.WriteCmd) any {
	v.visitValue(cmd.Value)
	return nil
}

func (v *SemanticVerifier) VisitAssign(cmd ast.AssignCmd) any {
	v.visitIdentifierTarget(cmd.Target)
	cmd.Expr.Accept(v)
	return nil
}

// visitIdentifierTarget validates target as an identifier reference (as
// visitIdentifier does for any use) and additionally rejects writing to a
// for-loop counter — the one context-dependent rule a general identifier
// visit can't express on its own.
func (v *SemanticVerifier) visitIdentifierTarget(target ast.Identifier) {
	before := len(v.errs)
	v.visitIdentifierRef(target)
	if len(v.errs) == before && v.isLocal(target.Name()) {
		v.fail(ForCounterModification{Name: target.Name()})
	}
}

func (v *SemanticVerifier) VisitSimpleExpr(expr ast.SimpleExpr) any {
	v.visitValue(expr.Value)
	return nil
}

func (v *SemanticVerifier) VisitCompoundExpr(expr ast.CompoundExpr) any {
	v.visitValue(expr.Left)
	v.visitValue(expr.Right)
	return nil
}

func (v *SemanticVerifier) visitValue(val ast.Value) { val.Accept(v) }

func (v *SemanticVerifier) VisitNumValue(value ast.NumValue) any { return nil }

func (v *SemanticVerifier) VisitIdentifierValue(id ast.Identifier) any {
	v.visitIdentifierRef(id)
	return nil
}

func (v *SemanticVerifier) visitCondition(cond ast.Condition) {
	v.visitValue(cond.Left)
	v.visitValue(cond.Right)
}

// visitIdentifierRef checks that every bare name the identifier touches
// (itself, and an index variable for ArrAccess) is declared or local, then
// checks that the identifier's shape (scalar vs array, const index bounds)
// matches the declaration.
func (v *SemanticVerifier) visitIdentifierRef(id ast.Identifier) {
	for _, name := range id.AllNames() {
		if _, ok := v.getGlobal(name); ok {
			continue
		}
		if v.isLocal(name) {
			continue
		}
		v.fail(UndeclaredVariable{Name: name})
	}
	id.AcceptIdentifier(v)
}

func (v *SemanticVerifier) VisitVarAccess(id ast.VarAccess) any {
	if decl, ok := v.getGlobal(id.Name_); ok {
		if _, isArray := decl.(ast.ArrayDecl); isArray {
			v.fail(InvalidVariableUsage{Name: id.Name_})
		}
	}
	return nil
}

func (v *SemanticVerifier) VisitArrAccess(id ast.ArrAccess) any {
	if decl, ok := v.getGlobal(id.Name_); ok {
		if _, isArray := decl.(ast.ArrayDecl); !isArray {
			v.fail(InvalidVariableUsage{Name: id.Name_})
		}
	}
	if decl, ok := v.getGlobal(id.IndexVarName); ok {
		if _, isArray := decl.(ast.ArrayDecl); isArray {
			v.fail(InvalidVariableUsage{Name: id.Name_})
		}
	}
	return nil
}

func (v *SemanticVerifier) VisitArrConstAccess(id ast.ArrConstAccess) any {
	decl, ok := v.getGlobal(id.Name_)
	if !ok {
		return nil
	}
	arr, isArray := decl.(ast.ArrayDecl)
	if !isArray {
		v.fail(InvalidVariableUsage{Name: id.Name_})
		return nil
	}
	if id.IndexLiteral < arr.Lo || id.IndexLiteral > arr.Hi {
		v.fail(InvalidVariableUsage{Name: id.Name_})
	}
	return nil
}
