package ir_test

import (
	"testing"

	"accumula/ast"
	"accumula/ir"
)

func TestBuildWriteLiteralEmitsLoadAndPut(t *testing.T) {
	program := ast.Program{
		Commands: ast.Commands{
			ast.WriteCmd{Value: ast.NumValue{Value: 42}},
		},
	}

	ctx := ir.Build(program)
	instrs := ctx.Instructions()
	if len(instrs) != 2 {
		t.Fatalf("expected 2 instructions, got %d: %#v", len(instrs), instrs)
	}
	if _, ok := instrs[0].(ir.Load); !ok {
		t.Fatalf("expected first instruction to be Load, got %T", instrs[0])
	}
	if _, ok := instrs[1].(ir.Put); !ok {
		t.Fatalf("expected second instruction to be Put, got %T", instrs[1])
	}
}

func TestBuildAssignEmitsPreStoreThenStore(t *testing.T) {
	program := ast.Program{
		Declarations: []ast.Declaration{ast.VarDecl{Name_: "n"}},
		Commands: ast.Commands{
			ast.AssignCmd{
				Target: ast.VarAccess{Name_: "n"},
				Expr:   ast.SimpleExpr{Value: ast.NumValue{Value: 7}},
			},
		},
	}

	ctx := ir.Build(program)
	instrs := ctx.Instructions()
	if len(instrs) != 3 {
		t.Fatalf("expected 3 instructions, got %d: %#v", len(instrs), instrs)
	}
	if _, ok := instrs[0].(ir.PreStore); !ok {
		t.Fatalf("expected PreStore first, got %T", instrs[0])
	}
	if _, ok := instrs[1].(ir.Load); !ok {
		t.Fatalf("expected Load second, got %T", instrs[1])
	}
	store, ok := instrs[2].(ir.Store)
	if !ok {
		t.Fatalf("expected Store third, got %T", instrs[2])
	}
	va, ok := store.Access.(ir.VariableAccess)
	if !ok {
		t.Fatalf("expected Store target to be a VariableAccess, got %T", store.Access)
	}
	_ = va
}

func TestBuildForLoopUsesHiddenBoundLocal(t *testing.T) {
	program := ast.Program{
		Declarations: []ast.Declaration{ast.VarDecl{Name_: "sum"}},
		Commands: ast.Commands{
			ast.ForCmd{
				Counter:   "i",
				Ascending: true,
				From:      ast.NumValue{Value: 1},
				To:        ast.NumValue{Value: 10},
				Body: ast.Commands{
					ast.AssignCmd{
						Target: ast.VarAccess{Name_: "sum"},
						Expr: ast.CompoundExpr{
							Left:  ast.VarAccess{Name_: "sum"},
							Op:    ast.Plus,
							Right: ast.VarAccess{Name_: "i"},
						},
					},
				},
			},
		},
	}

	ctx := ir.Build(program)
	foundTo := false
	for _, v := range ctx.Variables() {
		if v.Variable.Name() == "i$to" {
			foundTo = true
		}
	}
	if !foundTo {
		t.Fatalf("expected a hidden i$to bound variable to be registered")
	}
}

func TestBuildIfElseEmitsConditionalJumpsAndBothBranches(t *testing.T) {
	program := ast.Program{
		Declarations: []ast.Declaration{ast.VarDecl{Name_: "a"}, ast.VarDecl{Name_: "b"}},
		Commands: ast.Commands{
			ast.IfElseCmd{
				Cond: ast.Condition{
					Left:  ast.VarAccess{Name_: "a"},
					Op:    ast.EQ,
					Right: ast.VarAccess{Name_: "b"},
				},
				Then:  ast.Commands{ast.WriteCmd{Value: ast.NumValue{Value: 1}}},
				Else_: ast.Commands{ast.WriteCmd{Value: ast.NumValue{Value: 0}}},
			},
		},
	}

	ctx := ir.Build(program)
	var jzero, labels, jumps int
	for _, instr := range ctx.Instructions() {
		switch instr.(type) {
		case ir.JZero:
			jzero++
		case ir.LabelMark:
			labels++
		case ir.Jump:
			jumps++
		}
	}
	if jzero != 1 {
		t.Fatalf("expected exactly one JZero for an EQ condition, got %d", jzero)
	}
	if labels != 2 {
		t.Fatalf("expected two label marks (negative branch + endif), got %d", labels)
	}
	if jumps != 1 {
		t.Fatalf("expected one unconditional jump past the negative branch, got %d", jumps)
	}
}
