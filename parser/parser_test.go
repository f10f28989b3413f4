package parser

import (
	"testing"

	"accumula/ast"
	"accumula/lexer"
)

func mustParse(t *testing.T, src string) ast.Program {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, errs := Create(toks).Parse()
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return program
}

func TestParseAssignAndWrite(t *testing.T) {
	program := mustParse(t, `
		DECLARE n;
		BEGIN
			n := 5 + 2;
			WRITE n;
		END
	`)

	if len(program.Declarations) != 1 {
		t.Fatalf("declarations = %d, want 1", len(program.Declarations))
	}
	if _, ok := program.Declarations[0].(ast.VarDecl); !ok {
		t.Fatalf("declaration type = %T, want ast.VarDecl", program.Declarations[0])
	}
	if len(program.Commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(program.Commands))
	}

	assign, ok := program.Commands[0].(ast.AssignCmd)
	if !ok {
		t.Fatalf("commands[0] type = %T, want ast.AssignCmd", program.Commands[0])
	}
	expr, ok := assign.Expr.(ast.CompoundExpr)
	if !ok || expr.Op != ast.Plus {
		t.Fatalf("assign.Expr = %+v, want CompoundExpr(+)", assign.Expr)
	}

	if _, ok := program.Commands[1].(ast.WriteCmd); !ok {
		t.Fatalf("commands[1] type = %T, want ast.WriteCmd", program.Commands[1])
	}
}

func TestParseArrayDeclAndAccess(t *testing.T) {
	program := mustParse(t, `
		DECLARE tab(1:10), i;
		BEGIN
			i := 1;
			tab[i] := tab[5];
		END
	`)

	arr, ok := program.Declarations[0].(ast.ArrayDecl)
	if !ok || arr.Lo != 1 || arr.Hi != 10 {
		t.Fatalf("declarations[0] = %+v, want ArrayDecl(1,10)", program.Declarations[0])
	}

	assign, ok := program.Commands[1].(ast.AssignCmd)
	if !ok {
		t.Fatalf("commands[1] type = %T, want ast.AssignCmd", program.Commands[1])
	}
	if _, ok := assign.Target.(ast.ArrAccess); !ok {
		t.Fatalf("assign.Target = %T, want ast.ArrAccess", assign.Target)
	}
	expr := assign.Expr.(ast.SimpleExpr)
	if _, ok := expr.Value.(ast.ArrConstAccess); !ok {
		t.Fatalf("assign.Expr.Value = %T, want ast.ArrConstAccess", expr.Value)
	}
}

func TestParseIfElseWhileForRepeat(t *testing.T) {
	program := mustParse(t, `
		DECLARE n, i;
		BEGIN
			IF n > 0 THEN
				WRITE n;
			ELSE
				n := 0 - n;
			ENDIF
			WHILE n > 0 DO
				n := n - 1;
			ENDWHILE
			FOR i FROM 1 TO 10 DO
				WRITE i;
			ENDFOR
			REPEAT
				n := n + 1;
			UNTIL n = 10;
		END
	`)

	if len(program.Commands) != 4 {
		t.Fatalf("commands = %d, want 4", len(program.Commands))
	}
	if _, ok := program.Commands[0].(ast.IfElseCmd); !ok {
		t.Errorf("commands[0] type = %T, want ast.IfElseCmd", program.Commands[0])
	}
	if _, ok := program.Commands[1].(ast.WhileCmd); !ok {
		t.Errorf("commands[1] type = %T, want ast.WhileCmd", program.Commands[1])
	}
	forCmd, ok := program.Commands[2].(ast.ForCmd)
	if !ok || !forCmd.Ascending {
		t.Errorf("commands[2] = %+v, want ascending ast.ForCmd", program.Commands[2])
	}
	if _, ok := program.Commands[3].(ast.DoCmd); !ok {
		t.Errorf("commands[3] type = %T, want ast.DoCmd", program.Commands[3])
	}
}

func TestParseIfWithoutElse(t *testing.T) {
	program := mustParse(t, `
		DECLARE n;
		BEGIN
			IF n > 0 THEN
				WRITE n;
			ENDIF
			WRITE n;
		END
	`)

	if len(program.Commands) != 2 {
		t.Fatalf("commands = %d, want 2", len(program.Commands))
	}
	ifCmd, ok := program.Commands[0].(ast.IfCmd)
	if !ok {
		t.Fatalf("commands[0] type = %T, want ast.IfCmd", program.Commands[0])
	}
	if len(ifCmd.Then) != 1 {
		t.Fatalf("ifCmd.Then = %d commands, want 1", len(ifCmd.Then))
	}
	if _, ok := program.Commands[1].(ast.WriteCmd); !ok {
		t.Fatalf("commands[1] type = %T, want ast.WriteCmd", program.Commands[1])
	}
}

func TestParseReadAndSyntaxError(t *testing.T) {
	toks, err := lexer.New(`
		DECLARE n;
		BEGIN
			READ n
			WRITE n;
		END
	`).Scan()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	_, errs := Create(toks).Parse()
	if len(errs) == 0 {
		t.Fatal("Parse() expected a syntax error for a missing ';' after READ, got none")
	}
}
