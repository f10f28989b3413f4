package parser

import (
	"encoding/json"
	"fmt"
	"os"

	"accumula/ast"
)

const (
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// astPrinter implements every ast visitor interface and builds a
// JSON-friendly representation of the tree using maps and slices. Each
// Visit method returns an object that can be marshaled to JSON.
type astPrinter struct{}

func (p astPrinter) VisitVarDecl(decl ast.VarDecl) any {
	return map[string]any{"type": "VarDecl", "name": decl.Name_}
}

func (p astPrinter) VisitArrayDecl(decl ast.ArrayDecl) any {
	return map[string]any{"type": "ArrayDecl", "name": decl.Name_, "lo": decl.Lo, "hi": decl.Hi}
}

func (p astPrinter) VisitIfElse(cmd ast.IfElseCmd) any {
	return map[string]any{
		"type": "IfElse",
		"cond": p.printCondition(cmd.Cond),
		"then": p.printCommands(cmd.Then),
		"else": p.printCommands(cmd.Else_),
	}
}

func (p astPrinter) VisitIf(cmd ast.IfCmd) any {
	return map[string]any{
		"type": "If",
		"cond": p.printCondition(cmd.Cond),
		"then": p.printCommands(cmd.Then),
	}
}

func (p astPrinter) VisitWhile(cmd ast.WhileCmd) any {
	return map[string]any{
		"type": "While",
		"cond": p.printCondition(cmd.Cond),
		"body": p.printCommands(cmd.Body),
	}
}

func (p astPrinter) VisitDo(cmd ast.DoCmd) any {
	return map[string]any{
		"type": "DoWhile",
		"body": p.printCommands(cmd.Body),
		"cond": p.printCondition(cmd.Cond),
	}
}

func (p astPrinter) VisitFor(cmd ast.ForCmd) any {
	return map[string]any{
		"type":      "For",
		"counter":   cmd.Counter,
		"ascending": cmd.Ascending,
		"from":      cmd.From.Accept(p),
		"to":        cmd.To.Accept(p),
		"body":      p.printCommands(cmd.Body),
	}
}

func (p astPrinter) VisitRead(cmd ast.ReadCmd) any {
	return map[string]any{"type": "Read", "target": cmd.Target.Accept(p)}
}

func (p astPrinter) VisitWrite(cmd ast.WriteCmd) any {
	return map[string]any{"type": "Write", "value": cmd.Value.Accept(p)}
}

func (p astPrinter) VisitAssign(cmd ast.AssignCmd) any {
	return map[string]any{
		"type":   "Assign",
		"target": cmd.Target.Accept(p),
		"expr":   cmd.Expr.Accept(p),
	}
}

func (p astPrinter) VisitSimpleExpr(expr ast.SimpleExpr) any {
	return expr.Value.Accept(p)
}

func (p astPrinter) VisitCompoundExpr(expr ast.CompoundExpr) any {
	return map[string]any{
		"type":  "CompoundExpr",
		"left":  expr.Left.Accept(p),
		"op":    exprOpName(expr.Op),
		"right": expr.Right.Accept(p),
	}
}

func (p astPrinter) VisitNumValue(value ast.NumValue) any {
	return value.Value
}

func (p astPrinter) VisitIdentifierValue(id ast.Identifier) any {
	return id.AcceptIdentifier(p)
}

func (p astPrinter) VisitVarAccess(id ast.VarAccess) any {
	return map[string]any{"type": "VarAccess", "name": id.Name_}
}

func (p astPrinter) VisitArrAccess(id ast.ArrAccess) any {
	return map[string]any{"type": "ArrAccess", "name": id.Name_, "index": id.IndexVarName}
}

func (p astPrinter) VisitArrConstAccess(id ast.ArrConstAccess) any {
	return map[string]any{"type": "ArrConstAccess", "name": id.Name_, "index": id.IndexLiteral}
}

func (p astPrinter) printCommands(cmds ast.Commands) []any {
	out := make([]any, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c.Accept(p))
	}
	return out
}

func (p astPrinter) printCondition(cond ast.Condition) any {
	return map[string]any{
		"left":  cond.Left.Accept(p),
		"op":    relOpName(cond.Op),
		"right": cond.Right.Accept(p),
	}
}

func exprOpName(op ast.ExprOp) string {
	switch op {
	case ast.Plus:
		return "+"
	case ast.Minus:
		return "-"
	case ast.Times:
		return "*"
	case ast.Div:
		return "/"
	case ast.Mod:
		return "%"
	default:
		return "?"
	}
}

func relOpName(op ast.RelOp) string {
	switch op {
	case ast.EQ:
		return "="
	case ast.NEQ:
		return "!="
	case ast.LEQ:
		return "<="
	case ast.LT:
		return "<"
	case ast.GEQ:
		return ">="
	case ast.GT:
		return ">"
	default:
		return "?"
	}
}

// Print prints the AST as prettified JSON to standard output.
func Print(program ast.Program) {
	if _, err := PrintASTJSON(program); err != nil {
		fmt.Println("error producing AST JSON:", err)
	}
}

// PrintASTJSON converts a program into a prettified JSON string.
func PrintASTJSON(program ast.Program) (string, error) {
	printer := astPrinter{}
	decls := make([]any, 0, len(program.Declarations))
	for _, d := range program.Declarations {
		decls = append(decls, d.Accept(printer))
	}

	out := map[string]any{
		"declarations": decls,
		"commands":     printer.printCommands(program.Commands),
	}

	bytes, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}

	jsonStr := string(bytes)
	fmt.Println(colorYellow + "----- AST JSON -----")
	fmt.Println(colorYellow + jsonStr)
	fmt.Println(colorYellow + "-----" + colorReset)
	fmt.Println("")
	return jsonStr, nil
}

// WriteASTJSONToFile writes the prettified AST JSON for program to path.
func WriteASTJSONToFile(program ast.Program, path string) error {
	s, err := PrintASTJSON(program)
	if err != nil {
		return err
	}
	fDescriptor, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating AST file: %s", err.Error())
	}
	defer fDescriptor.Close()

	if _, err := fDescriptor.Write([]byte(s)); err != nil {
		return fmt.Errorf("error writing AST to file: %s", err.Error())
	}
	return nil
}
