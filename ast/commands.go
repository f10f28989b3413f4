package ast

// IfElseCmd is "IF cond THEN commands ELSE commands ENDIF".
type IfElseCmd struct {
	Cond        Condition
	Then, Else_ Commands
}

func (c IfElseCmd) Accept(v CommandVisitor) any { return v.VisitIfElse(c) }

// IfCmd is "IF cond THEN commands ENDIF" with no else branch.
type IfCmd struct {
	Cond Condition
	Then Commands
}

func (c IfCmd) Accept(v CommandVisitor) any { return v.VisitIf(c) }

// WhileCmd is "WHILE cond DO commands ENDWHILE" — condition tested before
// each iteration, body may run zero times.
type WhileCmd struct {
	Cond Condition
	Body Commands
}

func (c WhileCmd) Accept(v CommandVisitor) any { return v.VisitWhile(c) }

// DoCmd is a do-while loop: Body runs at least once and repeats while Cond
// holds. The parser builds it from "REPEAT commands UNTIL cond" with Cond
// set to the negation of the UNTIL condition.
type DoCmd struct {
	Body Commands
	Cond Condition
}

func (c DoCmd) Accept(v CommandVisitor) any { return v.VisitDo(c) }

// ForCmd is a counted loop over an immutable counter. Ascending selects
// FROM..TO (counting up) versus FROM..DOWNTO (counting down). The counter
// is a fresh local, shadowing any global of the same name for the duration
// of Body, and may not be assigned to within Body (enforced by the verifier).
type ForCmd struct {
	Counter   string
	Ascending bool
	From, To  Value
	Body      Commands
}

func (c ForCmd) Accept(v CommandVisitor) any { return v.VisitFor(c) }

// ReadCmd stores the next input value into Target.
type ReadCmd struct {
	Target Identifier
}

func (c ReadCmd) Accept(v CommandVisitor) any { return v.VisitRead(c) }

// WriteCmd emits Value to output.
type WriteCmd struct {
	Value Value
}

func (c WriteCmd) Accept(v CommandVisitor) any { return v.VisitWrite(c) }

// AssignCmd stores the result of evaluating Expr into Target.
type AssignCmd struct {
	Target Identifier
	Expr   Expression
}

func (c AssignCmd) Accept(v CommandVisitor) any { return v.VisitAssign(c) }
