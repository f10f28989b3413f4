package ast

// ExprOp is the arithmetic operator of a CompoundExpr.
type ExprOp int

const (
	Plus ExprOp = iota
	Minus
	Times
	Div
	Mod
)

// SimpleExpr is an expression that is just a single value, with no
// arithmetic applied — the common case. WriteCmd's argument is typed Value
// rather than Expression, so it never takes this wrapper.
type SimpleExpr struct {
	Value Value
}

func (e SimpleExpr) Accept(v ExpressionVisitor) any { return v.VisitSimpleExpr(e) }

// CompoundExpr is "Left Op Right", the right-hand side of an assignment
// when it involves an operator.
type CompoundExpr struct {
	Left  Value
	Op    ExprOp
	Right Value
}

func (e CompoundExpr) Accept(v ExpressionVisitor) any { return v.VisitCompoundExpr(e) }
