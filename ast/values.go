package ast

// NumValue is an integer literal. The other Value shape, an identifier
// reference, is implemented directly by VarAccess/ArrAccess/ArrConstAccess
// (see identifiers.go) — there is no separate wrapper type, since every
// Identifier already satisfies Value.
type NumValue struct {
	Value int64
}

func (v NumValue) Accept(vis ValueVisitor) any { return vis.VisitNumValue(v) }
