package ast

// VarDecl declares a single scalar variable.
type VarDecl struct {
	Name_ string
}

func (d VarDecl) Accept(v DeclarationVisitor) any { return v.VisitVarDecl(d) }
func (d VarDecl) Name() string                    { return d.Name_ }

// ArrayDecl declares an array addressable over the inclusive range [Lo, Hi].
// Hi may be less than Lo nowhere in a well-formed program; the verifier
// rejects Lo > Hi (spec.md's InvalidArrayRange).
type ArrayDecl struct {
	Name_  string
	Lo, Hi int64
}

func (d ArrayDecl) Accept(v DeclarationVisitor) any { return v.VisitArrayDecl(d) }
func (d ArrayDecl) Name() string                    { return d.Name_ }
