package ast

// VarAccess names a scalar variable, or the loop counter of an enclosing
// ForCmd, by name.
type VarAccess struct {
	Name_ string
}

func (id VarAccess) Accept(v ValueVisitor) any              { return v.VisitIdentifierValue(id) }
func (id VarAccess) AcceptIdentifier(v IdentifierVisitor) any { return v.VisitVarAccess(id) }
func (id VarAccess) Name() string                            { return id.Name_ }
func (id VarAccess) AllNames() []string                      { return []string{id.Name_} }

// ArrAccess is array indexing by a variable: "arr[i]". IndexVarName is
// itself a plain variable or loop counter, resolved at the same scope as
// any other identifier reference.
type ArrAccess struct {
	Name_        string
	IndexVarName string
}

func (id ArrAccess) Accept(v ValueVisitor) any               { return v.VisitIdentifierValue(id) }
func (id ArrAccess) AcceptIdentifier(v IdentifierVisitor) any { return v.VisitArrAccess(id) }
func (id ArrAccess) Name() string                             { return id.Name_ }
func (id ArrAccess) AllNames() []string                       { return []string{id.Name_, id.IndexVarName} }

// ArrConstAccess is array indexing by a literal: "arr[5]". The index is
// checked against the array's declared bounds by the verifier when it is
// statically known to be out of range; genuinely dynamic out-of-range
// access (via ArrAccess) is not checked at compile time or run time, per
// spec.md's Non-goals.
type ArrConstAccess struct {
	Name_        string
	IndexLiteral int64
}

func (id ArrConstAccess) Accept(v ValueVisitor) any               { return v.VisitIdentifierValue(id) }
func (id ArrConstAccess) AcceptIdentifier(v IdentifierVisitor) any { return v.VisitArrConstAccess(id) }
func (id ArrConstAccess) Name() string                             { return id.Name_ }
func (id ArrConstAccess) AllNames() []string                       { return []string{id.Name_} }
