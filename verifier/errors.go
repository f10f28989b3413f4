package verifier

import "fmt"

// InvalidArrayRange reports an array declared with its start past its end.
type InvalidArrayRange struct {
	Name       string
	Start, End int64
}

func (e InvalidArrayRange) Error() string {
	return fmt.Sprintf("💥 SemanticError: invalid array range: %s(%d:%d)", e.Name, e.Start, e.End)
}

// UndeclaredVariable reports a reference to a name with no matching
// declaration or enclosing for-loop counter.
type UndeclaredVariable struct {
	Name string
}

func (e UndeclaredVariable) Error() string {
	return fmt.Sprintf("💥 SemanticError: undeclared variable %s", e.Name)
}

// ForCounterModification reports an attempt to assign to, or read into, a
// for-loop counter from within its own body.
type ForCounterModification struct {
	Name string
}

func (e ForCounterModification) Error() string {
	return fmt.Sprintf("💥 SemanticError: illegal modification of for loop counter %s", e.Name)
}

// InvalidVariableUsage reports a scalar used where an array was declared,
// an array used where a scalar was declared, or a literal array index
// outside the array's declared bounds.
type InvalidVariableUsage struct {
	Name string
}

func (e InvalidVariableUsage) Error() string {
	return fmt.Sprintf("💥 SemanticError: invalid variable usage: %s", e.Name)
}
