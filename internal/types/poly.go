package types

import (
	"fmt"
	"strings"
)

// PolyType is a MonoType generalized over a set of type variables,
// each carrying its own kind constraints — a let-polymorphism scheme.
type PolyType struct {
	Vars []Tvar
	Cons map[Tvar]KindSet
	Expr MonoType
}

// Mono wraps a MonoType as a PolyType with no quantified variables —
// the scheme of a value that isn't generalized (e.g. a lambda
// parameter bound fresh inside its own body).
func Mono(t MonoType) PolyType {
	return PolyType{Expr: t}
}

func (p PolyType) String() string {
	if len(p.Vars) == 0 {
		return p.Expr.String()
	}
	names := make([]string, len(p.Vars))
	for i, v := range p.Vars {
		names[i] = v.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(names, " "), p.Expr)
}

// ErrorPoly is the scheme used in place of a PolyType that could not
// be determined, matching the Error MonoType sentinel.
func ErrorPoly() PolyType {
	return Mono(Error{})
}
