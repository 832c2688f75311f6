package subst

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/types"
)

// Constraint is one deferred unification or kind obligation, batched
// so a caller can solve several at once and collect every failure
// rather than stopping at the first.
type Constraint interface {
	constraint()
}

// Equal demands exp and act unify.
type Equal struct {
	Exp types.MonoType
	Act types.MonoType
	Loc ast.SourceLocation
}

func (Equal) constraint() {}

// KindConstraint demands act carry kind predicate Exp.
type KindConstraint struct {
	Exp types.Kind
	Act types.MonoType
	Loc ast.SourceLocation
}

func (KindConstraint) constraint() {}

// SolveError pairs a failed Constraint's location with the underlying
// cause, for the caller to wrap into a diagnostic.
type SolveError struct {
	Loc ast.SourceLocation
	Err error
}

func (e SolveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Err)
}

func (e SolveError) Unwrap() error { return e.Err }

// Solve applies every constraint in order, collecting a SolveError for
// each one that fails rather than stopping at the first.
func (s *Substitution) Solve(cs []Constraint) []error {
	var errs []error
	for _, c := range cs {
		switch ct := c.(type) {
		case Equal:
			if err := s.Unify(ct.Exp, ct.Act); err != nil {
				errs = append(errs, SolveError{Loc: ct.Loc, Err: err})
			}
		case KindConstraint:
			if err := s.Constrain(ct.Exp, ct.Act); err != nil {
				errs = append(errs, SolveError{Loc: ct.Loc, Err: err})
			}
		}
	}
	return errs
}
