package subst

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/types"
)

// satisfies reports whether a concrete (non-variable, non-Error)
// MonoType satisfies the given Kind predicate. Error and Var are
// handled by the caller before reaching here: Error is absorbing,
// Var constraints are deferred into the kind table until bound.
func satisfies(k types.Kind, t types.MonoType) bool {
	basic, ok := t.(types.Basic)
	if !ok {
		return false
	}

	switch k {
	case types.Addable:
		return basic == types.Int || basic == types.Uint || basic == types.Float ||
			basic == types.String || basic == types.Dur
	case types.Subtractable:
		return basic == types.Int || basic == types.Uint || basic == types.Float || basic == types.Dur
	case types.Divisible:
		return basic == types.Int || basic == types.Uint || basic == types.Float
	case types.Numeric:
		return basic == types.Int || basic == types.Uint || basic == types.Float || basic == types.Dur
	case types.Comparable:
		return basic == types.Int || basic == types.Uint || basic == types.Float ||
			basic == types.String || basic == types.Time || basic == types.Dur
	case types.Equatable:
		return basic == types.Int || basic == types.Uint || basic == types.Float ||
			basic == types.String || basic == types.Bool || basic == types.Time ||
			basic == types.Dur || basic == types.Regexp || basic == types.Bytes
	case types.Nullable:
		return true
	case types.Negatable:
		return basic == types.Int || basic == types.Uint || basic == types.Float || basic == types.Dur
	case types.Timeable:
		return basic == types.Time || basic == types.Dur
	case types.RecordKind:
		return false
	case types.Stringable:
		return basic == types.Int || basic == types.Uint || basic == types.Float ||
			basic == types.String || basic == types.Bool || basic == types.Time ||
			basic == types.Dur || basic == types.Regexp || basic == types.Bytes
	case types.BasicKind:
		return true
	default:
		return false
	}
}

// CheckKind verifies that t (a concrete, substitution-resolved type)
// satisfies k, returning a descriptive error if not.
func CheckKind(k types.Kind, t types.MonoType) error {
	if _, ok := t.(types.Error); ok {
		return nil // absorbing
	}
	if _, ok := t.(types.Var); ok {
		return nil // deferred: caller should record this in the kind table instead
	}
	if rec, ok := t.(types.Record); ok {
		if k == types.RecordKind {
			return nil
		}
		return fmt.Errorf("kind mismatch: %s does not satisfy %s", rec, k)
	}
	if satisfies(k, t) {
		return nil
	}
	return fmt.Errorf("kind mismatch: %s does not satisfy %s", t, k)
}
