package subst

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/types"
)

// unifyRows unifies two rows. Matching head labels unify their values
// and recurse on the tails. Mismatched head labels are reconciled by
// rewriting one row so the other's head label surfaces at the front —
// introducing a fresh tail variable when the rewritten row is open —
// and then proceeding as in the matching case. Empty unifies only with
// Empty or an unbound row variable; duplicate labels within a single
// row are rejected.
func (s *Substitution) unifyRows(r1, r2 types.Row) error {
	r1 = s.applyRow(r1)
	r2 = s.applyRow(r2)

	switch r1t := r1.(type) {
	case types.EmptyRow:
		switch r2t := r2.(type) {
		case types.EmptyRow:
			return nil
		case types.RowVar:
			return s.bindRow(r2t.Tv, types.EmptyRow{})
		default:
			return fmt.Errorf("cannot unify empty row with %s", r2)
		}

	case types.RowVar:
		switch r2t := r2.(type) {
		case types.EmptyRow:
			return s.bindRow(r1t.Tv, types.EmptyRow{})
		case types.RowVar:
			if r1t.Tv == r2t.Tv {
				return nil
			}
			return s.bindRow(r1t.Tv, r2)
		case types.Extension:
			if occursInRow(r1t.Tv, r2t) {
				return fmt.Errorf("occurs check failed: row variable %s occurs in %s", r1t.Tv, r2)
			}
			return s.bindRow(r1t.Tv, r2)
		}

	case types.Extension:
		switch r2t := r2.(type) {
		case types.EmptyRow:
			return fmt.Errorf("cannot unify %s with empty row", r1)
		case types.RowVar:
			if occursInRow(r2t.Tv, r1t) {
				return fmt.Errorf("occurs check failed: row variable %s occurs in %s", r2t.Tv, r1)
			}
			return s.bindRow(r2t.Tv, r1t)
		case types.Extension:
			if r1t.Label == r2t.Label {
				if err := s.Unify(r1t.Value, r2t.Value); err != nil {
					return fmt.Errorf("label %q: %w", r1t.Label, err)
				}
				return s.unifyRows(r1t.Tail, r2t.Tail)
			}
			matched, rest, err := s.exposeLabel(r2t, r1t.Label)
			if err != nil {
				return err
			}
			if err := s.Unify(r1t.Value, matched); err != nil {
				return fmt.Errorf("label %q: %w", r1t.Label, err)
			}
			return s.unifyRows(r1t.Tail, rest)
		}
	}
	return fmt.Errorf("cannot unify row %s with %s", r1, r2)
}

// exposeLabel rewrites r so label, if present, is brought to the
// front: it returns the field's value and the remaining row with that
// field removed. If r's chain ends in an open row variable, the
// variable is bound to a fresh Extension{label, freshValue, freshTail}
// so the label becomes available; if the chain ends in Empty, label is
// absent and unification fails.
func (s *Substitution) exposeLabel(r types.Row, label types.Label) (types.MonoType, types.Row, error) {
	switch rt := r.(type) {
	case types.EmptyRow:
		return nil, nil, fmt.Errorf("label %q not found in closed row", label)

	case types.RowVar:
		fieldVar := s.Fresh()
		tailVar := s.Fresh()
		newRow := types.Extension{
			Label: label,
			Value: types.Var{Tv: fieldVar},
			Tail:  types.RowVar{Tv: tailVar},
		}
		if err := s.bindRow(rt.Tv, newRow); err != nil {
			return nil, nil, err
		}
		return types.Var{Tv: fieldVar}, types.RowVar{Tv: tailVar}, nil

	case types.Extension:
		if rt.Label == label {
			if _, dup := types.Lookup(s.applyRow(rt.Tail), label); dup {
				return nil, nil, fmt.Errorf("duplicate label %q in row", label)
			}
			return rt.Value, rt.Tail, nil
		}
		val, rest, err := s.exposeLabel(s.applyRow(rt.Tail), label)
		if err != nil {
			return nil, nil, err
		}
		return val, types.Extension{Label: rt.Label, Value: rt.Value, Tail: rest}, nil

	default:
		return nil, nil, fmt.Errorf("cannot expose label %q in %s", label, r)
	}
}

// bindRow binds row variable v to row r.
func (s *Substitution) bindRow(v types.Tvar, r types.Row) error {
	if rv, ok := r.(types.RowVar); ok && rv.Tv == v {
		return nil
	}
	if occursInRow(v, r) {
		return fmt.Errorf("occurs check failed: row variable %s occurs in %s", v, r)
	}
	s.bindings[v] = types.Record{Row: r}
	return nil
}
