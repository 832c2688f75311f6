package subst

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/types"
)

// Unify computes the most general unifier of a and b, recording
// bindings into s. Error is absorbing: unifying it with anything
// succeeds without constraining further.
func (s *Substitution) Unify(a, b types.MonoType) error {
	a = s.Apply(a)
	b = s.Apply(b)

	if _, ok := a.(types.Error); ok {
		return nil
	}
	if _, ok := b.(types.Error); ok {
		return nil
	}

	if av, ok := a.(types.Var); ok {
		return s.bind(av.Tv, b)
	}
	if bv, ok := b.(types.Var); ok {
		return s.bind(bv.Tv, a)
	}

	switch at := a.(type) {
	case types.Basic:
		bt, ok := b.(types.Basic)
		if !ok || at != bt {
			return fmt.Errorf("cannot unify %s with %s", a, b)
		}
		return nil

	case types.Array:
		bt, ok := b.(types.Array)
		if !ok {
			return fmt.Errorf("cannot unify %s with %s", a, b)
		}
		return s.Unify(at.Elem, bt.Elem)

	case types.Dict:
		bt, ok := b.(types.Dict)
		if !ok {
			return fmt.Errorf("cannot unify %s with %s", a, b)
		}
		if err := s.Unify(at.Key, bt.Key); err != nil {
			return err
		}
		return s.Unify(at.Val, bt.Val)

	case types.Vector:
		bt, ok := b.(types.Vector)
		if !ok {
			return fmt.Errorf("cannot unify %s with %s", a, b)
		}
		return s.Unify(at.Elem, bt.Elem)

	case types.Record:
		bt, ok := b.(types.Record)
		if !ok {
			return fmt.Errorf("cannot unify %s with %s", a, b)
		}
		return s.unifyRows(at.Row, bt.Row)

	case types.Function:
		bt, ok := b.(types.Function)
		if !ok {
			return fmt.Errorf("cannot unify %s with %s", a, b)
		}
		return s.unifyFunctions(at, bt)

	default:
		return fmt.Errorf("cannot unify %s with %s", a, b)
	}
}

func (s *Substitution) unifyFunctions(a, b types.Function) error {
	for label, at := range a.Req {
		bt, ok := b.Req[label]
		if !ok {
			return fmt.Errorf("missing required parameter %q", label)
		}
		if err := s.Unify(at, bt); err != nil {
			return fmt.Errorf("parameter %q: %w", label, err)
		}
	}
	for label := range b.Req {
		if _, ok := a.Req[label]; !ok {
			return fmt.Errorf("missing required parameter %q", label)
		}
	}
	for label, at := range a.Opt {
		if bt, ok := b.Opt[label]; ok {
			if err := s.Unify(at, bt); err != nil {
				return fmt.Errorf("optional parameter %q: %w", label, err)
			}
		}
	}
	if (a.Pipe == nil) != (b.Pipe == nil) {
		return fmt.Errorf("pipe parameter mismatch")
	}
	if a.Pipe != nil {
		if err := s.Unify(a.Pipe.Value, b.Pipe.Value); err != nil {
			return fmt.Errorf("pipe parameter: %w", err)
		}
	}
	return s.Unify(a.Retn, b.Retn)
}

// bind binds v to t after an occurs-check and kind verification. If v
// already has kind constraints in the table, each must hold of t (once
// t is concrete) or binding fails; if t is itself a variable, v's
// kinds are carried over to t's entry in the table.
func (s *Substitution) bind(v types.Tvar, t types.MonoType) error {
	if vt, ok := t.(types.Var); ok && vt.Tv == v {
		return nil
	}
	if occursIn(v, t) {
		return fmt.Errorf("occurs check failed: %s occurs in %s", v, t)
	}
	if ks, ok := s.kinds[v]; ok {
		if tv, isVar := t.(types.Var); isVar {
			dst, ok := s.kinds[tv.Tv]
			if !ok {
				dst = types.NewKindSet()
				s.kinds[tv.Tv] = dst
			}
			for k := range ks {
				dst.Add(k)
			}
		}
		for k := range ks {
			if err := CheckKind(k, t); err != nil {
				return err
			}
		}
	}
	s.bindings[v] = t
	return nil
}

func occursIn(v types.Tvar, t types.MonoType) bool {
	switch tt := t.(type) {
	case types.Var:
		return tt.Tv == v
	case types.Array:
		return occursIn(v, tt.Elem)
	case types.Dict:
		return occursIn(v, tt.Key) || occursIn(v, tt.Val)
	case types.Vector:
		return occursIn(v, tt.Elem)
	case types.Record:
		return occursInRow(v, tt.Row)
	case types.Function:
		for _, p := range tt.Req {
			if occursIn(v, p) {
				return true
			}
		}
		for _, p := range tt.Opt {
			if occursIn(v, p) {
				return true
			}
		}
		if tt.Pipe != nil && occursIn(v, tt.Pipe.Value) {
			return true
		}
		return occursIn(v, tt.Retn)
	default:
		return false
	}
}

func occursInRow(v types.Tvar, r types.Row) bool {
	switch rt := r.(type) {
	case types.RowVar:
		return rt.Tv == v
	case types.Extension:
		return occursIn(v, rt.Value) || occursInRow(v, rt.Tail)
	default:
		return false
	}
}

// Constrain attaches kind predicate k to t: if t is an unresolved
// variable, it is recorded in the kind table for later verification
// when the variable is bound; if t is already concrete, it is checked
// immediately.
func (s *Substitution) Constrain(k types.Kind, t types.MonoType) error {
	t = s.Apply(t)
	if v, ok := t.(types.Var); ok {
		ks, ok := s.kinds[v.Tv]
		if !ok {
			ks = types.NewKindSet()
			s.kinds[v.Tv] = ks
		}
		ks.Add(k)
		return nil
	}
	return CheckKind(k, t)
}
