// Package subst implements the substitution and unification engine:
// fresh type variables, applying substitutions through the type
// algebra, unification with occurs-check, and lazy kind-constraint
// verification.
package subst

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/types"
)

// Substitution owns the Tvar -> MonoType bindings and the Tvar ->
// KindSet constraint table for a single inference run. It is not
// safe for concurrent use; internal/infer owns one exclusively for
// the duration of InferPackage.
type Substitution struct {
	counter  uint64
	bindings map[types.Tvar]types.MonoType
	kinds    map[types.Tvar]types.KindSet
}

// New returns an empty Substitution.
func New() *Substitution {
	return &Substitution{
		bindings: make(map[types.Tvar]types.MonoType),
		kinds:    make(map[types.Tvar]types.KindSet),
	}
}

// Fresh allocates a monotonically unique, currently-unbound type
// variable.
func (s *Substitution) Fresh() types.Tvar {
	s.counter++
	return types.Tvar(s.counter)
}

// Cons returns the live kind table. Callers must not retain it past
// the Substitution's lifetime.
func (s *Substitution) Cons() map[types.Tvar]types.KindSet {
	return s.kinds
}

// lookup returns the direct binding of v, if any, without following
// further chains.
func (s *Substitution) lookup(v types.Tvar) (types.MonoType, bool) {
	t, ok := s.bindings[v]
	return t, ok
}

// Apply recursively resolves Var chains in t, compressing the path as
// it goes so repeated lookups of the same variable are O(1) after the
// first.
func (s *Substitution) Apply(t types.MonoType) types.MonoType {
	switch tt := t.(type) {
	case types.Var:
		bound, ok := s.lookup(tt.Tv)
		if !ok {
			return tt
		}
		resolved := s.Apply(bound)
		s.bindings[tt.Tv] = resolved // path compression
		return resolved
	case types.Array:
		return types.Array{Elem: s.Apply(tt.Elem)}
	case types.Dict:
		return types.Dict{Key: s.Apply(tt.Key), Val: s.Apply(tt.Val)}
	case types.Vector:
		return types.Vector{Elem: s.Apply(tt.Elem)}
	case types.Record:
		return types.Record{Row: s.applyRow(tt.Row)}
	case types.Function:
		return s.applyFunction(tt)
	default:
		return t // Error, Basic
	}
}

func (s *Substitution) applyRow(r types.Row) types.Row {
	switch rt := r.(type) {
	case types.RowVar:
		bound, ok := s.lookup(rt.Tv)
		if !ok {
			return rt
		}
		rec, ok := bound.(types.Record)
		if !ok {
			panic(fmt.Sprintf("subst: row variable bound to non-record type %T", bound))
		}
		resolved := s.applyRow(rec.Row)
		s.bindings[rt.Tv] = types.Record{Row: resolved} // path compression
		return resolved
	case types.Extension:
		return types.Extension{Label: rt.Label, Value: s.Apply(rt.Value), Tail: s.applyRow(rt.Tail)}
	default:
		return r // EmptyRow
	}
}

func (s *Substitution) applyFunction(f types.Function) types.Function {
	req := make(map[types.Label]types.MonoType, len(f.Req))
	for k, v := range f.Req {
		req[k] = s.Apply(v)
	}
	opt := make(map[types.Label]types.MonoType, len(f.Opt))
	for k, v := range f.Opt {
		opt[k] = s.Apply(v)
	}
	var pipe *types.PipeParam
	if f.Pipe != nil {
		pipe = &types.PipeParam{Label: f.Pipe.Label, Value: s.Apply(f.Pipe.Value)}
	}
	return types.Function{Req: req, Opt: opt, Pipe: pipe, Retn: s.Apply(f.Retn)}
}

// ApplyPoly applies the substitution through a scheme's body. A body
// that is itself one of the scheme's quantified variables is left
// untouched (quantified variables are locally bound by the scheme,
// not by this substitution); see applyExcept.
func (s *Substitution) ApplyPoly(p types.PolyType) types.PolyType {
	bound := make(map[types.Tvar]struct{}, len(p.Vars))
	for _, v := range p.Vars {
		bound[v] = struct{}{}
	}
	return types.PolyType{
		Vars: p.Vars,
		Cons: p.Cons,
		Expr: s.applyExcept(p.Expr, bound),
	}
}

// applyExcept is Apply except that when t is itself a variable in
// except, it is returned unresolved even if (incorrectly) bound.
// Variables in except that occur nested inside a larger type are
// resolved like any other.
func (s *Substitution) applyExcept(t types.MonoType, except map[types.Tvar]struct{}) types.MonoType {
	if v, ok := t.(types.Var); ok {
		if _, skip := except[v.Tv]; skip {
			return t
		}
	}
	return s.Apply(t)
}
