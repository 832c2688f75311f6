package infer

import (
	"sort"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/env"
	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/types"
)

// Generalize produces a let-polymorphism scheme for t: every type
// variable free in t but not free in e is quantified, carrying
// whatever kind constraints the substitution's kind table has
// recorded for it.
func Generalize(e *env.Environment, sub *subst.Substitution, t types.MonoType) types.PolyType {
	resolved := sub.Apply(t)
	envFree := e.FreeVars()
	tFree := types.FreeVars(resolved)

	var vars []types.Tvar
	cons := make(map[types.Tvar]types.KindSet)
	for v := range tFree {
		if _, bound := envFree[v]; bound {
			continue
		}
		vars = append(vars, v)
		if ks, ok := sub.Cons()[v]; ok {
			cons[v] = ks.Clone()
		}
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })

	return types.PolyType{Vars: vars, Cons: cons, Expr: resolved}
}

// Instantiate allocates a fresh variable for every quantified variable
// of scheme, substitutes it through the scheme's body, and returns the
// resulting MonoType alongside the kind constraints those fresh
// variables must still satisfy (deferred so the caller can batch them
// through solve).
func Instantiate(scheme types.PolyType, sub *subst.Substitution, loc ast.SourceLocation) (types.MonoType, []subst.Constraint) {
	mapping := make(map[types.Tvar]types.Tvar, len(scheme.Vars))
	for _, v := range scheme.Vars {
		mapping[v] = sub.Fresh()
	}

	t := renameVars(scheme.Expr, mapping)

	var cs []subst.Constraint
	for v, ks := range scheme.Cons {
		fresh, ok := mapping[v]
		if !ok {
			continue
		}
		for k := range ks {
			cs = append(cs, subst.KindConstraint{Exp: k, Act: types.Var{Tv: fresh}, Loc: loc})
		}
	}
	return t, cs
}

// renameVars rewrites every quantified variable occurrence in t per
// mapping, leaving any variable not in mapping untouched. It never
// consults a Substitution's bindings — scheme-local variables aren't
// bound there, only structurally renamed.
func renameVars(t types.MonoType, mapping map[types.Tvar]types.Tvar) types.MonoType {
	switch tt := t.(type) {
	case types.Var:
		if nv, ok := mapping[tt.Tv]; ok {
			return types.Var{Tv: nv}
		}
		return tt
	case types.Array:
		return types.Array{Elem: renameVars(tt.Elem, mapping)}
	case types.Dict:
		return types.Dict{Key: renameVars(tt.Key, mapping), Val: renameVars(tt.Val, mapping)}
	case types.Vector:
		return types.Vector{Elem: renameVars(tt.Elem, mapping)}
	case types.Record:
		return types.Record{Row: renameVarsRow(tt.Row, mapping)}
	case types.Function:
		req := make(map[types.Label]types.MonoType, len(tt.Req))
		for k, v := range tt.Req {
			req[k] = renameVars(v, mapping)
		}
		opt := make(map[types.Label]types.MonoType, len(tt.Opt))
		for k, v := range tt.Opt {
			opt[k] = renameVars(v, mapping)
		}
		var pipe *types.PipeParam
		if tt.Pipe != nil {
			pipe = &types.PipeParam{Label: tt.Pipe.Label, Value: renameVars(tt.Pipe.Value, mapping)}
		}
		return types.Function{Req: req, Opt: opt, Pipe: pipe, Retn: renameVars(tt.Retn, mapping)}
	default:
		return t // Error, Basic
	}
}

func renameVarsRow(r types.Row, mapping map[types.Tvar]types.Tvar) types.Row {
	switch rt := r.(type) {
	case types.RowVar:
		if nv, ok := mapping[rt.Tv]; ok {
			return types.RowVar{Tv: nv}
		}
		return rt
	case types.Extension:
		return types.Extension{Label: rt.Label, Value: renameVars(rt.Value, mapping), Tail: renameVarsRow(rt.Tail, mapping)}
	default:
		return r // EmptyRow
	}
}
