package infer

import (
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/types"
)

func (st *State) inferObjectExpr(e *semantic.ObjectExpr) {
	var row types.Row = types.EmptyRow{}
	if e.With != nil {
		st.inferExpr(e.With)
		row = st.rowOf(e.With)
	}
	for i := len(e.Properties) - 1; i >= 0; i-- {
		p := e.Properties[i]
		st.inferExpr(p.Value)
		row = types.Extension{Label: p.Label, Value: p.Value.Type(), Tail: row}
	}
	e.SetType(types.Record{Row: row})
}

// rowOf extracts e's row, forcing it via unification with a fresh
// open row if e's current type isn't already resolved to a Record —
// e.g. a base expression whose type is still an unresolved variable.
func (st *State) rowOf(e semantic.Expression) types.Row {
	t := st.sub.Apply(e.Type())
	if rec, ok := t.(types.Record); ok {
		return rec.Row
	}
	rv := types.RowVar{Tv: st.sub.Fresh()}
	st.equal(e.Location(), types.Record{Row: rv}, t)
	return rv
}

func (st *State) inferMemberExpr(e *semantic.MemberExpr) {
	st.inferExpr(e.Object)

	if id, ok := e.Object.(*semantic.Identifier); ok {
		if path, ok := st.imports[id.Name]; ok {
			if sym, ok := st.importer.Symbol(path, e.Property); ok {
				e.Sym = &sym
			}
		}
	}

	alpha := types.Var{Tv: st.sub.Fresh()}
	beta := types.RowVar{Tv: st.sub.Fresh()}
	r := types.Record{Row: types.Extension{Label: e.Property, Value: alpha, Tail: beta}}
	st.equal(e.Location(), r, e.Object.Type())
	e.SetType(alpha)
}

func (st *State) inferIndexExpr(e *semantic.IndexExpr) {
	st.inferExpr(e.Array)
	st.inferExpr(e.Index)
	st.equal(e.Index.Location(), types.Int, e.Index.Type())

	alpha := types.Var{Tv: st.sub.Fresh()}
	st.equal(e.Array.Location(), types.Array{Elem: alpha}, e.Array.Type())
	e.SetType(alpha)
}
