package infer

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/diag"
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/types"
)

// inferExpr dispatches every expression shape to its constraint rule
// (spec §4.3.1), assigning the node's typ slot in place.
func (st *State) inferExpr(e semantic.Expression) {
	switch ex := e.(type) {
	case *semantic.Identifier:
		st.inferIdentifier(ex)
	case *semantic.IntegerLit:
		ex.SetType(types.Int)
	case *semantic.UintLit:
		ex.SetType(types.Uint)
	case *semantic.FloatLit:
		ex.SetType(types.Float)
	case *semantic.StringLit:
		ex.SetType(types.String)
	case *semantic.BooleanLit:
		ex.SetType(types.Bool)
	case *semantic.DateTimeLit:
		ex.SetType(types.Time)
	case *semantic.DurationLit:
		ex.SetType(types.Dur)
	case *semantic.RegexpLit:
		ex.SetType(types.Regexp)
	case *semantic.ErrorExpr:
		ex.SetType(types.Error{})
	case *semantic.StringExpr:
		st.inferStringExpr(ex)
	case *semantic.ArrayExpr:
		st.inferArrayExpr(ex)
	case *semantic.DictExpr:
		st.inferDictExpr(ex)
	case *semantic.ObjectExpr:
		st.inferObjectExpr(ex)
	case *semantic.MemberExpr:
		st.inferMemberExpr(ex)
	case *semantic.IndexExpr:
		st.inferIndexExpr(ex)
	case *semantic.BinaryExpr:
		st.inferBinaryExpr(ex)
	case *semantic.UnaryExpr:
		st.inferUnaryExpr(ex)
	case *semantic.LogicalExpr:
		st.inferLogicalExpr(ex)
	case *semantic.ConditionalExpr:
		st.inferConditionalExpr(ex)
	case *semantic.FunctionExpr:
		st.inferFunctionExpr(ex)
	case *semantic.CallExpr:
		st.inferCallExpr(ex)
	default:
		st.error(e.Location(), diag.Bug{Msg: fmt.Sprintf("infer: unhandled expression %T", e)})
	}
}

func (st *State) inferIdentifier(id *semantic.Identifier) {
	scheme := st.lookup(id.Location(), id.Name)
	t, cs := Instantiate(scheme, st.sub, id.Location())
	st.solve(cs)
	id.SetType(t)
}

func (st *State) inferStringExpr(e *semantic.StringExpr) {
	for _, part := range e.Parts {
		ip, ok := part.(*semantic.InterpolatedPart)
		if !ok {
			continue
		}
		st.inferExpr(ip.Expression)
		st.constrain(ip.Location(), types.Stringable, ip.Expression.Type())
	}
	e.SetType(types.String)
}

func (st *State) inferArrayExpr(e *semantic.ArrayExpr) {
	if len(e.Elements) == 0 {
		e.SetType(types.Array{Elem: types.Var{Tv: st.sub.Fresh()}})
		return
	}
	for _, el := range e.Elements {
		st.inferExpr(el)
	}
	elemType := e.Elements[0].Type()
	for _, el := range e.Elements[1:] {
		st.equal(el.Location(), elemType, el.Type())
	}
	e.SetType(types.Array{Elem: elemType})
}

func (st *State) inferDictExpr(e *semantic.DictExpr) {
	k := types.Var{Tv: st.sub.Fresh()}
	v := types.Var{Tv: st.sub.Fresh()}
	for _, item := range e.Elements {
		st.inferExpr(item.Key)
		st.inferExpr(item.Val)
		st.equal(item.Key.Location(), k, item.Key.Type())
		st.equal(item.Val.Location(), v, item.Val.Type())
	}
	st.constrain(e.Location(), types.Comparable, k)
	e.SetType(types.Dict{Key: k, Val: v})
}
