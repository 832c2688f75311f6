// Package vectorize implements the columnar rewrite pass: it walks an
// already-inferred semantic tree and, for every single-parameter
// function whose sole parameter is named "r", attempts to build a
// vectorized sibling that operates on whole columns instead of single
// rows. Grounded on internal/pipeline's walkCore/AssertNoOperators
// shape in the teacher repo — a mutable recursive walk that
// accumulates nothing and aborts on the first error encountered.
package vectorize

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/diag"
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/types"
)

// Vectorize walks pkg and attaches a vectorized sibling to every
// eligible FunctionExpr it finds. It stops at the first vectorization
// failure; functions visited before the failure keep whatever
// Vectorized value they were given, but no further rewrites are
// attempted.
func Vectorize(pkg *semantic.Package, sub *subst.Substitution) error {
	w := &walker{sub: sub}
	for _, f := range pkg.Files {
		for _, stmt := range f.Body {
			if err := w.statement(stmt); err != nil {
				return err
			}
		}
	}
	return nil
}

type walker struct {
	sub *subst.Substitution
}

func (w *walker) statement(stmt semantic.Statement) error {
	switch s := stmt.(type) {
	case *semantic.ExprStatement:
		return w.expr(s.Expression)
	case *semantic.VariableAssgn:
		return w.expr(s.Init)
	case *semantic.MemberAssgn:
		if err := w.expr(s.Member); err != nil {
			return err
		}
		return w.expr(s.Init)
	case *semantic.OptionStatement:
		return w.statement(s.Assignment)
	case *semantic.TestStatement:
		return w.statement(s.Assignment)
	case *semantic.TestCaseStatement:
		for _, b := range s.Body {
			if err := w.statement(b); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

// expr recurses into every child expression so a FunctionExpr buried
// inside a call argument or array element is still visited, then
// attempts the rewrite if e itself is an eligible FunctionExpr.
func (w *walker) expr(e semantic.Expression) error {
	if e == nil {
		return nil
	}
	switch ex := e.(type) {
	case *semantic.FunctionExpr:
		if err := w.block(ex.Body); err != nil {
			return err
		}
		return w.tryVectorize(ex)
	case *semantic.ArrayExpr:
		for _, el := range ex.Elements {
			if err := w.expr(el); err != nil {
				return err
			}
		}
	case *semantic.DictExpr:
		for _, it := range ex.Elements {
			if err := w.expr(it.Key); err != nil {
				return err
			}
			if err := w.expr(it.Val); err != nil {
				return err
			}
		}
	case *semantic.ObjectExpr:
		if err := w.expr(ex.With); err != nil {
			return err
		}
		for _, p := range ex.Properties {
			if err := w.expr(p.Value); err != nil {
				return err
			}
		}
	case *semantic.MemberExpr:
		return w.expr(ex.Object)
	case *semantic.IndexExpr:
		if err := w.expr(ex.Array); err != nil {
			return err
		}
		return w.expr(ex.Index)
	case *semantic.BinaryExpr:
		if err := w.expr(ex.Left); err != nil {
			return err
		}
		return w.expr(ex.Right)
	case *semantic.UnaryExpr:
		return w.expr(ex.Argument)
	case *semantic.LogicalExpr:
		if err := w.expr(ex.Left); err != nil {
			return err
		}
		return w.expr(ex.Right)
	case *semantic.ConditionalExpr:
		if err := w.expr(ex.Test); err != nil {
			return err
		}
		if err := w.expr(ex.Consequent); err != nil {
			return err
		}
		return w.expr(ex.Alternate)
	case *semantic.CallExpr:
		if err := w.expr(ex.Callee); err != nil {
			return err
		}
		for _, a := range ex.Arguments {
			if err := w.expr(a.Value); err != nil {
				return err
			}
		}
		return w.expr(ex.Pipe)
	case *semantic.StringExpr:
		for _, p := range ex.Parts {
			if ip, ok := p.(*semantic.InterpolatedPart); ok {
				if err := w.expr(ip.Expression); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (w *walker) block(b semantic.Block) error {
	switch bt := b.(type) {
	case *semantic.BlockReturn:
		return w.expr(bt.Argument)
	case *semantic.BlockVariable:
		if err := w.statement(bt.Assgn); err != nil {
			return err
		}
		return w.block(bt.Next)
	case *semantic.BlockExpr:
		if err := w.statement(bt.Stmt); err != nil {
			return err
		}
		return w.block(bt.Next)
	}
	return nil
}

// tryVectorize attempts to build fn.Vectorized. Ineligible shapes
// (wrong parameter count or name, non-Return body, non-object result)
// are skipped in place, not reported as errors — only a genuine
// failure to vectorize an otherwise-eligible function aborts the walk.
func (w *walker) tryVectorize(fn *semantic.FunctionExpr) error {
	if len(fn.Params) != 1 || fn.Params[0].Sym.Name() != "r" {
		return nil
	}
	ret, ok := fn.Body.(*semantic.BlockReturn)
	if !ok {
		return nil
	}
	obj, ok := ret.Argument.(*semantic.ObjectExpr)
	if !ok {
		return nil
	}

	ft, ok := w.sub.Apply(fn.Type()).(types.Function)
	if !ok {
		return w.fail(fn, "function type did not resolve to a concrete function")
	}
	paramType, ok := w.sub.Apply(ft.Req["r"]).(types.Record)
	if !ok {
		return w.fail(fn, "parameter \"r\" did not resolve to a concrete record")
	}
	vrow, err := vectorizeRow(paramType.Row)
	if err != nil {
		return w.fail(fn, err.Error())
	}
	paramVec := types.Record{Row: vrow}

	newObj, err := w.vectorizeObject(obj, paramVec)
	if err != nil {
		return w.fail(fn, err.Error())
	}

	fn.Vectorized = &semantic.FunctionExpr{
		TypedExpr: semantic.TypedExpr{Loc: fn.Location(), Typ: types.Function{
			Req:  map[types.Label]types.MonoType{"r": paramVec},
			Opt:  map[types.Label]types.MonoType{},
			Pipe: nil,
			Retn: newObj.Type(),
		}},
		Params: []*semantic.FunctionParameter{{Loc: fn.Params[0].Location(), Sym: fn.Params[0].Sym}},
		Body:   &semantic.BlockReturn{Loc: ret.Location(), Argument: newObj},
	}
	return nil
}

func (w *walker) fail(fn *semantic.FunctionExpr, reason string) error {
	kind := diag.UnableToVectorize{Reason: reason}
	rep := diag.ReportFor(diag.Located[diag.ErrorKind]{Loc: fn.Location(), Kind: kind})
	return diag.Wrap(rep)
}

// vectorizeObject builds the vectorized sibling of obj: every
// property value is re-expressed over paramVec ("r"'s vectorized
// shape) and its type becomes Vector(original field type).
func (w *walker) vectorizeObject(obj *semantic.ObjectExpr, paramVec types.Record) (*semantic.ObjectExpr, error) {
	var base types.Row = types.EmptyRow{}
	var withExpr semantic.Expression
	if obj.With != nil {
		vt, err := w.vectorizeValue(obj.With, paramVec)
		if err != nil {
			return nil, err
		}
		rec, ok := vt.Type().(types.Record)
		if !ok {
			return nil, fmt.Errorf("object base is not a vectorizable record")
		}
		base = rec.Row
		withExpr = vt
	}

	props := make([]*semantic.Property, len(obj.Properties))
	for i, p := range obj.Properties {
		v, err := w.vectorizeValue(p.Value, paramVec)
		if err != nil {
			return nil, err
		}
		props[i] = &semantic.Property{Loc: p.Location(), Label: p.Label, Value: v}
	}

	row := base
	for i := len(props) - 1; i >= 0; i-- {
		row = types.Extension{Label: props[i].Label, Value: props[i].Value.Type(), Tail: row}
	}

	return &semantic.ObjectExpr{
		TypedExpr:  semantic.TypedExpr{Loc: obj.Location(), Typ: types.Record{Row: row}},
		With:       withExpr,
		Properties: props,
	}, nil
}

// vectorizeValue re-expresses e in terms of paramVec, the vectorized
// shape of the enclosing function's "r" parameter. Only identifiers
// and member chains rooted at an identifier are vectorizable: "r"
// takes paramVec as its type, any other identifier keeps its own
// resolved type. Anything
// else (arithmetic, calls, literals) can't be re-expressed without a
// columnar evaluator this pass doesn't have, so it fails.
func (w *walker) vectorizeValue(e semantic.Expression, paramVec types.Record) (semantic.Expression, error) {
	switch ex := e.(type) {
	case *semantic.Identifier:
		typ := w.sub.Apply(ex.Type())
		if ex.Name == "r" {
			typ = paramVec
		}
		return &semantic.Identifier{
			TypedExpr: semantic.TypedExpr{Loc: ex.Loc, Typ: typ},
			Name:      ex.Name,
		}, nil
	case *semantic.MemberExpr:
		obj, err := w.vectorizeValue(ex.Object, paramVec)
		if err != nil {
			return nil, err
		}
		objRec, ok := obj.Type().(types.Record)
		if !ok {
			return nil, fmt.Errorf("member access on a non-record vectorized value")
		}
		ft, ok := types.Lookup(objRec.Row, ex.Property)
		if !ok {
			return nil, fmt.Errorf("field %q not present on vectorized record", ex.Property)
		}
		return &semantic.MemberExpr{
			TypedExpr: semantic.TypedExpr{Loc: ex.Loc, Typ: ft},
			Object:    obj,
			Property:  ex.Property,
		}, nil
	default:
		return nil, fmt.Errorf("expression is not vectorizable")
	}
}

// vectorizeRow rewrites every field of a closed row into its Vector
// form. An open row (one with an unresolved tail) can't be fully
// enumerated, so it is rejected.
func vectorizeRow(row types.Row) (types.Row, error) {
	fields, tail := types.Fields(row)
	if _, ok := tail.(types.EmptyRow); !ok {
		return nil, fmt.Errorf("row is not closed")
	}
	var out types.Row = types.EmptyRow{}
	for i := len(fields) - 1; i >= 0; i-- {
		f := fields[i]
		out = types.Extension{Label: f.Label, Value: types.Vector{Elem: f.Value}, Tail: out}
	}
	return out, nil
}
