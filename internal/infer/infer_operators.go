package infer

import (
	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/diag"
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/types"
)

func (st *State) inferBinaryExpr(e *semantic.BinaryExpr) {
	st.inferExpr(e.Left)
	st.inferExpr(e.Right)

	switch e.Operator {
	case ast.AdditionOperator:
		t := st.unifyOperands(e)
		st.constrain(e.Location(), types.Addable, t)
		e.SetType(t)
	case ast.SubtractionOperator:
		t := st.unifyOperands(e)
		st.constrain(e.Location(), types.Subtractable, t)
		e.SetType(t)
	case ast.MultiplicationOperator, ast.DivisionOperator, ast.ModuloOperator, ast.PowerOperator:
		t := st.unifyOperands(e)
		st.constrain(e.Location(), types.Divisible, t)
		e.SetType(t)
	case ast.GreaterThanOperator, ast.LessThanOperator:
		st.constrain(e.Left.Location(), types.Comparable, e.Left.Type())
		st.constrain(e.Right.Location(), types.Comparable, e.Right.Type())
		e.SetType(types.Bool)
	case ast.EqualOperator, ast.NotEqualOperator:
		st.constrain(e.Left.Location(), types.Equatable, e.Left.Type())
		st.constrain(e.Right.Location(), types.Equatable, e.Right.Type())
		e.SetType(types.Bool)
	case ast.GreaterThanEqualOperator, ast.LessThanEqualOperator:
		// Decoupled per the upstream source's current behavior: the
		// two sides are each constrained independently and never
		// additionally unified against one another.
		st.constrain(e.Left.Location(), types.Comparable, e.Left.Type())
		st.constrain(e.Right.Location(), types.Comparable, e.Right.Type())
		st.constrain(e.Left.Location(), types.Equatable, e.Left.Type())
		st.constrain(e.Right.Location(), types.Equatable, e.Right.Type())
		e.SetType(types.Bool)
	case ast.RegexpMatchOperator, ast.NotRegexpMatchOperator:
		st.equal(e.Left.Location(), types.String, e.Left.Type())
		st.equal(e.Right.Location(), types.Regexp, e.Right.Type())
		e.SetType(types.Bool)
	default:
		st.error(e.Location(), diag.InvalidBinOp{Op: e.Operator, Typ: e.Left.Type()})
		e.SetType(types.Error{})
	}
}

// unifyOperands unifies both operand types and returns the common
// type, or the absorbing Error type if they disagree — a failed
// arithmetic unification must not leave a concrete-but-wrong type
// behind for the kind check and downstream expressions to inherit.
func (st *State) unifyOperands(e *semantic.BinaryExpr) types.MonoType {
	if err := st.sub.Unify(e.Left.Type(), e.Right.Type()); err != nil {
		st.error(e.Location(), diag.Inference{Err: err})
		return types.Error{}
	}
	return e.Left.Type()
}

func (st *State) inferUnaryExpr(e *semantic.UnaryExpr) {
	st.inferExpr(e.Argument)

	switch e.Operator {
	case ast.NotOperator:
		st.equal(e.Argument.Location(), types.Bool, e.Argument.Type())
		e.SetType(types.Bool)
	case ast.ExistsOperator:
		e.SetType(types.Bool)
	case ast.AdditionOperator, ast.SubtractionOperator:
		t := e.Argument.Type()
		st.constrain(e.Location(), types.Negatable, t)
		e.SetType(t)
	default:
		st.error(e.Location(), diag.InvalidUnaryOp{Op: e.Operator, Typ: e.Argument.Type()})
		e.SetType(types.Error{})
	}
}

func (st *State) inferLogicalExpr(e *semantic.LogicalExpr) {
	st.inferExpr(e.Left)
	st.inferExpr(e.Right)
	st.equal(e.Left.Location(), types.Bool, e.Left.Type())
	st.equal(e.Right.Location(), types.Bool, e.Right.Type())
}

func (st *State) inferConditionalExpr(e *semantic.ConditionalExpr) {
	st.inferExpr(e.Test)
	st.inferExpr(e.Consequent)
	st.inferExpr(e.Alternate)
	st.equal(e.Test.Location(), types.Bool, e.Test.Type())
	st.equal(e.Consequent.Location(), e.Consequent.Type(), e.Alternate.Type())
	e.SetType(e.Alternate.Type())
}
