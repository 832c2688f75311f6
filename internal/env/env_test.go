package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/types"
)

func TestLookupWalksOutward(t *testing.T) {
	e := New()
	e.Add("x", types.Mono(types.Int))
	e.EnterScope()
	e.Add("y", types.Mono(types.String))

	got, ok := e.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.Int, got.Expr)

	got, ok = e.Lookup("y")
	require.True(t, ok)
	assert.Equal(t, types.String, got.Expr)
}

func TestShadowing(t *testing.T) {
	e := New()
	e.Add("x", types.Mono(types.Int))
	e.EnterScope()
	e.Add("x", types.Mono(types.Bool))

	got, _ := e.Lookup("x")
	assert.Equal(t, types.Bool, got.Expr)

	e.ExitScope()
	got, _ = e.Lookup("x")
	assert.Equal(t, types.Int, got.Expr)
}

func TestExitScopeWithoutEnterPanics(t *testing.T) {
	e := New()
	assert.Panics(t, func() { e.ExitScope() })
}

func TestScopeBalance(t *testing.T) {
	e := New()
	assert.Equal(t, 1, e.Depth())
	e.EnterScope()
	e.EnterScope()
	assert.Equal(t, 3, e.Depth())
	e.ExitScope()
	e.ExitScope()
	assert.Equal(t, 1, e.Depth())
}

func TestFreeVarsExcludesQuantified(t *testing.T) {
	e := New()
	e.Add("id", types.PolyType{
		Vars: []types.Tvar{1},
		Expr: types.Function{Req: map[types.Label]types.MonoType{"x": types.Var{Tv: 1}}, Retn: types.Var{Tv: 1}},
	})
	e.Add("y", types.Mono(types.Var{Tv: 2}))

	free := e.FreeVars()
	_, hasQuantified := free[1]
	_, hasFree := free[2]
	assert.False(t, hasQuantified)
	assert.True(t, hasFree)
}

func TestApplyMutResolvesBindings(t *testing.T) {
	s := subst.New()
	v := s.Fresh()
	require.NoError(t, s.Unify(types.Var{Tv: v}, types.Int))

	e := New()
	e.Add("x", types.Mono(types.Var{Tv: v}))
	e.ApplyMut(s)

	got, _ := e.Lookup("x")
	assert.Equal(t, types.Int, got.Expr)
}
