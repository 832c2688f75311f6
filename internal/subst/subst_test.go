package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/types"
)

func TestFreshIsUnique(t *testing.T) {
	s := New()
	a := s.Fresh()
	b := s.Fresh()
	assert.NotEqual(t, a, b)
}

func TestApplyResolvesChain(t *testing.T) {
	s := New()
	a := s.Fresh()
	b := s.Fresh()
	s.bindings[a] = types.Var{Tv: b}
	s.bindings[b] = types.Int

	got := s.Apply(types.Var{Tv: a})
	assert.Equal(t, types.Int, got)
	// path compression: a now points directly at Int
	assert.Equal(t, types.Int, s.bindings[a])
}

func TestUnifyBasic(t *testing.T) {
	s := New()
	require.NoError(t, s.Unify(types.Int, types.Int))
	assert.Error(t, s.Unify(types.Int, types.Bool))
}

func TestUnifyVarBindsAndResolves(t *testing.T) {
	s := New()
	v := s.Fresh()
	require.NoError(t, s.Unify(types.Var{Tv: v}, types.String))
	assert.Equal(t, types.String, s.Apply(types.Var{Tv: v}))
}

func TestOccursCheck(t *testing.T) {
	s := New()
	v := s.Fresh()
	err := s.Unify(types.Var{Tv: v}, types.Array{Elem: types.Var{Tv: v}})
	assert.Error(t, err)
}

func TestErrorIsAbsorbing(t *testing.T) {
	s := New()
	require.NoError(t, s.Unify(types.Error{}, types.Int))
	require.NoError(t, s.Unify(types.Bool, types.Error{}))
}

func TestUnifyFunctionRequiredMismatch(t *testing.T) {
	s := New()
	a := types.Function{Req: map[types.Label]types.MonoType{"x": types.Int}, Retn: types.Bool}
	b := types.Function{Req: map[types.Label]types.MonoType{}, Retn: types.Bool}
	assert.Error(t, s.Unify(a, b))
}

func TestConstrainDeferredThenChecked(t *testing.T) {
	s := New()
	v := s.Fresh()
	require.NoError(t, s.Constrain(types.Addable, types.Var{Tv: v}))
	ks, ok := s.Cons()[v]
	require.True(t, ok)
	assert.True(t, ks.Has(types.Addable))

	// binding the var to a type that doesn't satisfy Addable must fail
	assert.Error(t, s.Unify(types.Var{Tv: v}, types.Bool))
}

func TestConstrainImmediateFailure(t *testing.T) {
	s := New()
	assert.Error(t, s.Constrain(types.Addable, types.Bool))
	assert.NoError(t, s.Constrain(types.Addable, types.Int))
}
