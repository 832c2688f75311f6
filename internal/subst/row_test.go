package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/types"
)

func closedRow(fields ...types.Extension) types.Row {
	var r types.Row = types.EmptyRow{}
	for i := len(fields) - 1; i >= 0; i-- {
		r = types.Extension{Label: fields[i].Label, Value: fields[i].Value, Tail: r}
	}
	return r
}

func TestRowUnifyClosedSameOrder(t *testing.T) {
	s := New()
	r1 := closedRow(types.Extension{Label: "a", Value: types.Int}, types.Extension{Label: "b", Value: types.String})
	r2 := closedRow(types.Extension{Label: "a", Value: types.Int}, types.Extension{Label: "b", Value: types.String})
	require.NoError(t, s.Unify(types.Record{Row: r1}, types.Record{Row: r2}))
}

func TestRowUnifyClosedPermuted(t *testing.T) {
	s := New()
	r1 := closedRow(types.Extension{Label: "a", Value: types.Int}, types.Extension{Label: "b", Value: types.String})
	r2 := closedRow(types.Extension{Label: "b", Value: types.String}, types.Extension{Label: "a", Value: types.Int})
	require.NoError(t, s.Unify(types.Record{Row: r1}, types.Record{Row: r2}),
		"permuted closed rows with matching labels and values must still unify")
}

func TestRowUnifyClosedMismatch(t *testing.T) {
	s := New()
	r1 := closedRow(types.Extension{Label: "a", Value: types.Int})
	r2 := closedRow(types.Extension{Label: "a", Value: types.String})
	assert.Error(t, s.Unify(types.Record{Row: r1}, types.Record{Row: r2}))
}

func TestRowUnifyClosedExtraField(t *testing.T) {
	s := New()
	r1 := closedRow(types.Extension{Label: "a", Value: types.Int})
	r2 := closedRow(types.Extension{Label: "a", Value: types.Int}, types.Extension{Label: "b", Value: types.String})
	assert.Error(t, s.Unify(types.Record{Row: r1}, types.Record{Row: r2}),
		"two closed rows of different shape must not unify")
}

func TestRowUnifyOpenWithClosedSubsumes(t *testing.T) {
	s := New()
	tailVar := s.Fresh()
	open := types.Extension{Label: "a", Value: types.Int, Tail: types.RowVar{Tv: tailVar}}
	closed := closedRow(types.Extension{Label: "a", Value: types.Int}, types.Extension{Label: "b", Value: types.String})

	require.NoError(t, s.Unify(types.Record{Row: open}, types.Record{Row: closed}))

	resolved := s.Apply(types.Record{Row: types.RowVar{Tv: tailVar}})
	rec, ok := resolved.(types.Record)
	require.True(t, ok)
	v, ok := types.Lookup(rec.Row, "b")
	require.True(t, ok)
	assert.Equal(t, types.String, v)
}

func TestRowUnifyBothOpenDifferentVars(t *testing.T) {
	s := New()
	v1 := s.Fresh()
	v2 := s.Fresh()
	r1 := types.Extension{Label: "a", Value: types.Int, Tail: types.RowVar{Tv: v1}}
	r2 := types.Extension{Label: "b", Value: types.String, Tail: types.RowVar{Tv: v2}}

	require.NoError(t, s.Unify(types.Record{Row: r1}, types.Record{Row: r2}))

	// r1 must now also carry "b", r2 must now also carry "a"
	resolved1 := s.Apply(types.Record{Row: r1})
	resolved2 := s.Apply(types.Record{Row: r2})
	rec1 := resolved1.(types.Record)
	rec2 := resolved2.(types.Record)
	_, ok := types.Lookup(rec1.Row, "b")
	assert.True(t, ok)
	_, ok = types.Lookup(rec2.Row, "a")
	assert.True(t, ok)
}

func TestRowUnifyEmptyOnlyWithEmptyOrVar(t *testing.T) {
	s := New()
	require.NoError(t, s.Unify(types.Record{Row: types.EmptyRow{}}, types.Record{Row: types.EmptyRow{}}))

	s2 := New()
	assert.Error(t, s2.Unify(
		types.Record{Row: types.EmptyRow{}},
		types.Record{Row: types.Extension{Label: "a", Value: types.Int, Tail: types.EmptyRow{}}},
	))
}

func TestRowUnifyRejectsDuplicateLabel(t *testing.T) {
	s := New()
	dup := types.Extension{Label: "a", Value: types.Int,
		Tail: types.Extension{Label: "a", Value: types.String, Tail: types.EmptyRow{}}}
	other := types.Extension{Label: "a", Value: types.Int, Tail: types.EmptyRow{}}

	assert.Error(t, s.Unify(types.Record{Row: dup}, types.Record{Row: other}))
}
