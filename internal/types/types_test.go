package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a    MonoType
		b    MonoType
		want bool
	}{
		{"same basic", Int, Int, true},
		{"different basic", Int, Bool, false},
		{"same var", Var{Tv: 1}, Var{Tv: 1}, true},
		{"different var", Var{Tv: 1}, Var{Tv: 2}, false},
		{"error absorbs nothing structurally", Error{}, Error{}, true},
		{"array elems equal", Array{Elem: Int}, Array{Elem: Int}, true},
		{"array elems differ", Array{Elem: Int}, Array{Elem: String}, false},
		{"dict equal", Dict{Key: String, Val: Int}, Dict{Key: String, Val: Int}, true},
		{"vector vs scalar", Vector{Elem: Int}, Int, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestFunctionEqual(t *testing.T) {
	f1 := Function{
		Req:  map[Label]MonoType{"x": Int},
		Opt:  map[Label]MonoType{},
		Retn: Bool,
	}
	f2 := Function{
		Req:  map[Label]MonoType{"x": Int},
		Opt:  map[Label]MonoType{},
		Retn: Bool,
	}
	assert.True(t, Equal(f1, f2))

	f3 := Function{
		Req:  map[Label]MonoType{"x": String},
		Opt:  map[Label]MonoType{},
		Retn: Bool,
	}
	assert.False(t, Equal(f1, f3))

	f4 := f1
	f4.Pipe = &PipeParam{Label: PipeLabel, Value: Int}
	assert.False(t, Equal(f1, f4))
}

func TestFreeVars(t *testing.T) {
	t.Run("scalar has no free vars", func(t *testing.T) {
		assert.Empty(t, FreeVars(Int))
	})

	t.Run("var is its own free var", func(t *testing.T) {
		free := FreeVars(Var{Tv: 7})
		_, ok := free[7]
		assert.True(t, ok)
		assert.Len(t, free, 1)
	})

	t.Run("function collects req, opt, pipe, retn", func(t *testing.T) {
		fn := Function{
			Req:  map[Label]MonoType{"a": Var{Tv: 1}},
			Opt:  map[Label]MonoType{"b": Var{Tv: 2}},
			Pipe: &PipeParam{Label: PipeLabel, Value: Var{Tv: 3}},
			Retn: Var{Tv: 4},
		}
		free := FreeVars(fn)
		for _, v := range []Tvar{1, 2, 3, 4} {
			_, ok := free[v]
			assert.Truef(t, ok, "expected %v free", v)
		}
		assert.Len(t, free, 4)
	})

	t.Run("record row collects extension values and tail var", func(t *testing.T) {
		row := Extension{
			Label: "a",
			Value: Var{Tv: 1},
			Tail:  RowVar{Tv: 2},
		}
		free := FreeVars(Record{Row: row})
		assert.Len(t, free, 2)
	})
}

func TestRowFieldsAndLookup(t *testing.T) {
	row := Extension{Label: "a", Value: Int, Tail: Extension{Label: "b", Value: String, Tail: EmptyRow{}}}

	fields, tail := Fields(row)
	assert.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Label)
	assert.Equal(t, "b", fields[1].Label)
	assert.Equal(t, EmptyRow{}, tail)

	v, ok := Lookup(row, "b")
	assert.True(t, ok)
	assert.Equal(t, String, v)

	_, ok = Lookup(row, "c")
	assert.False(t, ok)
}

func TestRowEqualPreservesOrder(t *testing.T) {
	a := Extension{Label: "a", Value: Int, Tail: Extension{Label: "b", Value: String, Tail: EmptyRow{}}}
	b := Extension{Label: "b", Value: String, Tail: Extension{Label: "a", Value: Int, Tail: EmptyRow{}}}

	assert.False(t, RowEqual(a, b), "reordered labels must not compare equal")
}

func TestKindSet(t *testing.T) {
	s := NewKindSet(Addable, Comparable)
	assert.True(t, s.Has(Addable))
	assert.False(t, s.Has(Negatable))

	clone := s.Clone()
	clone.Add(Negatable)
	assert.False(t, s.Has(Negatable), "clone must not alias the original")
	assert.True(t, clone.Has(Negatable))
}
