package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/symbol"
	"github.com/sunholo/semcheck/internal/types"
)

func TestRegistryImportAndSymbol(t *testing.T) {
	r := NewRegistry()
	sum := symbol.New("sum")
	r.Register("math", types.Mono(types.Record{Row: types.EmptyRow{}}), map[string]symbol.Symbol{
		"sum": sum,
	})

	scheme, ok := r.Import("math")
	require.True(t, ok)
	assert.Equal(t, types.Mono(types.Record{Row: types.EmptyRow{}}), scheme)

	got, ok := r.Symbol("math", "sum")
	require.True(t, ok)
	assert.True(t, got.Equal(sum))

	_, ok = r.Symbol("math", "missing")
	assert.False(t, ok)
}

func TestRegistryUnknownPath(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Import("nope")
	assert.False(t, ok)
	_, ok = r.Symbol("nope", "x")
	assert.False(t, ok)
}
