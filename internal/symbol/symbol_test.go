package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSymbolsAreDistinct(t *testing.T) {
	a := New("x")
	b := New("x")

	assert.Equal(t, "x", a.Name())
	assert.Equal(t, "x", b.Name())
	assert.False(t, a.Equal(b), "two occurrences of the same name must not compare equal")
}

func TestSymbolEqualsItself(t *testing.T) {
	a := New("r")
	assert.True(t, a.Equal(a))
}

func TestSymbolString(t *testing.T) {
	a := New("thing")
	assert.Contains(t, a.String(), "thing#")
}
