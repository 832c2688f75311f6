package locator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/ast"
)

func TestNormalizeStripsBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1")...)
	got := Normalize(src)
	assert.Equal(t, "x = 1", string(got))
}

func TestGetSrc(t *testing.T) {
	src := Normalize([]byte("a = 1\nb = 2\n"))
	loc := New(src)

	got, ok := loc.GetSrc(ast.SourceLocation{
		Start: ast.Position{Line: 2, Column: 1},
		End:   ast.Position{Line: 2, Column: 6},
	})
	require.True(t, ok)
	assert.Equal(t, "b = 2", got)
}

func TestGetSrcRoundTrip(t *testing.T) {
	source := "x = 1\ny = x + 2\n"
	src := Normalize([]byte(source))
	loc := New(src)

	tests := []struct {
		name       string
		start, end int
	}{
		{"whole first line", 0, 5},
		{"mid second line", 10, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl, sc := lineCol(source, tt.start)
			el, ec := lineCol(source, tt.end)
			got, ok := loc.GetSrc(ast.SourceLocation{
				Start: ast.Position{Line: sl, Column: sc},
				End:   ast.Position{Line: el, Column: ec},
			})
			require.True(t, ok)
			assert.Equal(t, source[tt.start:tt.end], got)
		})
	}
}

func TestGetSrcOutOfRange(t *testing.T) {
	src := Normalize([]byte("a = 1\n"))
	loc := New(src)
	_, ok := loc.GetSrc(ast.SourceLocation{
		Start: ast.Position{Line: 1, Column: 1},
		End:   ast.Position{Line: 1, Column: 100},
	})
	assert.False(t, ok)
}

// lineCol converts a byte offset into the 1-based line/column the
// Locator expects, for test fixtures only.
func lineCol(source string, offset int) (line, col int) {
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
