package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/types"
)

func TestReportForUndefinedIdentifier(t *testing.T) {
	loc := Located[ErrorKind]{
		Loc:  ast.SourceLocation{Start: ast.Position{Line: 1, Column: 1}},
		Kind: UndefinedIdentifier{Name: "x"},
	}
	r := ReportFor(loc)

	assert.Equal(t, SEM003, r.Code)
	assert.Equal(t, "semantic", r.Phase)
	assert.Contains(t, r.Message, "x")
	assert.Equal(t, "x", r.Data["name"])
}

func TestReportForInvalidBinOp(t *testing.T) {
	loc := Located[ErrorKind]{
		Kind: InvalidBinOp{Op: ast.AdditionOperator, Typ: types.Bool},
	}
	r := ReportFor(loc)

	assert.Equal(t, SEM004, r.Code)
	assert.Equal(t, "+", r.Data["operator"])
	assert.Equal(t, types.Bool.String(), r.Data["type"])
}

func TestWrapAndAsReport(t *testing.T) {
	r := ReportFor(Located[ErrorKind]{Kind: Bug{Msg: "unreachable"}})
	err := Wrap(r)
	require.Error(t, err)

	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, SEM008, got.Code)
}

func TestToJSONCompactAndIndented(t *testing.T) {
	r := ReportFor(Located[ErrorKind]{Kind: InvalidReturn{}})

	compact, err := r.ToJSON(true)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")

	indented, err := r.ToJSON(false)
	require.NoError(t, err)
	assert.Contains(t, indented, "\n")
}

func TestRenderIncludesCodeAndMessage(t *testing.T) {
	r := ReportFor(Located[ErrorKind]{
		Loc:  ast.SourceLocation{Start: ast.Position{Line: 2, Column: 3}, End: ast.Position{Line: 2, Column: 4}},
		Kind: UndefinedBuiltin{Name: "foo"},
	})
	out := Render(r)
	assert.Contains(t, out, SEM002)
	assert.Contains(t, out, "foo")
}

func TestNewGenericUsesFallbackCode(t *testing.T) {
	r := NewGeneric("loader", assert.AnError)
	assert.Equal(t, "SEM000", r.Code)
	assert.Equal(t, "loader", r.Phase)
}
