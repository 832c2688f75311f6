package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunholo/semcheck/internal/types"
)

func TestTypeOfWalksToReturn(t *testing.T) {
	ret := &BlockReturn{Argument: &IntegerLit{TypedExpr: TypedExpr{Typ: types.Int}}}
	chain := &BlockVariable{Next: &BlockExpr{Next: ret}}

	assert.Equal(t, types.Int, TypeOf(chain))
}
