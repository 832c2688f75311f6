package semantic

import (
	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/types"
)

// Block models a FunctionExpr body as a let-chain culminating in a
// final expression: non-empty, always terminated by a Return.
type Block interface {
	Location() ast.SourceLocation
	blockNode()
}

// BlockVariable is `assgn; next`.
type BlockVariable struct {
	Loc   ast.SourceLocation
	Assgn *VariableAssgn
	Next  Block
}

func (b *BlockVariable) Location() ast.SourceLocation { return b.Loc }
func (*BlockVariable) blockNode()                     {}

// BlockExpr is `stmt; next`, where stmt is evaluated for effect only
// (an ExprStatement or OptionStatement within a function body).
type BlockExpr struct {
	Loc  ast.SourceLocation
	Stmt Statement
	Next Block
}

func (b *BlockExpr) Location() ast.SourceLocation { return b.Loc }
func (*BlockExpr) blockNode()                     {}

// BlockReturn is the terminal `return expr`.
type BlockReturn struct {
	Loc      ast.SourceLocation
	Argument Expression
}

func (b *BlockReturn) Location() ast.SourceLocation { return b.Loc }
func (*BlockReturn) blockNode()                     {}

// TypeOf returns the type of a Block's terminal Return expression —
// the type the Block as a whole evaluates to.
func TypeOf(b Block) types.MonoType {
	switch bt := b.(type) {
	case *BlockReturn:
		return bt.Argument.Type()
	case *BlockVariable:
		return TypeOf(bt.Next)
	case *BlockExpr:
		return TypeOf(bt.Next)
	default:
		return types.Error{}
	}
}
