// Package semantic defines the semantic tree: a 1:1 mirror of the
// surface AST where every expression node carries a type slot that
// inference binds in place, plus the Block chain FunctionExpr bodies
// are built from.
package semantic

import (
	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/locator"
	"github.com/sunholo/semcheck/internal/symbol"
	"github.com/sunholo/semcheck/internal/types"
)

// Node is implemented by every semantic tree node.
type Node interface {
	Location() ast.SourceLocation
}

// Statement is implemented by statement nodes. Statements carry no
// type slot of their own.
type Statement interface {
	Node
	stmtNode()
}

// Expression is implemented by every expression node; every
// Expression carries a mutable type slot that inference resolves
// in place.
type Expression interface {
	Node
	exprNode()
	Type() types.MonoType
	SetType(types.MonoType)
}

// TypedExpr is the embeddable base every Expression (other than
// LogicalExpr, whose type is definitionally Bool) carries.
type TypedExpr struct {
	Loc ast.SourceLocation
	Typ types.MonoType
}

func (e *TypedExpr) Location() ast.SourceLocation { return e.Loc }
func (e *TypedExpr) Type() types.MonoType         { return e.Typ }
func (e *TypedExpr) SetType(t types.MonoType)      { e.Typ = t }

// Package is the root of a semantic tree.
type Package struct {
	Loc   ast.SourceLocation
	Name  string
	Files []*File
}

func (p *Package) Location() ast.SourceLocation { return p.Loc }

// File mirrors ast.File.
type File struct {
	Loc     ast.SourceLocation
	Package *PackageClause
	Imports []*ImportDeclaration
	Body    []Statement
}

func (f *File) Location() ast.SourceLocation { return f.Loc }

// PackageClause mirrors ast.PackageClause.
type PackageClause struct {
	Loc  ast.SourceLocation
	Name string
}

func (c *PackageClause) Location() ast.SourceLocation { return c.Loc }

// ImportDeclaration mirrors ast.ImportDeclaration. As is the bound
// alias (defaulted to the path's final segment at conversion time);
// Sym is the Symbol the alias is entered into the environment under.
type ImportDeclaration struct {
	Loc  ast.SourceLocation
	As   string
	Sym  symbol.Symbol
	Path string
}

func (d *ImportDeclaration) Location() ast.SourceLocation { return d.Loc }

// ---- Statements ----

// ExprStatement evaluates an expression for its side effects.
type ExprStatement struct {
	Loc        ast.SourceLocation
	Expression Expression
}

func (s *ExprStatement) Location() ast.SourceLocation { return s.Loc }
func (s *ExprStatement) stmtNode()                    {}

// VariableAssgn binds Sym to the generalized scheme of Init's type.
// Vars/Cons are populated by the generalize rule (spec §4.3.3) and
// persisted on the node so later passes can recover exactly what was
// quantified.
type VariableAssgn struct {
	Loc  ast.SourceLocation
	Sym  symbol.Symbol
	Init Expression
	Vars []types.Tvar
	Cons map[types.Tvar]types.KindSet
}

func (s *VariableAssgn) Location() ast.SourceLocation { return s.Loc }
func (s *VariableAssgn) stmtNode()                    {}

// MemberAssgn assigns init to an already-bound option record member.
type MemberAssgn struct {
	Loc    ast.SourceLocation
	Member *MemberExpr
	Init   Expression
}

func (s *MemberAssgn) Location() ast.SourceLocation { return s.Loc }
func (s *MemberAssgn) stmtNode()                    {}

// OptionStatement wraps either a VariableAssgn or a MemberAssgn.
type OptionStatement struct {
	Loc        ast.SourceLocation
	Assignment Statement
}

func (s *OptionStatement) Location() ast.SourceLocation { return s.Loc }
func (s *OptionStatement) stmtNode()                    {}

// ReturnStatement terminates a function body Block; at file level it
// is invalid (inference emits InvalidReturn).
type ReturnStatement struct {
	Loc      ast.SourceLocation
	Argument Expression
}

func (s *ReturnStatement) Location() ast.SourceLocation { return s.Loc }
func (s *ReturnStatement) stmtNode()                    {}

// TestStatement is inferred as a VariableAssgn.
type TestStatement struct {
	Loc        ast.SourceLocation
	Assignment *VariableAssgn
}

func (s *TestStatement) Location() ast.SourceLocation { return s.Loc }
func (s *TestStatement) stmtNode()                    {}

// TestCaseStatement names a block of statements as a test case.
type TestCaseStatement struct {
	Loc  ast.SourceLocation
	Sym  symbol.Symbol
	Body []Statement
}

func (s *TestCaseStatement) Location() ast.SourceLocation { return s.Loc }
func (s *TestCaseStatement) stmtNode()                    {}

// BuiltinStatement declares an externally-provided name's scheme.
type BuiltinStatement struct {
	Loc    ast.SourceLocation
	Sym    symbol.Symbol
	Scheme types.PolyType
}

func (s *BuiltinStatement) Location() ast.SourceLocation { return s.Loc }
func (s *BuiltinStatement) stmtNode()                    {}

// ErrorStatement is a parse-error-recovery sentinel; ignored by
// inference.
type ErrorStatement struct {
	Loc ast.SourceLocation
}

func (s *ErrorStatement) Location() ast.SourceLocation { return s.Loc }
func (s *ErrorStatement) stmtNode()                    {}

// ---- Expressions ----

// Identifier is a name reference.
type Identifier struct {
	TypedExpr
	Name string
}

func (*Identifier) exprNode() {}

// ArrayExpr is an array literal.
type ArrayExpr struct {
	TypedExpr
	Elements []Expression
}

func (*ArrayExpr) exprNode() {}

// DictExpr is a dictionary literal.
type DictExpr struct {
	TypedExpr
	Elements []*DictItem
}

func (*DictExpr) exprNode() {}

// DictItem is one key/value pair of a DictExpr.
type DictItem struct {
	Loc ast.SourceLocation
	Key Expression
	Val Expression
}

func (d *DictItem) Location() ast.SourceLocation { return d.Loc }

// FunctionParameter is one parameter of a FunctionExpr.
type FunctionParameter struct {
	Loc     ast.SourceLocation
	Sym     symbol.Symbol
	IsPipe  bool
	Default Expression // optional
}

func (p *FunctionParameter) Location() ast.SourceLocation { return p.Loc }

// FunctionExpr is a lambda. Body is the Block chain its statement
// list converts to; Vectorized is populated by internal/vectorize on
// eligible functions.
type FunctionExpr struct {
	TypedExpr
	Params     []*FunctionParameter
	Body       Block
	Vectorized *FunctionExpr
}

func (*FunctionExpr) exprNode() {}

// LogicalExpr is `left and right` / `left or right`. It carries no
// mutable type slot — its type is definitionally Bool.
type LogicalExpr struct {
	Loc      ast.SourceLocation
	Operator ast.LogicalOperator
	Left     Expression
	Right    Expression
}

func (e *LogicalExpr) Location() ast.SourceLocation { return e.Loc }
func (*LogicalExpr) exprNode()                      {}
func (*LogicalExpr) Type() types.MonoType            { return types.Bool }
func (*LogicalExpr) SetType(types.MonoType)          {}

// Property is one field of an ObjectExpr.
type Property struct {
	Loc   ast.SourceLocation
	Label string
	Value Expression
}

func (p *Property) Location() ast.SourceLocation { return p.Loc }

// ObjectExpr is a record literal, optionally extending a base record
// via With.
type ObjectExpr struct {
	TypedExpr
	With       Expression // optional
	Properties []*Property
}

func (*ObjectExpr) exprNode() {}

// MemberExpr is `object.property`. Sym is populated by inference when
// Object is an identifier bound to an imported package and the
// importer recognizes Property as one of its members — it is the
// canonical symbol the access resolves to, for diagnostics and
// potential go-to-definition tooling; nil otherwise.
type MemberExpr struct {
	TypedExpr
	Object   Expression
	Property string
	Sym      *symbol.Symbol
}

func (*MemberExpr) exprNode() {}

// IndexExpr is `array[index]`.
type IndexExpr struct {
	TypedExpr
	Array Expression
	Index Expression
}

func (*IndexExpr) exprNode() {}

// BinaryExpr applies a binary ast.Operator to two operands.
type BinaryExpr struct {
	TypedExpr
	Operator ast.Operator
	Left     Expression
	Right    Expression
}

func (*BinaryExpr) exprNode() {}

// UnaryExpr applies a unary ast.Operator to one operand.
type UnaryExpr struct {
	TypedExpr
	Operator ast.Operator
	Argument Expression
}

func (*UnaryExpr) exprNode() {}

// CallExpr applies Callee to named Arguments and an optional Pipe.
type CallExpr struct {
	TypedExpr
	Callee    Expression
	Arguments []*Property
	Pipe      Expression // optional
}

func (*CallExpr) exprNode() {}

// ConditionalExpr is `if test then consequent else alternate`.
type ConditionalExpr struct {
	TypedExpr
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (*ConditionalExpr) exprNode() {}

// StringExpressionPart is one part of an interpolated string.
type StringExpressionPart interface {
	Node
	stringPartNode()
}

// TextPart is a literal run of text within a StringExpr.
type TextPart struct {
	Loc   ast.SourceLocation
	Value string
}

func (p *TextPart) Location() ast.SourceLocation { return p.Loc }
func (*TextPart) stringPartNode()                {}

// InterpolatedPart is `${expr}` within a StringExpr.
type InterpolatedPart struct {
	Loc        ast.SourceLocation
	Expression Expression
}

func (p *InterpolatedPart) Location() ast.SourceLocation { return p.Loc }
func (*InterpolatedPart) stringPartNode()                {}

// StringExpr is an interpolated string. Its overall type is always
// String; each interpolated part is separately constrained Stringable.
type StringExpr struct {
	TypedExpr
	Parts []StringExpressionPart
}

func (*StringExpr) exprNode() {}

// ---- Literals ----

// IntegerLit is a signed integer constant.
type IntegerLit struct {
	TypedExpr
	Value int64
}

func (*IntegerLit) exprNode() {}

// UintLit is an unsigned integer constant.
type UintLit struct {
	TypedExpr
	Value uint64
}

func (*UintLit) exprNode() {}

// FloatLit is a floating point constant.
type FloatLit struct {
	TypedExpr
	Value float64
}

func (*FloatLit) exprNode() {}

// StringLit is a plain (non-interpolated) string constant.
type StringLit struct {
	TypedExpr
	Value string
}

func (*StringLit) exprNode() {}

// BooleanLit is `true`/`false`.
type BooleanLit struct {
	TypedExpr
	Value bool
}

func (*BooleanLit) exprNode() {}

// DateTimeLit is a timestamp constant.
type DateTimeLit struct {
	TypedExpr
	Value string
}

func (*DateTimeLit) exprNode() {}

// DurationLit is a duration constant, already folded by
// locator.ConvertDuration at conversion time.
type DurationLit struct {
	TypedExpr
	Value locator.Duration
}

func (*DurationLit) exprNode() {}

// RegexpLit is a `/pattern/` constant.
type RegexpLit struct {
	TypedExpr
	Value string
}

func (*RegexpLit) exprNode() {}

// ErrorExpr is a parse-error-recovery sentinel; its type is always
// types.Error{}.
type ErrorExpr struct {
	TypedExpr
}

func (*ErrorExpr) exprNode() {}
