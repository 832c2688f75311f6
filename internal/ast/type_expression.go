package ast

// TypeExpression is the closed union of type annotation syntax used in
// a BuiltinStatement's declared signature (`id :: sigma`). It is not
// part of the expression/statement grammar proper — it only appears
// where a builtin declares an external type.
type TypeExpression interface {
	Node
	typeExprNode()
}

// NamedType references a ground scalar type by name (e.g. "int").
type NamedType struct {
	Loc  SourceLocation
	Name string
}

func (t *NamedType) Location() SourceLocation { return t.Loc }
func (*NamedType) typeExprNode()              {}

// TvarType references a named type variable (e.g. "A"), shared across
// every occurrence of that name within one signature.
type TvarType struct {
	Loc  SourceLocation
	Name string
}

func (t *TvarType) Location() SourceLocation { return t.Loc }
func (*TvarType) typeExprNode()              {}

// ArrayType is `[T]`.
type ArrayType struct {
	Loc     SourceLocation
	Element TypeExpression
}

func (t *ArrayType) Location() SourceLocation { return t.Loc }
func (*ArrayType) typeExprNode()              {}

// DictType is `[K:V]`.
type DictType struct {
	Loc SourceLocation
	Key TypeExpression
	Val TypeExpression
}

func (t *DictType) Location() SourceLocation { return t.Loc }
func (*DictType) typeExprNode()              {}

// PropertyType is one labelled field of a RecordType.
type PropertyType struct {
	Loc   SourceLocation
	Label string
	Ty    TypeExpression
}

func (p *PropertyType) Location() SourceLocation { return p.Loc }

// RecordType is `{a: T, b: U | tvar}`; Tvar is nil for a closed
// record.
type RecordType struct {
	Loc        SourceLocation
	Properties []*PropertyType
	Tvar       *string
}

func (t *RecordType) Location() SourceLocation { return t.Loc }
func (*RecordType) typeExprNode()              {}

// ParameterType is one parameter of a FunctionType: exactly one of
// Optional or Pipe may be true.
type ParameterType struct {
	Loc      SourceLocation
	Label    string
	Ty       TypeExpression
	Optional bool
	Pipe     bool
}

func (p *ParameterType) Location() SourceLocation { return p.Loc }

// FunctionType is `(a: T, ?b: U) => R`.
type FunctionType struct {
	Loc        SourceLocation
	Parameters []*ParameterType
	Return     TypeExpression
}

func (t *FunctionType) Location() SourceLocation { return t.Loc }
func (*FunctionType) typeExprNode()              {}
