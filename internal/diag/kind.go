package diag

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/types"
)

// ErrorKind is the closed set of semantic-analysis error conditions.
// Every inference failure is one of these before it is rendered into
// a Report.
type ErrorKind interface {
	errorKind()
	code() string
	message() string
}

// Located pairs an ErrorKind with the source span it was raised at.
type Located[K any] struct {
	Loc  ast.SourceLocation
	Kind K
}

// Inference wraps an underlying unification/constraint-solving error
// (occurs-check, kind mismatch, row mismatch) that already carries its
// own message.
type Inference struct{ Err error }

// UndefinedBuiltin names a builtin statement referencing an unknown
// external identifier.
type UndefinedBuiltin struct{ Name string }

// UndefinedIdentifier names a free variable with no binding in scope.
type UndefinedIdentifier struct{ Name string }

// InvalidBinOp names a binary operator applied outside its supported
// kind (e.g. arithmetic on a record).
type InvalidBinOp struct {
	Op  ast.Operator
	Typ types.MonoType
}

// InvalidUnaryOp names a unary operator applied to an unsupported
// operand type.
type InvalidUnaryOp struct {
	Op  ast.Operator
	Typ types.MonoType
}

// InvalidImportPath names an import statement whose path could not be
// resolved by the Importer.
type InvalidImportPath struct{ Path string }

// InvalidReturn marks a return statement at file level, outside any
// function body.
type InvalidReturn struct{}

// UnableToVectorize names a function expression that failed the
// vectorization rewrite's structural precondition.
type UnableToVectorize struct{ Reason string }

// Bug marks an internal invariant breach: something the inference
// engine itself guarantees never to produce.
type Bug struct{ Msg string }

func (Inference) errorKind()           {}
func (UndefinedBuiltin) errorKind()    {}
func (UndefinedIdentifier) errorKind() {}
func (InvalidBinOp) errorKind()        {}
func (InvalidUnaryOp) errorKind()      {}
func (InvalidImportPath) errorKind()   {}
func (InvalidReturn) errorKind()       {}
func (UnableToVectorize) errorKind()   {}
func (Bug) errorKind()                 {}

func (Inference) code() string           { return "SEM001" }
func (UndefinedBuiltin) code() string    { return "SEM002" }
func (UndefinedIdentifier) code() string { return "SEM003" }
func (InvalidBinOp) code() string        { return "SEM004" }
func (InvalidUnaryOp) code() string      { return "SEM005" }
func (InvalidImportPath) code() string   { return "SEM006" }
func (InvalidReturn) code() string       { return "SEM007" }
func (UnableToVectorize) code() string   { return "SEM009" }
func (Bug) code() string                 { return "SEM008" }

func (e Inference) message() string { return e.Err.Error() }
func (e UndefinedBuiltin) message() string {
	return fmt.Sprintf("undefined builtin %q", e.Name)
}
func (e UndefinedIdentifier) message() string {
	return fmt.Sprintf("undefined identifier %q", e.Name)
}
func (e InvalidBinOp) message() string {
	return fmt.Sprintf("operator %s is not defined for type %s", e.Op, e.Typ)
}
func (e InvalidUnaryOp) message() string {
	return fmt.Sprintf("operator %s is not defined for type %s", e.Op, e.Typ)
}
func (e InvalidImportPath) message() string {
	return fmt.Sprintf("invalid import path %q", e.Path)
}
func (InvalidReturn) message() string { return "return statement outside a function body" }
func (e UnableToVectorize) message() string {
	return fmt.Sprintf("unable to vectorize: %s", e.Reason)
}
func (e Bug) message() string { return fmt.Sprintf("internal error: %s", e.Msg) }

// ReportFor renders a Located[ErrorKind] as a Report, filling Data with
// whatever structured fields the concrete kind carries.
func ReportFor(loc Located[ErrorKind]) *Report {
	r := newReport(loc.Kind.code(), loc.Loc, loc.Kind.message(), dataFor(loc.Kind))
	return r
}

func dataFor(k ErrorKind) map[string]any {
	switch e := k.(type) {
	case UndefinedBuiltin:
		return map[string]any{"name": e.Name}
	case UndefinedIdentifier:
		return map[string]any{"name": e.Name}
	case InvalidBinOp:
		return map[string]any{"operator": e.Op.String(), "type": e.Typ.String()}
	case InvalidUnaryOp:
		return map[string]any{"operator": e.Op.String(), "type": e.Typ.String()}
	case InvalidImportPath:
		return map[string]any{"path": e.Path}
	case UnableToVectorize:
		return map[string]any{"reason": e.Reason}
	case Bug:
		return map[string]any{"msg": e.Msg}
	default:
		return nil
	}
}
