package diag

// Code constants for the SEM### phase, extending the teacher's
// PHASE### taxonomy (PAR###, MOD###, TC###, ...) with the error
// conditions this package's inference engine can raise.
const (
	SEM001 = "SEM001" // Inference: underlying unification/constraint failure
	SEM002 = "SEM002" // UndefinedBuiltin
	SEM003 = "SEM003" // UndefinedIdentifier
	SEM004 = "SEM004" // InvalidBinOp
	SEM005 = "SEM005" // InvalidUnaryOp
	SEM006 = "SEM006" // InvalidImportPath
	SEM007 = "SEM007" // InvalidReturn
	SEM008 = "SEM008" // Bug: internal invariant breach
	SEM009 = "SEM009" // UnableToVectorize
)

// CodeInfo documents one diagnostic code, mirroring the teacher's
// ErrorInfo/ErrorRegistry pattern.
type CodeInfo struct {
	Code        string
	Phase       string
	Category    string
	Description string
}

// Registry maps every SEM### code to its documentation entry.
var Registry = map[string]CodeInfo{
	SEM001: {SEM001, "semantic", "inference", "Unification or constraint solving failure"},
	SEM002: {SEM002, "semantic", "scope", "Reference to an undefined builtin"},
	SEM003: {SEM003, "semantic", "scope", "Reference to an undefined identifier"},
	SEM004: {SEM004, "semantic", "operator", "Binary operator not defined for operand type"},
	SEM005: {SEM005, "semantic", "operator", "Unary operator not defined for operand type"},
	SEM006: {SEM006, "semantic", "import", "Import path could not be resolved"},
	SEM007: {SEM007, "semantic", "structure", "Return statement outside a function body"},
	SEM008: {SEM008, "semantic", "internal", "Internal invariant breach"},
	SEM009: {SEM009, "semantic", "vectorize", "Function expression failed vectorization"},
}
