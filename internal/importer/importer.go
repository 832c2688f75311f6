// Package importer defines the import-resolution contract the
// inference driver consults for ImportDeclaration handling, plus an
// in-memory reference implementation for tests and the CLI driver.
package importer

import (
	"github.com/sunholo/semcheck/internal/symbol"
	"github.com/sunholo/semcheck/internal/types"
)

// Importer resolves import paths to already-typed package signatures.
// Implementations own their own package registry; this package only
// fixes the contract the inference driver depends on.
type Importer interface {
	// Import returns a package's exported signature as a record-typed
	// poly-type, or ok=false if the path is unknown.
	Import(path string) (types.PolyType, bool)

	// Symbol returns the canonical symbol for a member access through
	// an imported package, or ok=false if the package or member is
	// unknown.
	Symbol(path, name string) (symbol.Symbol, bool)
}

// pkg is one registered package's exported surface.
type pkg struct {
	scheme  types.PolyType
	symbols map[string]symbol.Symbol
}

// Registry is an in-memory Importer, built by registering packages
// ahead of inference.
type Registry struct {
	packages map[string]pkg
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{packages: make(map[string]pkg)}
}

// Register adds a package's exported scheme and member symbols under
// path, overwriting any prior registration at the same path.
func (r *Registry) Register(path string, scheme types.PolyType, symbols map[string]symbol.Symbol) {
	members := symbols
	if members == nil {
		members = make(map[string]symbol.Symbol)
	}
	r.packages[path] = pkg{scheme: scheme, symbols: members}
}

func (r *Registry) Import(path string) (types.PolyType, bool) {
	p, ok := r.packages[path]
	if !ok {
		return types.PolyType{}, false
	}
	return p.scheme, true
}

func (r *Registry) Symbol(path, name string) (symbol.Symbol, bool) {
	p, ok := r.packages[path]
	if !ok {
		return symbol.Symbol{}, false
	}
	sym, ok := p.symbols[name]
	return sym, ok
}
