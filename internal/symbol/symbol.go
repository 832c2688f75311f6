// Package symbol assigns stable, scope-qualified identity to names.
//
// Two occurrences of the same textual name in different scopes must
// compare unequal; a Symbol's counter makes that true without needing
// to thread scope depth or a parent pointer through every call site.
package symbol

import (
	"fmt"
	"sync/atomic"
)

var counter uint64

// Symbol uniquely identifies an occurrence of a name.
type Symbol struct {
	name string
	id   uint64
}

// New allocates a fresh Symbol for name. Every call returns a distinct
// Symbol even when name is repeated.
func New(name string) Symbol {
	id := atomic.AddUint64(&counter, 1)
	return Symbol{name: name, id: id}
}

// Name returns the textual name the Symbol was created from.
func (s Symbol) Name() string { return s.name }

// String returns a stable textual form suitable for diagnostics, e.g.
// "x#17".
func (s Symbol) String() string {
	return fmt.Sprintf("%s#%d", s.name, s.id)
}

// Equal reports whether two Symbols refer to the same occurrence.
func (s Symbol) Equal(o Symbol) bool {
	return s.id == o.id
}
