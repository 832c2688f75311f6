// Package env implements the scoped name->PolyType environment the
// inference driver consults.
package env

import (
	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/types"
)

// Environment is a stack of binding frames. Lookups walk from the
// innermost frame outward. Unlike the teacher's persistent-extend
// style (each Extend allocates a new immutable environment value),
// scopes here are pushed and popped explicitly: the spec requires
// enter_scope/exit_scope to be matched on every control path,
// including error paths, which a stack makes straightforward to audit.
type Environment struct {
	frames []map[string]types.PolyType
}

// New returns an Environment with a single root frame.
func New() *Environment {
	return &Environment{frames: []map[string]types.PolyType{make(map[string]types.PolyType)}}
}

// EnterScope pushes a new, empty frame.
func (e *Environment) EnterScope() {
	e.frames = append(e.frames, make(map[string]types.PolyType))
}

// ExitScope pops the innermost frame. It panics if called without a
// matching EnterScope — an exit with no corresponding enter is always
// a driver bug, never a recoverable condition.
func (e *Environment) ExitScope() {
	if len(e.frames) <= 1 {
		panic("env: exit_scope without matching enter_scope")
	}
	e.frames = e.frames[:len(e.frames)-1]
}

// Depth reports the number of live frames, for verifying scope
// balance around a call to infer_package.
func (e *Environment) Depth() int {
	return len(e.frames)
}

// Add binds name to scheme in the innermost frame, shadowing any
// outer binding of the same name.
func (e *Environment) Add(name string, scheme types.PolyType) {
	e.frames[len(e.frames)-1][name] = scheme
}

// Lookup walks frames from innermost to outermost, returning the
// first binding found.
func (e *Environment) Lookup(name string) (types.PolyType, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if s, ok := e.frames[i][name]; ok {
			return s, true
		}
	}
	return types.PolyType{}, false
}

// Remove deletes name from the innermost frame that binds it. Used to
// retract import-introduced aliases once every file of a package has
// been processed.
func (e *Environment) Remove(name string) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i][name]; ok {
			delete(e.frames[i], name)
			return
		}
	}
}

// FreeVars returns the free type variables of every scheme currently
// bound, across all live frames — used when generalizing a new
// binding so its quantified variables never capture one still in
// scope in the enclosing environment.
func (e *Environment) FreeVars() map[types.Tvar]struct{} {
	free := make(map[types.Tvar]struct{})
	for _, frame := range e.frames {
		for _, scheme := range frame {
			for v := range types.FreeVars(scheme.Expr) {
				if !quantified(scheme, v) {
					free[v] = struct{}{}
				}
			}
		}
	}
	return free
}

func quantified(scheme types.PolyType, v types.Tvar) bool {
	for _, qv := range scheme.Vars {
		if qv == v {
			return true
		}
	}
	return false
}

// ApplyMut substitutes through every binding in every frame in place,
// so subsequent generalizations see resolved monotypes rather than
// unification variables that have since been bound.
func (e *Environment) ApplyMut(s *subst.Substitution) {
	for _, frame := range e.frames {
		for name, scheme := range frame {
			frame[name] = s.ApplyPoly(scheme)
		}
	}
}
