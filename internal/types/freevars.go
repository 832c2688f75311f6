package types

// FreeVars collects the set of unresolved type variables reachable
// from t without consulting a substitution — callers that need
// substitution-aware free variables apply it first.
func FreeVars(t MonoType) map[Tvar]struct{} {
	free := make(map[Tvar]struct{})
	collectFreeVars(t, free)
	return free
}

func collectFreeVars(t MonoType, free map[Tvar]struct{}) {
	switch tt := t.(type) {
	case Error, Basic:
		// no variables
	case Var:
		free[tt.Tv] = struct{}{}
	case Array:
		collectFreeVars(tt.Elem, free)
	case Dict:
		collectFreeVars(tt.Key, free)
		collectFreeVars(tt.Val, free)
	case Vector:
		collectFreeVars(tt.Elem, free)
	case Record:
		collectFreeVarsRow(tt.Row, free)
	case Function:
		for _, v := range tt.Req {
			collectFreeVars(v, free)
		}
		for _, v := range tt.Opt {
			collectFreeVars(v, free)
		}
		if tt.Pipe != nil {
			collectFreeVars(tt.Pipe.Value, free)
		}
		collectFreeVars(tt.Retn, free)
	}
}

func collectFreeVarsRow(r Row, free map[Tvar]struct{}) {
	switch rt := r.(type) {
	case EmptyRow:
		// no variables
	case RowVar:
		free[rt.Tv] = struct{}{}
	case Extension:
		collectFreeVars(rt.Value, free)
		collectFreeVarsRow(rt.Tail, free)
	}
}

// FreeVarsSet is FreeVars over several types at once, e.g. every
// PolyType currently bound in an environment.
func FreeVarsSet(ts ...MonoType) map[Tvar]struct{} {
	free := make(map[Tvar]struct{})
	for _, t := range ts {
		collectFreeVars(t, free)
	}
	return free
}
