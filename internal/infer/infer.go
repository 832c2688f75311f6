// Package infer implements the constraint-generating visitor: it
// walks a semantic tree, consults the environment and importer, and
// emits equality/kind constraints into a substitution. After the walk
// the caller applies the substitution over the tree to resolve every
// type slot.
package infer

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/diag"
	"github.com/sunholo/semcheck/internal/env"
	"github.com/sunholo/semcheck/internal/importer"
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/types"
)

// State carries the inference driver's mutable state for a single
// run: the substitution, the importer, the import table (alias ->
// path, accumulated across every file of the package), the
// environment, and accumulated errors.
// Inference is single-threaded and synchronous; a State is never
// shared between concurrent package inferences (see spec's
// concurrency model — independent driver instances per caller).
type State struct {
	sub      *subst.Substitution
	env      *env.Environment
	importer importer.Importer
	imports  map[string]string
	errors   []diag.Located[diag.ErrorKind]
}

func newState(e *env.Environment, s *subst.Substitution, imp importer.Importer) *State {
	return &State{
		sub:      s,
		env:      e,
		importer: imp,
		imports:  make(map[string]string),
	}
}

// error records a non-unification diagnostic at loc.
func (st *State) error(loc ast.SourceLocation, kind diag.ErrorKind) {
	st.errors = append(st.errors, diag.Located[diag.ErrorKind]{Loc: loc, Kind: kind})
}

// equal unifies exp and act, accumulating an Inference error on
// failure rather than aborting the walk.
func (st *State) equal(loc ast.SourceLocation, exp, act types.MonoType) {
	if err := st.sub.Unify(exp, act); err != nil {
		st.error(loc, diag.Inference{Err: err})
	}
}

// constrain attaches kind predicate k to t, accumulating an error on
// failure.
func (st *State) constrain(loc ast.SourceLocation, k types.Kind, t types.MonoType) {
	if err := st.sub.Constrain(k, t); err != nil {
		st.error(loc, diag.Inference{Err: err})
	}
}

// solve batches constraints gathered elsewhere (e.g. from
// instantiate), recording one Inference error per failure.
func (st *State) solve(cs []subst.Constraint) {
	for _, err := range st.sub.Solve(cs) {
		se, ok := err.(subst.SolveError)
		if !ok {
			st.error(ast.SourceLocation{}, diag.Bug{Msg: err.Error()})
			continue
		}
		st.error(se.Loc, diag.Inference{Err: se.Err})
	}
}

// lookup reads name's scheme from the environment; on miss it records
// UndefinedIdentifier and returns the Error scheme so callers can
// continue typing without cascading.
func (st *State) lookup(loc ast.SourceLocation, name string) types.PolyType {
	if scheme, ok := st.env.Lookup(name); ok {
		return scheme
	}
	st.error(loc, diag.UndefinedIdentifier{Name: name})
	return types.ErrorPoly()
}

// InferPackage is the top-level entry: it walks every file of pkg in
// order, resolving imports via imp, threading state through
// environment and substitution, and returns every accumulated error
// (resolved against the final substitution) after retracting
// import-introduced names from environment.
func InferPackage(pkg *semantic.Package, environment *env.Environment, sub *subst.Substitution, imp importer.Importer) []diag.Located[diag.ErrorKind] {
	st := newState(environment, sub, imp)

	for _, f := range pkg.Files {
		st.inferFile(f)
	}

	for alias := range st.imports {
		st.env.Remove(alias)
	}

	resolved := make([]diag.Located[diag.ErrorKind], len(st.errors))
	for i, e := range st.errors {
		resolved[i] = st.resolveError(e)
	}
	st.env.ApplyMut(st.sub)

	return resolved
}

func (st *State) resolveError(e diag.Located[diag.ErrorKind]) diag.Located[diag.ErrorKind] {
	switch k := e.Kind.(type) {
	case diag.InvalidBinOp:
		k.Typ = st.sub.Apply(k.Typ)
		e.Kind = k
	case diag.InvalidUnaryOp:
		k.Typ = st.sub.Apply(k.Typ)
		e.Kind = k
	}
	return e
}

func (st *State) inferFile(f *semantic.File) {
	for _, imp := range f.Imports {
		st.inferImport(imp)
	}
	for _, stmt := range f.Body {
		st.inferFileStatement(stmt)
	}
}

func (st *State) inferImport(imp *semantic.ImportDeclaration) {
	scheme, ok := st.importer.Import(imp.Path)
	if !ok {
		st.error(imp.Loc, diag.InvalidImportPath{Path: imp.Path})
		scheme = types.ErrorPoly()
	}
	st.env.Add(imp.As, scheme)
	st.imports[imp.As] = imp.Path
}

// inferFileStatement dispatches a top-level statement; unlike
// inferStatement, a bare ReturnStatement here is invalid (only a
// function body's terminal BlockReturn may return).
func (st *State) inferFileStatement(stmt semantic.Statement) {
	if ret, ok := stmt.(*semantic.ReturnStatement); ok {
		st.error(ret.Location(), diag.InvalidReturn{})
		return
	}
	st.inferStatement(stmt)
}

// inferStatement dispatches every statement shape valid inside a
// function body or test case, per spec §4.3.2.
func (st *State) inferStatement(stmt semantic.Statement) {
	switch s := stmt.(type) {
	case *semantic.ExprStatement:
		st.inferExpr(s.Expression)
	case *semantic.VariableAssgn:
		st.inferVariableAssgn(s)
	case *semantic.MemberAssgn:
		st.inferMemberAssgn(s)
	case *semantic.OptionStatement:
		st.inferStatement(s.Assignment)
	case *semantic.TestStatement:
		st.inferVariableAssgn(s.Assignment)
	case *semantic.TestCaseStatement:
		for _, inner := range s.Body {
			st.inferStatement(inner)
		}
	case *semantic.BuiltinStatement:
		st.env.Add(s.Sym.Name(), s.Scheme)
	case *semantic.ErrorStatement:
		// ignored, per spec's accumulate-don't-abort policy for
		// parse-error-recovery sentinels.
	default:
		st.error(stmt.Location(), diag.Bug{Msg: fmt.Sprintf("infer: unhandled statement %T", stmt)})
	}
}

func (st *State) inferVariableAssgn(a *semantic.VariableAssgn) {
	st.inferExpr(a.Init)
	st.env.ApplyMut(st.sub)
	scheme := Generalize(st.env, st.sub, a.Init.Type())
	a.Vars = scheme.Vars
	a.Cons = scheme.Cons
	st.env.Add(a.Sym.Name(), scheme)
}

func (st *State) inferMemberAssgn(a *semantic.MemberAssgn) {
	st.inferExpr(a.Init)
	st.inferExpr(a.Member)
	st.equal(a.Member.Location(), a.Member.Type(), a.Init.Type())
}

// inferBlock infers a FunctionExpr body's Block chain, returning the
// type its terminal Return evaluates to.
func (st *State) inferBlock(b semantic.Block) types.MonoType {
	switch bt := b.(type) {
	case *semantic.BlockReturn:
		st.inferExpr(bt.Argument)
		return bt.Argument.Type()
	case *semantic.BlockVariable:
		st.inferVariableAssgn(bt.Assgn)
		return st.inferBlock(bt.Next)
	case *semantic.BlockExpr:
		st.inferStatement(bt.Stmt)
		return st.inferBlock(bt.Next)
	default:
		st.error(b.Location(), diag.Bug{Msg: fmt.Sprintf("infer: unhandled block node %T", b)})
		return types.Error{}
	}
}
