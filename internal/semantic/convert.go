package semantic

import (
	"fmt"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/locator"
	"github.com/sunholo/semcheck/internal/symbol"
	"github.com/sunholo/semcheck/internal/types"
)

// Fresher allocates fresh type variables. *subst.Substitution
// satisfies this; Convert takes the narrow interface instead of
// depending on internal/subst directly.
type Fresher interface {
	Fresh() types.Tvar
}

// Convert builds a semantic tree mirroring pkg, with every expression
// node's type slot set to a fresh Var(Tvar). It panics if a
// FunctionExpr body is empty or doesn't end in a ReturnStatement —
// the upstream parser is expected to guarantee this grammatically, so
// a violation here is an internal invariant breach, not a recoverable
// diagnostic.
func Convert(pkg *ast.Package, fresh Fresher) *Package {
	c := &converter{fresh: fresh}
	return c.convertPackage(pkg)
}

type converter struct {
	fresh Fresher
}

func (c *converter) freshVar() types.MonoType {
	return types.Var{Tv: c.fresh.Fresh()}
}

func (c *converter) convertPackage(pkg *ast.Package) *Package {
	files := make([]*File, len(pkg.Files))
	for i, f := range pkg.Files {
		files[i] = c.convertFile(f)
	}
	return &Package{Loc: pkg.Loc, Name: pkg.Name, Files: files}
}

func (c *converter) convertFile(f *ast.File) *File {
	var clause *PackageClause
	if f.Package != nil {
		clause = &PackageClause{Loc: f.Package.Loc, Name: f.Package.Name.Name}
	}
	imports := make([]*ImportDeclaration, len(f.Imports))
	for i, imp := range f.Imports {
		alias := importAlias(imp)
		imports[i] = &ImportDeclaration{
			Loc:  imp.Loc,
			As:   alias,
			Sym:  symbol.New(alias),
			Path: imp.Path.Value,
		}
	}
	body := make([]Statement, len(f.Body))
	for i, s := range f.Body {
		body[i] = c.convertStatement(s)
	}
	return &File{Loc: f.Loc, Package: clause, Imports: imports, Body: body}
}

// importAlias returns the bound name for an import: an explicit `as`
// alias, or the final path segment.
func importAlias(imp *ast.ImportDeclaration) string {
	if imp.As != nil {
		return imp.As.Name
	}
	path := imp.Path.Value
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			last = path[i+1:]
			break
		}
	}
	return last
}

func (c *converter) convertStatement(s ast.Statement) Statement {
	switch st := s.(type) {
	case *ast.ExprStatement:
		return &ExprStatement{Loc: st.Loc, Expression: c.convertExpr(st.Expression)}
	case *ast.VariableAssgn:
		return c.convertVariableAssgn(st)
	case *ast.MemberAssgn:
		return &MemberAssgn{
			Loc:    st.Loc,
			Member: c.convertExpr(st.Member).(*MemberExpr),
			Init:   c.convertExpr(st.Init),
		}
	case *ast.OptionStatement:
		return &OptionStatement{Loc: st.Loc, Assignment: c.convertStatement(st.Assignment)}
	case *ast.ReturnStatement:
		return &ReturnStatement{Loc: st.Loc, Argument: c.convertExpr(st.Argument)}
	case *ast.TestStatement:
		return &TestStatement{Loc: st.Loc, Assignment: c.convertVariableAssgn(st.Assignment)}
	case *ast.TestCaseStatement:
		body := make([]Statement, len(st.Body))
		for i, b := range st.Body {
			body[i] = c.convertStatement(b)
		}
		return &TestCaseStatement{Loc: st.Loc, Sym: symbol.New(st.ID.Name), Body: body}
	case *ast.BuiltinStatement:
		return &BuiltinStatement{Loc: st.Loc, Sym: symbol.New(st.ID.Name), Scheme: c.convertTypeExpr(st.Ty, st.Constraints)}
	case *ast.BadStatement:
		return &ErrorStatement{Loc: st.Loc}
	default:
		panic(fmt.Sprintf("semantic: unhandled statement %T", s))
	}
}

func (c *converter) convertVariableAssgn(st *ast.VariableAssgn) *VariableAssgn {
	return &VariableAssgn{Loc: st.Loc, Sym: symbol.New(st.ID.Name), Init: c.convertExpr(st.Init)}
}

func (c *converter) convertExpr(e ast.Expression) Expression {
	switch et := e.(type) {
	case *ast.Identifier:
		return &Identifier{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Name: et.Name}
	case *ast.ArrayExpression:
		elems := make([]Expression, len(et.Elements))
		for i, el := range et.Elements {
			elems[i] = c.convertExpr(el)
		}
		return &ArrayExpr{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Elements: elems}
	case *ast.DictExpression:
		elems := make([]*DictItem, len(et.Elements))
		for i, el := range et.Elements {
			elems[i] = &DictItem{Loc: el.Loc, Key: c.convertExpr(el.Key), Val: c.convertExpr(el.Val)}
		}
		return &DictExpr{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Elements: elems}
	case *ast.FunctionExpression:
		return c.convertFunctionExpr(et)
	case *ast.LogicalExpression:
		return &LogicalExpr{
			Loc:      et.Loc,
			Operator: et.Operator,
			Left:     c.convertExpr(et.Left),
			Right:    c.convertExpr(et.Right),
		}
	case *ast.ObjectExpression:
		var with Expression
		if et.With != nil {
			with = c.convertExpr(et.With)
		}
		props := make([]*Property, len(et.Properties))
		for i, p := range et.Properties {
			props[i] = &Property{Loc: p.Loc, Label: p.Key.Name, Value: c.convertExpr(p.Value)}
		}
		return &ObjectExpr{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, With: with, Properties: props}
	case *ast.MemberExpression:
		return &MemberExpr{
			TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()},
			Object:    c.convertExpr(et.Object),
			Property:  et.Property,
		}
	case *ast.IndexExpression:
		return &IndexExpr{
			TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()},
			Array:     c.convertExpr(et.Array),
			Index:     c.convertExpr(et.Index),
		}
	case *ast.BinaryExpression:
		return &BinaryExpr{
			TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()},
			Operator:  et.Operator,
			Left:      c.convertExpr(et.Left),
			Right:     c.convertExpr(et.Right),
		}
	case *ast.UnaryExpression:
		return &UnaryExpr{
			TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()},
			Operator:  et.Operator,
			Argument:  c.convertExpr(et.Argument),
		}
	case *ast.CallExpression:
		args := make([]*Property, len(et.Arguments))
		for i, a := range et.Arguments {
			args[i] = &Property{Loc: a.Loc, Label: a.Key.Name, Value: c.convertExpr(a.Value)}
		}
		var pipe Expression
		if et.Pipe != nil {
			pipe = c.convertExpr(et.Pipe)
		}
		return &CallExpr{
			TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()},
			Callee:    c.convertExpr(et.Callee),
			Arguments: args,
			Pipe:      pipe,
		}
	case *ast.ConditionalExpression:
		return &ConditionalExpr{
			TypedExpr:  TypedExpr{Loc: et.Loc, Typ: c.freshVar()},
			Test:       c.convertExpr(et.Test),
			Consequent: c.convertExpr(et.Consequent),
			Alternate:  c.convertExpr(et.Alternate),
		}
	case *ast.StringExpression:
		parts := make([]StringExpressionPart, len(et.Parts))
		for i, p := range et.Parts {
			switch pt := p.(type) {
			case *ast.TextPart:
				parts[i] = &TextPart{Loc: pt.Loc, Value: pt.Value}
			case *ast.InterpolatedPart:
				parts[i] = &InterpolatedPart{Loc: pt.Loc, Expression: c.convertExpr(pt.Expression)}
			}
		}
		return &StringExpr{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Parts: parts}
	case *ast.IntegerLiteral:
		return &IntegerLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.UintLiteral:
		return &UintLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.FloatLiteral:
		return &FloatLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.StringLiteral:
		return &StringLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.BooleanLiteral:
		return &BooleanLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.DateTimeLiteral:
		return &DateTimeLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.DurationLiteral:
		dur, err := locator.ConvertDuration(et.Values)
		if err != nil {
			panic(fmt.Sprintf("semantic: %s", err))
		}
		return &DurationLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: dur}
	case *ast.RegexpLiteral:
		return &RegexpLit{TypedExpr: TypedExpr{Loc: et.Loc, Typ: c.freshVar()}, Value: et.Value}
	case *ast.BadExpression:
		return &ErrorExpr{TypedExpr: TypedExpr{Loc: et.Loc, Typ: types.Error{}}}
	default:
		panic(fmt.Sprintf("semantic: unhandled expression %T", e))
	}
}

func (c *converter) convertFunctionExpr(fe *ast.FunctionExpression) *FunctionExpr {
	params := make([]*FunctionParameter, len(fe.Params))
	for i, p := range fe.Params {
		var def Expression
		if p.Default != nil {
			def = c.convertExpr(p.Default)
		}
		params[i] = &FunctionParameter{Loc: p.Loc, Sym: symbol.New(p.Key.Name), IsPipe: p.IsPipe, Default: def}
	}
	body := c.convertBlock(fe.Body, fe.Loc)
	return &FunctionExpr{TypedExpr: TypedExpr{Loc: fe.Loc, Typ: c.freshVar()}, Params: params, Body: body}
}

// convertBlock folds a statement list into the Block chain. It
// requires the list to be non-empty and end in a ReturnStatement.
func (c *converter) convertBlock(stmts []ast.Statement, loc ast.SourceLocation) Block {
	if len(stmts) == 0 {
		panic("semantic: function body must not be empty")
	}
	return c.convertBlockFrom(stmts, 0, loc)
}

func (c *converter) convertBlockFrom(stmts []ast.Statement, i int, loc ast.SourceLocation) Block {
	s := stmts[i]
	last := i == len(stmts)-1

	if ret, ok := s.(*ast.ReturnStatement); ok {
		if !last {
			panic("semantic: return must be the final statement in a function body")
		}
		return &BlockReturn{Loc: ret.Loc, Argument: c.convertExpr(ret.Argument)}
	}
	if last {
		panic("semantic: function body must end in a return statement")
	}

	switch st := s.(type) {
	case *ast.VariableAssgn:
		return &BlockVariable{
			Loc:   st.Loc,
			Assgn: c.convertVariableAssgn(st),
			Next:  c.convertBlockFrom(stmts, i+1, loc),
		}
	default:
		return &BlockExpr{
			Loc:  s.Location(),
			Stmt: c.convertStatement(s),
			Next: c.convertBlockFrom(stmts, i+1, loc),
		}
	}
}

// convertTypeExpr builds the PolyType a BuiltinStatement declares.
// Every named type variable in the signature becomes one quantified
// Tvar, shared across occurrences within that signature.
func (c *converter) convertTypeExpr(te ast.TypeExpression, constraints map[string][]string) types.PolyType {
	tvars := make(map[string]types.Tvar)
	mono := c.typeExprToMono(te, tvars)

	vars := make([]types.Tvar, 0, len(tvars))
	cons := make(map[types.Tvar]types.KindSet, len(constraints))
	for name, tv := range tvars {
		vars = append(vars, tv)
		if kindNames, ok := constraints[name]; ok {
			ks := types.NewKindSet()
			for _, kn := range kindNames {
				if k, ok := kindByName(kn); ok {
					ks.Add(k)
				}
			}
			cons[tv] = ks
		}
	}
	return types.PolyType{Vars: vars, Cons: cons, Expr: mono}
}

func (c *converter) typeExprToMono(te ast.TypeExpression, tvars map[string]types.Tvar) types.MonoType {
	switch t := te.(type) {
	case *ast.NamedType:
		if b, ok := basicByName(t.Name); ok {
			return b
		}
		return types.Error{}
	case *ast.TvarType:
		tv, ok := tvars[t.Name]
		if !ok {
			tv = c.fresh.Fresh()
			tvars[t.Name] = tv
		}
		return types.Var{Tv: tv}
	case *ast.ArrayType:
		return types.Array{Elem: c.typeExprToMono(t.Element, tvars)}
	case *ast.DictType:
		return types.Dict{Key: c.typeExprToMono(t.Key, tvars), Val: c.typeExprToMono(t.Val, tvars)}
	case *ast.RecordType:
		var row types.Row = types.EmptyRow{}
		if t.Tvar != nil {
			tv, ok := tvars[*t.Tvar]
			if !ok {
				tv = c.fresh.Fresh()
				tvars[*t.Tvar] = tv
			}
			row = types.RowVar{Tv: tv}
		}
		for i := len(t.Properties) - 1; i >= 0; i-- {
			p := t.Properties[i]
			row = types.Extension{Label: p.Label, Value: c.typeExprToMono(p.Ty, tvars), Tail: row}
		}
		return types.Record{Row: row}
	case *ast.FunctionType:
		req := make(map[types.Label]types.MonoType)
		opt := make(map[types.Label]types.MonoType)
		var pipe *types.PipeParam
		for _, p := range t.Parameters {
			v := c.typeExprToMono(p.Ty, tvars)
			switch {
			case p.Pipe:
				pipe = &types.PipeParam{Label: types.PipeLabel, Value: v}
			case p.Optional:
				opt[p.Label] = v
			default:
				req[p.Label] = v
			}
		}
		return types.Function{Req: req, Opt: opt, Pipe: pipe, Retn: c.typeExprToMono(t.Return, tvars)}
	default:
		return types.Error{}
	}
}

func basicByName(name string) (types.Basic, bool) {
	switch name {
	case "bool":
		return types.Bool, true
	case "int":
		return types.Int, true
	case "uint":
		return types.Uint, true
	case "float":
		return types.Float, true
	case "string":
		return types.String, true
	case "duration":
		return types.Dur, true
	case "time":
		return types.Time, true
	case "regexp":
		return types.Regexp, true
	case "bytes":
		return types.Bytes, true
	default:
		return types.Basic{}, false
	}
}

func kindByName(name string) (types.Kind, bool) {
	for k := types.Addable; k <= types.BasicKind; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
