package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunholo/semcheck/internal/ast"
	"github.com/sunholo/semcheck/internal/diag"
	"github.com/sunholo/semcheck/internal/env"
	"github.com/sunholo/semcheck/internal/importer"
	"github.com/sunholo/semcheck/internal/semantic"
	"github.com/sunholo/semcheck/internal/subst"
	"github.com/sunholo/semcheck/internal/types"
)

func runInfer(t *testing.T, body []ast.Statement) (*semantic.Package, *subst.Substitution, []diag.Located[diag.ErrorKind]) {
	t.Helper()
	sub := subst.New()
	pkg := semantic.Convert(&ast.Package{Name: "main", Files: []*ast.File{{Body: body}}}, sub)
	e := env.New()
	errs := InferPackage(pkg, e, sub, importer.NewRegistry())
	return pkg, sub, errs
}

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func call(callee ast.Expression, args ...*ast.Property) *ast.CallExpression {
	return &ast.CallExpression{Callee: callee, Arguments: args}
}

func arg(label string, v ast.Expression) *ast.Property {
	return &ast.Property{Key: &ast.Identifier{Name: label}, Value: v}
}

// S1 (polymorphism): id = (x) => x ; id(x: 1) + 1
func TestInferScenarioS1Polymorphism(t *testing.T) {
	idFn := &ast.FunctionExpression{
		Params: []*ast.FunctionParameter{{Key: ident("x")}},
		Body:   []ast.Statement{&ast.ReturnStatement{Argument: ident("x")}},
	}
	body := []ast.Statement{
		&ast.VariableAssgn{ID: ident("id"), Init: idFn},
		&ast.ExprStatement{Expression: &ast.BinaryExpression{
			Operator: ast.AdditionOperator,
			Left:     call(ident("id"), arg("x", &ast.IntegerLiteral{Value: 1})),
			Right:    &ast.IntegerLiteral{Value: 1},
		}},
	}
	pkg, sub, errs := runInfer(t, body)
	require.Empty(t, errs)

	assgn := pkg.Files[0].Body[0].(*semantic.VariableAssgn)
	assert.NotEmpty(t, assgn.Vars, "id must be generalized over at least one variable")

	exprStmt := pkg.Files[0].Body[1].(*semantic.ExprStatement)
	binop := exprStmt.Expression.(*semantic.BinaryExpr)
	assert.Equal(t, types.Int, sub.Apply(binop.Type()))
}

// S2 (row polymorphism): f = (r) => r.a ; f(r: {a: 1, b: "x"})
func TestInferScenarioS2RowPolymorphism(t *testing.T) {
	fFn := &ast.FunctionExpression{
		Params: []*ast.FunctionParameter{{Key: ident("r")}},
		Body: []ast.Statement{
			&ast.ReturnStatement{Argument: &ast.MemberExpression{Object: ident("r"), Property: "a"}},
		},
	}
	rec := &ast.ObjectExpression{Properties: []*ast.Property{
		{Key: ident("a"), Value: &ast.IntegerLiteral{Value: 1}},
		{Key: ident("b"), Value: &ast.StringLiteral{Value: "x"}},
	}}
	body := []ast.Statement{
		&ast.VariableAssgn{ID: ident("f"), Init: fFn},
		&ast.ExprStatement{Expression: call(ident("f"), arg("r", rec))},
	}
	pkg, sub, errs := runInfer(t, body)
	require.Empty(t, errs)

	exprStmt := pkg.Files[0].Body[1].(*semantic.ExprStatement)
	callExpr := exprStmt.Expression.(*semantic.CallExpr)
	assert.Equal(t, types.Int, sub.Apply(callExpr.Type()))
}

// S3 (kind mismatch): "a" + 1
func TestInferScenarioS3KindMismatch(t *testing.T) {
	body := []ast.Statement{
		&ast.ExprStatement{Expression: &ast.BinaryExpression{
			Operator: ast.AdditionOperator,
			Left:     &ast.StringLiteral{Value: "a"},
			Right:    &ast.IntegerLiteral{Value: 1},
		}},
	}
	pkg, sub, errs := runInfer(t, body)
	require.Len(t, errs, 1)
	_, ok := errs[0].Kind.(diag.Inference)
	assert.True(t, ok)

	exprStmt := pkg.Files[0].Body[0].(*semantic.ExprStatement)
	binop := exprStmt.Expression.(*semantic.BinaryExpr)
	assert.Equal(t, types.Error{}, sub.Apply(binop.Type()))
}

// S4 (undefined): x + 1 with no prior binding.
func TestInferScenarioS4Undefined(t *testing.T) {
	body := []ast.Statement{
		&ast.ExprStatement{Expression: &ast.BinaryExpression{
			Operator: ast.AdditionOperator,
			Left:     ident("x"),
			Right:    &ast.IntegerLiteral{Value: 1},
		}},
	}
	pkg, sub, errs := runInfer(t, body)
	require.Len(t, errs, 1)
	kind, ok := errs[0].Kind.(diag.UndefinedIdentifier)
	require.True(t, ok)
	assert.Equal(t, "x", kind.Name)

	exprStmt := pkg.Files[0].Body[0].(*semantic.ExprStatement)
	binop := exprStmt.Expression.(*semantic.BinaryExpr)
	assert.Equal(t, types.Error{}, sub.Apply(binop.Type()))
}

func TestInferInvalidReturnAtFileLevel(t *testing.T) {
	body := []ast.Statement{
		&ast.ReturnStatement{Argument: &ast.IntegerLiteral{Value: 1}},
	}
	_, _, errs := runInfer(t, body)
	require.Len(t, errs, 1)
	_, ok := errs[0].Kind.(diag.InvalidReturn)
	assert.True(t, ok)
}

func TestInferInvalidImportPath(t *testing.T) {
	pkgAST := &ast.Package{
		Name: "main",
		Files: []*ast.File{{
			Imports: []*ast.ImportDeclaration{{Path: &ast.StringLiteral{Value: "nonexistent/pkg"}}},
			Body:    []ast.Statement{&ast.ExprStatement{Expression: &ast.IntegerLiteral{Value: 1}}},
		}},
	}
	sub := subst.New()
	sem := semantic.Convert(pkgAST, sub)
	e := env.New()
	errs := InferPackage(sem, e, sub, importer.NewRegistry())
	require.Len(t, errs, 1)
	_, ok := errs[0].Kind.(diag.InvalidImportPath)
	assert.True(t, ok)
}

func TestInferScopeBalance(t *testing.T) {
	body := []ast.Statement{
		&ast.ExprStatement{Expression: &ast.FunctionExpression{
			Params: []*ast.FunctionParameter{{Key: ident("x")}},
			Body:   []ast.Statement{&ast.ReturnStatement{Argument: ident("x")}},
		}},
	}
	sub := subst.New()
	pkg := semantic.Convert(&ast.Package{Name: "main", Files: []*ast.File{{Body: body}}}, sub)
	e := env.New()
	before := e.Depth()
	_ = InferPackage(pkg, e, sub, importer.NewRegistry())
	assert.Equal(t, before, e.Depth())
}
