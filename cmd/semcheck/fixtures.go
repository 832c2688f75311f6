package main

import (
	"github.com/sunholo/semcheck/internal/ast"
)

// demoPackage stands in for a parser's output: a package built by hand
// that exercises let-polymorphism, row polymorphism, a kind-mismatch
// error, an undefined identifier, and a vectorizable function, in one
// pass. A real driver would replace this with parse(file) for each of
// project.Files.
func demoPackage(name string) *ast.Package {
	ident := func(n string) *ast.Identifier { return &ast.Identifier{Name: n} }
	prop := func(label string, v ast.Expression) *ast.Property {
		return &ast.Property{Key: ident(label), Value: v}
	}
	member := func(obj ast.Expression, p string) *ast.MemberExpression {
		return &ast.MemberExpression{Object: obj, Property: p}
	}

	// id = (x) => x
	idFn := &ast.VariableAssgn{
		ID: ident("id"),
		Init: &ast.FunctionExpression{
			Params: []*ast.FunctionParameter{{Key: ident("x")}},
			Body:   []ast.Statement{&ast.ReturnStatement{Argument: ident("x")}},
		},
	}

	// select = (r) => ({a: r.a, b: r.b})
	selectFn := &ast.VariableAssgn{
		ID: ident("select"),
		Init: &ast.FunctionExpression{
			Params: []*ast.FunctionParameter{{Key: ident("r")}},
			Body: []ast.Statement{&ast.ReturnStatement{Argument: &ast.ObjectExpression{
				Properties: []*ast.Property{
					prop("a", member(ident("r"), "a")),
					prop("b", member(ident("r"), "b")),
				},
			}}},
		},
	}

	// _ = select(r: {a: 1.5, b: 2})
	applySelect := &ast.ExprStatement{Expression: &ast.CallExpression{
		Callee: ident("select"),
		Arguments: []*ast.Property{prop("r", &ast.ObjectExpression{
			Properties: []*ast.Property{
				prop("a", &ast.FloatLiteral{Value: 1.5}),
				prop("b", &ast.IntegerLiteral{Value: 2}),
			},
		})},
	}}

	// _ = id(x: 1) + 1
	applyID := &ast.ExprStatement{Expression: &ast.BinaryExpression{
		Operator: ast.AdditionOperator,
		Left: &ast.CallExpression{
			Callee:    ident("id"),
			Arguments: []*ast.Property{prop("x", &ast.IntegerLiteral{Value: 1})},
		},
		Right: &ast.IntegerLiteral{Value: 1},
	}}

	// _ = "total: " + 1  (kind mismatch)
	kindMismatch := &ast.ExprStatement{Expression: &ast.BinaryExpression{
		Operator: ast.AdditionOperator,
		Left:     &ast.StringLiteral{Value: "total: "},
		Right:    &ast.IntegerLiteral{Value: 1},
	}}

	// _ = undefinedName + 1
	undefined := &ast.ExprStatement{Expression: &ast.BinaryExpression{
		Operator: ast.AdditionOperator,
		Left:     ident("undefinedName"),
		Right:    &ast.IntegerLiteral{Value: 1},
	}}

	return &ast.Package{
		Name: name,
		Files: []*ast.File{{
			Body: []ast.Statement{idFn, selectFn, applySelect, applyID, kindMismatch, undefined},
		}},
	}
}
