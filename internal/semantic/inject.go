package semantic

import "github.com/sunholo/semcheck/internal/types"

// Applier resolves a MonoType through a substitution. *subst.Substitution
// satisfies this; InjectTypes takes the narrow interface instead of
// depending on internal/subst directly, mirroring Convert's Fresher.
type Applier interface {
	Apply(types.MonoType) types.MonoType
}

// InjectTypes is the functional rewrite §9 calls `inject_types`: after
// InferPackage has accumulated its errors, this walks every node of
// pkg and replaces each expression's typ slot with its substitution-
// resolved form, so the tree handed back to callers is immutable in
// spirit even though it was built by in-place mutation. It must run
// after InferPackage and before Vectorize.
func InjectTypes(pkg *Package, sub Applier) {
	for _, f := range pkg.Files {
		for _, stmt := range f.Body {
			injectStatement(stmt, sub)
		}
	}
}

func injectStatement(stmt Statement, sub Applier) {
	switch s := stmt.(type) {
	case *ExprStatement:
		injectExpr(s.Expression, sub)
	case *VariableAssgn:
		injectExpr(s.Init, sub)
	case *MemberAssgn:
		injectExpr(s.Member, sub)
		injectExpr(s.Init, sub)
	case *OptionStatement:
		injectStatement(s.Assignment, sub)
	case *TestStatement:
		injectStatement(s.Assignment, sub)
	case *TestCaseStatement:
		for _, b := range s.Body {
			injectStatement(b, sub)
		}
	}
}

func injectBlock(b Block, sub Applier) {
	switch bt := b.(type) {
	case *BlockReturn:
		injectExpr(bt.Argument, sub)
	case *BlockVariable:
		injectStatement(bt.Assgn, sub)
		injectBlock(bt.Next, sub)
	case *BlockExpr:
		injectStatement(bt.Stmt, sub)
		injectBlock(bt.Next, sub)
	}
}

func injectExpr(e Expression, sub Applier) {
	if e == nil {
		return
	}
	e.SetType(sub.Apply(e.Type()))

	switch ex := e.(type) {
	case *ArrayExpr:
		for _, el := range ex.Elements {
			injectExpr(el, sub)
		}
	case *DictExpr:
		for _, it := range ex.Elements {
			injectExpr(it.Key, sub)
			injectExpr(it.Val, sub)
		}
	case *ObjectExpr:
		injectExpr(ex.With, sub)
		for _, p := range ex.Properties {
			injectExpr(p.Value, sub)
		}
	case *MemberExpr:
		injectExpr(ex.Object, sub)
	case *IndexExpr:
		injectExpr(ex.Array, sub)
		injectExpr(ex.Index, sub)
	case *BinaryExpr:
		injectExpr(ex.Left, sub)
		injectExpr(ex.Right, sub)
	case *UnaryExpr:
		injectExpr(ex.Argument, sub)
	case *LogicalExpr:
		injectExpr(ex.Left, sub)
		injectExpr(ex.Right, sub)
	case *ConditionalExpr:
		injectExpr(ex.Test, sub)
		injectExpr(ex.Consequent, sub)
		injectExpr(ex.Alternate, sub)
	case *FunctionExpr:
		for _, p := range ex.Params {
			injectExpr(p.Default, sub)
		}
		injectBlock(ex.Body, sub)
	case *CallExpr:
		injectExpr(ex.Callee, sub)
		for _, a := range ex.Arguments {
			injectExpr(a.Value, sub)
		}
		injectExpr(ex.Pipe, sub)
	case *StringExpr:
		for _, p := range ex.Parts {
			if ip, ok := p.(*InterpolatedPart); ok {
				injectExpr(ip.Expression, sub)
			}
		}
	}
}
