// SPDX-License-Identifier: Apache-2.0
package extract

import "github.com/mfagerlund/gradientscript/internal/ast"

// reciprocalTemps finds temporaries whose assignment is exactly 1/x and
// returns a map from x's canonical form to that temp's name, so later
// divisions by x elsewhere in the extracted expression can reuse the
// already-shared reciprocal (spec §4.I's a/x -> a*inv(x) post-pass).
func reciprocalTemps(temps []*ast.Assignment) map[string]string {
	out := map[string]string{}
	for _, t := range temps {
		b, ok := t.Expr.(*ast.Binary)
		if !ok || b.Op != ast.Div {
			continue
		}
		if !ast.IsOne(b.Left) {
			continue
		}
		out[ast.Structural(b.Right)] = t.Name
	}
	return out
}

// postProcess applies the cosmetic rewrites of spec §4.I after temps are
// assigned: a product with a literal -1 factor becomes a unary negation,
// and a division by a divisor that already has a shared reciprocal temp
// becomes a multiplication by that temp.
func postProcess(e ast.Expr, reciprocals map[string]string) ast.Expr {
	switch n := e.(type) {
	case *ast.Number, *ast.Variable:
		return n
	case *ast.Unary:
		return ast.NewUnary(n.Op, postProcess(n.Operand, reciprocals))
	case *ast.Component:
		return ast.NewComponent(postProcess(n.Object, reciprocals), n.Field)
	case *ast.Call:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = postProcess(a, reciprocals)
		}
		return ast.NewCall(n.Name, args...)
	case *ast.Binary:
		l := postProcess(n.Left, reciprocals)
		r := postProcess(n.Right, reciprocals)
		if n.Op == ast.Mul {
			if neg, ok := negOperand(l, r); ok {
				return ast.NewUnary(ast.Neg, neg)
			}
		}
		if n.Op == ast.Div {
			if name, ok := reciprocals[ast.Structural(r)]; ok {
				return ast.NewBinary(ast.Mul, l, ast.NewVariable(name))
			}
		}
		return ast.NewBinary(n.Op, l, r)
	default:
		return e
	}
}

// negOperand reports whether one side of a product is the literal -1,
// returning the other side.
func negOperand(l, r ast.Expr) (ast.Expr, bool) {
	if c, ok := l.(*ast.Number); ok && c.Value == -1 {
		return r, true
	}
	if c, ok := r.(*ast.Number); ok && c.Value == -1 {
		return l, true
	}
	return nil, false
}
