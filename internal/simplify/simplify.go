// SPDX-License-Identifier: Apache-2.0

// Package simplify implements the Simplifier of spec §4.E: a fixed point
// of local algebraic rewrites and constant folding applied bottom-up over
// the term model. Simplify runs the rules that are always safe; the
// post-CSE rules (a+a -> 2a, symmetric-product collapse) are held back
// into SimplifyPostCSE because applying them before extraction would hide
// the shared sub-expression from the e-graph (spec §4.E).
package simplify

import (
	"math"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

// Simplify applies the core rule set (constant folding, identities, double
// negation, component distribution) to a fixed point.
func Simplify(e ast.Expr) ast.Expr {
	return fixedPoint(e, false)
}

// SimplifyPostCSE applies the core rule set plus the two rules that are
// only safe to run after CSE has had a chance to find the shared
// sub-expression (spec §4.E).
func SimplifyPostCSE(e ast.Expr) ast.Expr {
	return fixedPoint(e, true)
}

func fixedPoint(e ast.Expr, postCSE bool) ast.Expr {
	for {
		next := rewrite(e, postCSE)
		if ast.Structural(next) == ast.Structural(e) {
			return next
		}
		e = next
	}
}

func rewrite(e ast.Expr, postCSE bool) ast.Expr {
	switch n := e.(type) {
	case *ast.Number, *ast.Variable:
		return n
	case *ast.Binary:
		return rewriteBinary(n, postCSE)
	case *ast.Unary:
		operand := rewrite(n.Operand, postCSE)
		return rewriteUnary(n.Op, operand)
	case *ast.Call:
		args := make([]ast.Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = rewrite(a, postCSE)
		}
		return rewriteCall(n.Name, args)
	case *ast.Component:
		return rewriteComponent(n, postCSE)
	default:
		return e
	}
}

func rewriteUnary(op ast.UnOp, operand ast.Expr) ast.Expr {
	if op == ast.Pos {
		return operand // unary plus always passes through
	}
	if inner, ok := operand.(*ast.Unary); ok && inner.Op == ast.Neg {
		return inner.Operand // double negation
	}
	if c, ok := operand.(*ast.Number); ok {
		return ast.NewNumber(-c.Value)
	}
	return ast.NewUnary(op, operand)
}

func rewriteComponent(c *ast.Component, postCSE bool) ast.Expr {
	switch obj := rewrite(c.Object, postCSE).(type) {
	case *ast.Binary:
		// Component distributes over a binary object (spec §4.E).
		return rewrite(ast.NewBinary(obj.Op, ast.NewComponent(obj.Left, c.Field), ast.NewComponent(obj.Right, c.Field)), postCSE)
	case *ast.Unary:
		return rewrite(ast.NewUnary(obj.Op, ast.NewComponent(obj.Operand, c.Field)), postCSE)
	default:
		return ast.NewComponent(obj, c.Field)
	}
}

func rewriteCall(name string, args []ast.Expr) ast.Expr {
	if name == "sqrt" && len(args) == 1 {
		if c, ok := args[0].(*ast.Number); ok && c.Value >= 0 {
			return ast.NewNumber(math.Sqrt(c.Value))
		}
	}
	if name == "abs" && len(args) == 1 {
		if c, ok := args[0].(*ast.Number); ok {
			return ast.NewNumber(math.Abs(c.Value))
		}
	}
	return ast.NewCall(name, args...)
}

func rewriteBinary(b *ast.Binary, postCSE bool) ast.Expr {
	l := rewrite(b.Left, postCSE)
	r := rewrite(b.Right, postCSE)

	switch b.Op {
	case ast.Add:
		if ast.IsZero(l) {
			return r
		}
		if ast.IsZero(r) {
			return l
		}
		if lc, ok := l.(*ast.Number); ok {
			if rc, ok := r.(*ast.Number); ok {
				return ast.NewNumber(lc.Value + rc.Value)
			}
		}
		if postCSE {
			if ast.Equal(l, r) {
				return ast.NewBinary(ast.Mul, ast.NewNumber(2), l)
			}
			if isCommutedProduct(l, r) {
				return ast.NewBinary(ast.Mul, ast.NewNumber(2), l)
			}
		}
		return ast.NewBinary(ast.Add, l, r)

	case ast.Sub:
		if ast.IsZero(r) {
			return l
		}
		if ast.IsZero(l) {
			return rewriteUnary(ast.Neg, r)
		}
		if ast.Equal(l, r) {
			return ast.NewNumber(0)
		}
		if lc, ok := l.(*ast.Number); ok {
			if rc, ok := r.(*ast.Number); ok {
				return ast.NewNumber(lc.Value - rc.Value)
			}
		}
		return ast.NewBinary(ast.Sub, l, r)

	case ast.Mul:
		if ast.IsZero(l) || ast.IsZero(r) {
			return ast.NewNumber(0)
		}
		if ast.IsOne(l) {
			return r
		}
		if ast.IsOne(r) {
			return l
		}
		if lc, ok := l.(*ast.Number); ok {
			if rc, ok := r.(*ast.Number); ok {
				return ast.NewNumber(lc.Value * rc.Value)
			}
		}
		if postCSE {
			if combined, ok := combineConstantFactor(l, r); ok {
				return combined
			}
		}
		return ast.NewBinary(ast.Mul, l, r)

	case ast.Div:
		if ast.IsZero(l) && !ast.IsZero(r) {
			return ast.NewNumber(0)
		}
		if ast.IsOne(r) {
			return l
		}
		if ast.Equal(l, r) {
			return ast.NewNumber(1)
		}
		if lc, ok := l.(*ast.Number); ok {
			if rc, ok := r.(*ast.Number); ok && rc.Value != 0 {
				return ast.NewNumber(lc.Value / rc.Value)
			}
		}
		return ast.NewBinary(ast.Div, l, r)

	case ast.Pow:
		if ast.IsZero(r) {
			return ast.NewNumber(1)
		}
		if ast.IsOne(r) {
			return l
		}
		if ast.IsZero(l) {
			return ast.NewNumber(0)
		}
		if ast.IsOne(l) {
			return ast.NewNumber(1)
		}
		if lc, ok := l.(*ast.Number); ok {
			if rc, ok := r.(*ast.Number); ok {
				return ast.NewNumber(math.Pow(lc.Value, rc.Value))
			}
		}
		return ast.NewBinary(ast.Pow, l, r)

	default:
		return ast.NewBinary(b.Op, l, r)
	}
}

// isCommutedProduct reports whether l and r are both products of the same
// two operands in either order: a*b and b*a (spec §4.E).
func isCommutedProduct(l, r ast.Expr) bool {
	lb, ok := l.(*ast.Binary)
	if !ok || lb.Op != ast.Mul {
		return false
	}
	rb, ok := r.(*ast.Binary)
	if !ok || rb.Op != ast.Mul {
		return false
	}
	return ast.Equal(lb.Left, rb.Right) && ast.Equal(lb.Right, rb.Left)
}

// combineConstantFactor folds a bare numeric literal into a directly
// adjacent numeric factor one level down, e.g. c*(2*x) -> (2c)*x, the
// mechanical half of the c*(a*b+b*a) -> 2c*a*b rule (spec §4.E); the
// symmetric-product collapse itself happens in the Add case above.
func combineConstantFactor(l, r ast.Expr) (ast.Expr, bool) {
	if lc, ok := l.(*ast.Number); ok {
		if rb, ok := r.(*ast.Binary); ok && rb.Op == ast.Mul {
			if rc, ok := rb.Left.(*ast.Number); ok {
				return ast.NewBinary(ast.Mul, ast.NewNumber(lc.Value*rc.Value), rb.Right), true
			}
		}
	}
	if rc, ok := r.(*ast.Number); ok {
		if lb, ok := l.(*ast.Binary); ok && lb.Op == ast.Mul {
			if lc, ok := lb.Left.(*ast.Number); ok {
				return ast.NewBinary(ast.Mul, ast.NewNumber(lc.Value*rc.Value), lb.Right), true
			}
		}
	}
	return nil, false
}
