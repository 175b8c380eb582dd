// SPDX-License-Identifier: Apache-2.0

// Package diff implements the term-level symbolic Differentiator of spec
// §4.D: given an inlined expression and a differentiation-variable path
// ("name" or "name.component"), it produces the analytical derivative as a
// new, independent Expr tree. Vector built-ins are expanded through
// internal/builtins.Expand lazily, on every call encountered during
// differentiation (spec §4.B); internal/check also calls Expand when it
// evaluates such calls numerically.
package diff

import (
	"fmt"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/builtins"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

// Gradient differentiates inlined with respect to every path param
// requires (spec §4.D's top-level operation): one Expression for a scalar
// parameter, or a component-name -> Expression map for a structured one.
func Gradient(inlined ast.Expr, param *ast.Param) (ast.Gradient, error) {
	if param.Type.IsScalar() {
		d, err := Term(inlined, param.Name)
		if err != nil {
			return ast.Gradient{}, err
		}
		return ast.ScalarGradient(d), nil
	}
	components := make(map[string]ast.Expr, len(param.Type.Components))
	for _, c := range param.Type.Components {
		d, err := Term(inlined, param.Name+"."+c)
		if err != nil {
			return ast.Gradient{}, err
		}
		components[c] = d
	}
	return ast.StructGradient(components), nil
}

// Term computes d(e)/d(path), path being a full differentiation-variable
// path ("name" or "name.component").
func Term(e ast.Expr, path string) (ast.Expr, error) {
	switch n := e.(type) {
	case *ast.Number:
		return ast.NewNumber(0), nil

	case *ast.Variable:
		if n.Name == path {
			return ast.NewNumber(1), nil
		}
		return ast.NewNumber(0), nil

	case *ast.Component:
		return diffComponent(n, path)

	case *ast.Binary:
		return diffBinary(n, path)

	case *ast.Unary:
		d, err := Term(n.Operand, path)
		if err != nil {
			return nil, err
		}
		if n.Op == ast.Neg {
			return ast.NewUnary(ast.Neg, d), nil
		}
		return d, nil

	case *ast.Call:
		return diffCall(n, path)

	default:
		return nil, errors.New(errors.KindDifferentiation, errors.CodeNotImplemented,
			fmt.Sprintf("differentiation not implemented for node %T", e))
	}
}

// diffComponent handles comp(object, field). If object is itself a binary
// or unary expression, the component distributes over it first (spec
// §4.D: "For comp(binary(L,R), c), expand first to binary(comp(L,c),
// comp(R,c)) then differentiate"); a bare var.c is differentiated against
// the full path directly.
func diffComponent(c *ast.Component, path string) (ast.Expr, error) {
	switch obj := c.Object.(type) {
	case *ast.Variable:
		if obj.Name+"."+c.Field == path {
			return ast.NewNumber(1), nil
		}
		return ast.NewNumber(0), nil
	case *ast.Binary:
		expanded := ast.NewBinary(obj.Op, ast.NewComponent(obj.Left, c.Field), ast.NewComponent(obj.Right, c.Field))
		return Term(expanded, path)
	case *ast.Unary:
		expanded := ast.NewUnary(obj.Op, ast.NewComponent(obj.Operand, c.Field))
		return Term(expanded, path)
	default:
		return ast.NewNumber(0), nil
	}
}

func diffBinary(b *ast.Binary, path string) (ast.Expr, error) {
	switch b.Op {
	case ast.Add, ast.Sub:
		dl, err := Term(b.Left, path)
		if err != nil {
			return nil, err
		}
		dr, err := Term(b.Right, path)
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(b.Op, dl, dr), nil

	case ast.Mul:
		dl, err := Term(b.Left, path)
		if err != nil {
			return nil, err
		}
		dr, err := Term(b.Right, path)
		if err != nil {
			return nil, err
		}
		// (L' * R) + (L * R')
		return ast.NewBinary(ast.Add,
			ast.NewBinary(ast.Mul, dl, b.Right),
			ast.NewBinary(ast.Mul, b.Left, dr)), nil

	case ast.Div:
		dl, err := Term(b.Left, path)
		if err != nil {
			return nil, err
		}
		dr, err := Term(b.Right, path)
		if err != nil {
			return nil, err
		}
		// (L'*R - L*R') / R^2
		numerator := ast.NewBinary(ast.Sub,
			ast.NewBinary(ast.Mul, dl, b.Right),
			ast.NewBinary(ast.Mul, b.Left, dr))
		denom := ast.NewBinary(ast.Pow, b.Right, ast.NewNumber(2))
		return ast.NewBinary(ast.Div, numerator, denom), nil

	case ast.Pow:
		if DependsOn(b.Right, path) {
			return nil, errors.New(errors.KindDifferentiation, errors.CodeVariableExponent,
				"differentiating a^g where g depends on the differentiation variable is not supported").
				WithHelp("rewrite the exponent as a constant, or as exp(g*log(a)) and differentiate that form instead")
		}
		dl, err := Term(b.Left, path)
		if err != nil {
			return nil, err
		}
		// R * L^(R-1) * L'
		exponentMinusOne := ast.NewBinary(ast.Sub, b.Right, ast.NewNumber(1))
		return ast.NewBinary(ast.Mul,
			ast.NewBinary(ast.Mul, b.Right, ast.NewBinary(ast.Pow, b.Left, exponentMinusOne)),
			dl), nil

	default:
		return nil, errors.New(errors.KindDifferentiation, errors.CodeNotImplemented,
			fmt.Sprintf("unknown binary operator %q", b.Op))
	}
}

func diffCall(c *ast.Call, path string) (ast.Expr, error) {
	if builtins.Expandable[c.Name] {
		expanded, err := builtins.Expand(c)
		if err != nil {
			return nil, err
		}
		return Term(expanded, path)
	}
	if builtins.NotSupported[c.Name] {
		_, err := builtins.Expand(c) // produces the structured "not supported" error
		return nil, err
	}
	if builtins.NotDifferentiable[c.Name] {
		return nil, errors.New(errors.KindDifferentiation, errors.CodeNotImplemented,
			fmt.Sprintf("differentiating %q is not implemented", c.Name))
	}
	if builtins.SubGradient[c.Name] {
		// Sub-gradient by the first-argument convention (spec §4.D, §9):
		// mathematically incorrect at ties, but declared, preserved
		// behavior — see DESIGN.md.
		return Term(c.Args[0], path)
	}
	if c.Name == builtins.Atan2 {
		return diffAtan2(c, path)
	}
	if builtins.Smooth[c.Name] {
		return diffSmooth(c, path)
	}
	return nil, errors.New(errors.KindDifferentiation, errors.CodeUnsupportedPrimitive,
		fmt.Sprintf("no differentiation rule for %q", c.Name))
}

func diffAtan2(c *ast.Call, path string) (ast.Expr, error) {
	y, x := c.Args[0], c.Args[1]
	dy, err := Term(y, path)
	if err != nil {
		return nil, err
	}
	dx, err := Term(x, path)
	if err != nil {
		return nil, err
	}
	// (X*Y' - Y*X') / (X^2 + Y^2)
	numerator := ast.NewBinary(ast.Sub, ast.NewBinary(ast.Mul, x, dy), ast.NewBinary(ast.Mul, y, dx))
	denom := ast.NewBinary(ast.Add, ast.NewBinary(ast.Pow, x, ast.NewNumber(2)), ast.NewBinary(ast.Pow, y, ast.NewNumber(2)))
	return ast.NewBinary(ast.Div, numerator, denom), nil
}

func diffSmooth(c *ast.Call, path string) (ast.Expr, error) {
	u := c.Args[0]
	du, err := Term(u, path)
	if err != nil {
		return nil, err
	}
	switch c.Name {
	case "sin":
		return ast.NewBinary(ast.Mul, ast.NewCall("cos", u), du), nil
	case "cos":
		return ast.NewUnary(ast.Neg, ast.NewBinary(ast.Mul, ast.NewCall("sin", u), du)), nil
	case "tan":
		denom := ast.NewBinary(ast.Pow, ast.NewCall("cos", u), ast.NewNumber(2))
		return ast.NewBinary(ast.Div, du, denom), nil
	case "exp":
		return ast.NewBinary(ast.Mul, ast.NewCall("exp", u), du), nil
	case "log":
		return ast.NewBinary(ast.Div, du, u), nil
	case "sqrt":
		denom := ast.NewBinary(ast.Mul, ast.NewNumber(2), ast.NewCall("sqrt", u))
		return ast.NewBinary(ast.Div, du, denom), nil
	case "abs":
		// u' * u / |u|
		return ast.NewBinary(ast.Div, ast.NewBinary(ast.Mul, du, u), ast.NewCall("abs", u)), nil
	default:
		return nil, errors.New(errors.KindDifferentiation, errors.CodeUnsupportedPrimitive,
			fmt.Sprintf("no smooth-primitive rule for %q", c.Name))
	}
}

// DependsOn reports whether e references the differentiation-variable
// path, either as a bare variable ("x") or as a component access whose
// object.field matches ("p.x").
func DependsOn(e ast.Expr, path string) bool {
	found := false
	ast.Walk(e, func(n ast.Expr) {
		switch v := n.(type) {
		case *ast.Variable:
			if v.Name == path {
				found = true
			}
		case *ast.Component:
			if objVar, ok := v.Object.(*ast.Variable); ok && objVar.Name+"."+v.Field == path {
				found = true
			}
		}
	})
	return found
}
