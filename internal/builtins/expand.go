// SPDX-License-Identifier: Apache-2.0
package builtins

import (
	"fmt"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

func comp(obj ast.Expr, field string) ast.Expr { return ast.NewComponent(obj, field) }
func mul(l, r ast.Expr) ast.Expr               { return ast.NewBinary(ast.Mul, l, r) }
func sub(l, r ast.Expr) ast.Expr               { return ast.NewBinary(ast.Sub, l, r) }
func add(l, r ast.Expr) ast.Expr               { return ast.NewBinary(ast.Add, l, r) }
func sq(e ast.Expr) ast.Expr                   { return ast.NewBinary(ast.Pow, e, ast.NewNumber(2)) }
func sqrtOf(e ast.Expr) ast.Expr               { return ast.NewCall("sqrt", e) }

// Expand rewrites an expandable built-in call to the obvious scalar
// formula (spec §4.B). It is the only place those six call names are
// known to this core; after Expand runs, none of them survive into
// differentiation. A call to a name in NotSupported fails with a
// structured error because its result is not a scalar, or it needs
// division-by-zero handling this core does not provide.
func Expand(call *ast.Call) (ast.Expr, error) {
	if NotSupported[call.Name] {
		return nil, errors.New(errors.KindDifferentiation, errors.CodeUnsupportedPrimitive,
			fmt.Sprintf("%q is not supported: its result is not a scalar, or requires division-by-zero handling outside this core", call.Name))
	}
	if !Expandable[call.Name] {
		return nil, errors.New(errors.KindDifferentiation, errors.CodeUnsupportedPrimitive,
			fmt.Sprintf("%q is not an expandable built-in", call.Name))
	}

	switch call.Name {
	case "dot2d":
		u, v := call.Args[0], call.Args[1]
		return add(mul(comp(u, "x"), comp(v, "x")), mul(comp(u, "y"), comp(v, "y"))), nil
	case "cross2d":
		u, v := call.Args[0], call.Args[1]
		return sub(mul(comp(u, "x"), comp(v, "y")), mul(comp(u, "y"), comp(v, "x"))), nil
	case "magnitude2d":
		v := call.Args[0]
		return sqrtOf(add(sq(comp(v, "x")), sq(comp(v, "y")))), nil
	case "distance2d":
		p, q := call.Args[0], call.Args[1]
		return sqrtOf(add(sq(sub(comp(q, "x"), comp(p, "x"))), sq(sub(comp(q, "y"), comp(p, "y"))))), nil
	case "dot3d":
		u, v := call.Args[0], call.Args[1]
		return add(add(mul(comp(u, "x"), comp(v, "x")), mul(comp(u, "y"), comp(v, "y"))), mul(comp(u, "z"), comp(v, "z"))), nil
	case "magnitude3d":
		v := call.Args[0]
		return sqrtOf(add(add(sq(comp(v, "x")), sq(comp(v, "y"))), sq(comp(v, "z")))), nil
	default:
		return nil, errors.New(errors.KindDifferentiation, errors.CodeUnsupportedPrimitive,
			fmt.Sprintf("%q has no expansion rule", call.Name))
	}
}
