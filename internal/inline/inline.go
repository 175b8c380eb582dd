// SPDX-License-Identifier: Apache-2.0

// Package inline implements the Inliner of spec §4.C: it substitutes every
// body-local assignment into the return expression, yielding a single
// inlined term per function. Sharing between locals is not preserved
// (spec §4.C: "The core does not attempt to preserve sharing across
// assignments — sharing is rediscovered by the e-graph").
package inline

import "github.com/mfagerlund/gradientscript/internal/ast"

// Inline substitutes fn's locals into its return expression in the order
// the assignments appear: later assignments may depend on earlier ones but
// never the reverse (spec §4.C).
func Inline(fn *ast.Function) ast.Expr {
	return InlineExpr(fn.Return, fn.Locals)
}

// InlineExpr substitutes locals into an arbitrary expression; Inline uses
// it for the function's return value.
func InlineExpr(e ast.Expr, locals []*ast.Assignment) ast.Expr {
	resolved := make(map[string]ast.Expr, len(locals))
	order := make([]string, 0, len(locals))
	for _, local := range locals {
		rhs := local.Expr
		for _, name := range order {
			rhs = ast.Subst(rhs, name, resolved[name])
		}
		resolved[local.Name] = rhs
		order = append(order, local.Name)
	}
	out := e
	for _, name := range order {
		out = ast.Subst(out, name, resolved[name])
	}
	return out
}
