// SPDX-License-Identifier: Apache-2.0

// Package guards implements the read-only epsilon-guard analyzer the
// --guards CLI flag depends on: a pass over an expression's division
// sites that reports, without rewriting anything, which denominators
// cannot be proven non-zero and are therefore candidates for an
// epsilon-guarded division at emission time.
package guards

import "github.com/mfagerlund/gradientscript/internal/ast"

// Analyze returns the set of denominators (keyed by their structural
// serialization) appearing in e's division nodes that are not provably
// non-zero constants.
func Analyze(e ast.Expr) map[string]bool {
	unsafe := map[string]bool{}
	ast.Walk(e, func(n ast.Expr) {
		b, ok := n.(*ast.Binary)
		if !ok || b.Op != ast.Div {
			return
		}
		if isProvablyNonZero(b.Right) {
			return
		}
		unsafe[ast.Structural(b.Right)] = true
	})
	return unsafe
}

// Merge folds several Analyze results into one, for callers checking
// more than one root (a function's forward value and its gradients).
func Merge(sets ...map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

func isProvablyNonZero(e ast.Expr) bool {
	n, ok := e.(*ast.Number)
	return ok && n.Value != 0
}
