// SPDX-License-Identifier: Apache-2.0
package emit

import (
	"fmt"
	"strings"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/guards"
)

// CompiledFunction is everything the emitter needs for one source
// function: its forward value and, for every gradient-required
// parameter, either a scalar derivative or a component map, all sharing
// one pool of CSE temporaries (spec §8's cross-root sharing property).
type CompiledFunction struct {
	Name          string
	Params        []*ast.Param
	Temps         []*ast.Assignment
	ForwardExpr   ast.Expr
	GradientOrder []*ast.Param     // fn.GradientParams(), in declaration order
	Gradients     map[string]ast.Gradient // keyed by parameter name
}

// Emit renders fn's forward function and gradient function as source
// text in the requested dialect (spec §4.K).
func Emit(fn *CompiledFunction, opts Options) (string, error) {
	var allGradientExprs []ast.Expr
	for _, param := range fn.GradientOrder {
		grad := fn.Gradients[param.Name]
		if grad.IsScalar() {
			allGradientExprs = append(allGradientExprs, grad.Scalar)
		} else {
			for _, c := range ast.SortedKeys(grad.Components) {
				allGradientExprs = append(allGradientExprs, grad.Components[c])
			}
		}
	}

	var guardedSites map[string]bool
	if opts.Guards {
		sets := []map[string]bool{guards.Analyze(fn.ForwardExpr)}
		for _, t := range fn.Temps {
			sets = append(sets, guards.Analyze(t.Expr))
		}
		for _, e := range allGradientExprs {
			sets = append(sets, guards.Analyze(e))
		}
		guardedSites = guards.Merge(sets...)
	}
	p := &printer{opts: opts, guardedSites: guardedSites}

	forwardTemps := reachableTemps(fn.ForwardExpr, fn.Temps)
	gradientTemps := reachableTemps(combine(allGradientExprs), fn.Temps)

	var b strings.Builder

	if !opts.NoComments {
		fmt.Fprintf(&b, "%s forward value of %s\n", opts.commentPrefix(), fn.Name)
	}
	forwardBody, err := p.functionBody(forwardTemps, fn.ForwardExpr)
	if err != nil {
		return "", err
	}
	forwardSig := p.signature(fn.Name, fn.Params, false)
	b.WriteString(renderFunction(opts, forwardSig, forwardBody))
	b.WriteString("\n")

	if !opts.NoComments {
		fmt.Fprintf(&b, "%s gradient of %s with respect to %s\n", opts.commentPrefix(), fn.Name, gradientParamNames(fn.GradientOrder))
	}
	gradientBody, err := p.gradientBody(gradientTemps, fn)
	if err != nil {
		return "", err
	}
	gradientSig := p.signature(gradientFuncName(fn.Name, opts.Dialect), fn.Params, true)
	b.WriteString(renderFunction(opts, gradientSig, gradientBody))

	return b.String(), nil
}

func gradientParamNames(params []*ast.Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

func gradientFuncName(name string, d Dialect) string {
	if d == Python {
		return toSnakeCase(name) + "_gradient"
	}
	return name + "Gradient"
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' && i > 0 {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// combine packs several roots into one synthetic Call node purely so
// reachableTemps can walk them with a single traversal.
func combine(exprs []ast.Expr) ast.Expr {
	return ast.NewCall("__roots", exprs...)
}

// reachableTemps returns the subset of temps (preserving relative order)
// that root transitively depends on, including temp-to-temp dependencies.
func reachableTemps(root ast.Expr, temps []*ast.Assignment) []*ast.Assignment {
	byName := make(map[string]*ast.Assignment, len(temps))
	for _, t := range temps {
		byName[t.Name] = t
	}
	needed := map[string]bool{}
	var mark func(e ast.Expr)
	mark = func(e ast.Expr) {
		ast.Walk(e, func(n ast.Expr) {
			v, ok := n.(*ast.Variable)
			if !ok {
				return
			}
			t, ok := byName[v.Name]
			if !ok || needed[v.Name] {
				return
			}
			needed[v.Name] = true
			mark(t.Expr)
		})
	}
	mark(root)

	var out []*ast.Assignment
	for _, t := range temps {
		if needed[t.Name] {
			out = append(out, t)
		}
	}
	return out
}
