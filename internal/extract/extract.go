// SPDX-License-Identifier: Apache-2.0

// Package extract implements the Extractor of spec §4.I: cost-minimizing
// bottom-up extraction from a saturated e-graph back into ast.Expr trees,
// introducing CSE temporaries for classes referenced more than once
// across every extracted root (spec §8's "CSE sharing across roots"), in
// topological order.
package extract

import (
	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/egraph"
)

// cseThreshold: a class becomes a CSE temporary only once its cost
// exceeds this (leaves are never worth naming) and it is referenced at
// least twice (spec §4.I).
const cseThreshold = 1

// Result is one extracted root: the final expression, referencing shared
// CSE temporaries by name.
type Result struct {
	Expr ast.Expr
}

// MultiResult is the outcome of extracting several roots (e.g. a
// function's forward value and every gradient component) from one
// e-graph at once, sharing one CSE temp list between them.
type MultiResult struct {
	Temps []*ast.Assignment
	Roots []Result
}

// Extract extracts a single root; a thin convenience wrapper over
// ExtractAll for callers that don't need cross-root sharing.
func Extract(g *egraph.EGraph, root egraph.ClassID) *Result {
	multi := ExtractAll(g, []egraph.ClassID{root})
	return &Result{Expr: multi.Roots[0].Expr}
}

// ExtractAll picks, for every reachable e-class, the node of lowest cost
// (spec §4.I's cost table), then rebuilds one ast.Expr per root, naming
// sub-expressions referenced at least twice across ALL roots combined as
// shared temporaries (spec §8 testable property 9).
func ExtractAll(g *egraph.EGraph, roots []egraph.ClassID) *MultiResult {
	best, costs := computeCosts(g)

	counts := map[egraph.ClassID]int{}
	visited := map[egraph.ClassID]bool{}
	for _, root := range roots {
		countRefs(g, root, best, counts, visited)
	}

	isTemp := map[egraph.ClassID]bool{}
	for class, n := range counts {
		if n >= 2 && costs[class] > cseThreshold {
			isTemp[class] = true
		}
	}

	order := topoOrderAll(g, roots, best, isTemp)

	names := map[egraph.ClassID]string{}
	for i, class := range order {
		names[class] = tempName(i)
	}

	ex := &extractor{g: g, best: best, names: names}
	temps := make([]*ast.Assignment, 0, len(order))
	for _, class := range order {
		rhs := ex.buildNode(class, best[class])
		temps = append(temps, &ast.Assignment{Name: names[class], Expr: rhs})
	}

	reciprocals := reciprocalTemps(temps)
	for i, t := range temps {
		temps[i].Expr = postProcess(t.Expr, reciprocals)
	}

	results := make([]Result, len(roots))
	for i, root := range roots {
		results[i] = Result{Expr: postProcess(ex.exprFor(root), reciprocals)}
	}

	return &MultiResult{Temps: temps, Roots: results}
}

// tempName follows spec §3/§4.I's `_tmp0, _tmp1, …` naming convention.
func tempName(i int) string {
	return "_tmp" + itoa(i)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

type extractor struct {
	g     *egraph.EGraph
	best  map[egraph.ClassID]egraph.ENode
	names map[egraph.ClassID]string
}

// exprFor returns a variable reference if class was named as a temp,
// otherwise the fully inlined expression for class.
func (ex *extractor) exprFor(class egraph.ClassID) ast.Expr {
	class = ex.g.Find(class)
	if name, ok := ex.names[class]; ok {
		return ast.NewVariable(name)
	}
	return ex.buildNode(class, ex.best[class])
}

func (ex *extractor) buildNode(class egraph.ClassID, node egraph.ENode) ast.Expr {
	if v, ok := node.AsNumber(); ok {
		return ast.NewNumber(v)
	}
	if name, ok := node.AsVariable(); ok {
		return ast.NewVariable(name)
	}
	if op, ok := node.AsUnary(); ok {
		return ast.NewUnary(op, ex.exprFor(node.Children[0]))
	}
	if op, ok := node.AsBinary(); ok {
		return ast.NewBinary(op, ex.exprFor(node.Children[0]), ex.exprFor(node.Children[1]))
	}
	if field, ok := node.AsComponent(); ok {
		return ast.NewComponent(ex.exprFor(node.Children[0]), field)
	}
	if name, ok := node.AsCall(); ok {
		args := make([]ast.Expr, len(node.Children))
		for i, c := range node.Children {
			args[i] = ex.exprFor(c)
		}
		return ast.NewCall(name, args...)
	}
	_ = class
	panic("extract: e-node with unrecognized tag " + node.Tag)
}

// countRefs walks the selected best-node DAG from root, incrementing a
// reference count on every visit but only recursing into a class's
// children the first time it is reached across the whole combined
// traversal (spec §4.I: "classes referenced >= 2 times").
func countRefs(g *egraph.EGraph, class egraph.ClassID, best map[egraph.ClassID]egraph.ENode, counts map[egraph.ClassID]int, visited map[egraph.ClassID]bool) {
	class = g.Find(class)
	counts[class]++
	if visited[class] {
		return
	}
	visited[class] = true
	for _, child := range best[class].Children {
		countRefs(g, child, best, counts, visited)
	}
}

// topoOrderAll returns the temp classes reachable from any root, each
// appearing once, in dependency order (spec §8's "emission order ... is a
// topological sort").
func topoOrderAll(g *egraph.EGraph, roots []egraph.ClassID, best map[egraph.ClassID]egraph.ENode, isTemp map[egraph.ClassID]bool) []egraph.ClassID {
	var order []egraph.ClassID
	seen := map[egraph.ClassID]bool{}
	var visit func(class egraph.ClassID)
	visit = func(class egraph.ClassID) {
		class = g.Find(class)
		if seen[class] {
			return
		}
		seen[class] = true
		for _, child := range best[class].Children {
			visit(child)
		}
		if isTemp[class] {
			order = append(order, class)
		}
	}
	for _, root := range roots {
		visit(root)
	}
	return order
}
