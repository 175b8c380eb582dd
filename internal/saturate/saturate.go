// SPDX-License-Identifier: Apache-2.0
package saturate

import (
	"github.com/mfagerlund/gradientscript/internal/egraph"
	"github.com/mfagerlund/gradientscript/internal/pattern"
)

// MaxIterations bounds the saturation loop when the e-graph never reaches
// a fixed point within the rule set (spec §4.H step 4).
const MaxIterations = 30

// Result reports how the saturation loop terminated, for diagnostics and
// the "Testable Properties" determinism checks of spec §8.
type Result struct {
	Iterations int
	Converged  bool
	ClassCount int
	NodeCount  int
}

// Run applies rules to g until no rule discovers a new merge (a fixed
// point) or MaxIterations is reached, whichever comes first. The e-graph
// is mutated in place.
func Run(g *egraph.EGraph, rules []Rule) Result {
	for iter := 1; iter <= MaxIterations; iter++ {
		classesBefore, nodesBefore := g.ClassCount(), g.NodeCount()

		var merges [][2]egraph.ClassID
		for _, class := range g.Classes() {
			for _, rule := range rules {
				for _, bindings := range pattern.Match(g, class, rule.LHS) {
					newID, err := pattern.Instantiate(g, rule.RHS, bindings)
					if err != nil {
						continue // unbound RHS variable: rule doesn't apply here
					}
					merges = append(merges, [2]egraph.ClassID{class, newID})
				}
			}
		}

		for _, m := range merges {
			g.Merge(m[0], m[1])
		}
		g.Rebuild()

		if g.ClassCount() == classesBefore && g.NodeCount() == nodesBefore {
			return Result{Iterations: iter, Converged: true, ClassCount: g.ClassCount(), NodeCount: g.NodeCount()}
		}
	}
	return Result{Iterations: MaxIterations, Converged: false, ClassCount: g.ClassCount(), NodeCount: g.NodeCount()}
}
