// SPDX-License-Identifier: Apache-2.0
package extract

import "github.com/mfagerlund/gradientscript/internal/egraph"

// computeCosts picks, for every live class, the lowest-cost node by
// relaxing cost[class] = min over node in class.Nodes of nodeCost(node)
// until a fixed point, following the cost table of spec §4.I: number and
// variable cost 1; unary and component cost 1 + child; +, -, * cost 1 + L
// + R; ^ costs 3 + L + R; / costs 5 + L + R; a call costs 3 + sum(args).
func computeCosts(g *egraph.EGraph) (map[egraph.ClassID]egraph.ENode, map[egraph.ClassID]float64) {
	const inf = 1e18
	costs := map[egraph.ClassID]float64{}
	best := map[egraph.ClassID]egraph.ENode{}
	classes := g.Classes()
	for _, c := range classes {
		costs[c] = inf
	}

	for iter := 0; iter < len(classes)+1; iter++ {
		changed := false
		for _, c := range classes {
			for _, n := range g.Class(c).Nodes {
				nc := nodeCost(n, costs)
				if nc < costs[c] {
					costs[c] = nc
					best[c] = n
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return best, costs
}

func nodeCost(n egraph.ENode, costs map[egraph.ClassID]float64) float64 {
	const inf = 1e18
	if n.IsLeaf() {
		return 1
	}
	sum := 0.0
	for _, child := range n.Children {
		c, ok := costs[child]
		if !ok {
			return inf
		}
		sum += c
	}
	if _, ok := n.AsUnary(); ok {
		return 1 + sum
	}
	if _, ok := n.AsComponent(); ok {
		return 1 + sum
	}
	if op, ok := n.AsBinary(); ok {
		switch op {
		case "^":
			return 3 + sum
		case "/":
			return 5 + sum
		default:
			return 1 + sum
		}
	}
	if _, ok := n.AsCall(); ok {
		return 3 + sum
	}
	return inf
}
