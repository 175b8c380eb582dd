// SPDX-License-Identifier: Apache-2.0
package pattern

import "github.com/mfagerlund/gradientscript/internal/egraph"

// Bindings maps pattern variable names to e-class ids, after Find.
type Bindings map[string]egraph.ClassID

func (b Bindings) clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Match enumerates every e-node in class whose shape matches pat,
// recursively matching children and unifying pattern-variable bindings: a
// re-encounter of the same variable name must bind to the same class
// after Find (spec §4.G).
func Match(g *egraph.EGraph, class egraph.ClassID, pat Pattern) []Bindings {
	return matchClass(g, g.Find(class), pat, Bindings{})
}

func matchClass(g *egraph.EGraph, class egraph.ClassID, pat Pattern, bindings Bindings) []Bindings {
	switch p := pat.(type) {
	case Var:
		if existing, ok := bindings[p.Name]; ok {
			if g.Find(existing) == g.Find(class) {
				return []Bindings{bindings}
			}
			return nil
		}
		next := bindings.clone()
		next[p.Name] = g.Find(class)
		return []Bindings{next}

	case Number:
		var out []Bindings
		for _, node := range g.Class(class).Nodes {
			if v, ok := node.AsNumber(); ok && v == p.Value {
				out = append(out, bindings.clone())
			}
		}
		return out

	case Atom:
		var out []Bindings
		for _, node := range g.Class(class).Nodes {
			if name, ok := node.AsVariable(); ok && name == p.Name {
				out = append(out, bindings.clone())
			}
		}
		return out

	case Compound:
		tag := headTag(p.Head, len(p.Children))
		var out []Bindings
		for _, node := range g.Class(class).Nodes {
			if node.Tag != tag || len(node.Children) != len(p.Children) {
				continue
			}
			out = append(out, matchChildren(g, node.Children, p.Children, bindings)...)
		}
		return out

	default:
		return nil
	}
}

func matchChildren(g *egraph.EGraph, classes []egraph.ClassID, pats []Pattern, bindings Bindings) []Bindings {
	if len(pats) == 0 {
		return []Bindings{bindings}
	}
	var out []Bindings
	for _, b := range matchClass(g, classes[0], pats[0], bindings) {
		out = append(out, matchChildren(g, classes[1:], pats[1:], b)...)
	}
	return out
}
