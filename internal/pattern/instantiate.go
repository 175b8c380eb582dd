// SPDX-License-Identifier: Apache-2.0
package pattern

import (
	"fmt"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/egraph"
)

// Instantiate builds, bottom-up, the e-nodes a rule's right-hand side
// describes, reusing bound classes for pattern variables, and returns the
// resulting (hash-consed) class id. Re-running Instantiate for the same
// bindings is idempotent: Add hash-conses, so it never duplicates work
// already present in the graph (spec §4.G).
func Instantiate(g *egraph.EGraph, pat Pattern, bindings Bindings) (egraph.ClassID, error) {
	switch p := pat.(type) {
	case Var:
		id, ok := bindings[p.Name]
		if !ok {
			return 0, fmt.Errorf("pattern: unbound variable ?%s", p.Name)
		}
		return id, nil

	case Number:
		return g.AddNumber(p.Value), nil

	case Atom:
		return g.AddVariable(p.Name), nil

	case Compound:
		return instantiateCompound(g, p, bindings)

	default:
		return 0, fmt.Errorf("pattern: unsupported pattern type %T", pat)
	}
}

func instantiateCompound(g *egraph.EGraph, p Compound, bindings Bindings) (egraph.ClassID, error) {
	children := make([]egraph.ClassID, len(p.Children))
	for i, c := range p.Children {
		id, err := Instantiate(g, c, bindings)
		if err != nil {
			return 0, err
		}
		children[i] = id
	}

	switch p.Head {
	case "neg":
		return g.AddUnary(ast.Neg, children[0]), nil
	case "pos":
		return g.AddUnary(ast.Pos, children[0]), nil
	case string(ast.Add), string(ast.Sub):
		if len(children) == 1 {
			return g.AddUnary(ast.UnOp(p.Head), children[0]), nil
		}
		return g.AddBinary(ast.BinOp(p.Head), children[0], children[1]), nil
	case string(ast.Mul), string(ast.Div), string(ast.Pow):
		return g.AddBinary(ast.BinOp(p.Head), children[0], children[1]), nil
	default:
		return g.AddCall(p.Head, children), nil
	}
}
