// SPDX-License-Identifier: Apache-2.0
package pattern

import (
	"strconv"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

// Pattern is one node of a parsed rewrite pattern.
type Pattern interface{ isPattern() }

// Number matches an e-node with this exact numeric value.
type Number struct{ Value float64 }

// Var is a pattern variable (`?name`): matches any class, and must bind
// to the same class on every re-encounter within one match (spec §4.G).
type Var struct{ Name string }

// Atom matches a bare Variable e-node by name.
type Atom struct{ Name string }

// Compound matches `(op child…)`: op is one of the e-node tags ("+", "-",
// "*", "/", "^", "neg", "pos") or a built-in function name. Component
// access nodes cannot be written as a pattern head.
type Compound struct {
	Head     string
	Children []Pattern
}

func (Number) isPattern()   {}
func (Var) isPattern()      {}
func (Atom) isPattern()     {}
func (Compound) isPattern() {}

func build(s *sexpr) Pattern {
	switch {
	case s.Num != nil:
		v, _ := strconv.ParseFloat(*s.Num, 64)
		return Number{Value: v}
	case s.Var != nil:
		return Var{Name: (*s.Var)[1:]} // drop leading '?'
	case s.Atom != nil:
		return Atom{Name: *s.Atom}
	case s.Compound != nil:
		children := make([]Pattern, len(s.Compound.Children))
		for i, c := range s.Compound.Children {
			children[i] = build(c)
		}
		return Compound{Head: s.Compound.Head, Children: children}
	default:
		panic("pattern: empty s-expression")
	}
}

// headTag maps a pattern head to the e-node tag prefix it matches (spec
// §4.G: "op is one of the e-node tags or a function name").
func headTag(head string, arity int) string {
	switch head {
	case "neg":
		return "un:-"
	case "pos":
		return "un:+"
	case string(ast.Add), string(ast.Sub):
		if arity == 1 {
			return "un:" + head
		}
		return "bin:" + head
	case string(ast.Mul), string(ast.Div), string(ast.Pow):
		return "bin:" + head
	default:
		return "call:" + head
	}
}
