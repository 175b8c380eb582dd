// SPDX-License-Identifier: Apache-2.0

// Package egraph implements the E-graph of spec §4.F: a union-find over
// hash-consed e-nodes, with a rebuild operation that restores the
// congruence-closure invariant after a batch of merges. It is exclusively
// owned by one function's compilation (spec §5) — no two compilations may
// share an instance, and within one instance only a single writer may
// Merge/Rebuild at a time.
package egraph

import (
	"fmt"
	"strings"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

// ClassID identifies an e-class. The zero value never refers to a real
// class.
type ClassID int

// ENode is a structural constructor over e-class ids: the e-graph's
// equivalent of an ast.Expr node, but with children replaced by class ids
// and hash-consed so identical constructors share one node (spec §3).
type ENode struct {
	Tag      string // "num", "var:<name>", "bin:<op>", "un:<op>", "call:<name>", "comp:<field>"
	Value    float64
	Children []ClassID
}

func numNode(v float64) ENode                      { return ENode{Tag: "num", Value: v} }
func varNode(name string) ENode                     { return ENode{Tag: "var:" + name} }
func binNode(op ast.BinOp, l, r ClassID) ENode       { return ENode{Tag: "bin:" + string(op), Children: []ClassID{l, r}} }
func unNode(op ast.UnOp, x ClassID) ENode            { return ENode{Tag: "un:" + string(op), Children: []ClassID{x}} }
func callNode(name string, args []ClassID) ENode     { return ENode{Tag: "call:" + name, Children: args} }
func compNode(field string, obj ClassID) ENode       { return ENode{Tag: "comp:" + field, Children: []ClassID{obj}} }

func (n ENode) key() string {
	var b strings.Builder
	b.WriteString(n.Tag)
	if n.Tag == "num" {
		b.WriteByte('|')
		fmt.Fprintf(&b, "%v", normalizeZero(n.Value))
	}
	for _, c := range n.Children {
		b.WriteByte('|')
		fmt.Fprintf(&b, "%d", c)
	}
	return b.String()
}

func normalizeZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// IsLeaf reports whether the node has no children (spec §4.I cost table:
// "number, variable" are the leaf shapes).
func (n ENode) IsLeaf() bool { return len(n.Children) == 0 }

// EClass is a set of e-nodes known to be semantically equivalent, plus the
// parent e-nodes that reference it (spec §3).
type EClass struct {
	ID      ClassID
	Nodes   []ENode
	Parents []ParentRef
}

// ParentRef is one (node, class) pair where node references the owning
// EClass as a child.
type ParentRef struct {
	Node  ENode
	Class ClassID
}

// EGraph is the union-find + hash-cons table + parent index of spec §4.F.
type EGraph struct {
	uf       []ClassID // union-find parent array, indexed by ClassID-1
	classes  map[ClassID]*EClass
	hashcons map[string]ClassID
	worklist []ClassID
	next     ClassID
}

func New() *EGraph {
	return &EGraph{
		classes:  make(map[ClassID]*EClass),
		hashcons: make(map[string]ClassID),
	}
}

func (g *EGraph) newClass() ClassID {
	g.next++
	id := g.next
	g.uf = append(g.uf, id)
	g.classes[id] = &EClass{ID: id}
	return id
}

// Find resolves id to its canonical class, with path compression.
func (g *EGraph) Find(id ClassID) ClassID {
	root := id
	for g.uf[root-1] != root {
		root = g.uf[root-1]
	}
	for g.uf[id-1] != root {
		next := g.uf[id-1]
		g.uf[id-1] = root
		id = next
	}
	return root
}

func (g *EGraph) canonicalize(n ENode) ENode {
	if len(n.Children) == 0 {
		return n
	}
	children := make([]ClassID, len(n.Children))
	for i, c := range n.Children {
		children[i] = g.Find(c)
	}
	return ENode{Tag: n.Tag, Value: n.Value, Children: children}
}

// Lookup canonicalizes node and queries the hash-cons table without
// allocating a new class (spec §4.F).
func (g *EGraph) Lookup(n ENode) (ClassID, bool) {
	canon := g.canonicalize(n)
	id, ok := g.hashcons[canon.key()]
	if !ok {
		return 0, false
	}
	return g.Find(id), true
}

// Add hash-conses n: if its canonical shape already exists, the existing
// class is returned; otherwise a fresh singleton class is allocated and n
// is registered as a parent of each of its children (spec §4.F).
func (g *EGraph) Add(n ENode) ClassID {
	canon := g.canonicalize(n)
	key := canon.key()
	if id, ok := g.hashcons[key]; ok {
		return g.Find(id)
	}
	id := g.newClass()
	g.classes[id].Nodes = append(g.classes[id].Nodes, canon)
	g.hashcons[key] = id
	for _, child := range canon.Children {
		childClass := g.classes[g.Find(child)]
		childClass.Parents = append(childClass.Parents, ParentRef{Node: canon, Class: id})
	}
	return id
}

// AddExpr recursively hash-conses an ast.Expr tree and returns the root
// class id.
func (g *EGraph) AddExpr(e ast.Expr) ClassID {
	switch n := e.(type) {
	case *ast.Number:
		return g.Add(numNode(n.Value))
	case *ast.Variable:
		return g.Add(varNode(n.Name))
	case *ast.Binary:
		return g.Add(binNode(n.Op, g.AddExpr(n.Left), g.AddExpr(n.Right)))
	case *ast.Unary:
		return g.Add(unNode(n.Op, g.AddExpr(n.Operand)))
	case *ast.Call:
		args := make([]ClassID, len(n.Args))
		for i, a := range n.Args {
			args[i] = g.AddExpr(a)
		}
		return g.Add(callNode(n.Name, args))
	case *ast.Component:
		return g.Add(compNode(n.Field, g.AddExpr(n.Object)))
	default:
		panic(fmt.Sprintf("egraph: unsupported expr type %T", e))
	}
}

// Merge unions a and b and enqueues the resulting class for Rebuild; it
// does not restore congruence immediately (spec §4.F).
func (g *EGraph) Merge(a, b ClassID) ClassID {
	a, b = g.Find(a), g.Find(b)
	if a == b {
		return a
	}
	// Union by keeping the lower id as root so extraction/emission order
	// stays a deterministic function of insertion order (spec §5).
	root, other := a, b
	if b < a {
		root, other = b, a
	}
	g.uf[other-1] = root
	rootClass, otherClass := g.classes[root], g.classes[other]
	rootClass.Nodes = append(rootClass.Nodes, otherClass.Nodes...)
	rootClass.Parents = append(rootClass.Parents, otherClass.Parents...)
	delete(g.classes, other)
	g.worklist = append(g.worklist, root)
	return root
}

// Rebuild drains the worklist, re-canonicalizing the hash-cons entries of
// each touched class's parents until no more merges are discovered,
// restoring invariants (a)-(c) of spec §3 on return.
func (g *EGraph) Rebuild() {
	for len(g.worklist) > 0 {
		todo := g.worklist
		g.worklist = nil
		seen := map[ClassID]bool{}
		for _, id := range todo {
			root := g.Find(id)
			if seen[root] {
				continue
			}
			seen[root] = true
			g.repair(root)
		}
	}
}

func (g *EGraph) repair(id ClassID) {
	class, ok := g.classes[id]
	if !ok {
		return
	}
	parentMap := make(map[string]ClassID)
	newParents := make([]ParentRef, 0, len(class.Parents))
	for _, p := range class.Parents {
		canon := g.canonicalize(p.Node)
		delete(g.hashcons, p.Node.key())
		parentClass := g.Find(p.Class)
		if existing, ok := parentMap[canon.key()]; ok {
			if existing != parentClass {
				g.Merge(existing, parentClass)
			}
		} else {
			parentMap[canon.key()] = parentClass
			g.hashcons[canon.key()] = parentClass
		}
		newParents = append(newParents, ParentRef{Node: canon, Class: g.Find(p.Class)})
	}
	class.Parents = newParents

	dedupedNodes := make([]ENode, 0, len(class.Nodes))
	seenKeys := map[string]bool{}
	for _, n := range class.Nodes {
		canon := g.canonicalize(n)
		if seenKeys[canon.key()] {
			continue
		}
		seenKeys[canon.key()] = true
		dedupedNodes = append(dedupedNodes, canon)
		g.hashcons[canon.key()] = id
	}
	class.Nodes = dedupedNodes
}

// Class returns the (canonical-id-resolved) EClass for id.
func (g *EGraph) Class(id ClassID) *EClass {
	return g.classes[g.Find(id)]
}

// ClassCount and NodeCount support the saturation driver's fixed-point
// check (spec §4.H step 4).
func (g *EGraph) ClassCount() int { return len(g.classes) }

func (g *EGraph) NodeCount() int {
	n := 0
	for _, c := range g.classes {
		n += len(c.Nodes)
	}
	return n
}

// Classes returns every live class id in ascending order, for the pattern
// engine's scan-every-class matching pass (spec §4.G).
func (g *EGraph) Classes() []ClassID {
	ids := make([]ClassID, 0, len(g.classes))
	for id := ClassID(1); id <= g.next; id++ {
		if _, ok := g.classes[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Exported node constructors, used by internal/pattern's instantiation step
// and internal/saturate's rule right-hand sides, which build new e-nodes
// without importing ast.Expr trees.

func (g *EGraph) AddNumber(v float64) ClassID                { return g.Add(numNode(v)) }
func (g *EGraph) AddVariable(name string) ClassID             { return g.Add(varNode(name)) }
func (g *EGraph) AddBinary(op ast.BinOp, l, r ClassID) ClassID { return g.Add(binNode(op, l, r)) }
func (g *EGraph) AddUnary(op ast.UnOp, x ClassID) ClassID      { return g.Add(unNode(op, x)) }
func (g *EGraph) AddCall(name string, args []ClassID) ClassID { return g.Add(callNode(name, args)) }
func (g *EGraph) AddComponent(field string, obj ClassID) ClassID {
	return g.Add(compNode(field, obj))
}

// AsNumber, AsBinary, etc. decode an ENode's tag back into its shape,
// mirroring the ast.Expr variant it was built from. Used by
// internal/extract to turn a chosen e-node back into an ast.Expr.

func (n ENode) AsNumber() (float64, bool) {
	if n.Tag == "num" {
		return n.Value, true
	}
	return 0, false
}

func (n ENode) AsVariable() (string, bool) {
	if strings.HasPrefix(n.Tag, "var:") {
		return n.Tag[len("var:"):], true
	}
	return "", false
}

func (n ENode) AsBinary() (ast.BinOp, bool) {
	if strings.HasPrefix(n.Tag, "bin:") {
		return ast.BinOp(n.Tag[len("bin:"):]), true
	}
	return "", false
}

func (n ENode) AsUnary() (ast.UnOp, bool) {
	if strings.HasPrefix(n.Tag, "un:") {
		return ast.UnOp(n.Tag[len("un:"):]), true
	}
	return "", false
}

func (n ENode) AsCall() (string, bool) {
	if strings.HasPrefix(n.Tag, "call:") {
		return n.Tag[len("call:"):], true
	}
	return "", false
}

func (n ENode) AsComponent() (string, bool) {
	if strings.HasPrefix(n.Tag, "comp:") {
		return n.Tag[len("comp:"):], true
	}
	return "", false
}
