// SPDX-License-Identifier: Apache-2.0
package egraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestAddHashConsesIdenticalShapes(t *testing.T) {
	g := New()
	a := g.AddExpr(ast.NewBinary(ast.Add, ast.NewVariable("x"), ast.NewNumber(1)))
	b := g.AddExpr(ast.NewBinary(ast.Add, ast.NewVariable("x"), ast.NewNumber(1)))
	assert.Equal(t, a, b)
	assert.Equal(t, 3, g.ClassCount()) // x, 1, x+1
}

func TestMergeUnionsClasses(t *testing.T) {
	g := New()
	a := g.AddVariable("a")
	b := g.AddVariable("b")
	require.NotEqual(t, a, b)
	g.Merge(a, b)
	g.Rebuild()
	assert.Equal(t, g.Find(a), g.Find(b))
}

func TestRebuildRestoresCongruence(t *testing.T) {
	g := New()
	x := g.AddVariable("x")
	y := g.AddVariable("y")
	fx := g.AddCall("sin", []ClassID{x})
	fy := g.AddCall("sin", []ClassID{y})
	assert.NotEqual(t, fx, fy)

	g.Merge(x, y)
	g.Rebuild()

	// Once x == y, sin(x) and sin(y) must collapse into the same class
	// (congruence closure).
	assert.Equal(t, g.Find(fx), g.Find(fy))
}

func TestLowerIDWinsMerge(t *testing.T) {
	g := New()
	a := g.AddVariable("a")
	b := g.AddVariable("b")
	root := g.Merge(b, a)
	assert.Equal(t, g.Find(a), root)
	assert.True(t, root <= a && root <= b)
}

func TestDecodersRoundTrip(t *testing.T) {
	g := New()
	num := g.AddNumber(4)
	n, ok := g.Class(num).Nodes[0].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 4.0, n)

	v := g.AddVariable("x")
	name, ok := g.Class(v).Nodes[0].AsVariable()
	require.True(t, ok)
	assert.Equal(t, "x", name)

	bin := g.AddBinary(ast.Mul, num, v)
	op, ok := g.Class(bin).Nodes[0].AsBinary()
	require.True(t, ok)
	assert.Equal(t, ast.Mul, op)
}

func TestIsLeaf(t *testing.T) {
	g := New()
	num := g.AddNumber(1)
	assert.True(t, g.Class(num).Nodes[0].IsLeaf())

	bin := g.AddBinary(ast.Add, num, num)
	assert.False(t, g.Class(bin).Nodes[0].IsLeaf())
}
