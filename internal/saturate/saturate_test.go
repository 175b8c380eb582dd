// SPDX-License-Identifier: Apache-2.0
package saturate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/egraph"
)

func TestRunConvergesOnAddZero(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	zero := g.AddNumber(0)
	root := g.AddBinary(ast.Add, x, zero)

	result := Run(g, AllRules)
	assert.True(t, result.Converged)
	assert.Equal(t, g.Find(x), g.Find(root))
}

func TestRunMergesCommutativeForms(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	y := g.AddVariable("y")
	xy := g.AddBinary(ast.Add, x, y)
	yx := g.AddBinary(ast.Add, y, x)
	require := assert.New(t)
	require.NotEqual(g.Find(xy), g.Find(yx))

	Run(g, CoreRules)
	require.Equal(g.Find(xy), g.Find(yx))
}

func TestRunTerminatesWithinMaxIterations(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	g.AddBinary(ast.Mul, x, g.AddNumber(1))

	result := Run(g, AllRules)
	assert.LessOrEqual(t, result.Iterations, MaxIterations)
}

func TestAllRulesIsUnionOfLayers(t *testing.T) {
	assert.Equal(t, len(CoreRules)+len(AlgebraicRules)+len(FunctionalRules), len(AllRules))
}
