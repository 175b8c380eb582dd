// SPDX-License-Identifier: Apache-2.0
package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/egraph"
)

func TestMatchBindsVariable(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	one := g.AddNumber(1)
	sum := g.AddBinary(ast.Add, x, one)

	pat, err := Parse("(+ ?a 1)")
	require.NoError(t, err)

	matches := Match(g, sum, pat)
	require.Len(t, matches, 1)
	assert.Equal(t, g.Find(x), matches[0]["a"])
}

func TestMatchRepeatedVariableMustAgree(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	y := g.AddVariable("y")
	same := g.AddBinary(ast.Sub, x, x)
	diff := g.AddBinary(ast.Sub, x, y)

	pat, err := Parse("(- ?a ?a)")
	require.NoError(t, err)

	assert.Len(t, Match(g, same, pat), 1)
	assert.Empty(t, Match(g, diff, pat))
}

func TestMatchNoMatchOnShapeMismatch(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	one := g.AddNumber(1)
	sum := g.AddBinary(ast.Add, x, one)

	pat, err := Parse("(* ?a 1)")
	require.NoError(t, err)
	assert.Empty(t, Match(g, sum, pat))
}

func TestInstantiateReusesHashCons(t *testing.T) {
	g := egraph.New()
	x := g.AddVariable("x")
	bindings := Bindings{"a": x}

	pat, err := Parse("(* ?a ?a)")
	require.NoError(t, err)

	id1, err := Instantiate(g, pat, bindings)
	require.NoError(t, err)
	id2, err := Instantiate(g, pat, bindings)
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestInstantiateUnboundVariableErrors(t *testing.T) {
	g := egraph.New()
	pat, err := Parse("?missing")
	require.NoError(t, err)
	_, err = Instantiate(g, pat, Bindings{})
	assert.Error(t, err)
}
