// SPDX-License-Identifier: Apache-2.0
package check

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestEvalArithmetic(t *testing.T) {
	env := NewEnv()
	env.Scalars["x"] = 3
	e := ast.NewBinary(ast.Add, ast.NewVariable("x"), ast.NewNumber(2))
	v, err := Eval(e, env)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestEvalComponentAccess(t *testing.T) {
	env := NewEnv()
	env.Structs["u"] = map[string]float64{"x": 4, "y": 5}
	e := ast.NewComponent(ast.NewVariable("u"), "y")
	v, err := Eval(e, env)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestEvalMissingComponentErrors(t *testing.T) {
	env := NewEnv()
	env.Structs["u"] = map[string]float64{"x": 1}
	e := ast.NewComponent(ast.NewVariable("u"), "z")
	_, err := Eval(e, env)
	assert.Error(t, err)
}

func TestEvalCallsMathPrimitives(t *testing.T) {
	env := NewEnv()
	env.Scalars["x"] = 0
	e := ast.NewCall("cos", ast.NewVariable("x"))
	v, err := Eval(e, env)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
}

func TestEvalExpandableBuiltin(t *testing.T) {
	env := NewEnv()
	env.Structs["a"] = map[string]float64{"x": 1, "y": 0}
	env.Structs["b"] = map[string]float64{"x": 0, "y": 1}
	e := ast.NewCall("dot2d", ast.NewVariable("a"), ast.NewVariable("b"))
	v, err := Eval(e, env)
	require.NoError(t, err)
	assert.InDelta(t, 0, v, 1e-12)
}

func TestEvalUnknownPrimitiveErrors(t *testing.T) {
	env := NewEnv()
	e := ast.NewCall("notaprimitive")
	_, err := Eval(e, env)
	assert.Error(t, err)
}

func TestCentralDifferenceMatchesAnalyticSquare(t *testing.T) {
	env := NewEnv()
	env.Scalars["x"] = 2
	e := ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x"))
	d, err := CentralDifference(e, env, "x", DefaultStep)
	require.NoError(t, err)
	assert.InDelta(t, 4, d, 1e-4)
	// env must be restored to its original value after perturbation.
	assert.Equal(t, 2.0, env.Scalars["x"])
}

func TestWithinToleranceAbsoluteAndRelative(t *testing.T) {
	tol := Tolerance{Absolute: 1e-4, Relative: 1e-4}
	assert.True(t, withinTolerance(1.0, 1.00001, tol))
	assert.True(t, withinTolerance(1000.0, 1000.05, tol))
	assert.False(t, withinTolerance(1.0, 2.0, tol))
}

func TestSamplePointDrawsNonZeroScaledValues(t *testing.T) {
	fn := &ast.Function{
		Name: "f",
		Params: []*ast.Param{
			{Name: "x", Type: ast.ScalarType()},
			{Name: "u", Type: ast.StructType("x", "y")},
		},
	}
	rng := rand.New(rand.NewSource(1))
	env := samplePoint(fn, 10, rng)
	assert.NotZero(t, env.Scalars["x"])
	assert.True(t, math.Abs(env.Scalars["x"]) >= 5 && math.Abs(env.Scalars["x"]) <= 15)
	assert.Len(t, env.Structs["u"], 2)
}

func TestVerifyDetectsMismatch(t *testing.T) {
	param := &ast.Param{Name: "x", RequiresGrad: true, Type: ast.ScalarType()}
	fn := &ast.Function{Name: "f", Params: []*ast.Param{param}}
	inlined := ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x")) // x^2, correct grad is 2x

	correct := map[string]ast.Gradient{
		"x": ast.ScalarGradient(ast.NewBinary(ast.Mul, ast.NewNumber(2), ast.NewVariable("x"))),
	}
	rng := rand.New(rand.NewSource(42))
	mismatches, err := Verify(fn, inlined, correct, rng, DefaultTolerance)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	wrong := map[string]ast.Gradient{
		"x": ast.ScalarGradient(ast.NewNumber(0)),
	}
	rng2 := rand.New(rand.NewSource(42))
	mismatches, err = Verify(fn, inlined, wrong, rng2, DefaultTolerance)
	require.NoError(t, err)
	assert.NotEmpty(t, mismatches)
}
