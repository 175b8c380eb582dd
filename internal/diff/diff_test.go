// SPDX-License-Identifier: Apache-2.0
package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/check"
)

func evalAt(t *testing.T, e ast.Expr, x float64) float64 {
	t.Helper()
	env := check.NewEnv()
	env.Scalars["x"] = x
	v, err := check.Eval(e, env)
	require.NoError(t, err)
	return v
}

func TestTermPowerRule(t *testing.T) {
	// d/dx (x^3) = 3 x^2
	e := ast.NewBinary(ast.Pow, ast.NewVariable("x"), ast.NewNumber(3))
	d, err := Term(e, "x")
	require.NoError(t, err)
	assert.InDelta(t, 3*2*2, evalAt(t, d, 2), 1e-9)
}

func TestTermProductRule(t *testing.T) {
	// d/dx (x * x) = 2x
	e := ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x"))
	d, err := Term(e, "x")
	require.NoError(t, err)
	assert.InDelta(t, 6, evalAt(t, d, 3), 1e-9)
}

func TestTermQuotientRule(t *testing.T) {
	// d/dx (1/x) = -1/x^2
	e := ast.NewBinary(ast.Div, ast.NewNumber(1), ast.NewVariable("x"))
	d, err := Term(e, "x")
	require.NoError(t, err)
	assert.InDelta(t, -1.0/4.0, evalAt(t, d, 2), 1e-9)
}

func TestTermVariableExponentUnsupported(t *testing.T) {
	e := ast.NewBinary(ast.Pow, ast.NewNumber(2), ast.NewVariable("x"))
	_, err := Term(e, "x")
	assert.Error(t, err)
}

func TestTermSinChainRule(t *testing.T) {
	// d/dx sin(2x) = 2 cos(2x)
	e := ast.NewCall("sin", ast.NewBinary(ast.Mul, ast.NewNumber(2), ast.NewVariable("x")))
	d, err := Term(e, "x")
	require.NoError(t, err)
	assert.InDelta(t, 2*1, evalAt(t, d, 0), 1e-9) // cos(0)=1
}

func TestTermSubGradientFirstArgument(t *testing.T) {
	e := ast.NewCall("max", ast.NewVariable("x"), ast.NewNumber(0))
	d, err := Term(e, "x")
	require.NoError(t, err)
	assert.InDelta(t, 1, evalAt(t, d, 5), 1e-9)
}

func TestTermNotDifferentiablePrimitives(t *testing.T) {
	for _, name := range []string{"pow", "asin", "acos"} {
		e := ast.NewCall(name, ast.NewVariable("x"))
		_, err := Term(e, "x")
		assert.Error(t, err, name)
	}
}

func TestTermAtanHasNoRule(t *testing.T) {
	e := ast.NewCall("atan", ast.NewVariable("x"))
	_, err := Term(e, "x")
	assert.Error(t, err)
}

func TestDependsOnComponentPath(t *testing.T) {
	e := ast.NewComponent(ast.NewVariable("u"), "x")
	assert.True(t, DependsOn(e, "u.x"))
	assert.False(t, DependsOn(e, "u.y"))
}

func TestGradientScalarParam(t *testing.T) {
	param := &ast.Param{Name: "x", RequiresGrad: true, Type: ast.ScalarType()}
	e := ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x"))
	g, err := Gradient(e, param)
	require.NoError(t, err)
	assert.True(t, g.IsScalar())
}

func TestGradientStructParam(t *testing.T) {
	param := &ast.Param{Name: "u", RequiresGrad: true, Type: ast.StructType("x", "y")}
	e := ast.NewBinary(ast.Add, ast.NewComponent(ast.NewVariable("u"), "x"), ast.NewComponent(ast.NewVariable("u"), "y"))
	g, err := Gradient(e, param)
	require.NoError(t, err)
	assert.False(t, g.IsScalar())
	assert.ElementsMatch(t, []string{"u.x", "u.y"}, g.Paths("u"))
}
