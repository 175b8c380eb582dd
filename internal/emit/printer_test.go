// SPDX-License-Identifier: Apache-2.0
package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestRenderAddNoParens(t *testing.T) {
	e := ast.NewBinary(ast.Add, ast.NewVariable("x"), ast.NewVariable("y"))
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "x + y", out)
}

func TestRenderMulOfAddParenthesizes(t *testing.T) {
	add := ast.NewBinary(ast.Add, ast.NewVariable("x"), ast.NewVariable("y"))
	e := ast.NewBinary(ast.Mul, add, ast.NewVariable("z"))
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "(x + y) * z", out)
}

func TestRenderSubRightAssociativityAlwaysParenthesizes(t *testing.T) {
	inner := ast.NewBinary(ast.Add, ast.NewVariable("y"), ast.NewVariable("z"))
	e := ast.NewBinary(ast.Sub, ast.NewVariable("x"), inner)
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "x - (y + z)", out)
}

func TestRenderPowIntegerTwoInlinesToMultiply(t *testing.T) {
	e := ast.NewBinary(ast.Pow, ast.NewVariable("x"), ast.NewNumber(2))
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "x * x", out)
}

func TestRenderPowIntegerZeroInlinesToOne(t *testing.T) {
	e := ast.NewBinary(ast.Pow, ast.NewVariable("x"), ast.NewNumber(0))
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "1", out)
}

func TestRenderPowNonIntegerUsesFunctionCall(t *testing.T) {
	e := ast.NewBinary(ast.Pow, ast.NewVariable("x"), ast.NewNumber(2.5))
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "Math.pow(x, 2.5)", out)
}

func TestRenderPowDialectSpecificMathName(t *testing.T) {
	e := ast.NewBinary(ast.Pow, ast.NewVariable("x"), ast.NewNumber(2.5))
	out, err := Render(e, Options{Dialect: Python})
	require.NoError(t, err)
	assert.Equal(t, "pow(x, 2.5)", out)
}

func TestRenderClampAsMinMax(t *testing.T) {
	e := ast.NewCall("clamp", ast.NewVariable("x"), ast.NewNumber(0), ast.NewNumber(1))
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "Math.min(Math.max(x, 0), 1)", out)
}

func TestRenderClampWrongArityErrors(t *testing.T) {
	e := ast.NewCall("clamp", ast.NewVariable("x"))
	_, err := Render(e, Options{Dialect: TypeScript})
	assert.Error(t, err)
}

func TestRenderCallMathNamePerDialect(t *testing.T) {
	e := ast.NewCall("sin", ast.NewVariable("x"))
	out, err := Render(e, Options{Dialect: CSharp})
	require.NoError(t, err)
	assert.Equal(t, "Math.Sin(x)", out)
}

func TestRenderComponentAccess(t *testing.T) {
	e := ast.NewComponent(ast.NewVariable("u"), "x")
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "u.x", out)
}

func TestRenderUnaryNegationWrapsLowerPrecedence(t *testing.T) {
	inner := ast.NewBinary(ast.Add, ast.NewVariable("x"), ast.NewVariable("y"))
	e := ast.NewUnary(ast.Neg, inner)
	out, err := Render(e, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Equal(t, "-(x + y)", out)
}

func TestGuardDenominatorTernaryForTypeScript(t *testing.T) {
	p := &printer{opts: Options{Dialect: TypeScript, Epsilon: 1e-10}}
	out := p.guardDenominator("x")
	assert.Equal(t, "(x >= 0 ? x + 1e-10 : x - 1e-10)", out)
}

func TestGuardDenominatorPythonConditionalExpression(t *testing.T) {
	p := &printer{opts: Options{Dialect: Python, Epsilon: 1e-10}}
	out := p.guardDenominator("x")
	assert.Equal(t, "(x + 1e-10 if x >= 0 else x - 1e-10)", out)
}

func TestIntegerExponentRejectsNonInteger(t *testing.T) {
	_, ok := integerExponent(ast.NewNumber(2.5))
	assert.False(t, ok)
}

func TestInlinePowerThree(t *testing.T) {
	out := inlinePower(ast.NewVariable("x"), 3)
	assert.Equal(t, "bin(*,var(x),bin(*,var(x),var(x)))", ast.Structural(out))
}
