// SPDX-License-Identifier: Apache-2.0
package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "square_distance", toSnakeCase("squareDistance"))
	assert.Equal(t, "square", toSnakeCase("square"))
}

func TestGradientFuncNamePythonVsOthers(t *testing.T) {
	assert.Equal(t, "square_gradient", gradientFuncName("square", Python))
	assert.Equal(t, "squareGradient", gradientFuncName("square", TypeScript))
}

func TestReachableTempsFollowsTempToTempDependency(t *testing.T) {
	temps := []*ast.Assignment{
		{Name: "_ta", Expr: ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x"))},
		{Name: "_tb", Expr: ast.NewBinary(ast.Add, ast.NewVariable("_ta"), ast.NewNumber(1))},
		{Name: "_tc", Expr: ast.NewVariable("y")}, // unrelated, should be dropped
	}
	root := ast.NewVariable("_tb")
	out := reachableTemps(root, temps)
	require.Len(t, out, 2)
	assert.Equal(t, "_ta", out[0].Name)
	assert.Equal(t, "_tb", out[1].Name)
}

func TestEmitProducesForwardAndGradientFunctions(t *testing.T) {
	param := &ast.Param{Name: "x", RequiresGrad: true, Type: ast.ScalarType()}
	fn := &CompiledFunction{
		Name:          "square",
		Params:        []*ast.Param{param},
		ForwardExpr:   ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x")),
		GradientOrder: []*ast.Param{param},
		Gradients: map[string]ast.Gradient{
			"x": ast.ScalarGradient(ast.NewBinary(ast.Mul, ast.NewNumber(2), ast.NewVariable("x"))),
		},
	}
	out, err := Emit(fn, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Contains(t, out, "function square(x: number): number")
	assert.Contains(t, out, "function squareGradient(x: number): any")
	assert.Contains(t, out, "return x * x;")
}

func TestEmitPythonDialectUsesDefAndSnakeCaseGradient(t *testing.T) {
	param := &ast.Param{Name: "x", RequiresGrad: true, Type: ast.ScalarType()}
	fn := &CompiledFunction{
		Name:          "square",
		Params:        []*ast.Param{param},
		ForwardExpr:   ast.NewVariable("x"),
		GradientOrder: []*ast.Param{param},
		Gradients:     map[string]ast.Gradient{"x": ast.ScalarGradient(ast.NewNumber(1))},
	}
	out, err := Emit(fn, Options{Dialect: Python})
	require.NoError(t, err)
	assert.Contains(t, out, "def square(x):")
	assert.Contains(t, out, "def square_gradient(x):")
}

func TestEmitNoCommentsOmitsCommentary(t *testing.T) {
	param := &ast.Param{Name: "x", RequiresGrad: true, Type: ast.ScalarType()}
	fn := &CompiledFunction{
		Name:          "square",
		Params:        []*ast.Param{param},
		ForwardExpr:   ast.NewVariable("x"),
		GradientOrder: []*ast.Param{param},
		Gradients:     map[string]ast.Gradient{"x": ast.ScalarGradient(ast.NewNumber(1))},
	}
	out, err := Emit(fn, Options{Dialect: TypeScript, NoComments: true})
	require.NoError(t, err)
	assert.NotContains(t, out, "// forward value of")
}

func TestEmitStructParamGradientRecord(t *testing.T) {
	param := &ast.Param{Name: "u", RequiresGrad: true, Type: ast.StructType("x", "y")}
	fn := &CompiledFunction{
		Name:   "mag2",
		Params: []*ast.Param{param},
		ForwardExpr: ast.NewBinary(ast.Add,
			ast.NewBinary(ast.Pow, ast.NewComponent(ast.NewVariable("u"), "x"), ast.NewNumber(2)),
			ast.NewBinary(ast.Pow, ast.NewComponent(ast.NewVariable("u"), "y"), ast.NewNumber(2))),
		GradientOrder: []*ast.Param{param},
		Gradients: map[string]ast.Gradient{
			"u": ast.StructGradient(map[string]ast.Expr{
				"x": ast.NewBinary(ast.Mul, ast.NewNumber(2), ast.NewComponent(ast.NewVariable("u"), "x")),
				"y": ast.NewBinary(ast.Mul, ast.NewNumber(2), ast.NewComponent(ast.NewVariable("u"), "y")),
			}),
		},
	}
	out, err := Emit(fn, Options{Dialect: TypeScript})
	require.NoError(t, err)
	assert.Contains(t, out, "du")
	assert.Contains(t, out, "value:")
}
