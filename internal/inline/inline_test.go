// SPDX-License-Identifier: Apache-2.0
package inline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestInlineSubstitutesSingleLocal(t *testing.T) {
	fn := &ast.Function{
		Locals: []*ast.Assignment{
			{Name: "a", Expr: ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewVariable("x"))},
		},
		Return: ast.NewBinary(ast.Add, ast.NewVariable("a"), ast.NewNumber(1)),
	}
	out := Inline(fn)
	assert.Equal(t, "bin(+,bin(*,var(x),var(x)),num(1))", ast.Structural(out))
}

func TestInlineChainsDependentLocals(t *testing.T) {
	// b depends on a, which depends on x: both must resolve down to x.
	fn := &ast.Function{
		Locals: []*ast.Assignment{
			{Name: "a", Expr: ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewNumber(2))},
			{Name: "b", Expr: ast.NewBinary(ast.Add, ast.NewVariable("a"), ast.NewVariable("a"))},
		},
		Return: ast.NewVariable("b"),
	}
	out := Inline(fn)
	expected := ast.NewBinary(ast.Add,
		ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewNumber(2)),
		ast.NewBinary(ast.Mul, ast.NewVariable("x"), ast.NewNumber(2)))
	assert.Equal(t, ast.Structural(expected), ast.Structural(out))
}

func TestInlineWithNoLocalsReturnsReturnExprUnchanged(t *testing.T) {
	fn := &ast.Function{Return: ast.NewVariable("x")}
	out := Inline(fn)
	assert.Equal(t, "var(x)", ast.Structural(out))
}

func TestInlineExprLeavesUnrelatedVariablesAlone(t *testing.T) {
	locals := []*ast.Assignment{
		{Name: "a", Expr: ast.NewNumber(5)},
	}
	out := InlineExpr(ast.NewBinary(ast.Add, ast.NewVariable("a"), ast.NewVariable("y")), locals)
	assert.Equal(t, "bin(+,num(5),var(y))", ast.Structural(out))
}
