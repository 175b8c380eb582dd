// SPDX-License-Identifier: Apache-2.0
package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestPostProcessCollapsesNegativeOneMultiply(t *testing.T) {
	e := ast.NewBinary(ast.Mul, ast.NewNumber(-1), ast.NewVariable("x"))
	out := postProcess(e, nil)
	assert.Equal(t, "un(-,var(x))", ast.Structural(out))
}

func TestPostProcessRewritesDivisionByReciprocalTemp(t *testing.T) {
	temps := []*ast.Assignment{
		{Name: "_ta", Expr: ast.NewBinary(ast.Div, ast.NewNumber(1), ast.NewVariable("y"))},
	}
	recip := reciprocalTemps(temps)

	e := ast.NewBinary(ast.Div, ast.NewVariable("x"), ast.NewVariable("y"))
	out := postProcess(e, recip)
	assert.Equal(t, "bin(*,var(x),var(_ta))", ast.Structural(out))
}

func TestPostProcessLeavesUnrelatedDivisionAlone(t *testing.T) {
	e := ast.NewBinary(ast.Div, ast.NewVariable("x"), ast.NewVariable("z"))
	out := postProcess(e, map[string]string{})
	assert.Equal(t, ast.Structural(e), ast.Structural(out))
}
