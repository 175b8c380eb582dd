// SPDX-License-Identifier: Apache-2.0
package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestParamDeclCSharpStructIsTuple(t *testing.T) {
	p := &printer{opts: Options{Dialect: CSharp, CSharpFloatType: "double"}}
	param := &ast.Param{Name: "u", Type: ast.StructType("x", "y")}
	assert.Equal(t, "(double x, double y) u", p.paramDecl(param))
}

func TestParamDeclCSharpScalarUsesFloatType(t *testing.T) {
	p := &printer{opts: Options{Dialect: CSharp, CSharpFloatType: "float"}}
	param := &ast.Param{Name: "x", Type: ast.ScalarType()}
	assert.Equal(t, "float x", p.paramDecl(param))
}

func TestParamDeclTypeScriptStructLiteralType(t *testing.T) {
	p := &printer{opts: Options{Dialect: TypeScript}}
	param := &ast.Param{Name: "u", Type: ast.StructType("x", "y")}
	assert.Equal(t, "u: { x: number; y: number }", p.paramDecl(param))
}

func TestSignatureCSharpDoubleReturnForForward(t *testing.T) {
	p := &printer{opts: Options{Dialect: CSharp, CSharpFloatType: "double"}}
	param := &ast.Param{Name: "x", Type: ast.ScalarType()}
	sig := p.signature("square", []*ast.Param{param}, false)
	assert.Equal(t, "public static double square(double x)", sig)
}

func TestSignatureCSharpObjectReturnForGradient(t *testing.T) {
	p := &printer{opts: Options{Dialect: CSharp, CSharpFloatType: "double"}}
	param := &ast.Param{Name: "x", Type: ast.ScalarType()}
	sig := p.signature("squareGradient", []*ast.Param{param}, true)
	assert.Equal(t, "public static object squareGradient(double x)", sig)
}

func TestTempDeclPythonHasNoSemicolon(t *testing.T) {
	p := &printer{opts: Options{Dialect: Python}}
	temp := &ast.Assignment{Name: "_ta", Expr: ast.NewNumber(2)}
	out, err := p.tempDecl(temp)
	assert.NoError(t, err)
	assert.Equal(t, "_ta = 2", out)
}

func TestTempDeclCSharpDeclaresType(t *testing.T) {
	p := &printer{opts: Options{Dialect: CSharp, CSharpFloatType: "double"}}
	temp := &ast.Assignment{Name: "_ta", Expr: ast.NewNumber(2)}
	out, err := p.tempDecl(temp)
	assert.NoError(t, err)
	assert.Equal(t, "double _ta = 2;", out)
}

func TestRenderFunctionPythonEmptyBodyGetsPass(t *testing.T) {
	out := renderFunction(Options{Dialect: Python}, "def f():", "")
	assert.Contains(t, out, "pass")
}

func TestRenderFunctionCurlyBraceDialectsWrapBody(t *testing.T) {
	out := renderFunction(Options{Dialect: TypeScript}, "function f()", "  return 1;\n")
	assert.Equal(t, "function f() {\n  return 1;\n}\n", out)
}

func TestRecordLiteralPythonUsesDictSyntax(t *testing.T) {
	p := &printer{opts: Options{Dialect: Python}}
	out := p.recordLiteral("value", "x", []string{"dx"})
	assert.Equal(t, `{"value": x, "dx": dx}`, out)
}

func TestRecordLiteralCSharpUsesTupleSyntax(t *testing.T) {
	p := &printer{opts: Options{Dialect: CSharp}}
	out := p.recordLiteral("value", "x", []string{"dx"})
	assert.Equal(t, "(value: x, dx: dx)", out)
}
