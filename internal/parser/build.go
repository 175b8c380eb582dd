// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

func toPos(p lexer.Position) ast.Position {
	return ast.Position{Filename: p.Filename, Offset: p.Offset, Line: p.Line, Column: p.Column}
}

// buildFunction converts one parsed FunctionNode into the single
// *ast.Function term-model value the rest of the pipeline consumes; no
// second tree survives past this point (spec §9's "two parallel term
// models" note resolved in favor of the tagged-record model).
func buildFunction(fn *FunctionNode) (*ast.Function, error) {
	out := &ast.Function{Pos: toPos(fn.Pos), Name: fn.Name}
	for _, p := range fn.Params {
		param := &ast.Param{
			Pos:          toPos(p.Pos),
			Name:         p.Name,
			RequiresGrad: p.Grad,
		}
		if len(p.Components) > 0 {
			param.Type = ast.StructType(p.Components...)
		}
		out.Params = append(out.Params, param)
	}
	for _, a := range fn.Locals {
		expr, err := buildExpr(a.Expr)
		if err != nil {
			return nil, err
		}
		out.Locals = append(out.Locals, &ast.Assignment{Pos: toPos(a.Pos), Name: a.Name, Expr: expr})
	}
	ret, err := buildExpr(fn.Return)
	if err != nil {
		return nil, err
	}
	out.Return = ret
	return out, nil
}

func buildExpr(e *ExprNode) (ast.Expr, error) {
	left, err := buildTerm(e.Left)
	if err != nil {
		return nil, err
	}
	for _, rest := range e.Rest {
		right, err := buildTerm(rest.Term)
		if err != nil {
			return nil, err
		}
		op := ast.Add
		if rest.Op == "-" {
			op = ast.Sub
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

func buildTerm(t *TermNode) (ast.Expr, error) {
	left, err := buildPower(t.Left)
	if err != nil {
		return nil, err
	}
	for _, rest := range t.Rest {
		right, err := buildPower(rest.Power)
		if err != nil {
			return nil, err
		}
		op := ast.Mul
		if rest.Op == "/" {
			op = ast.Div
		}
		left = ast.NewBinary(op, left, right)
	}
	return left, nil
}

func buildPower(p *PowerNode) (ast.Expr, error) {
	base, err := buildUnary(p.Base)
	if err != nil {
		return nil, err
	}
	if p.Exp == nil {
		return base, nil
	}
	exp, err := buildPower(p.Exp)
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(ast.Pow, base, exp), nil
}

func buildUnary(u *UnaryNode) (ast.Expr, error) {
	operand, err := buildPostfix(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "-":
		return ast.NewUnary(ast.Neg, operand), nil
	case "+":
		return ast.NewUnary(ast.Pos, operand), nil
	default:
		return operand, nil
	}
}

func buildPostfix(p *PostfixNode) (ast.Expr, error) {
	expr, err := buildPrimary(p.Primary)
	if err != nil {
		return nil, err
	}
	for _, field := range p.Fields {
		expr = ast.NewComponent(expr, field)
	}
	return expr, nil
}

func buildPrimary(p *PrimaryNode) (ast.Expr, error) {
	switch {
	case p.Number != nil:
		v, err := strconv.ParseFloat(*p.Number, 64)
		if err != nil {
			return nil, errors.New(errors.KindParse, errors.CodeUnexpectedToken, "invalid numeric literal "+*p.Number)
		}
		return ast.NewNumber(v), nil
	case p.Call != nil:
		args := make([]ast.Expr, len(p.Call.Args))
		for i, a := range p.Call.Args {
			expr, err := buildExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = expr
		}
		return ast.NewCall(p.Call.Name, args...), nil
	case p.Ident != nil:
		return ast.NewVariable(*p.Ident), nil
	case p.Paren != nil:
		return buildExpr(p.Paren)
	default:
		return nil, errors.New(errors.KindParse, errors.CodeUnexpectedToken, "empty expression")
	}
}
