// SPDX-License-Identifier: Apache-2.0
package emit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/builtins"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

// atomPrec is the precedence assigned to anything that never needs
// parenthesizing as a sub-expression: literals, names, and calls.
const atomPrec = 100

func precedence(op ast.BinOp) int {
	switch op {
	case ast.Add, ast.Sub:
		return 1
	case ast.Mul, ast.Div:
		return 2
	case ast.Pow:
		return 4
	default:
		return 0
	}
}

func isLeftAssoc(op ast.BinOp) bool { return op != ast.Pow }

// wrap parenthesizes text when rendering it as a child at the given
// position would otherwise change its meaning (spec §4.K: "parenthesized
// iff its operator has lower precedence than the enclosing operator, or
// equal precedence with non-left-associative position; division and
// subtraction right-operands always parenthesize their contained addition
// /subtraction").
func wrap(text string, childPrec, parentPrec int, isRight, parentLeftAssoc bool) string {
	needs := childPrec < parentPrec
	if childPrec == parentPrec {
		if isRight && parentLeftAssoc {
			needs = true
		}
		if !isRight && !parentLeftAssoc {
			needs = true
		}
	}
	if needs {
		return "(" + text + ")"
	}
	return text
}

type printer struct {
	opts         Options
	guardedSites map[string]bool // structural denominator text -> needs epsilon guard
}

// render returns an expression's text and the precedence of its
// outermost operator (atomPrec if it never needs wrapping).
func (p *printer) render(e ast.Expr) (string, int, error) {
	switch n := e.(type) {
	case *ast.Number:
		return p.number(n.Value), atomPrec, nil

	case *ast.Variable:
		return n.Name, atomPrec, nil

	case *ast.Component:
		objText, objPrec, err := p.render(n.Object)
		if err != nil {
			return "", 0, err
		}
		objText = wrap(objText, objPrec, atomPrec, false, true)
		return objText + "." + n.Field, atomPrec, nil

	case *ast.Unary:
		operandText, operandPrec, err := p.render(n.Operand)
		if err != nil {
			return "", 0, err
		}
		if n.Op == ast.Pos {
			return operandText, operandPrec, nil
		}
		const negPrec = 3
		wrapped := wrap(operandText, operandPrec, negPrec, false, true)
		return "-" + wrapped, negPrec, nil

	case *ast.Binary:
		return p.renderBinary(n)

	case *ast.Call:
		return p.renderCall(n)

	default:
		return "", 0, fmt.Errorf("emit: cannot render %T", e)
	}
}

func (p *printer) renderBinary(b *ast.Binary) (string, int, error) {
	if b.Op == ast.Pow {
		if n, ok := integerExponent(b.Right); ok && n >= 0 && n <= 3 {
			return p.render(inlinePower(b.Left, n))
		}
		l, _, err := p.render(b.Left)
		if err != nil {
			return "", 0, err
		}
		r, _, err := p.render(b.Right)
		if err != nil {
			return "", 0, err
		}
		return p.call("pow", l, r), atomPrec, nil
	}

	lt, lp, err := p.render(b.Left)
	if err != nil {
		return "", 0, err
	}
	rt, rp, err := p.render(b.Right)
	if err != nil {
		return "", 0, err
	}
	if b.Op == ast.Div && p.opts.Guards && p.guardedSites[ast.Structural(b.Right)] {
		rt, rp = p.guardDenominator(rt), atomPrec
	}
	prec := precedence(b.Op)
	leftAssoc := isLeftAssoc(b.Op)
	lWrapped := wrap(lt, lp, prec, false, leftAssoc)
	rWrapped := wrap(rt, rp, prec, true, leftAssoc)
	return lWrapped + " " + string(b.Op) + " " + rWrapped, prec, nil
}

// guardDenominator renders `(r >= 0 ? r + eps : r - eps)` in the target's
// conditional-expression syntax, nudging a near-zero denominator away
// from zero in the direction it already leans (spec's --guards flag).
func (p *printer) guardDenominator(r string) string {
	eps := p.number(p.opts.Epsilon)
	if p.opts.Dialect == Python {
		return fmt.Sprintf("(%s + %s if %s >= 0 else %s - %s)", r, eps, r, r, eps)
	}
	return fmt.Sprintf("(%s >= 0 ? %s + %s : %s - %s)", r, r, eps, r, eps)
}

// integerExponent reports whether e is a numeric literal holding an
// integer value.
func integerExponent(e ast.Expr) (int, bool) {
	n, ok := e.(*ast.Number)
	if !ok {
		return 0, false
	}
	i := int(n.Value)
	if float64(i) != n.Value {
		return 0, false
	}
	return i, true
}

// inlinePower expands a^n for n in {0,1,2,3} into repeated multiplication
// (spec §4.K: "For integer exponents 0..3 the emitter inlines a^2 -> a*a,
// a^3 -> a*a*a").
func inlinePower(a ast.Expr, n int) ast.Expr {
	switch n {
	case 0:
		return ast.NewNumber(1)
	case 1:
		return a
	case 2:
		return ast.NewBinary(ast.Mul, a, a)
	default:
		return ast.NewBinary(ast.Mul, a, inlinePower(a, n-1))
	}
}

func (p *printer) renderCall(c *ast.Call) (string, int, error) {
	if c.Name == "clamp" {
		if len(c.Args) != 3 {
			return "", 0, errors.New(errors.KindCodegen, errors.CodeInvalidArity,
				fmt.Sprintf("clamp requires exactly 3 arguments, got %d", len(c.Args)))
		}
		a, _, err := p.render(c.Args[0])
		if err != nil {
			return "", 0, err
		}
		lo, _, err := p.render(c.Args[1])
		if err != nil {
			return "", 0, err
		}
		hi, _, err := p.render(c.Args[2])
		if err != nil {
			return "", 0, err
		}
		return p.call("min", p.call("max", a, lo), hi), atomPrec, nil
	}

	if arity, ok := builtins.Arity[c.Name]; ok && arity != len(c.Args) {
		return "", 0, errors.New(errors.KindCodegen, errors.CodeInvalidArity,
			fmt.Sprintf("%s requires exactly %d argument(s), got %d", c.Name, arity, len(c.Args)))
	}

	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		text, _, err := p.render(a)
		if err != nil {
			return "", 0, err
		}
		args[i] = text
	}
	return p.call(c.Name, args...), atomPrec, nil
}

func (p *printer) call(name string, args ...string) string {
	target, ok := mathNames[p.opts.Dialect][name]
	if !ok {
		target = name
	}
	return target + "(" + strings.Join(args, ", ") + ")"
}

func (p *printer) number(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Render is the exported single-expression entry point: it prints one
// expression with a fresh printer. emit.go does not call it; it drives its
// own printer directly.
func Render(e ast.Expr, opts Options) (string, error) {
	p := &printer{opts: opts}
	text, _, err := p.render(e)
	return text, err
}
