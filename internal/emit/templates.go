// SPDX-License-Identifier: Apache-2.0
package emit

import (
	"fmt"
	"strings"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func (p *printer) stmtEnd() string {
	if p.opts.Dialect == Python {
		return ""
	}
	return ";"
}

func (p *printer) indent() string {
	if p.opts.Dialect == Python {
		return "    "
	}
	return "  "
}

// signature renders a function header (without its opening brace / colon
// newline, which renderFunction adds).
func (p *printer) signature(name string, params []*ast.Param, isGradient bool) string {
	parts := make([]string, len(params))
	for i, param := range params {
		parts[i] = p.paramDecl(param)
	}
	paramList := strings.Join(parts, ", ")
	switch p.opts.Dialect {
	case TypeScript:
		ret := "number"
		if isGradient {
			ret = "any"
		}
		return fmt.Sprintf("function %s(%s): %s", name, paramList, ret)
	case JavaScript:
		return fmt.Sprintf("function %s(%s)", name, paramList)
	case Python:
		return fmt.Sprintf("def %s(%s):", name, paramList)
	case CSharp:
		ret := p.opts.floatType()
		if isGradient {
			ret = "object"
		}
		return fmt.Sprintf("public static %s %s(%s)", ret, name, paramList)
	default:
		return name + "(" + paramList + ")"
	}
}

func (p *printer) paramDecl(param *ast.Param) string {
	switch p.opts.Dialect {
	case TypeScript:
		if param.Type.IsScalar() {
			return param.Name + ": number"
		}
		return param.Name + ": " + structLiteralType(param.Type)
	case CSharp:
		ft := p.opts.floatType()
		if param.Type.IsScalar() {
			return ft + " " + param.Name
		}
		fields := make([]string, len(param.Type.Components))
		for i, c := range param.Type.Components {
			fields[i] = ft + " " + c
		}
		return "(" + strings.Join(fields, ", ") + ") " + param.Name
	default: // JavaScript, Python: dynamically typed
		return param.Name
	}
}

func structLiteralType(t ast.Type) string {
	fields := make([]string, len(t.Components))
	for i, c := range t.Components {
		fields[i] = c + ": number"
	}
	return "{ " + strings.Join(fields, "; ") + " }"
}

// renderFunction wraps a body in the dialect's function delimiters.
func renderFunction(opts Options, sig, body string) string {
	if opts.Dialect == Python {
		if strings.TrimSpace(body) == "" {
			body = "    pass\n"
		}
		return sig + "\n" + body
	}
	return sig + " {\n" + body + "}\n"
}

func (p *printer) functionBody(temps []*ast.Assignment, result ast.Expr) (string, error) {
	var b strings.Builder
	for _, t := range temps {
		line, err := p.tempDecl(t)
		if err != nil {
			return "", err
		}
		b.WriteString(p.indent() + line + "\n")
	}
	retText, _, err := p.render(result)
	if err != nil {
		return "", err
	}
	b.WriteString(p.indent() + p.returnStmt(retText) + "\n")
	return b.String(), nil
}

func (p *printer) tempDecl(t *ast.Assignment) (string, error) {
	rhs, _, err := p.render(t.Expr)
	if err != nil {
		return "", err
	}
	switch p.opts.Dialect {
	case TypeScript, JavaScript:
		return fmt.Sprintf("const %s = %s%s", t.Name, rhs, p.stmtEnd()), nil
	case Python:
		return fmt.Sprintf("%s = %s", t.Name, rhs), nil
	case CSharp:
		return fmt.Sprintf("%s %s = %s%s", p.opts.floatType(), t.Name, rhs, p.stmtEnd()), nil
	default:
		return fmt.Sprintf("%s = %s%s", t.Name, rhs, p.stmtEnd()), nil
	}
}

func (p *printer) returnStmt(expr string) string {
	if p.opts.Dialect == Python {
		return "return " + expr
	}
	return "return " + expr + p.stmtEnd()
}

// gradientBody prints the gradient-side temporaries followed by one
// derivative binding per required parameter and a record collecting
// `value` plus every `d<name>` (spec §4.K steps 6-8).
func (p *printer) gradientBody(temps []*ast.Assignment, fn *CompiledFunction) (string, error) {
	var b strings.Builder
	for _, t := range temps {
		line, err := p.tempDecl(t)
		if err != nil {
			return "", err
		}
		b.WriteString(p.indent() + line + "\n")
	}

	type binding struct {
		name  string
		value string // rendered expr, for a scalar
		comps []struct{ name, value string }
	}
	var bindings []binding

	for _, param := range fn.GradientOrder {
		grad := fn.Gradients[param.Name]
		varName := "d" + param.Name
		if grad.IsScalar() {
			text, _, err := p.render(grad.Scalar)
			if err != nil {
				return "", err
			}
			decl, err := p.scalarDecl(varName, text)
			if err != nil {
				return "", err
			}
			b.WriteString(p.indent() + decl + "\n")
			bindings = append(bindings, binding{name: varName, value: text})
			continue
		}
		comps := make([]struct{ name, value string }, 0, len(grad.Components))
		for _, c := range ast.SortedKeys(grad.Components) {
			text, _, err := p.render(grad.Components[c])
			if err != nil {
				return "", err
			}
			comps = append(comps, struct{ name, value string }{c, text})
		}
		decl, err := p.structDecl(varName, comps)
		if err != nil {
			return "", err
		}
		b.WriteString(p.indent() + decl + "\n")
		bindings = append(bindings, binding{name: varName, comps: comps})
	}

	forwardText, _, err := p.render(fn.ForwardExpr)
	if err != nil {
		return "", err
	}

	names := make([]string, len(bindings))
	for i, bd := range bindings {
		names[i] = bd.name
	}
	record := p.recordLiteral("value", forwardText, names)
	b.WriteString(p.indent() + p.returnStmt(record) + "\n")
	return b.String(), nil
}

func (p *printer) scalarDecl(name, value string) (string, error) {
	switch p.opts.Dialect {
	case TypeScript, JavaScript:
		return fmt.Sprintf("const %s = %s%s", name, value, p.stmtEnd()), nil
	case Python:
		return fmt.Sprintf("%s = %s", name, value), nil
	case CSharp:
		return fmt.Sprintf("%s %s = %s%s", p.opts.floatType(), name, value, p.stmtEnd()), nil
	default:
		return fmt.Sprintf("%s = %s%s", name, value, p.stmtEnd()), nil
	}
}

func (p *printer) structDecl(name string, comps []struct{ name, value string }) (string, error) {
	lit := p.structLiteral(comps)
	switch p.opts.Dialect {
	case TypeScript, JavaScript:
		return fmt.Sprintf("const %s = %s%s", name, lit, p.stmtEnd()), nil
	case Python:
		return fmt.Sprintf("%s = %s", name, lit), nil
	case CSharp:
		return fmt.Sprintf("var %s = %s%s", name, lit, p.stmtEnd()), nil
	default:
		return fmt.Sprintf("%s = %s%s", name, lit, p.stmtEnd()), nil
	}
}

func (p *printer) structLiteral(comps []struct{ name, value string }) string {
	parts := make([]string, len(comps))
	switch p.opts.Dialect {
	case Python:
		for i, c := range comps {
			parts[i] = fmt.Sprintf("%q: %s", c.name, c.value)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case CSharp:
		for i, c := range comps {
			parts[i] = fmt.Sprintf("%s: %s", c.name, c.value)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default: // TS/JS object literal
		for i, c := range comps {
			parts[i] = fmt.Sprintf("%s: %s", c.name, c.value)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}
}

// recordLiteral builds the gradient return record of spec §4.K step 8:
// `value` plus every d<name> binding, each already declared as a local
// above, so the record just references them by name.
func (p *printer) recordLiteral(valueKey, valueExpr string, names []string) string {
	switch p.opts.Dialect {
	case Python:
		entries := []string{fmt.Sprintf("%q: %s", valueKey, valueExpr)}
		for _, n := range names {
			entries = append(entries, fmt.Sprintf("%q: %s", n, n))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	case CSharp:
		entries := []string{fmt.Sprintf("%s: %s", valueKey, valueExpr)}
		for _, n := range names {
			entries = append(entries, fmt.Sprintf("%s: %s", n, n))
		}
		return "(" + strings.Join(entries, ", ") + ")"
	default:
		entries := []string{fmt.Sprintf("%s: %s", valueKey, valueExpr)}
		for _, n := range names {
			entries = append(entries, n)
		}
		return "{ " + strings.Join(entries, ", ") + " }"
	}
}
