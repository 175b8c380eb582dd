// SPDX-License-Identifier: Apache-2.0

// Package check implements the Gradient checker of spec §4.J: a small
// forward interpreter over the term model plus central finite-difference
// numerical differentiation, used to verify the Differentiator's output
// before it is trusted for emission.
package check

import (
	"fmt"
	"math"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/builtins"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

// Env binds every parameter's value for one evaluation: scalar parameters
// by name, structured parameters by name and component.
type Env struct {
	Scalars map[string]float64
	Structs map[string]map[string]float64
}

func NewEnv() Env {
	return Env{Scalars: map[string]float64{}, Structs: map[string]map[string]float64{}}
}

// Get reads the value bound to a differentiation-variable path ("x" or
// "p.x").
func (e Env) Get(path string) (float64, bool) {
	if v, ok := e.Scalars[path]; ok {
		return v, true
	}
	for name, fields := range e.Structs {
		for field, v := range fields {
			if name+"."+field == path {
				return v, true
			}
		}
	}
	return 0, false
}

// Set writes the value bound to a differentiation-variable path, used by
// the finite-difference perturbation step.
func (e Env) Set(path string, v float64) {
	if _, ok := e.Scalars[path]; ok {
		e.Scalars[path] = v
		return
	}
	for name, fields := range e.Structs {
		for field := range fields {
			if name+"."+field == path {
				fields[field] = v
				return
			}
		}
	}
	e.Scalars[path] = v
}

// Eval forward-evaluates e at the bindings in env.
func Eval(e ast.Expr, env Env) (float64, error) {
	switch n := e.(type) {
	case *ast.Number:
		return n.Value, nil

	case *ast.Variable:
		if v, ok := env.Scalars[n.Name]; ok {
			return v, nil
		}
		return 0, errors.New(errors.KindVerification, errors.CodeUndefinedVariable,
			fmt.Sprintf("gradient checker: no binding for %q", n.Name))

	case *ast.Component:
		obj, ok := n.Object.(*ast.Variable)
		if !ok {
			return 0, errors.New(errors.KindVerification, errors.CodeUndefinedVariable,
				"gradient checker: component access on a non-variable object")
		}
		fields, ok := env.Structs[obj.Name]
		if !ok {
			return 0, errors.New(errors.KindVerification, errors.CodeUndefinedVariable,
				fmt.Sprintf("gradient checker: no struct binding for %q", obj.Name))
		}
		v, ok := fields[n.Field]
		if !ok {
			return 0, errors.New(errors.KindVerification, errors.CodeMissingComponent,
				fmt.Sprintf("gradient checker: %q has no component %q", obj.Name, n.Field))
		}
		return v, nil

	case *ast.Unary:
		v, err := Eval(n.Operand, env)
		if err != nil {
			return 0, err
		}
		if n.Op == ast.Neg {
			return -v, nil
		}
		return v, nil

	case *ast.Binary:
		return evalBinary(n, env)

	case *ast.Call:
		return evalCall(n, env)

	default:
		return 0, errors.New(errors.KindVerification, errors.CodeUndefinedVariable,
			fmt.Sprintf("gradient checker: cannot evaluate %T", e))
	}
}

func evalBinary(b *ast.Binary, env Env) (float64, error) {
	l, err := Eval(b.Left, env)
	if err != nil {
		return 0, err
	}
	r, err := Eval(b.Right, env)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case ast.Add:
		return l + r, nil
	case ast.Sub:
		return l - r, nil
	case ast.Mul:
		return l * r, nil
	case ast.Div:
		return l / r, nil
	case ast.Pow:
		return math.Pow(l, r), nil
	default:
		return 0, errors.New(errors.KindVerification, errors.CodeUndefinedVariable,
			fmt.Sprintf("gradient checker: unknown binary operator %q", b.Op))
	}
}

func evalCall(c *ast.Call, env Env) (float64, error) {
	if builtins.Expandable[c.Name] {
		expanded, err := builtins.Expand(c)
		if err != nil {
			return 0, err
		}
		return Eval(expanded, env)
	}
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := Eval(a, env)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	switch c.Name {
	case "sin":
		return math.Sin(args[0]), nil
	case "cos":
		return math.Cos(args[0]), nil
	case "tan":
		return math.Tan(args[0]), nil
	case "exp":
		return math.Exp(args[0]), nil
	case "log":
		return math.Log(args[0]), nil
	case "sqrt":
		return math.Sqrt(args[0]), nil
	case "abs":
		return math.Abs(args[0]), nil
	case "asin":
		return math.Asin(args[0]), nil
	case "acos":
		return math.Acos(args[0]), nil
	case "atan":
		return math.Atan(args[0]), nil
	case "atan2":
		return math.Atan2(args[0], args[1]), nil
	case "pow":
		return math.Pow(args[0], args[1]), nil
	case "min":
		return math.Min(args[0], args[1]), nil
	case "max":
		return math.Max(args[0], args[1]), nil
	case "clamp":
		return math.Min(math.Max(args[0], args[1]), args[2]), nil
	default:
		return 0, errors.New(errors.KindVerification, errors.CodeUnsupportedPrimitive,
			fmt.Sprintf("gradient checker: no evaluation rule for %q", c.Name))
	}
}
