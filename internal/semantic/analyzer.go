// SPDX-License-Identifier: Apache-2.0

// Package semantic is the external "type inferencer" collaborator of spec
// §1: it walks a parsed Function once, assigns types via internal/types,
// and reports the type errors of spec §7 (mismatched struct types, missing
// components, wrong arity, unknown function) as internal/errors.CompilerError
// values. It never rewrites the term tree; internal/compile is its only
// caller and uses the error list.
//
// Grounded on the teacher's internal/semantic.Analyzer / Context pattern,
// reduced from a multi-pass Move type checker to a single linear pass
// appropriate for GradientScript's much smaller grammar.
package semantic

import (
	"fmt"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/builtins"
	"github.com/mfagerlund/gradientscript/internal/errors"
	"github.com/mfagerlund/gradientscript/internal/types"
)

// Analyzer checks one Function against its inferred type environment.
type Analyzer struct {
	fn  *ast.Function
	env *types.Env
}

// Analyze runs the full check and returns every error found; an empty
// slice means the function is well-typed.
func Analyze(fn *ast.Function) ([]*errors.CompilerError, *types.Env) {
	env, err := types.Infer(fn)
	if err != nil {
		return []*errors.CompilerError{err.(*errors.CompilerError)}, nil
	}
	a := &Analyzer{fn: fn, env: env}
	return a.run(), env
}

func (a *Analyzer) run() []*errors.CompilerError {
	var errs []*errors.CompilerError
	declared := map[string]bool{}
	for _, p := range a.fn.Params {
		declared[p.Name] = true
	}
	for _, local := range a.fn.Locals {
		if declared[local.Name] {
			errs = append(errs, errors.New(errors.KindType, errors.CodeDuplicateLocal,
				fmt.Sprintf("local %q redeclares an existing name", local.Name)).
				WithFunction(a.fn.Name).WithPosition(local.Pos))
		}
		errs = append(errs, a.checkExpr(local.Expr, declared)...)
		declared[local.Name] = true
	}
	if a.fn.Return != nil {
		errs = append(errs, a.checkExpr(a.fn.Return, declared)...)
	}
	return errs
}

func (a *Analyzer) checkExpr(e ast.Expr, declared map[string]bool) []*errors.CompilerError {
	var errs []*errors.CompilerError
	switch n := e.(type) {
	case *ast.Variable:
		if !declared[n.Name] {
			errs = append(errs, errors.New(errors.KindType, errors.CodeUndefinedVariable,
				fmt.Sprintf("undefined variable %q", n.Name)).
				WithFunction(a.fn.Name).WithPosition(n.NodePos()))
		}
	case *ast.Component:
		errs = append(errs, a.checkExpr(n.Object, declared)...)
		if v, ok := n.Object.(*ast.Variable); ok {
			if t, ok := a.env.Lookup(v.Name); ok && !t.IsScalar() && !t.HasComponent(n.Field) {
				errs = append(errs, errors.New(errors.KindType, errors.CodeMissingComponent,
					fmt.Sprintf("%q has no component %q", v.Name, n.Field)).
					WithFunction(a.fn.Name).WithPosition(n.NodePos()))
			}
		}
	case *ast.Binary:
		errs = append(errs, a.checkExpr(n.Left, declared)...)
		errs = append(errs, a.checkExpr(n.Right, declared)...)
		lt, _ := types.InferExpr(n.Left, a.env)
		rt, _ := types.InferExpr(n.Right, a.env)
		if !lt.IsScalar() && !rt.IsScalar() && !sameComponents(lt, rt) {
			errs = append(errs, errors.New(errors.KindType, errors.CodeStructMismatch,
				"struct operands must share identical component lists").
				WithFunction(a.fn.Name).WithPosition(n.NodePos()))
		}
	case *ast.Unary:
		errs = append(errs, a.checkExpr(n.Operand, declared)...)
	case *ast.Call:
		if !builtins.Recognized[n.Name] {
			errs = append(errs, errors.New(errors.KindType, errors.CodeUnknownFunction,
				fmt.Sprintf("unknown function %q", n.Name)).
				WithFunction(a.fn.Name).WithPosition(n.NodePos()))
		} else if arity, ok := builtins.Arity[n.Name]; ok && arity != len(n.Args) {
			errs = append(errs, errors.New(errors.KindType, errors.CodeWrongArity,
				fmt.Sprintf("%q expects %d argument(s), got %d", n.Name, arity, len(n.Args))).
				WithFunction(a.fn.Name).WithPosition(n.NodePos()))
		}
		for _, arg := range n.Args {
			errs = append(errs, a.checkExpr(arg, declared)...)
		}
	}
	return errs
}

func sameComponents(a, b ast.Type) bool {
	if len(a.Components) != len(b.Components) {
		return false
	}
	for i, c := range a.Components {
		if b.Components[i] != c {
			return false
		}
	}
	return true
}
