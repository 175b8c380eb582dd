// SPDX-License-Identifier: Apache-2.0

// Package types implements the "external type inferencer" collaborator of
// spec §1/§6: given a parsed Function, it assigns a Type (spec §3: Scalar
// or Struct) to every parameter and local name. internal/semantic uses
// the resulting Env to check component access and struct operands.
//
// Grounded on the teacher's internal/types.TypeRegistry scope-lookup
// idiom, reduced to GradientScript's much smaller type lattice (no
// generics, no imports, no user-defined structs beyond the parameter
// annotations themselves).
package types

import "github.com/mfagerlund/gradientscript/internal/ast"

// Env is a per-function type environment: every parameter and local name
// mapped to its Type.
type Env struct {
	vars map[string]ast.Type
}

func NewEnv() *Env {
	return &Env{vars: make(map[string]ast.Type)}
}

func (e *Env) Declare(name string, t ast.Type) {
	e.vars[name] = t
}

func (e *Env) Lookup(name string) (ast.Type, bool) {
	t, ok := e.vars[name]
	return t, ok
}

// Infer builds the type environment for fn: every parameter from its
// declared annotation, then every local from the inferred type of its
// right-hand side (propagating struct-ness through field access,
// arithmetic broadcast, and built-in calls). Mirrors spec §3's "Scalars
// broadcast against structs; struct-against-struct requires identical
// component lists" rule at the one place it matters for codegen: knowing
// which parameters carry component maps.
func Infer(fn *ast.Function) (*Env, error) {
	env := NewEnv()
	for _, p := range fn.Params {
		env.Declare(p.Name, p.Type)
	}
	for _, local := range fn.Locals {
		t, err := InferExpr(local.Expr, env)
		if err != nil {
			return nil, err
		}
		env.Declare(local.Name, t)
	}
	return env, nil
}

// InferExpr infers the Type of a single expression under env. Struct
// built-ins (dot2d, cross2d, ...) always resolve to Scalar since they are
// scalar-returning by construction (spec §4.B); everything else
// broadcasts: if either side of a Binary is a Struct, the result is that
// struct's type (spec §3).
func InferExpr(e ast.Expr, env *Env) (ast.Type, error) {
	switch n := e.(type) {
	case *ast.Number:
		return ast.ScalarType(), nil
	case *ast.Variable:
		if t, ok := env.Lookup(n.Name); ok {
			return t, nil
		}
		return ast.ScalarType(), nil
	case *ast.Component:
		return ast.ScalarType(), nil
	case *ast.Call:
		return ast.ScalarType(), nil
	case *ast.Unary:
		return InferExpr(n.Operand, env)
	case *ast.Binary:
		lt, err := InferExpr(n.Left, env)
		if err != nil {
			return ast.Type{}, err
		}
		rt, err := InferExpr(n.Right, env)
		if err != nil {
			return ast.Type{}, err
		}
		if !lt.IsScalar() {
			return lt, nil
		}
		if !rt.IsScalar() {
			return rt, nil
		}
		return ast.ScalarType(), nil
	default:
		return ast.ScalarType(), nil
	}
}
