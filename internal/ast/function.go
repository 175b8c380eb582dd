// SPDX-License-Identifier: Apache-2.0
package ast

// Type is either Scalar or a Struct with an ordered, named component list
// (spec §3). Scalars broadcast against structs; struct-against-struct
// requires identical component lists, enforced by internal/semantic.
type Type struct {
	Components []string // nil/empty => Scalar
}

func ScalarType() Type { return Type{} }

func StructType(components ...string) Type { return Type{Components: components} }

func (t Type) IsScalar() bool { return len(t.Components) == 0 }

func (t Type) HasComponent(name string) bool {
	for _, c := range t.Components {
		if c == name {
			return true
		}
	}
	return false
}

// Param is one formal parameter of a Function.
type Param struct {
	Pos          Position
	Name         string
	RequiresGrad bool
	Type         Type
}

// Assignment is one `name = expr` local statement in a function body.
type Assignment struct {
	Pos  Position
	Name string
	Expr Expr
}

// Function is a name, an ordered parameter list, an ordered list of local
// assignments and a single return expression (spec §3).
type Function struct {
	Pos     Position
	Name    string
	Params  []*Param
	Locals  []*Assignment
	Return  Expr
}

// ParamByName looks up a parameter by name, or returns nil.
func (f *Function) ParamByName(name string) *Param {
	for _, p := range f.Params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// GradientParams returns the parameters that require differentiation, in
// declaration order.
func (f *Function) GradientParams() []*Param {
	var out []*Param
	for _, p := range f.Params {
		if p.RequiresGrad {
			out = append(out, p)
		}
	}
	return out
}

// Gradient is the "structured gradient" sum type of spec §3/§9: either a
// single Expression (scalar parameter) or a component-name -> Expression
// map (struct parameter). Exactly one of the two fields is populated.
type Gradient struct {
	Scalar     Expr
	Components map[string]Expr
}

func ScalarGradient(e Expr) Gradient { return Gradient{Scalar: e} }

func StructGradient(components map[string]Expr) Gradient {
	return Gradient{Components: components}
}

func (g Gradient) IsScalar() bool { return g.Components == nil }

// Paths returns the full differentiation-variable paths this gradient
// covers for parameter `param`: "param" for a scalar, "param.component"
// for each component of a struct, in a stable (sorted) order.
func (g Gradient) Paths(param string) []string {
	if g.IsScalar() {
		return []string{param}
	}
	var out []string
	for _, c := range SortedKeys(g.Components) {
		out = append(out, param+"."+c)
	}
	return out
}

// Expr returns the Expression for a given full path, valid for both the
// scalar and struct cases.
func (g Gradient) Expr(path, param string) Expr {
	if g.IsScalar() {
		return g.Scalar
	}
	component := path[len(param)+1:]
	return g.Components[component]
}
