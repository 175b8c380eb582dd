// SPDX-License-Identifier: Apache-2.0

// Package builtins catalogs the recognized call names of the GradientScript
// surface language (spec §3) and expands the vector primitives that never
// survive into differentiation (spec §4.B), grounded on the teacher's
// internal/builtins.BuiltinTypes lookup-table idiom.
package builtins

// Smooth is the set of primitives with a standard differentiation rule
// (spec §4.D).
var Smooth = map[string]bool{
	"sin": true, "cos": true, "tan": true, "exp": true, "log": true,
	"sqrt": true, "abs": true,
}

// NotDifferentiable is parse-recognized but deliberately not differentiable
// in the core; differentiating one of these must surface a structured
// "not implemented" error (spec §4.D).
var NotDifferentiable = map[string]bool{
	"pow": true, "asin": true, "acos": true,
}

// SubGradient primitives return the sub-gradient by the first-argument
// convention (spec §4.D, §9).
var SubGradient = map[string]bool{
	"min": true, "max": true, "clamp": true,
}

// Atan2 gets its own differentiation rule (spec §4.D).
const Atan2 = "atan2"

// Recognized is every call name the surface language parses (spec §3).
var Recognized = map[string]bool{
	"sin": true, "cos": true, "tan": true, "exp": true, "log": true,
	"sqrt": true, "abs": true, "asin": true, "acos": true, "atan": true,
	"atan2": true, "pow": true, "min": true, "max": true, "clamp": true,
}

// Arity is the fixed argument count for calls the emitter validates
// (spec §4.K: "invalid arity (clamp with != 3 arguments) is rejected").
// A missing entry means the primitive has no fixed arity.
var Arity = map[string]int{
	"sin": 1, "cos": 1, "tan": 1, "exp": 1, "log": 1, "sqrt": 1, "abs": 1,
	"asin": 1, "acos": 1, "atan": 1,
	"atan2": 2, "pow": 2,
	"min": 2, "max": 2,
	"clamp": 3,
}

// Expandable is the set of vector built-ins that are rewritten to scalar
// component arithmetic during differentiation and never survive past it
// (spec §3, §4.B).
var Expandable = map[string]bool{
	"dot2d": true, "cross2d": true, "magnitude2d": true, "distance2d": true,
	"dot3d": true, "magnitude3d": true,
}

// NotSupported lists built-ins that are recognized names in other vector
// libraries but are rejected by the expander with a structured error
// because their results are not scalars, or require division-by-zero
// handling outside the scope of this core (spec §4.B).
var NotSupported = map[string]bool{
	"normalize2d": true, "normalize3d": true, "cross3d": true,
}

func init() {
	for name := range Expandable {
		Recognized[name] = true
	}
	for name := range NotSupported {
		Recognized[name] = true
	}
}
