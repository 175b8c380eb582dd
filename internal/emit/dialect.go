// SPDX-License-Identifier: Apache-2.0

// Package emit implements the Code emitter of spec §4.K: it walks an
// extracted forward body and gradient body and prints them as source text
// in one of four target dialects, with precedence-correct
// parenthesization and per-target math-function names.
package emit

// Dialect selects the target language (spec §6's --format flag).
type Dialect string

const (
	TypeScript Dialect = "typescript"
	JavaScript Dialect = "javascript"
	Python     Dialect = "python"
	CSharp     Dialect = "csharp"
)

// Options configures one emission (spec §6 CLI flags that affect emission).
type Options struct {
	Dialect         Dialect
	NoComments      bool
	Guards          bool
	Epsilon         float64
	CSharpFloatType string // "float" or "double"; default "double"
}

func (o Options) floatType() string {
	if o.Dialect == CSharp && o.CSharpFloatType == "float" {
		return "float"
	}
	return "double"
}

func (o Options) commentPrefix() string {
	if o.Dialect == Python {
		return "#"
	}
	return "//"
}

// mathNames maps the canonical builtin name to the target's call syntax,
// per spec §4.K: "Math names are mapped per target."
var mathNames = map[Dialect]map[string]string{
	TypeScript: {
		"sin": "Math.sin", "cos": "Math.cos", "tan": "Math.tan",
		"exp": "Math.exp", "log": "Math.log", "sqrt": "Math.sqrt", "abs": "Math.abs",
		"asin": "Math.asin", "acos": "Math.acos", "atan": "Math.atan",
		"atan2": "Math.atan2", "pow": "Math.pow", "min": "Math.min", "max": "Math.max",
	},
	JavaScript: {
		"sin": "Math.sin", "cos": "Math.cos", "tan": "Math.tan",
		"exp": "Math.exp", "log": "Math.log", "sqrt": "Math.sqrt", "abs": "Math.abs",
		"asin": "Math.asin", "acos": "Math.acos", "atan": "Math.atan",
		"atan2": "Math.atan2", "pow": "Math.pow", "min": "Math.min", "max": "Math.max",
	},
	Python: {
		"sin": "math.sin", "cos": "math.cos", "tan": "math.tan",
		"exp": "math.exp", "log": "math.log", "sqrt": "math.sqrt", "abs": "abs",
		"asin": "math.asin", "acos": "math.acos", "atan": "math.atan",
		"atan2": "math.atan2", "pow": "pow", "min": "min", "max": "max",
	},
	CSharp: {
		"sin": "Math.Sin", "cos": "Math.Cos", "tan": "Math.Tan",
		"exp": "Math.Exp", "log": "Math.Log", "sqrt": "Math.Sqrt", "abs": "Math.Abs",
		"asin": "Math.Asin", "acos": "Math.Acos", "atan": "Math.Atan",
		"atan2": "Math.Atan2", "pow": "Math.Pow", "min": "Math.Min", "max": "Math.Max",
	},
}
