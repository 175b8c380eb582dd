// SPDX-License-Identifier: Apache-2.0

// Package saturate implements the Rewrite driver of spec §4.H: a bounded
// equality-saturation loop over an *egraph.EGraph using the pattern engine
// of internal/pattern, applying three layers of rewrite rules (core,
// algebraic, functional) until a fixed point or an iteration cap is hit.
package saturate

import "github.com/mfagerlund/gradientscript/internal/pattern"

// Rule is one rewrite: every match of LHS against a class is instantiated
// as RHS and merged into that class.
type Rule struct {
	Name string
	LHS  pattern.Pattern
	RHS  pattern.Pattern
}

func must(name, lhs, rhs string) Rule {
	l, err := pattern.Parse(lhs)
	if err != nil {
		panic("saturate: bad rule " + name + ": " + err.Error())
	}
	r, err := pattern.Parse(rhs)
	if err != nil {
		panic("saturate: bad rule " + name + ": " + err.Error())
	}
	return Rule{Name: name, LHS: l, RHS: r}
}

// bidirectional registers both a rule and its reverse, since equality
// saturation (unlike term rewriting) has no preferred direction until
// extraction picks a winner (spec §4.H). The reverse is not registered
// when its left-hand side would be a bare pattern variable: such a rule
// matches every class and adds fresh terms to each one on every iteration.
func bidirectional(name, a, b string) []Rule {
	forward := must(name, a, b)
	if _, bare := forward.RHS.(pattern.Var); bare {
		return []Rule{forward}
	}
	return []Rule{forward, must(name+"-rev", b, a)}
}

// CoreRules: commutativity, associativity, identities, annihilators,
// self-inverse, double negation, negation propagation (spec §4.H).
var CoreRules = concat(
	bidirectional("add-comm", "(+ ?a ?b)", "(+ ?b ?a)"),
	bidirectional("mul-comm", "(* ?a ?b)", "(* ?b ?a)"),
	bidirectional("add-assoc", "(+ (+ ?a ?b) ?c)", "(+ ?a (+ ?b ?c))"),
	bidirectional("mul-assoc", "(* (* ?a ?b) ?c)", "(* ?a (* ?b ?c))"),
	bidirectional("add-zero", "(+ ?a 0)", "?a"),
	bidirectional("sub-zero", "(- ?a 0)", "?a"),
	bidirectional("mul-one", "(* ?a 1)", "?a"),
	bidirectional("mul-zero", "(* ?a 0)", "0"),
	bidirectional("div-one", "(/ ?a 1)", "?a"),
	bidirectional("div-zero-numer", "(/ 0 ?a)", "0"),
	bidirectional("pow-one", "(^ ?a 1)", "?a"),
	bidirectional("pow-zero", "(^ ?a 0)", "1"),
	bidirectional("sub-self", "(- ?a ?a)", "0"),
	bidirectional("div-self", "(/ ?a ?a)", "1"),
	bidirectional("double-neg", "(neg (neg ?a))", "?a"),
	bidirectional("neg-add", "(neg (+ ?a ?b))", "(+ (neg ?a) (neg ?b))"),
	bidirectional("neg-mul", "(neg (* ?a ?b))", "(* (neg ?a) ?b)"),
	bidirectional("sub-as-add-neg", "(- ?a ?b)", "(+ ?a (neg ?b))"),
	bidirectional("neg-one-mul", "(* -1 ?a)", "(neg ?a)"),
)

// AlgebraicRules: distribution/factoring, reciprocal rewrite, exponent
// laws (spec §4.H).
var AlgebraicRules = concat(
	bidirectional("distribute", "(* ?a (+ ?b ?c))", "(+ (* ?a ?b) (* ?a ?c))"),
	bidirectional("div-as-mul-inv", "(/ ?a ?b)", "(* ?a (/ 1 ?b))"),
	bidirectional("pow2-as-mul", "(^ ?a 2)", "(* ?a ?a)"),
	bidirectional("pow-mul-add-exp", "(* (^ ?a ?n) (^ ?a ?m))", "(^ ?a (+ ?n ?m))"),
	bidirectional("pow-of-pow", "(^ (^ ?a ?n) ?m)", "(^ ?a (* ?n ?m))"),
)

// FunctionalRules: built-in function identities (spec §4.H).
var FunctionalRules = concat(
	bidirectional("sqrt-sq-self", "(* (sqrt ?a) (sqrt ?a))", "?a"),
	bidirectional("sqrt-of-product", "(sqrt (* ?a ?b))", "(* (sqrt ?a) (sqrt ?b))"),
	bidirectional("sqrt-of-square", "(sqrt (^ ?a 2))", "(abs ?a)"),
	bidirectional("sin-neg", "(sin (neg ?a))", "(neg (sin ?a))"),
	bidirectional("cos-neg", "(cos (neg ?a))", "(cos ?a)"),
	bidirectional("exp-log", "(exp (log ?a))", "?a"),
	bidirectional("log-exp", "(log (exp ?a))", "?a"),
)

// AllRules is the union of every layer, in the order the saturation loop
// should try them.
var AllRules = concat(CoreRules, AlgebraicRules, FunctionalRules)

func concat(lists ...[]Rule) []Rule {
	var out []Rule
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
