// SPDX-License-Identifier: Apache-2.0

// Package parser is the external "lexer/parser of the surface DSL"
// collaborator named in spec §1/§6: its internals are not specified by
// the core, only its contract (source text in, a slice of *ast.Function
// out, or a structured parse error). It is implemented with
// github.com/alecthomas/participle/v2, a struct-tag grammar in exactly
// the style of the teacher's root-level grammar.Program/Module grammar,
// scaled down to GradientScript's much smaller surface language.
package parser

import "github.com/alecthomas/participle/v2/lexer"

// File is the root production: zero or more function declarations.
type File struct {
	Functions []*FunctionNode `@@*`
}

// FunctionNode is `function NAME(PARAMS) { BODY RETURN }` (spec §6).
type FunctionNode struct {
	Pos    lexer.Position
	Name   string        `"function" @Ident "("`
	Params []*ParamNode   `[ @@ { "," @@ } ] ")" "{"`
	Locals []*AssignNode  `@@*`
	Return *ExprNode      `"return" @@ "}"`
}

// ParamNode is `name`, `name∇`, `name: {field, field, …}`, or
// `name∇: {field, field, …}` (spec §6): the component annotation is
// independent of the gradient marker, so a non-gradient struct parameter
// (spec §8 S3's `v:{x,y}`) parses just as well as a gradient one.
type ParamNode struct {
	Pos        lexer.Position
	Name       string   `@Ident`
	Grad       bool     `[ @Nabla ]`
	Components []string `[ ":" "{" @Ident { "," @Ident } "}" ]`
}

// AssignNode is one body-local `name = expr` statement.
type AssignNode struct {
	Pos  lexer.Position
	Name string    `@Ident "="`
	Expr *ExprNode `@@`
}

// ExprNode is the additive precedence level: Term (("+"|"-") Term)*.
type ExprNode struct {
	Left *TermNode  `@@`
	Rest []*AddTerm `@@*`
}

type AddTerm struct {
	Op   string    `@("+" | "-")`
	Term *TermNode `@@`
}

// TermNode is the multiplicative precedence level: Power (("*"|"/") Power)*.
type TermNode struct {
	Left *PowerNode  `@@`
	Rest []*MulPower `@@*`
}

type MulPower struct {
	Op    string     `@("*" | "/")`
	Power *PowerNode `@@`
}

// PowerNode is right-associative: Unary [ ("^"|"**") Power ].
type PowerNode struct {
	Base *UnaryNode `@@`
	Exp  *PowerNode `[ ("^" | "**") @@ ]`
}

// UnaryNode is an optional leading sign applied to a Postfix.
type UnaryNode struct {
	Op      string      `[ @("+" | "-") ]`
	Operand *PostfixNode `@@`
}

// PostfixNode applies zero or more `.field` component accesses.
type PostfixNode struct {
	Primary *PrimaryNode `@@`
	Fields  []string     `( "." @Ident )*`
}

// PrimaryNode is a literal, a call, a bare identifier, or a parenthesized
// sub-expression.
type PrimaryNode struct {
	Number *string    `  @Number`
	Call   *CallNode  `| @@`
	Ident  *string    `| @Ident`
	Paren  *ExprNode  `| "(" @@ ")"`
}

// CallNode invokes one of the recognized primitives of spec §3.
type CallNode struct {
	Name string      `@Ident "("`
	Args []*ExprNode `[ @@ { "," @@ } ] ")"`
}
