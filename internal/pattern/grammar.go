// SPDX-License-Identifier: Apache-2.0

// Package pattern implements the Pattern engine of spec §4.G: a tiny
// S-expression grammar (atoms are number literals, bare identifiers, or
// ?name pattern variables; compounds are `(op child…)`), matching against
// e-classes, and instantiation of a matched rewrite back into the
// e-graph. Parsed the same way internal/parser parses the surface
// language: a github.com/alecthomas/participle/v2 struct-tag grammar over
// a tiny lexer, since participle is equally suited to this much smaller
// language.
package pattern

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Number", Pattern: `-?\d+(\.\d+)?`},
	{Name: "QVar", Pattern: `\?[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Op", Pattern: `\*\*|[+\-*/^]`},
	{Name: "Punct", Pattern: `[()]`},
})

// sexpr is the raw parse tree; Build converts it into a Pattern.
type sexpr struct {
	Num      *string    `  @Number`
	Var      *string    `| @QVar`
	Atom     *string    `| @Ident`
	Compound *compound  `| @@`
}

type compound struct {
	Head     string   `"(" @(Ident | Op)`
	Children []*sexpr `@@* ")"`
}

var sexprParser = participle.MustBuild[sexpr](
	participle.Lexer(patternLexer),
	participle.Elide("Whitespace"),
)

// Parse parses one S-expression pattern string, e.g. "(+ ?a ?b)".
func Parse(text string) (Pattern, error) {
	tree, err := sexprParser.ParseString("", text)
	if err != nil {
		return nil, err
	}
	return build(tree), nil
}
