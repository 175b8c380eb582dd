// SPDX-License-Identifier: Apache-2.0
package parser

import "github.com/alecthomas/participle/v2/lexer"

// gsLexer tokenizes the GradientScript surface language of spec §6,
// grounded on the teacher's root-level grammar.KansoLexer (a
// lexer.MustSimple regex table consumed by participle). Order matters:
// earlier rules win on a tie, so multi-character operators are listed
// before their single-character prefixes.
var gsLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	{Name: "Number", Pattern: `\d+(\.\d+)?([eE][-+]?\d+)?`},
	{Name: "Nabla", Pattern: `\x{2207}`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Pow", Pattern: `\*\*`},
	{Name: "Punct", Pattern: `[-+*/^(),.{}:=]`},
})
