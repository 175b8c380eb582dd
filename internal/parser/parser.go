// SPDX-License-Identifier: Apache-2.0
package parser

import (
	"github.com/alecthomas/participle/v2"

	"github.com/mfagerlund/gradientscript/internal/ast"
	"github.com/mfagerlund/gradientscript/internal/errors"
)

var gsParser = participle.MustBuild[File](
	participle.Lexer(gsLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseFile parses one GradientScript source file into an ordered list of
// functions (spec §6). The first parse error aborts the whole file (spec
// §7); later per-function errors are the caller's concern (internal/compile
// drives that recovery policy).
func ParseFile(filename, source string) ([]*ast.Function, error) {
	file, err := gsParser.ParseString(filename, source)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			pos := pe.Position()
			return nil, errors.New(errors.KindParse, errors.CodeUnexpectedToken, pe.Message()).
				WithPosition(ast.Position{Filename: pos.Filename, Offset: pos.Offset, Line: pos.Line, Column: pos.Column})
		}
		return nil, errors.New(errors.KindParse, errors.CodeUnexpectedToken, err.Error())
	}

	funcs := make([]*ast.Function, 0, len(file.Functions))
	for _, fn := range file.Functions {
		built, err := buildFunction(fn)
		if err != nil {
			return nil, err
		}
		funcs = append(funcs, built)
	}
	return funcs, nil
}
