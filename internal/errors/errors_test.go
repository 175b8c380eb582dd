// SPDX-License-Identifier: Apache-2.0
package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

func TestNewBuildsCompilerError(t *testing.T) {
	err := New(KindDifferentiation, CodeUnsupportedPrimitive, "no rule for atan")
	assert.Equal(t, KindDifferentiation, err.Kind)
	assert.Equal(t, CodeUnsupportedPrimitive, err.Code)
	assert.Equal(t, "no rule for atan", err.Message)
}

func TestBuilderChainIsFluent(t *testing.T) {
	err := New(KindType, CodeUnknownFunction, "unknown function").
		WithFunction("square").
		WithPosition(ast.Position{Line: 2, Column: 4}).
		WithNote("did you mean sqrt?").
		WithHelp("check the spelling")
	assert.Equal(t, "square", err.Function)
	assert.Equal(t, 2, err.Position.Line)
	assert.Equal(t, []string{"did you mean sqrt?"}, err.Notes)
	assert.Equal(t, "check the spelling", err.HelpText)
}

func TestErrorStringIncludesFunctionWhenSet(t *testing.T) {
	err := New(KindType, CodeUnknownFunction, "boom").WithFunction("square")
	assert.Contains(t, err.Error(), "square")
	assert.Contains(t, err.Error(), "boom")
}

func TestErrorStringOmitsFunctionWhenUnset(t *testing.T) {
	err := New(KindType, CodeUnknownFunction, "boom")
	assert.NotContains(t, err.Error(), " in ")
}

func TestReporterFormatIncludesCaretUnderSourceLine(t *testing.T) {
	source := "function f(x) {\n  return x + ;\n}\n"
	r := NewReporter("f.gs", source)
	err := New(KindParse, CodeUnexpectedToken, "unexpected token").
		WithPosition(ast.Position{Line: 2, Column: 13}).
		WithHelp("expected an expression")

	out := r.Format(err)
	assert.Contains(t, out, "f.gs:2:13")
	assert.Contains(t, out, "return x + ;")
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "help: expected an expression")
}

func TestReporterFormatUsesCommentPrefixOnEveryLine(t *testing.T) {
	source := "x = 1\n"
	r := NewReporter("f.gs", source)
	r.CommentPrefix = "#"
	err := New(KindParse, CodeUnexpectedToken, "bad token").WithPosition(ast.Position{Line: 1, Column: 1})

	out := r.Format(err)
	for _, line := range splitNonEmpty(out) {
		assert.True(t, len(line) >= 1 && line[0] == '#', "line %q should start with comment prefix", line)
	}
}

func TestReporterFormatSkipsLocationWhenPositionInvalid(t *testing.T) {
	r := NewReporter("f.gs", "x = 1\n")
	err := New(KindVerification, CodeGradientMismatch, "mismatch")
	out := r.Format(err)
	assert.NotContains(t, out, "-->")
}

func splitNonEmpty(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == '\n' {
			if cur != "" {
				out = append(out, cur)
			}
			cur = ""
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
