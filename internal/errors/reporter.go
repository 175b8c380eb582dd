// SPDX-License-Identifier: Apache-2.0
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/mfagerlund/gradientscript/internal/ast"
)

// CompilerError is a structured diagnostic. Every failure path named in
// spec §7 is surfaced as a value of this type rather than an untyped
// bailout (spec §9 "Error-as-value vs exception").
type CompilerError struct {
	Kind     Kind
	Code     string
	Function string // function name the error occurred in, if any
	Message  string
	Position ast.Position
	Length   int
	Notes    []string
	HelpText string
}

func (e *CompilerError) Error() string {
	if e.Function != "" {
		return fmt.Sprintf("%s[%s] in %s: %s", e.Kind, e.Code, e.Function, e.Message)
	}
	return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
}

// New builds a CompilerError with the given kind/code/message.
func New(kind Kind, code, message string) *CompilerError {
	return &CompilerError{Kind: kind, Code: code, Message: message}
}

func (e *CompilerError) WithPosition(pos ast.Position) *CompilerError {
	e.Position = pos
	return e
}

func (e *CompilerError) WithFunction(name string) *CompilerError {
	e.Function = name
	return e
}

func (e *CompilerError) WithNote(note string) *CompilerError {
	e.Notes = append(e.Notes, note)
	return e
}

func (e *CompilerError) WithHelp(help string) *CompilerError {
	e.HelpText = help
	return e
}

// Reporter formats CompilerErrors against a source file, in the teacher's
// Rust-like caret style (internal/errors.ErrorReporter).
type Reporter struct {
	filename string
	lines    []string
	// CommentPrefix is "//" or "#" depending on target dialect (spec §6:
	// diagnostic lines merged into stdout must remain valid source).
	CommentPrefix string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename:      filename,
		lines:         strings.Split(source, "\n"),
		CommentPrefix: "//",
	}
}

// Format renders one CompilerError as a multi-line diagnostic, color-coded
// the way the teacher's ErrorReporter.FormatError does, with every line
// prefixed by CommentPrefix so the output stays valid source under
// `cmd 2>&1` (spec §6).
func (r *Reporter) Format(e *CompilerError) string {
	var b strings.Builder
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	prefix := r.CommentPrefix + " "

	header := fmt.Sprintf("%s[%s]: %s", red(string(e.Kind)), e.Code, bold(e.Message))
	b.WriteString(prefix + header + "\n")

	if e.Position.IsValid() {
		b.WriteString(fmt.Sprintf("%s%s %s:%d:%d\n", prefix, dim("-->"), r.filename, e.Position.Line, e.Position.Column))
		if e.Position.Line > 0 && e.Position.Line <= len(r.lines) {
			line := r.lines[e.Position.Line-1]
			b.WriteString(fmt.Sprintf("%s%s\n", prefix, line))
			length := e.Length
			if length < 1 {
				length = 1
			}
			marker := strings.Repeat(" ", max0(e.Position.Column-1)) + strings.Repeat("^", length)
			b.WriteString(fmt.Sprintf("%s%s\n", prefix, red(marker)))
		}
	}

	for _, note := range e.Notes {
		b.WriteString(fmt.Sprintf("%snote: %s\n", prefix, note))
	}
	if e.HelpText != "" {
		b.WriteString(fmt.Sprintf("%shelp: %s\n", prefix, e.HelpText))
	}
	return b.String()
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
