// SPDX-License-Identifier: Apache-2.0

// Package errors implements the structured diagnostics of spec §7: every
// failure the compiler core can raise carries a Kind, a stable code and a
// position, and is rendered with the teacher's Rust-style caret formatting
// (internal/errors.ErrorReporter in the teacher repo).
package errors

// Kind is one of the five error kinds enumerated in spec §7.
type Kind string

const (
	KindParse           Kind = "parse"
	KindType            Kind = "type"
	KindDifferentiation Kind = "differentiation"
	KindCodegen         Kind = "code-generation"
	KindVerification    Kind = "verification"
)

// Error code ranges, following the teacher's E00xx-per-concern convention
// (internal/errors/codes.go) extended with three new ranges this compiler
// needs that the teacher's Move dialect did not.
const (
	// E01xx: parse errors (owned by the external parser/lexer, but codes
	// are reserved here so diagnostics from every stage share one space).
	CodeUnexpectedToken = "E0100"
	CodeUnterminated    = "E0101"

	// E02xx: type errors.
	CodeUnknownFunction   = "E0200"
	CodeWrongArity        = "E0201"
	CodeMissingComponent  = "E0202"
	CodeStructMismatch    = "E0203"
	CodeUndefinedVariable = "E0204"
	CodeDuplicateLocal    = "E0205"
	CodeForwardReference  = "E0206"

	// E09xx: differentiation errors (spec §4.D).
	CodeUnsupportedPrimitive = "E0900"
	CodeVariableExponent     = "E0901"
	CodeNotImplemented       = "E0902"

	// E10xx: code-generation errors (spec §4.K).
	CodeInvalidArity = "E1000"

	// E11xx: verification errors (spec §4.J).
	CodeGradientMismatch = "E1100"
)
