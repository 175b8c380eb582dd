// SPDX-License-Identifier: Apache-2.0
package ast

import (
	"sort"
	"strings"
)

// Structural serializes expr order-preservingly: two expressions are
// structurally equal iff their Structural output is equal (spec §4.A).
func Structural(e Expr) string {
	var b strings.Builder
	writeStructural(&b, e)
	return b.String()
}

func writeStructural(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Number:
		b.WriteString("num(")
		b.WriteString(fmtNumber(n.Value))
		b.WriteByte(')')
	case *Variable:
		b.WriteString("var(")
		b.WriteString(n.Name)
		b.WriteByte(')')
	case *Binary:
		b.WriteString("bin(")
		b.WriteString(string(n.Op))
		b.WriteByte(',')
		writeStructural(b, n.Left)
		b.WriteByte(',')
		writeStructural(b, n.Right)
		b.WriteByte(')')
	case *Unary:
		b.WriteString("un(")
		b.WriteString(string(n.Op))
		b.WriteByte(',')
		writeStructural(b, n.Operand)
		b.WriteByte(')')
	case *Call:
		b.WriteString("call(")
		b.WriteString(n.Name)
		for _, a := range n.Args {
			b.WriteByte(',')
			writeStructural(b, a)
		}
		b.WriteByte(')')
	case *Component:
		b.WriteString("comp(")
		writeStructural(b, n.Object)
		b.WriteByte(',')
		b.WriteString(n.Field)
		b.WriteByte(')')
	default:
		b.WriteString("???")
	}
}

// isCommutative reports whether op's two operands may be freely reordered.
func isCommutative(op BinOp) bool { return op == Add || op == Mul }

// Canonical serializes expr the way Structural does, except that the
// operands of commutative binaries are sorted by their own canonical
// string first. It is the fingerprint used for CSE (spec §4.A, §8.8).
func Canonical(e Expr) string {
	var b strings.Builder
	writeCanonical(&b, e)
	return b.String()
}

func writeCanonical(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Number:
		b.WriteString("num(")
		b.WriteString(fmtNumber(n.Value))
		b.WriteByte(')')
	case *Variable:
		b.WriteString("var(")
		b.WriteString(n.Name)
		b.WriteByte(')')
	case *Binary:
		l := Canonical(n.Left)
		r := Canonical(n.Right)
		if isCommutative(n.Op) && r < l {
			l, r = r, l
		}
		b.WriteString("bin(")
		b.WriteString(string(n.Op))
		b.WriteByte(',')
		b.WriteString(l)
		b.WriteByte(',')
		b.WriteString(r)
		b.WriteByte(')')
	case *Unary:
		b.WriteString("un(")
		b.WriteString(string(n.Op))
		b.WriteByte(',')
		writeCanonical(b, n.Operand)
		b.WriteByte(')')
	case *Call:
		b.WriteString("call(")
		b.WriteString(n.Name)
		for _, a := range n.Args {
			b.WriteByte(',')
			writeCanonical(b, a)
		}
		b.WriteByte(')')
	case *Component:
		b.WriteString("comp(")
		writeCanonical(b, n.Object)
		b.WriteByte(',')
		b.WriteString(n.Field)
		b.WriteByte(')')
	default:
		b.WriteString("???")
	}
}

// Equal reports structural equality.
func Equal(a, b Expr) bool { return Structural(a) == Structural(b) }

// Subst replaces every free occurrence of variable `name` with replacement,
// rebuilding the tree functionally (spec §4.A: subst(expr, name, replacement)).
func Subst(e Expr, name string, replacement Expr) Expr {
	switch n := e.(type) {
	case *Number:
		return n
	case *Variable:
		if n.Name == name {
			return replacement
		}
		return n
	case *Binary:
		return NewBinary(n.Op, Subst(n.Left, name, replacement), Subst(n.Right, name, replacement))
	case *Unary:
		return NewUnary(n.Op, Subst(n.Operand, name, replacement))
	case *Call:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Subst(a, name, replacement)
		}
		return NewCall(n.Name, args...)
	case *Component:
		return NewComponent(Subst(n.Object, name, replacement), n.Field)
	default:
		return n
	}
}

// IsZero reports whether e is the literal 0.
func IsZero(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.Value == 0
}

// IsOne reports whether e is the literal 1.
func IsOne(e Expr) bool {
	n, ok := e.(*Number)
	return ok && n.Value == 1
}

// IsConstant reports whether e contains no Variable node anywhere.
func IsConstant(e Expr) bool {
	switch n := e.(type) {
	case *Number:
		return true
	case *Variable:
		return false
	case *Binary:
		return IsConstant(n.Left) && IsConstant(n.Right)
	case *Unary:
		return IsConstant(n.Operand)
	case *Call:
		for _, a := range n.Args {
			if !IsConstant(a) {
				return false
			}
		}
		return true
	case *Component:
		return IsConstant(n.Object)
	default:
		return false
	}
}

// IsVariable reports whether e is a bare Variable, optionally named `name`.
func IsVariable(e Expr, name ...string) bool {
	v, ok := e.(*Variable)
	if !ok {
		return false
	}
	if len(name) == 0 {
		return true
	}
	return v.Name == name[0]
}

// Walk visits e and every descendant in pre-order.
func Walk(e Expr, visit func(Expr)) {
	visit(e)
	for _, c := range e.Children() {
		Walk(c, visit)
	}
}

// SortedKeys is a small helper used by structured-gradient printers to
// iterate component maps deterministically.
func SortedKeys(m map[string]Expr) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
