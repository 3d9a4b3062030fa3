// Package latex decides how formulas are stitched together: when an operand
// needs grouping and how constants are printed.
package latex

import (
	"math"
	"strconv"
)

// Parenthesize wraps expr in sized LaTeX parentheses.
func Parenthesize(expr string) string {
	return ` \left( ` + expr + ` \right) `
}

// ParenthesizeIf returns expr grouped if consuming it with newOp would
// otherwise change its meaning. lastOp is the operation that produced expr.
//
// Function arguments, fractions and exponents delimit themselves and are
// never wrapped.
func ParenthesizeIf(expr string, newOp, lastOp Op) string {
	switch newOp {
	case OpFunc, OpDiv, OpPowExp:
		return expr
	}
	if needsGroup(newOp, lastOp) {
		return Parenthesize(expr)
	}
	return expr
}

func needsGroup(newOp, lastOp Op) bool {
	switch {
	case (lastOp == OpAdd || lastOp == OpSub) && (newOp == OpMul || newOp == OpNeg):
		return true
	case lastOp != OpNone && newOp == OpPowBase:
		return true
	case lastOp == OpNeg && (newOp == OpAdd || newOp == OpSub || newOp == OpMul):
		return true
	}
	return false
}

// FmtConst prints a real or complex constant. Complex values print as
// "re", "im i" or "re + im i"; a negative imaginary part supplies its own
// sign. With parenthesize set, anything other than a non-negative real is
// grouped.
func FmtConst[T float64 | complex128](a T, parenthesize bool) string {
	var re, im float64
	switch v := any(a).(type) {
	case float64:
		re = v
	case complex128:
		re, im = real(v), imag(v)
	}

	var s string
	switch {
	case im == 0:
		s = fmtReal(re)
	case re == 0:
		s = fmtReal(im) + " i"
	case im > 0:
		s = fmtReal(re) + " + " + fmtReal(im) + " i"
	default:
		s = fmtReal(re) + fmtReal(im) + " i"
	}

	if parenthesize && (re < 0 || im != 0) {
		return Parenthesize(s)
	}
	return s
}

// fmtReal matches the default six significant digit stream formatting.
func fmtReal(x float64) string {
	switch {
	case math.IsInf(x, 1):
		return "inf"
	case math.IsInf(x, -1):
		return "-inf"
	case math.IsNaN(x):
		return "nan"
	}
	return strconv.FormatFloat(x, 'g', 6, 64)
}
