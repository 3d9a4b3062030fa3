// Package expr builds scalar functions as values. A Function pairs an
// evaluator with the LaTeX formula describing how it was built, and every
// combinator updates both together.
package expr

import (
	"strings"

	"github.com/wildfunctions/libcalculus/pkg/latex"
)

// Placeholder stands for the free variable inside a stored formula.
const Placeholder = "@"

// Function maps D to R. The zero value is not usable; build functions from
// presets, constants, New, or combinators.
type Function[D, R Scalar] struct {
	eval    func(D) R
	formula string
	op      latex.Op
}

// Complex and Real are the two common instantiations.
type (
	Complex = Function[complex128, complex128]
	Real    = Function[float64, float64]
)

// New wraps an arbitrary evaluator. formula should contain Placeholder
// wherever the variable appears.
func New[D, R Scalar](eval func(D) R, formula string, op latex.Op) Function[D, R] {
	return Function[D, R]{eval: eval, formula: formula, op: op}
}

// Call evaluates f at z.
func (f Function[D, R]) Call(z D) R {
	return f.eval(z)
}

// Eval returns the bare evaluator.
func (f Function[D, R]) Eval() func(D) R {
	return f.eval
}

// Op returns the operation that produced f.
func (f Function[D, R]) Op() latex.Op {
	return f.op
}

// Formula returns the stored formula with the placeholder intact.
func (f Function[D, R]) Formula() string {
	return f.formula
}

// LaTeX renders f with varname standing for the variable. varname is not
// escaped.
func (f Function[D, R]) LaTeX(varname string) string {
	return strings.ReplaceAll(f.formula, Placeholder, varname)
}

func (f Function[D, R]) String() string {
	return f.LaTeX("z")
}

func (f *Function[D, R]) set(eval func(D) R, formula string, op latex.Op) *Function[D, R] {
	f.eval, f.formula, f.op = eval, formula, op
	return f
}

// Compose returns f ∘ g, where g maps into f's domain. The result keeps f's
// operation tag.
func Compose[D, M, R Scalar](f Function[M, R], g Function[D, M]) Function[D, R] {
	outer, inner := f.eval, g.eval
	return Function[D, R]{
		eval:    func(z D) R { return outer(inner(z)) },
		formula: substitute(f.formula, g.formula, g.op),
		op:      f.op,
	}
}

func substitute(outer, inner string, innerOp latex.Op) string {
	return strings.ReplaceAll(outer, Placeholder, latex.ParenthesizeIf(inner, latex.OpFunc, innerOp))
}

// ComposeAssign replaces f with f ∘ g.
func (f *Function[D, R]) ComposeAssign(g Function[D, D]) *Function[D, R] {
	outer, inner := f.eval, g.eval
	return f.set(func(z D) R { return outer(inner(z)) }, substitute(f.formula, g.formula, g.op), f.op)
}

// Compose returns f ∘ g for g mapping D into itself.
func (f Function[D, R]) Compose(g Function[D, D]) Function[D, R] {
	f.ComposeAssign(g)
	return f
}

func infix(lhs, glyph, rhs string, lop, rop, op latex.Op) string {
	return latex.ParenthesizeIf(lhs, op, lop) + glyph + latex.ParenthesizeIf(rhs, op, rop)
}

// AddAssign replaces f with f + g.
func (f *Function[D, R]) AddAssign(g Function[D, R]) *Function[D, R] {
	lhs, rhs := f.eval, g.eval
	return f.set(func(z D) R { return lhs(z) + rhs(z) },
		infix(f.formula, " + ", g.formula, f.op, g.op, latex.OpAdd), latex.OpAdd)
}

// SubAssign replaces f with f - g.
func (f *Function[D, R]) SubAssign(g Function[D, R]) *Function[D, R] {
	lhs, rhs := f.eval, g.eval
	return f.set(func(z D) R { return lhs(z) - rhs(z) },
		infix(f.formula, " - ", g.formula, f.op, g.op, latex.OpSub), latex.OpSub)
}

// MulAssign replaces f with f * g.
func (f *Function[D, R]) MulAssign(g Function[D, R]) *Function[D, R] {
	lhs, rhs := f.eval, g.eval
	return f.set(func(z D) R { return lhs(z) * rhs(z) },
		infix(f.formula, ` \cdot `, g.formula, f.op, g.op, latex.OpMul), latex.OpMul)
}

// DivAssign replaces f with f / g.
func (f *Function[D, R]) DivAssign(g Function[D, R]) *Function[D, R] {
	lhs, rhs := f.eval, g.eval
	return f.set(func(z D) R { return lhs(z) / rhs(z) },
		frac(f.formula, g.formula, f.op, g.op), latex.OpDiv)
}

func frac(num, den string, nop, dop latex.Op) string {
	return `\frac{` + latex.ParenthesizeIf(num, latex.OpDiv, nop) + `}{` + latex.ParenthesizeIf(den, latex.OpDiv, dop) + `}`
}

// PowAssign replaces f with f ^ g.
func (f *Function[D, R]) PowAssign(g Function[D, R]) *Function[D, R] {
	lhs, rhs := f.eval, g.eval
	return f.set(func(z D) R { return pow(lhs(z), rhs(z)) },
		power(f.formula, g.formula, f.op, g.op), latex.OpPowBase)
}

func power(base, exp string, bop, eop latex.Op) string {
	return `{` + latex.ParenthesizeIf(base, latex.OpPowBase, bop) + `}^{` + latex.ParenthesizeIf(exp, latex.OpPowExp, eop) + `}`
}

// Add returns f + g.
func (f Function[D, R]) Add(g Function[D, R]) Function[D, R] {
	f.AddAssign(g)
	return f
}

// Sub returns f - g.
func (f Function[D, R]) Sub(g Function[D, R]) Function[D, R] {
	f.SubAssign(g)
	return f
}

// Mul returns f * g.
func (f Function[D, R]) Mul(g Function[D, R]) Function[D, R] {
	f.MulAssign(g)
	return f
}

// Div returns f / g. Division by zero follows the range type.
func (f Function[D, R]) Div(g Function[D, R]) Function[D, R] {
	f.DivAssign(g)
	return f
}

// Pow returns f ^ g.
func (f Function[D, R]) Pow(g Function[D, R]) Function[D, R] {
	f.PowAssign(g)
	return f
}

// Neg returns -f.
func (f Function[D, R]) Neg() Function[D, R] {
	inner := f.eval
	return Function[D, R]{
		eval:    func(z D) R { return -inner(z) },
		formula: "-" + latex.ParenthesizeIf(f.formula, latex.OpNeg, f.op),
		op:      latex.OpNeg,
	}
}
