package expr

import "strings"

// EqTol is the absolute tolerance used by Eq and Ne.
const EqTol = 1e-6

// Comparison is a boolean predicate over D with its LaTeX form.
type Comparison[D Scalar] struct {
	eval    func(D) bool
	formula string
}

// NewComparison wraps an arbitrary predicate.
func NewComparison[D Scalar](eval func(D) bool, formula string) Comparison[D] {
	return Comparison[D]{eval: eval, formula: formula}
}

// Eval tests the predicate at z.
func (p Comparison[D]) Eval(z D) bool {
	return p.eval(z)
}

// LaTeX renders the predicate with varname standing for the variable.
func (p Comparison[D]) LaTeX(varname string) string {
	return strings.ReplaceAll(p.formula, Placeholder, varname)
}

// String renders the predicate with z as the variable.
func (p Comparison[D]) String() string {
	return p.LaTeX("z")
}

// Not returns ¬p.
func (p Comparison[D]) Not() Comparison[D] {
	inner := p.eval
	return Comparison[D]{
		eval:    func(z D) bool { return !inner(z) },
		formula: `\neg\left(` + p.formula + `\right)`,
	}
}

// OrAssign replaces p with p ∨ q. Both sides are always evaluated.
func (p *Comparison[D]) OrAssign(q Comparison[D]) *Comparison[D] {
	lhs, rhs := p.eval, q.eval
	p.eval = func(z D) bool {
		a, b := lhs(z), rhs(z)
		return a || b
	}
	p.formula = `\left(` + p.formula + `\right)\vee\left(` + q.formula + `\right)`
	return p
}

// AndAssign replaces p with p ∧ q. Both sides are always evaluated.
func (p *Comparison[D]) AndAssign(q Comparison[D]) *Comparison[D] {
	lhs, rhs := p.eval, q.eval
	p.eval = func(z D) bool {
		a, b := lhs(z), rhs(z)
		return a && b
	}
	p.formula = `\left(` + p.formula + `\right)\wedge\left(` + q.formula + `\right)`
	return p
}

// Or returns p ∨ q.
func (p Comparison[D]) Or(q Comparison[D]) Comparison[D] {
	p.OrAssign(q)
	return p
}

// And returns p ∧ q.
func (p Comparison[D]) And(q Comparison[D]) Comparison[D] {
	p.AndAssign(q)
	return p
}

func compare[D, R Scalar](f, g Function[D, R], glyph string, test func(a, b R) bool) Comparison[D] {
	lhs, rhs := f.eval, g.eval
	return Comparison[D]{
		eval:    func(z D) bool { return test(lhs(z), rhs(z)) },
		formula: f.formula + " " + glyph + " " + g.formula,
	}
}

// Ordering comparisons look at real parts on complex ranges.

// Gt holds where f > g.
func (f Function[D, R]) Gt(g Function[D, R]) Comparison[D] {
	return compare(f, g, ">", func(a, b R) bool { return realPart(a) > realPart(b) })
}

// Lt holds where f < g.
func (f Function[D, R]) Lt(g Function[D, R]) Comparison[D] {
	return compare(f, g, "<", func(a, b R) bool { return realPart(a) < realPart(b) })
}

// Ge holds where f ≥ g.
func (f Function[D, R]) Ge(g Function[D, R]) Comparison[D] {
	return compare(f, g, `\geq`, func(a, b R) bool { return realPart(a) >= realPart(b) })
}

// Le holds where f ≤ g.
func (f Function[D, R]) Le(g Function[D, R]) Comparison[D] {
	return compare(f, g, `\leq`, func(a, b R) bool { return realPart(a) <= realPart(b) })
}

// Eq holds where f and g agree within EqTol.
func (f Function[D, R]) Eq(g Function[D, R]) Comparison[D] {
	return compare(f, g, "=", func(a, b R) bool { return Magnitude(a-b) < EqTol })
}

// Ne is the negation of Eq, so it holds where either side is NaN.
func (f Function[D, R]) Ne(g Function[D, R]) Comparison[D] {
	return compare(f, g, `\neq`, func(a, b R) bool { return !(Magnitude(a-b) < EqTol) })
}
