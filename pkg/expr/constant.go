package expr

import "github.com/wildfunctions/libcalculus/pkg/latex"

// Constant-operand variants. The constant is printed with latex.FmtConst
// rather than rendered as a formula.

// AddConstAssign replaces f with f + a.
func (f *Function[D, R]) AddConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return inner(z) + a },
		latex.ParenthesizeIf(f.formula, latex.OpAdd, f.op)+" + "+latex.FmtConst(a, true), latex.OpAdd)
}

// SubConstAssign replaces f with f - a.
func (f *Function[D, R]) SubConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return inner(z) - a },
		latex.ParenthesizeIf(f.formula, latex.OpSub, f.op)+" - "+latex.FmtConst(a, true), latex.OpSub)
}

// LSubConstAssign replaces f with a - f.
func (f *Function[D, R]) LSubConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return a - inner(z) },
		latex.FmtConst(a, true)+" - "+latex.ParenthesizeIf(f.formula, latex.OpSub, f.op), latex.OpSub)
}

// MulConstAssign replaces f with a * f.
func (f *Function[D, R]) MulConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return a * inner(z) },
		latex.FmtConst(a, true)+` \cdot `+latex.ParenthesizeIf(f.formula, latex.OpMul, f.op), latex.OpMulConst)
}

// DivConstAssign replaces f with f / a.
func (f *Function[D, R]) DivConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return inner(z) / a },
		`\frac{`+f.formula+`}{`+latex.FmtConst(a, false)+`}`, latex.OpDiv)
}

// LDivConstAssign replaces f with a / f.
func (f *Function[D, R]) LDivConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return a / inner(z) },
		`\frac{`+latex.FmtConst(a, false)+`}{`+f.formula+`}`, latex.OpDiv)
}

// PowConstAssign replaces f with f ^ a.
func (f *Function[D, R]) PowConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return pow(inner(z), a) },
		`{`+latex.ParenthesizeIf(f.formula, latex.OpPowBase, f.op)+`}^{`+latex.FmtConst(a, false)+`}`, latex.OpPowBase)
}

// LPowConstAssign replaces f with a ^ f.
func (f *Function[D, R]) LPowConstAssign(a R) *Function[D, R] {
	inner := f.eval
	return f.set(func(z D) R { return pow(a, inner(z)) },
		`{`+latex.FmtConst(a, true)+`}^{`+f.formula+`}`, latex.OpPowExp)
}

// AddConst returns f + a.
func (f Function[D, R]) AddConst(a R) Function[D, R] {
	f.AddConstAssign(a)
	return f
}

// SubConst returns f - a.
func (f Function[D, R]) SubConst(a R) Function[D, R] {
	f.SubConstAssign(a)
	return f
}

// LSubConst returns a - f.
func (f Function[D, R]) LSubConst(a R) Function[D, R] {
	f.LSubConstAssign(a)
	return f
}

// MulConst returns a * f.
func (f Function[D, R]) MulConst(a R) Function[D, R] {
	f.MulConstAssign(a)
	return f
}

// DivConst returns f / a.
func (f Function[D, R]) DivConst(a R) Function[D, R] {
	f.DivConstAssign(a)
	return f
}

// LDivConst returns a / f.
func (f Function[D, R]) LDivConst(a R) Function[D, R] {
	f.LDivConstAssign(a)
	return f
}

// PowConst returns f ^ a.
func (f Function[D, R]) PowConst(a R) Function[D, R] {
	f.PowConstAssign(a)
	return f
}

// LPowConst returns a ^ f.
func (f Function[D, R]) LPowConst(a R) Function[D, R] {
	f.LPowConstAssign(a)
	return f
}

// ConstAdd returns a + f.
func ConstAdd[D, R Scalar](a R, f Function[D, R]) Function[D, R] {
	inner := f.eval
	return Function[D, R]{
		eval:    func(z D) R { return a + inner(z) },
		formula: latex.FmtConst(a, true) + " + " + latex.ParenthesizeIf(f.formula, latex.OpAdd, f.op),
		op:      latex.OpAdd,
	}
}

// ConstSub returns a - f.
func ConstSub[D, R Scalar](a R, f Function[D, R]) Function[D, R] { return f.LSubConst(a) }

// ConstMul returns a * f.
func ConstMul[D, R Scalar](a R, f Function[D, R]) Function[D, R] { return f.MulConst(a) }

// ConstDiv returns a / f.
func ConstDiv[D, R Scalar](a R, f Function[D, R]) Function[D, R] { return f.LDivConst(a) }

// ConstPow returns a ^ f.
func ConstPow[D, R Scalar](a R, f Function[D, R]) Function[D, R] { return f.LPowConst(a) }
