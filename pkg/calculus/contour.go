package calculus

import (
	"math/cmplx"

	"github.com/wildfunctions/libcalculus/pkg/expr"
	"github.com/wildfunctions/libcalculus/pkg/latex"
)

// Line is the identity parametrization of the real line.
func Line() expr.Function[float64, float64] {
	return expr.Identity[float64]()
}

// Segment runs from a to b as t goes from 0 to 1.
func Segment(a, b complex128) expr.Function[float64, complex128] {
	d := b - a
	return expr.New(func(t float64) complex128 { return a + d*complex(t, 0) },
		latex.FmtConst(a, true)+` + `+latex.FmtConst(d, true)+` \cdot `+expr.Placeholder, latex.OpAdd)
}

// Circle is the counter-clockwise circle center + radius·e^{it}. Integrate
// it over [0, 2π] for one full turn.
func Circle(center complex128, radius float64) expr.Function[float64, complex128] {
	r := complex(radius, 0)
	return expr.New(func(t float64) complex128 { return center + r*cmplx.Exp(complex(0, t)) },
		latex.FmtConst(center, true)+` + `+latex.FmtConst(radius, true)+` \cdot e^{i`+expr.Placeholder+`}`, latex.OpAdd)
}
