package calculus

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/wildfunctions/libcalculus/pkg/expr"
	"github.com/wildfunctions/libcalculus/pkg/latex"
)

// Derivative returns z0 ↦ f'(z0) estimated with the Cauchy formula
//
//	f'(z0) = 1/(2πi) ∮ f(z)/(z-z0)² dz
//
// over a circle of the given radius around z0. tol and s are passed to
// Integrate. Points where the integral does not converge evaluate to NaN.
// f must be holomorphic on and inside the circle.
func Derivative(f expr.Complex, tol, radius float64, s *Settings) expr.Complex {
	return NthDerivative(f, 1, tol, radius, s)
}

// NthDerivative generalizes Derivative to order n ≥ 1:
//
//	f⁽ⁿ⁾(z0) = n!/(2πi) ∮ f(z)/(z-z0)ⁿ⁺¹ dz
func NthDerivative(f expr.Complex, n int, tol, radius float64, s *Settings) expr.Complex {
	at := cauchy(f, n, tol, radius, s.orDefault())
	return expr.New(func(z0 complex128) complex128 {
		v, err := at(z0)
		if err != nil {
			return cmplx.NaN()
		}
		return v
	}, derivativeFormula(f.Formula(), n), latex.OpFunc)
}

// DerivativeAt evaluates the n-th derivative of f at z0 like NthDerivative,
// but reports why the integral failed instead of returning NaN.
func DerivativeAt(f expr.Complex, n int, z0 complex128, tol, radius float64, s *Settings) (complex128, error) {
	return cauchy(f, n, tol, radius, s.orDefault())(z0)
}

// cauchy returns the evaluator behind NthDerivative. cfg is captured by
// value so later changes to the caller's settings have no effect.
func cauchy(f expr.Complex, n int, tol, radius float64, cfg Settings) func(complex128) (complex128, error) {
	eval := f.Eval()
	scale := complex(float64(factorial(n)), 0) / complex(0, 2*math.Pi)
	denom := func(d complex128) complex128 { return d * d }
	if n != 1 {
		power := complex(float64(n+1), 0)
		denom = func(d complex128) complex128 { return cmplx.Pow(d, power) }
	}

	return func(z0 complex128) (complex128, error) {
		integrand := expr.New(func(z complex128) complex128 {
			return eval(z) / denom(z-z0)
		}, "", latex.OpNone)

		v, err := Integrate(integrand, Circle(z0, radius), 0, 2*math.Pi, tol, &cfg)
		if err != nil {
			return cmplx.NaN(), fmt.Errorf("derivative at %v: %w", z0, err)
		}
		return scale * v, nil
	}
}

func derivativeFormula(inner string, n int) string {
	if n == 1 {
		return `\frac{d}{d` + expr.Placeholder + `}\left(` + inner + `\right)`
	}
	order := strconv.Itoa(n)
	return `\frac{d^{` + order + `}}{d` + expr.Placeholder + `^{` + order + `}}\left(` + inner + `\right)`
}

func factorial(n int) int {
	result := 1
	for ; n > 1; n-- {
		result *= n
	}
	return result
}

// DerivativeReal differentiates a real function with central finite
// differences. The contour formula behind Derivative has no real
// counterpart, so real functions take this path instead. step <= 0 uses
// the default step of the central formula.
func DerivativeReal(f expr.Real, step float64) expr.Real {
	eval := f.Eval()
	if step < 0 {
		step = 0
	}
	return expr.New(func(x float64) float64 {
		return fd.Derivative(eval, x, &fd.Settings{Formula: fd.Central, Step: step})
	}, derivativeFormula(f.Formula(), 1), latex.OpFunc)
}
