package expr

import (
	"math"
	"math/cmplx"

	"github.com/wildfunctions/libcalculus/pkg/latex"
)

// Identity returns z ↦ z.
func Identity[T Scalar]() Function[T, T] {
	return Function[T, T]{eval: func(z T) T { return z }, formula: Placeholder, op: latex.OpNone}
}

func applied[T Scalar](formula string, fr func(float64) float64, fc func(complex128) complex128) Function[T, T] {
	return Function[T, T]{eval: lift[T](fr, fc), formula: formula, op: latex.OpFunc}
}

func named(cmd string) string {
	return cmd + `\left(` + Placeholder + `\right)`
}

// Sin returns z ↦ sin z.
func Sin[T Scalar]() Function[T, T] { return applied[T](named(`\sin`), math.Sin, cmplx.Sin) }

// Cos returns z ↦ cos z.
func Cos[T Scalar]() Function[T, T] { return applied[T](named(`\cos`), math.Cos, cmplx.Cos) }

// Tan returns z ↦ tan z.
func Tan[T Scalar]() Function[T, T] { return applied[T](named(`\tan`), math.Tan, cmplx.Tan) }

// Exp returns z ↦ e^z.
func Exp[T Scalar]() Function[T, T] { return applied[T](`e^{`+Placeholder+`}`, math.Exp, cmplx.Exp) }

// Sec returns z ↦ 1/cos z.
func Sec[T Scalar]() Function[T, T] {
	return applied[T](named(`\sec`),
		func(x float64) float64 { return 1 / math.Cos(x) },
		func(z complex128) complex128 { return 1 / cmplx.Cos(z) })
}

// Csc returns z ↦ 1/sin z.
func Csc[T Scalar]() Function[T, T] {
	return applied[T](named(`\csc`),
		func(x float64) float64 { return 1 / math.Sin(x) },
		func(z complex128) complex128 { return 1 / cmplx.Sin(z) })
}

// Cot returns z ↦ cot z.
func Cot[T Scalar]() Function[T, T] {
	return applied[T](named(`\cot`),
		func(x float64) float64 { return 1 / math.Tan(x) },
		cmplx.Cot)
}

// Re returns the real part, as a value of the range type.
func Re[T Scalar]() Function[T, T] {
	return applied[T](named(`\Re`),
		func(x float64) float64 { return x },
		func(z complex128) complex128 { return complex(real(z), 0) })
}

// Im returns the imaginary part, as a value of the range type.
func Im[T Scalar]() Function[T, T] {
	return applied[T](named(`\Im`),
		func(float64) float64 { return 0 },
		func(z complex128) complex128 { return complex(imag(z), 0) })
}

// Abs returns the magnitude, as a value of the range type.
func Abs[T Scalar]() Function[T, T] {
	return applied[T](`\left|`+Placeholder+`\right|`,
		math.Abs,
		func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) })
}

// Constant returns z ↦ c. Negative or complex constants are tagged as sums
// so that later products group them.
func Constant[D, R Scalar](c R) Function[D, R] {
	op := latex.OpNone
	if isNegOrComplex(c) {
		op = latex.OpAdd
	}
	return Function[D, R]{eval: func(D) R { return c }, formula: latex.FmtConst(c, false), op: op}
}

// Pi returns the constant π.
func Pi[D, R Scalar]() Function[D, R] {
	c := fromFloat[R](math.Pi)
	return Function[D, R]{eval: func(D) R { return c }, formula: `\pi`, op: latex.OpNone}
}

// E returns the constant e.
func E[D, R Scalar]() Function[D, R] {
	c := fromFloat[R](math.E)
	return Function[D, R]{eval: func(D) R { return c }, formula: `e`, op: latex.OpNone}
}

// If returns then where cond holds and zero elsewhere.
func If[D, R Scalar](cond Comparison[D], then Function[D, R]) Function[D, R] {
	return IfElse(cond, then, Constant[D](R(0)))
}

// IfElse selects then or otherwise depending on cond.
func IfElse[D, R Scalar](cond Comparison[D], then, otherwise Function[D, R]) Function[D, R] {
	test, a, b := cond.eval, then.eval, otherwise.eval
	return Function[D, R]{
		eval: func(z D) R {
			if test(z) {
				return a(z)
			}
			return b(z)
		},
		formula: `\begin{cases} ` + then.formula + ` & ` + cond.formula + ` \\ ` +
			otherwise.formula + ` & \text{otherwise} \end{cases}`,
		op: latex.OpIf,
	}
}
