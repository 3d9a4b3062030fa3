package expr

import (
	"math"
	"math/cmplx"
)

// Scalar is the set of domain and range types a Function can map between.
type Scalar interface {
	float64 | complex128
}

// lift picks the real or complex implementation of a pointwise function.
func lift[T Scalar](fr func(float64) float64, fc func(complex128) complex128) func(T) T {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return func(z T) T { return any(fr(any(z).(float64))).(T) }
	}
	return func(z T) T { return any(fc(any(z).(complex128))).(T) }
}

// fromFloat converts a real number into T.
func fromFloat[T Scalar](x float64) T {
	var zero T
	if _, ok := any(zero).(float64); ok {
		return any(x).(T)
	}
	return any(complex(x, 0)).(T)
}

// realPart is the value used for ordering comparisons.
func realPart[T Scalar](z T) float64 {
	switch v := any(z).(type) {
	case float64:
		return v
	case complex128:
		return real(v)
	}
	return math.NaN()
}

// Magnitude returns |z| for either scalar type.
func Magnitude[T Scalar](z T) float64 {
	switch v := any(z).(type) {
	case float64:
		return math.Abs(v)
	case complex128:
		return cmplx.Abs(v)
	}
	return math.NaN()
}

func pow[T Scalar](base, exp T) T {
	switch b := any(base).(type) {
	case float64:
		return any(math.Pow(b, any(exp).(float64))).(T)
	case complex128:
		return any(cmplx.Pow(b, any(exp).(complex128))).(T)
	}
	return base
}

func isNegOrComplex[T Scalar](c T) bool {
	switch v := any(c).(type) {
	case float64:
		return v < 0
	case complex128:
		return real(v) < 0 || imag(v) != 0
	}
	return false
}
