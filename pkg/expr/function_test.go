package expr

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/cmplxs/cscalar"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/wildfunctions/libcalculus/pkg/latex"
)

var samplePoints = []complex128{
	complex(0.3, 0.1),
	complex(-1.2, 0.7),
	complex(2, -0.5),
	complex(0, 1.5),
}

func assertClose(t *testing.T, name string, got, want complex128) {
	t.Helper()
	if !cscalar.EqualWithinAbsOrRel(got, want, 1e-9, 1e-9) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertLaTeX[D, R Scalar](t *testing.T, f Function[D, R], want string) {
	t.Helper()
	if got := f.LaTeX("z"); got != want {
		t.Errorf("LaTeX() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestPointwiseArithmetic(t *testing.T) {
	f := Sin[complex128]()
	g := Exp[complex128]()

	ops := []struct {
		name string
		h    Complex
		want func(a, b complex128) complex128
	}{
		{"add", f.Add(g), func(a, b complex128) complex128 { return a + b }},
		{"sub", f.Sub(g), func(a, b complex128) complex128 { return a - b }},
		{"mul", f.Mul(g), func(a, b complex128) complex128 { return a * b }},
		{"div", f.Div(g), func(a, b complex128) complex128 { return a / b }},
		{"pow", f.Pow(g), cmplx.Pow},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			for _, z := range samplePoints {
				assertClose(t, op.name, op.h.Call(z), op.want(f.Call(z), g.Call(z)))
			}
		})
	}
}

func TestCompose(t *testing.T) {
	f := Cos[complex128]().MulConst(3)
	g := Exp[complex128]().AddConst(complex(0, 1))
	h := f.Compose(g)
	for _, z := range samplePoints {
		assertClose(t, "compose", h.Call(z), f.Call(g.Call(z)))
	}
	if h.Op() != f.Op() {
		t.Errorf("Compose tag = %v, want %v", h.Op(), f.Op())
	}
}

func TestComposeAcrossDomains(t *testing.T) {
	path := New(func(s float64) complex128 { return cmplx.Exp(complex(0, s)) }, `e^{i`+Placeholder+`}`, latex.OpFunc)
	h := Compose(Identity[complex128]().PowConst(2), path)
	got := h.Call(math.Pi / 2)
	assertClose(t, "path^2", got, -1)
	if h.LaTeX("t") != `{e^{it}}^{2}` {
		t.Errorf("LaTeX = %q", h.LaTeX("t"))
	}
}

func TestNeg(t *testing.T) {
	f := Sin[complex128]().Neg()
	for _, z := range samplePoints {
		assertClose(t, "neg", f.Call(z), -cmplx.Sin(z))
	}
	if f.Op() != latex.OpNeg {
		t.Errorf("Neg tag = %v", f.Op())
	}
}

func TestConstantCombinations(t *testing.T) {
	f := Sin[complex128]()
	a := complex(1.5, -0.5)
	cases := []struct {
		name string
		h    Complex
		want func(v complex128) complex128
	}{
		{"addconst", f.AddConst(a), func(v complex128) complex128 { return v + a }},
		{"subconst", f.SubConst(a), func(v complex128) complex128 { return v - a }},
		{"lsubconst", f.LSubConst(a), func(v complex128) complex128 { return a - v }},
		{"mulconst", f.MulConst(a), func(v complex128) complex128 { return a * v }},
		{"divconst", f.DivConst(a), func(v complex128) complex128 { return v / a }},
		{"ldivconst", f.LDivConst(a), func(v complex128) complex128 { return a / v }},
		{"powconst", f.PowConst(a), func(v complex128) complex128 { return cmplx.Pow(v, a) }},
		{"lpowconst", f.LPowConst(a), func(v complex128) complex128 { return cmplx.Pow(a, v) }},
		{"ConstAdd", ConstAdd(a, f), func(v complex128) complex128 { return a + v }},
		{"ConstSub", ConstSub(a, f), func(v complex128) complex128 { return a - v }},
		{"ConstMul", ConstMul(a, f), func(v complex128) complex128 { return a * v }},
		{"ConstDiv", ConstDiv(a, f), func(v complex128) complex128 { return a / v }},
		{"ConstPow", ConstPow(a, f), func(v complex128) complex128 { return cmplx.Pow(a, v) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, z := range samplePoints {
				assertClose(t, tc.name, tc.h.Call(z), tc.want(f.Call(z)))
			}
		})
	}
}

func TestCompoundAssignMutatesReceiverOnly(t *testing.T) {
	f := Identity[float64]()
	orig := f
	f.AddAssign(Sin[float64]()).MulConstAssign(2)

	if got := f.Call(1); !scalar.EqualWithinAbs(got, 2*(1+math.Sin(1)), 1e-12) {
		t.Errorf("f(1) = %v", got)
	}
	if got := orig.Call(1); got != 1 {
		t.Errorf("copy changed: orig(1) = %v", got)
	}
	assertLaTeX(t, f, `2 \cdot  \left( z + \sin\left(z\right) \right) `)
	assertLaTeX(t, orig, `z`)
}

func TestSelfAssign(t *testing.T) {
	f := Identity[float64]().AddConst(1)
	f.MulAssign(f)
	if got := f.Call(2); got != 9 {
		t.Errorf("(z+1)^2 at 2 = %v, want 9", got)
	}
}

func TestDivisionByZeroPropagates(t *testing.T) {
	f := Constant[float64](1.0).Div(Identity[float64]())
	if !math.IsInf(f.Call(0), 1) {
		t.Errorf("1/0 = %v, want +Inf", f.Call(0))
	}
	g := f.AddConst(1).Mul(Sin[float64]())
	if !math.IsNaN(g.Call(0)) {
		t.Errorf("(1/0 + 1) * sin(0) = %v, want NaN", g.Call(0))
	}
}

func TestPresetValues(t *testing.T) {
	x := 0.7
	reals := []struct {
		name string
		f    Real
		want float64
	}{
		{"sin", Sin[float64](), math.Sin(x)},
		{"cos", Cos[float64](), math.Cos(x)},
		{"tan", Tan[float64](), math.Tan(x)},
		{"sec", Sec[float64](), 1 / math.Cos(x)},
		{"csc", Csc[float64](), 1 / math.Sin(x)},
		{"cot", Cot[float64](), 1 / math.Tan(x)},
		{"exp", Exp[float64](), math.Exp(x)},
		{"re", Re[float64](), x},
		{"im", Im[float64](), 0},
		{"abs", Abs[float64]().Compose(Identity[float64]().Neg()), x},
		{"pi", Pi[float64, float64](), math.Pi},
		{"e", E[float64, float64](), math.E},
		{"const", Constant[float64](2.5), 2.5},
	}
	for _, tc := range reals {
		if got := tc.f.Call(x); !scalar.EqualWithinAbs(got, tc.want, 1e-12) {
			t.Errorf("%s(%v) = %v, want %v", tc.name, x, got, tc.want)
		}
	}

	z := complex(0.7, -1.1)
	complexes := []struct {
		name string
		f    Complex
		want complex128
	}{
		{"sin", Sin[complex128](), cmplx.Sin(z)},
		{"sec", Sec[complex128](), 1 / cmplx.Cos(z)},
		{"cot", Cot[complex128](), cmplx.Cot(z)},
		{"re", Re[complex128](), 0.7},
		{"im", Im[complex128](), -1.1},
		{"abs", Abs[complex128](), complex(cmplx.Abs(z), 0)},
		{"pi", Pi[complex128, complex128](), math.Pi},
	}
	for _, tc := range complexes {
		assertClose(t, tc.name, tc.f.Call(z), tc.want)
	}
}

func TestPresetLaTeX(t *testing.T) {
	cases := []struct {
		f    Complex
		want string
	}{
		{Identity[complex128](), `z`},
		{Sin[complex128](), `\sin\left(z\right)`},
		{Cos[complex128](), `\cos\left(z\right)`},
		{Tan[complex128](), `\tan\left(z\right)`},
		{Sec[complex128](), `\sec\left(z\right)`},
		{Csc[complex128](), `\csc\left(z\right)`},
		{Cot[complex128](), `\cot\left(z\right)`},
		{Exp[complex128](), `e^{z}`},
		{Re[complex128](), `\Re\left(z\right)`},
		{Im[complex128](), `\Im\left(z\right)`},
		{Abs[complex128](), `\left|z\right|`},
		{Pi[complex128, complex128](), `\pi`},
		{E[complex128, complex128](), `e`},
		{Constant[complex128](complex(1, -2)), `1-2 i`},
	}
	for _, tc := range cases {
		assertLaTeX(t, tc.f, tc.want)
	}
}

func TestRenderVarname(t *testing.T) {
	f := Sin[complex128]().Mul(Exp[complex128]())
	if got := f.LaTeX(`\omega`); got != `\sin\left(\omega\right) \cdot e^{\omega}` {
		t.Errorf("LaTeX(omega) = %q", got)
	}
	if f.String() != f.LaTeX("z") {
		t.Errorf("String() = %q", f.String())
	}
}

func TestConstantRendering(t *testing.T) {
	c := Constant[float64](3.0)
	assertLaTeX(t, c, "3")
	if c.Op() != latex.OpNone {
		t.Errorf("positive constant tag = %v", c.Op())
	}
	if Constant[float64](-3.0).Op() != latex.OpAdd {
		t.Error("negative constant should carry the add tag")
	}
	if Constant[complex128](complex(0, 1)).Op() != latex.OpAdd {
		t.Error("complex constant should carry the add tag")
	}
	// the add tag groups a negative constant under a product
	assertLaTeX(t, Constant[float64](-3.0).Mul(Identity[float64]()), ` \left( -3 \right)  \cdot z`)
}

func TestPrecedence(t *testing.T) {
	sin, cos, exp, id := Sin[complex128](), Cos[complex128](), Exp[complex128](), Identity[complex128]()

	sum := sin.Add(cos)
	assertLaTeX(t, sum, `\sin\left(z\right) + \cos\left(z\right)`)

	composed := sum.Compose(exp)
	assertLaTeX(t, composed, `\sin\left(e^{z}\right) + \cos\left(e^{z}\right)`)
	if composed.Op() != latex.OpAdd {
		t.Errorf("composed tag = %v, want add", composed.Op())
	}
	assertLaTeX(t, composed.Mul(exp),
		` \left( \sin\left(e^{z}\right) + \cos\left(e^{z}\right) \right)  \cdot e^{z}`)

	cases := []struct {
		name string
		f    Complex
		want string
	}{
		{"product of sums", id.Add(sin).Mul(id.Sub(cos)),
			` \left( z + \sin\left(z\right) \right)  \cdot  \left( z - \cos\left(z\right) \right) `},
		{"sum of products", id.Mul(sin).Add(id.Mul(cos)),
			`z \cdot \sin\left(z\right) + z \cdot \cos\left(z\right)`},
		{"negated sum", id.Add(sin).Neg(), `- \left( z + \sin\left(z\right) \right) `},
		{"negated function", sin.Neg(), `-\sin\left(z\right)`},
		{"negation in sum", sin.Neg().Add(cos), ` \left( -\sin\left(z\right) \right)  + \cos\left(z\right)`},
		{"quotient", id.Add(sin).Div(id.Mul(cos)), `\frac{z + \sin\left(z\right)}{z \cdot \cos\left(z\right)}`},
		{"bare base", id.Pow(sin), `{z}^{\sin\left(z\right)}`},
		{"function base", sin.Pow(id), `{ \left( \sin\left(z\right) \right) }^{z}`},
		{"sum exponent", exp.Pow(id.Add(cos)), `{ \left( e^{z} \right) }^{z + \cos\left(z\right)}`},
		{"difference of sum", id.Sub(sin.Add(cos)), `z - \sin\left(z\right) + \cos\left(z\right)`},
		{"constant power", id.PowConst(2), `{z}^{2}`},
		{"constant base", id.LPowConst(complex(0, 2)), `{ \left( 2 i \right) }^{z}`},
		{"scaled sum", id.Add(sin).MulConst(2), `2 \cdot  \left( z + \sin\left(z\right) \right) `},
		{"shifted", id.AddConst(-1), `z +  \left( -1 \right) `},
		{"reversed shift", id.LSubConst(1), `1 - z`},
		{"constant quotient", sin.DivConst(2), `\frac{\sin\left(z\right)}{2}`},
		{"reciprocal", sin.LDivConst(1), `\frac{1}{\sin\left(z\right)}`},
		{"left constant sum", ConstAdd(complex(2, 0), id.Neg()), `2 +  \left( -z \right) `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertLaTeX(t, tc.f, tc.want)
		})
	}
}

func TestFormulaOnlyGrows(t *testing.T) {
	f := Identity[float64]()
	prev := len(f.Formula())
	for i := 0; i < 10; i++ {
		f = f.Compose(Sin[float64]().Add(Identity[float64]()))
		if n := len(f.Formula()); n <= prev {
			t.Fatalf("formula shrank at step %d: %d <= %d", i, n, prev)
		} else {
			prev = n
		}
	}
}
