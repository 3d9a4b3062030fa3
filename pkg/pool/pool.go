package pool

import (
	"fmt"
	"math/cmplx"
	"math/rand"
	"sort"

	"github.com/wildfunctions/libcalculus/pkg/expr"
)

// ConstBound limits the real and imaginary parts of random constants.
const ConstBound = 20.0

// Pair is a generated function together with a reference evaluator built
// directly from math/cmplx, independent of the expr algebra.
type Pair struct {
	F   expr.Complex
	Ref func(complex128) complex128
	Ops int
}

// Op identifies one step applied while growing a random function.
type Op int

const (
	OpNeg Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpCompose
)

// Pool provides random building blocks for constructing functions.
type Pool interface {
	Name() string
	RandomBase(rng *rand.Rand) Pair
	RandomOp(rng *rand.Rand) Op
	RandomFunction(rng *rand.Rand, ops int) Pair
}

var registry = map[string]func() Pool{}

// Register adds a pool constructor to the registry.
func Register(name string, constructor func() Pool) {
	registry[name] = constructor
}

// Get returns a pool by name.
func Get(name string) (Pool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown pool: %s", name)
	}
	return ctor(), nil
}

// Names returns all registered pool names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for k := range registry {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RandomPoint draws a complex number with both parts in [-bound, bound].
func RandomPoint(rng *rand.Rand, bound float64) complex128 {
	return complex(rng.Float64()*2*bound-bound, rng.Float64()*2*bound-bound)
}

// base is one entry of a pool's base function table.
type base struct {
	f   func() expr.Complex
	ref func(complex128) complex128
}

var (
	identityBase = base{expr.Identity[complex128], func(z complex128) complex128 { return z }}
	expBase      = base{expr.Exp[complex128], cmplx.Exp}
	sinBase      = base{expr.Sin[complex128], cmplx.Sin}
	cosBase      = base{expr.Cos[complex128], cmplx.Cos}
	tanBase      = base{expr.Tan[complex128], cmplx.Tan}
	secBase      = base{expr.Sec[complex128], func(z complex128) complex128 { return 1 / cmplx.Cos(z) }}
	cscBase      = base{expr.Csc[complex128], func(z complex128) complex128 { return 1 / cmplx.Sin(z) }}
	cotBase      = base{expr.Cot[complex128], cmplx.Cot}
)

// randomBase picks uniformly among the table entries and a constant.
func randomBase(rng *rand.Rand, table []base) Pair {
	i := rng.Intn(len(table) + 1)
	if i == len(table) {
		return constant(RandomPoint(rng, ConstBound))
	}
	return Pair{F: table[i].f(), Ref: table[i].ref}
}

func constant(c complex128) Pair {
	return Pair{F: expr.Constant[complex128](c), Ref: func(complex128) complex128 { return c }}
}

// randomFunction grows a function by ops random steps. Binary steps take a
// constant operand with probability constRate (never for composition),
// put the accumulated function on either side, and alternate between the
// plain and the compound-assignment form of each operator.
func randomFunction(p Pool, rng *rand.Rand, ops int, constRate float64) Pair {
	acc := p.RandomBase(rng)
	for i := 0; i < ops; i++ {
		op := p.RandomOp(rng)
		if op == OpNeg {
			acc = neg(acc)
			continue
		}
		swap := rng.Intn(2) == 0
		compound := rng.Intn(2) == 0
		if op != OpCompose && rng.Float64() < constRate {
			acc = applyConst(op, acc, RandomPoint(rng, ConstBound), swap, compound)
			continue
		}
		lhs, rhs := acc, p.RandomBase(rng)
		if swap {
			lhs, rhs = rhs, lhs
		}
		acc = apply(op, lhs, rhs, compound)
	}
	acc.Ops = ops
	return acc
}

func neg(p Pair) Pair {
	ref := p.Ref
	return Pair{F: p.F.Neg(), Ref: func(z complex128) complex128 { return -ref(z) }}
}

func apply(op Op, lhs, rhs Pair, compound bool) Pair {
	f, g := lhs.F, rhs.F
	a, b := lhs.Ref, rhs.Ref
	var ref func(complex128) complex128

	switch op {
	case OpAdd:
		ref = func(z complex128) complex128 { return a(z) + b(z) }
		if compound {
			f.AddAssign(g)
		} else {
			f = f.Add(g)
		}
	case OpSub:
		ref = func(z complex128) complex128 { return a(z) - b(z) }
		if compound {
			f.SubAssign(g)
		} else {
			f = f.Sub(g)
		}
	case OpMul:
		ref = func(z complex128) complex128 { return a(z) * b(z) }
		if compound {
			f.MulAssign(g)
		} else {
			f = f.Mul(g)
		}
	case OpDiv:
		ref = func(z complex128) complex128 { return a(z) / b(z) }
		if compound {
			f.DivAssign(g)
		} else {
			f = f.Div(g)
		}
	case OpPow:
		ref = func(z complex128) complex128 { return cmplx.Pow(a(z), b(z)) }
		if compound {
			f.PowAssign(g)
		} else {
			f = f.Pow(g)
		}
	case OpCompose:
		ref = func(z complex128) complex128 { return a(b(z)) }
		if compound {
			f.ComposeAssign(g)
		} else {
			f = f.Compose(g)
		}
	default:
		return lhs
	}
	return Pair{F: f, Ref: ref}
}

// applyConst combines p with the constant c, with c on the left when
// swapped.
func applyConst(op Op, p Pair, c complex128, swapped, compound bool) Pair {
	f, a := p.F, p.Ref
	var ref func(complex128) complex128

	switch {
	case op == OpAdd && !swapped:
		ref = func(z complex128) complex128 { return a(z) + c }
		if compound {
			f.AddConstAssign(c)
		} else {
			f = f.AddConst(c)
		}
	case op == OpAdd:
		ref = func(z complex128) complex128 { return c + a(z) }
		f = expr.ConstAdd(c, f)
	case op == OpSub && !swapped:
		ref = func(z complex128) complex128 { return a(z) - c }
		if compound {
			f.SubConstAssign(c)
		} else {
			f = f.SubConst(c)
		}
	case op == OpSub:
		ref = func(z complex128) complex128 { return c - a(z) }
		f = expr.ConstSub(c, f)
	case op == OpMul && !swapped:
		ref = func(z complex128) complex128 { return a(z) * c }
		if compound {
			f.MulConstAssign(c)
		} else {
			f = f.MulConst(c)
		}
	case op == OpMul:
		ref = func(z complex128) complex128 { return c * a(z) }
		f = expr.ConstMul(c, f)
	case op == OpDiv && !swapped:
		ref = func(z complex128) complex128 { return a(z) / c }
		if compound {
			f.DivConstAssign(c)
		} else {
			f = f.DivConst(c)
		}
	case op == OpDiv:
		ref = func(z complex128) complex128 { return c / a(z) }
		f = expr.ConstDiv(c, f)
	case op == OpPow && !swapped:
		ref = func(z complex128) complex128 { return cmplx.Pow(a(z), c) }
		if compound {
			f.PowConstAssign(c)
		} else {
			f = f.PowConst(c)
		}
	case op == OpPow:
		ref = func(z complex128) complex128 { return cmplx.Pow(c, a(z)) }
		f = expr.ConstPow(c, f)
	default:
		return p
	}
	return Pair{F: f, Ref: ref}
}
