package job

import (
	"fmt"

	"github.com/wildfunctions/libcalculus/pkg/calculus"
	"github.com/wildfunctions/libcalculus/pkg/expr"
)

// Expr is a function tree. A leaf names a Preset; an inner node names an
// Op applied to Args.
//
//	{op: div, args: [{preset: const, re: 1}, {preset: id}]}
//
// Ops: add and mul take two or more arguments, sub div pow and compose take
// two, neg takes one, and if takes one or two (then, otherwise) plus When.
type Expr struct {
	Preset string  `yaml:"preset,omitempty"`
	Re     float64 `yaml:"re,omitempty"`
	Im     float64 `yaml:"im,omitempty"`
	Op     string  `yaml:"op,omitempty"`
	Args   []Expr  `yaml:"args,omitempty"`
	When   *Cond   `yaml:"when,omitempty"`
}

// Cond is a predicate tree. A leaf compares two functions with Cmp (gt lt
// ge le eq ne); All, Any and Not combine nested conditions.
type Cond struct {
	Cmp  string `yaml:"cmp,omitempty"`
	Args []Expr `yaml:"args,omitempty"`
	All  []Cond `yaml:"all,omitempty"`
	Any  []Cond `yaml:"any,omitempty"`
	Not  *Cond  `yaml:"not,omitempty"`
}

var presets = map[string]func() expr.Complex{
	"id":  expr.Identity[complex128],
	"sin": expr.Sin[complex128],
	"cos": expr.Cos[complex128],
	"tan": expr.Tan[complex128],
	"sec": expr.Sec[complex128],
	"csc": expr.Csc[complex128],
	"cot": expr.Cot[complex128],
	"exp": expr.Exp[complex128],
	"re":  expr.Re[complex128],
	"im":  expr.Im[complex128],
	"abs": expr.Abs[complex128],
	"pi":  expr.Pi[complex128, complex128],
	"e":   expr.E[complex128, complex128],
}

// Build turns the tree into a function.
func (e Expr) Build() (expr.Complex, error) {
	if e.Preset != "" {
		if e.Op != "" || len(e.Args) > 0 || e.When != nil {
			return expr.Complex{}, fmt.Errorf("preset %q cannot have op, args or when", e.Preset)
		}
		if e.Preset == "const" {
			return expr.Constant[complex128](e.constant()), nil
		}
		p, ok := presets[e.Preset]
		if !ok {
			return expr.Complex{}, fmt.Errorf("unknown preset %q", e.Preset)
		}
		return p(), nil
	}

	if e.When != nil && e.Op != "if" {
		return expr.Complex{}, fmt.Errorf("when is only valid for if, not %q", e.Op)
	}

	args := make([]expr.Complex, len(e.Args))
	for i, a := range e.Args {
		f, err := a.Build()
		if err != nil {
			return expr.Complex{}, fmt.Errorf("%s args[%d]: %w", e.Op, i, err)
		}
		args[i] = f
	}

	switch e.Op {
	case "":
		return expr.Complex{}, fmt.Errorf("expression needs a preset or an op")
	case "neg":
		if len(args) != 1 {
			return expr.Complex{}, arity(e.Op, "one", len(args))
		}
		return args[0].Neg(), nil
	case "add", "mul":
		if len(args) < 2 {
			return expr.Complex{}, arity(e.Op, "at least two", len(args))
		}
		acc := e.binary(e.Op, args[0], args[1], 0, 1)
		for i := 2; i < len(args); i++ {
			acc = e.binary(e.Op, acc, args[i], -1, i)
		}
		return acc, nil
	case "sub", "div", "pow":
		if len(args) != 2 {
			return expr.Complex{}, arity(e.Op, "two", len(args))
		}
		return e.binary(e.Op, args[0], args[1], 0, 1), nil
	case "compose":
		if len(args) != 2 {
			return expr.Complex{}, arity(e.Op, "two", len(args))
		}
		return args[0].Compose(args[1]), nil
	case "if":
		if e.When == nil {
			return expr.Complex{}, fmt.Errorf("if needs when")
		}
		cond, err := e.When.Build()
		if err != nil {
			return expr.Complex{}, fmt.Errorf("when: %w", err)
		}
		switch len(args) {
		case 1:
			return expr.If(cond, args[0]), nil
		case 2:
			return expr.IfElse(cond, args[0], args[1]), nil
		}
		return expr.Complex{}, arity(e.Op, "one or two", len(args))
	default:
		return expr.Complex{}, fmt.Errorf("unknown op %q", e.Op)
	}
}

func (e Expr) constant() complex128 {
	return complex(e.Re, e.Im)
}

// isConst reports whether argument i is a constant leaf. -1 never is.
func (e Expr) isConst(i int) bool {
	return i >= 0 && e.Args[i].Preset == "const"
}

// binary combines f and g, which came from argument positions i and j.
// Constant leaves go through the constant forms so they print as numbers
// and group like constants.
func (e Expr) binary(op string, f, g expr.Complex, i, j int) expr.Complex {
	switch {
	case e.isConst(j) && !e.isConst(i):
		c := e.Args[j].constant()
		switch op {
		case "add":
			return f.AddConst(c)
		case "sub":
			return f.SubConst(c)
		case "mul":
			return expr.ConstMul(c, f)
		case "div":
			return f.DivConst(c)
		case "pow":
			return f.PowConst(c)
		}
	case e.isConst(i) && !e.isConst(j):
		c := e.Args[i].constant()
		switch op {
		case "add":
			return expr.ConstAdd(c, g)
		case "sub":
			return expr.ConstSub(c, g)
		case "mul":
			return expr.ConstMul(c, g)
		case "div":
			return expr.ConstDiv(c, g)
		case "pow":
			return expr.ConstPow(c, g)
		}
	}

	switch op {
	case "add":
		return f.Add(g)
	case "sub":
		return f.Sub(g)
	case "mul":
		return f.Mul(g)
	case "div":
		return f.Div(g)
	default:
		return f.Pow(g)
	}
}

func arity(op, want string, got int) error {
	return fmt.Errorf("%s takes %s arguments, got %d", op, want, got)
}

// Build turns the tree into a predicate.
func (c Cond) Build() (expr.Comparison[complex128], error) {
	var none expr.Comparison[complex128]
	set := 0
	for _, b := range []bool{c.Cmp != "", len(c.All) > 0, len(c.Any) > 0, c.Not != nil} {
		if b {
			set++
		}
	}
	if set != 1 {
		return none, fmt.Errorf("condition needs exactly one of cmp, all, any or not")
	}

	switch {
	case c.Not != nil:
		p, err := c.Not.Build()
		if err != nil {
			return none, fmt.Errorf("not: %w", err)
		}
		return p.Not(), nil
	case len(c.All) > 0:
		return combine("all", c.All, expr.Comparison[complex128].And)
	case len(c.Any) > 0:
		return combine("any", c.Any, expr.Comparison[complex128].Or)
	}

	if len(c.Args) != 2 {
		return none, arity(c.Cmp, "two", len(c.Args))
	}
	f, err := c.Args[0].Build()
	if err != nil {
		return none, fmt.Errorf("%s args[0]: %w", c.Cmp, err)
	}
	g, err := c.Args[1].Build()
	if err != nil {
		return none, fmt.Errorf("%s args[1]: %w", c.Cmp, err)
	}
	switch c.Cmp {
	case "gt":
		return f.Gt(g), nil
	case "lt":
		return f.Lt(g), nil
	case "ge":
		return f.Ge(g), nil
	case "le":
		return f.Le(g), nil
	case "eq":
		return f.Eq(g), nil
	case "ne":
		return f.Ne(g), nil
	}
	return none, fmt.Errorf("unknown comparison %q", c.Cmp)
}

func combine(name string, conds []Cond, join func(p, q expr.Comparison[complex128]) expr.Comparison[complex128]) (expr.Comparison[complex128], error) {
	var acc expr.Comparison[complex128]
	for i, c := range conds {
		p, err := c.Build()
		if err != nil {
			return acc, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		if i == 0 {
			acc = p
			continue
		}
		acc = join(acc, p)
	}
	return acc, nil
}

// Build returns the parametrized path.
func (c Contour) Build() (expr.Function[float64, complex128], error) {
	switch c.Kind {
	case "circle":
		center, err := point(c.Center)
		if err != nil {
			return expr.Function[float64, complex128]{}, fmt.Errorf("center: %w", err)
		}
		return calculus.Circle(center, c.Radius), nil
	case "segment":
		a, err := point(c.A)
		if err != nil {
			return expr.Function[float64, complex128]{}, fmt.Errorf("a: %w", err)
		}
		b, err := point(c.B)
		if err != nil {
			return expr.Function[float64, complex128]{}, fmt.Errorf("b: %w", err)
		}
		return calculus.Segment(a, b), nil
	}
	return expr.Function[float64, complex128]{}, fmt.Errorf("unknown contour kind %q", c.Kind)
}
