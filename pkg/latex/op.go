package latex

// Op records the last operation that produced a formula. It only drives
// parenthesization; evaluators never look at it.
type Op int

const (
	OpNone     Op = iota
	OpFunc        // applying a function: sin, cos, exp, ...
	OpAdd         // f + g
	OpSub         // f - g
	OpMul         // f * g
	OpDiv         // f / g
	OpPowBase     // f ^ g, seen from f
	OpPowExp      // f ^ g, seen from g
	OpMulConst    // a * f
	OpNeg         // -f
	OpIf          // cases
)

var opNames = map[Op]string{
	OpNone:     "none",
	OpFunc:     "func",
	OpAdd:      "add",
	OpSub:      "sub",
	OpMul:      "mul",
	OpDiv:      "div",
	OpPowBase:  "pow-base",
	OpPowExp:   "pow-exponent",
	OpMulConst: "mul-const",
	OpNeg:      "neg",
	OpIf:       "if",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}
