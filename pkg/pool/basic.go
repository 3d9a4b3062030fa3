package pool

import (
	"math/rand"
)

func init() {
	Register("basic", func() Pool { return &BasicPool{} })
}

// BasicPool provides the identity, constants, exp, sin and cos, combined
// with negation, addition, subtraction and multiplication.
type BasicPool struct{}

func (p *BasicPool) Name() string { return "basic" }

var basicBases = []base{identityBase, expBase, sinBase, cosBase}

func (p *BasicPool) RandomBase(rng *rand.Rand) Pair {
	return randomBase(rng, basicBases)
}

var basicOps = []Op{OpNeg, OpAdd, OpSub, OpMul}

func (p *BasicPool) RandomOp(rng *rand.Rand) Op {
	return basicOps[rng.Intn(len(basicOps))]
}

func (p *BasicPool) RandomFunction(rng *rand.Rand, ops int) Pair {
	return randomFunction(p, rng, ops, 0.2)
}
