package pool

import (
	"math/rand"
)

func init() {
	Register("full", func() Pool { return &FullPool{} })
}

// FullPool extends trig with powers and composition.
type FullPool struct{}

func (p *FullPool) Name() string { return "full" }

func (p *FullPool) RandomBase(rng *rand.Rand) Pair {
	return randomBase(rng, trigBases)
}

var fullOps = []Op{OpNeg, OpAdd, OpSub, OpMul, OpDiv, OpPow, OpCompose}

func (p *FullPool) RandomOp(rng *rand.Rand) Op {
	return fullOps[rng.Intn(len(fullOps))]
}

func (p *FullPool) RandomFunction(rng *rand.Rand, ops int) Pair {
	return randomFunction(p, rng, ops, 0.2)
}
