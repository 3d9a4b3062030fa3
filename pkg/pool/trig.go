package pool

import (
	"math/rand"
)

func init() {
	Register("trig", func() Pool { return &TrigPool{} })
}

// TrigPool extends basic with tan, sec, csc, cot and division.
type TrigPool struct{}

func (p *TrigPool) Name() string { return "trig" }

var trigBases = []base{identityBase, expBase, sinBase, cosBase, tanBase, secBase, cscBase, cotBase}

func (p *TrigPool) RandomBase(rng *rand.Rand) Pair {
	return randomBase(rng, trigBases)
}

var trigOps = []Op{OpNeg, OpAdd, OpSub, OpMul, OpDiv}

func (p *TrigPool) RandomOp(rng *rand.Rand) Op {
	return trigOps[rng.Intn(len(trigOps))]
}

func (p *TrigPool) RandomFunction(rng *rand.Rand, ops int) Pair {
	return randomFunction(p, rng, ops, 0.2)
}
