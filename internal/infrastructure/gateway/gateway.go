package gateway

import (
	"context"
	"math/rand/v2"
)

// Decider answers whether a charge attempt goes through. The default
// implementation is a simulation stand-in; a real deployment would put an
// external payment gateway client behind this interface.
type Decider interface {
	Approve(ctx context.Context, amount float64) bool
}

const defaultSuccessRate = 0.8

type weightedDecider struct {
	successRate float64
	randFloat   func() float64
}

// NewWeightedDecider approves charges with an 80% probability, declining the
// rest. Non-cryptographic randomness; no seeding contract.
func NewWeightedDecider() Decider {
	return &weightedDecider{successRate: defaultSuccessRate, randFloat: rand.Float64}
}

// NewSeededDecider draws from the given source so simulations and tests can
// reproduce a run.
func NewSeededDecider(src *rand.Rand) Decider {
	return &weightedDecider{successRate: defaultSuccessRate, randFloat: src.Float64}
}

func (d *weightedDecider) Approve(ctx context.Context, amount float64) bool {
	return d.randFloat() < d.successRate
}

// Fixed always answers the same way. Tests use it to force either branch of
// the payment lifecycle.
type Fixed bool

func (f Fixed) Approve(ctx context.Context, amount float64) bool {
	return bool(f)
}
