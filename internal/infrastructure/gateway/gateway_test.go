package gateway

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedDeciderApprovalRate(t *testing.T) {
	src := rand.New(rand.NewPCG(42, 0))
	d := NewSeededDecider(src)

	const n = 1000
	approved := 0
	for i := 0; i < n; i++ {
		if d.Approve(context.Background(), 100) {
			approved++
		}
	}

	rate := float64(approved) / n
	// Loose sanity bound around the 0.8 weighting, not exact equality.
	assert.InDelta(t, 0.8, rate, 0.05, "observed approval rate %f", rate)
}

func TestFixedDecider(t *testing.T) {
	assert.True(t, Fixed(true).Approve(context.Background(), 1))
	assert.False(t, Fixed(false).Approve(context.Background(), 1))
}
