package arb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/amm"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

func quoteCPAMM(isBuy bool, input, rx, ry uint64) uint64 {
	if isBuy {
		return mathx.CPAMMOutput(input, ry, rx, 30)
	}
	return mathx.CPAMMOutput(input, rx, ry, 30)
}

func TestFindOptimalBuysXWhenSpotAboveFair(t *testing.T) {
	pool := amm.New(100*mathx.Scale, 11_000*mathx.Scale, 0, "test")
	// spot = 110, fair = 100 → pool overpays in Y for X → arb buys X.
	trade, found := FindOptimal(pool, 100.0, 0.01, quoteCPAMM)
	assert.True(t, found)
	assert.True(t, trade.IsBuy)
	assert.Greater(t, trade.Profit, 0.0)
}

func TestFindOptimalSellsXWhenSpotBelowFair(t *testing.T) {
	pool := amm.New(100*mathx.Scale, 9_000*mathx.Scale, 0, "test")
	trade, found := FindOptimal(pool, 100.0, 0.01, quoteCPAMM)
	assert.True(t, found)
	assert.False(t, trade.IsBuy)
	assert.Greater(t, trade.Profit, 0.0)
}

func TestFindOptimalNoneWhenAtFairPrice(t *testing.T) {
	pool := amm.New(100*mathx.Scale, 10_000*mathx.Scale, 0, "test")
	_, found := FindOptimal(pool, 100.0, 0.01, quoteCPAMM)
	assert.False(t, found)
}

func TestFindOptimalNeverExceedsDrainCap(t *testing.T) {
	pool := amm.New(100*mathx.Scale, 10_000_000*mathx.Scale, 0, "test")
	trade, found := FindOptimal(pool, 1.0, 0.01, quoteCPAMM)
	if found {
		assert.LessOrEqual(t, float64(trade.Input), float64(pool.ReserveY)*0.9+1)
	}
}
