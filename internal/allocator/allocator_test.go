package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/amm"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

func TestRiskAdjustedScoreAsymmetric(t *testing.T) {
	assert.Equal(t, 100.0, RiskAdjustedScore(100.0, 2.0))
	assert.Equal(t, -50.0-2.0*50.0, RiskAdjustedScore(-50.0, 2.0))
	assert.Equal(t, 0.0, RiskAdjustedScore(0.0, 2.0))
}

func TestSoftmaxWeightsSumToOneAndRespectFloor(t *testing.T) {
	scores := []float64{100, 200, 50, -50}
	weights := SoftmaxWeights(scores, 1.0, 0.02)
	sum := 0.0
	for _, w := range weights {
		sum += w
		assert.GreaterOrEqual(t, w, 0.019)
	}
	assert.InDelta(t, 1.0, sum, 1e-10)
}

func TestSoftmaxWeightsUniformScoresProduceUniformWeights(t *testing.T) {
	scores := make([]float64, 5)
	weights := SoftmaxWeights(scores, 1.0, 0.01)
	for _, w := range weights {
		assert.InDelta(t, 0.2, w, 1e-8)
	}
}

func TestRebalancePreservesTotalCapitalAndSpotPrice(t *testing.T) {
	pools := []*amm.State{
		amm.New(100*mathx.Scale, 10_000*mathx.Scale, 0, "a"),
		amm.New(100*mathx.Scale, 10_000*mathx.Scale, 1, "b"),
	}
	pools[0].EpochEdge = 50.0
	pools[1].EpochEdge = -20.0

	originalSpotA := pools[0].SpotPrice()
	originalSpotB := pools[1].SpotPrice()
	originalCapitalY := 2 * float64(pools[0].ReserveY+pools[1].ReserveY)

	cfg := Config{Lambda: 2.0, MinCapitalWeight: 0.02, SoftmaxTemperature: 1.0}
	summaries := Rebalance(pools, cfg, 1)

	assert.Len(t, summaries, 2)
	assert.InDelta(t, originalCapitalY, 2*float64(pools[0].ReserveY+pools[1].ReserveY), originalCapitalY*0.01)
	assert.InDelta(t, originalSpotA, pools[0].SpotPrice(), 1e-6)
	assert.InDelta(t, originalSpotB, pools[1].SpotPrice(), 1e-6)
	assert.Equal(t, uint64(0), pools[0].EpochTradeCount)
	assert.Equal(t, 0.0, pools[0].EpochEdge)

	assert.Greater(t, pools[0].CapitalWeight, pools[1].CapitalWeight)
}

func TestRebalanceWinnerGetsMoreCapital(t *testing.T) {
	pools := []*amm.State{
		amm.New(100*mathx.Scale, 10_000*mathx.Scale, 0, "winner"),
		amm.New(100*mathx.Scale, 10_000*mathx.Scale, 1, "loser"),
	}
	pools[0].EpochEdge = 100.0
	pools[1].EpochEdge = -100.0

	cfg := Config{Lambda: 2.0, MinCapitalWeight: 0.02, SoftmaxTemperature: 1.0}
	Rebalance(pools, cfg, 0)

	assert.Greater(t, pools[0].ReserveY, pools[1].ReserveY)
}
