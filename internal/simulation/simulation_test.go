package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/config"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
)

// fixedFeeStrategy is a minimal test double: a plain CPAMM at a constant
// fee, with no storage use, used to exercise the driver without pulling
// in a sample strategy package.
type fixedFeeStrategy struct {
	name   string
	feeBps uint32
}

func (f fixedFeeStrategy) Name() string { return f.name }
func (f fixedFeeStrategy) Quote(ctx strategy.SwapContext) uint64 {
	return newNormalizer(f.feeBps).Quote(ctx)
}
func (f fixedFeeStrategy) AfterSwap(_ strategy.AfterSwapContext, storage strategy.Storage) strategy.Storage {
	return storage
}
func (f fixedFeeStrategy) OnEpochBoundary(_ strategy.EpochContext, storage strategy.Storage) strategy.Storage {
	return storage
}

func smallConfig() config.SimConfig {
	cfg := config.Default()
	cfg.TotalSteps = 500
	cfg.EpochLen = 100
	return cfg
}

func TestRunUniformStartProducesResultPerStrategy(t *testing.T) {
	strategies := []strategy.Strategy{
		fixedFeeStrategy{name: "a", feeBps: 30},
		fixedFeeStrategy{name: "b", feeBps: 30},
		fixedFeeStrategy{name: "c", feeBps: 30},
	}
	result := Run(strategies, smallConfig(), 1)
	require.Len(t, result.Strategies, 3)
	for _, s := range result.Strategies {
		assert.NotEmpty(t, s.Name)
		assert.GreaterOrEqual(t, s.FinalCapitalWeight, 0.0)
	}
}

func TestRunIsDeterministicForFixedSeed(t *testing.T) {
	strategies := func() []strategy.Strategy {
		return []strategy.Strategy{
			fixedFeeStrategy{name: "a", feeBps: 30},
			fixedFeeStrategy{name: "b", feeBps: 50},
		}
	}
	r1 := Run(strategies(), smallConfig(), 42)
	r2 := Run(strategies(), smallConfig(), 42)
	assert.Equal(t, r1.Strategies[0].FinalEdge, r2.Strategies[0].FinalEdge)
	assert.Equal(t, r1.Strategies[1].FinalEdge, r2.Strategies[1].FinalEdge)
	assert.Equal(t, r1.NormalizerEdge, r2.NormalizerEdge)
}

func TestRunSinglePoolNoCompetitors(t *testing.T) {
	strategies := []strategy.Strategy{fixedFeeStrategy{name: "solo", feeBps: 30}}
	result := Run(strategies, smallConfig(), 7)
	require.Len(t, result.Strategies, 1)
	assert.InDelta(t, 1.0, result.Strategies[0].FinalCapitalWeight, 1e-9)
}

func TestRunLowerAndHigherFeeStrategiesEndWithDifferentEdges(t *testing.T) {
	strategies := []strategy.Strategy{
		fixedFeeStrategy{name: "cheap", feeBps: 5},
		fixedFeeStrategy{name: "expensive", feeBps: 200},
	}
	cfg := smallConfig()
	cfg.TotalSteps = 2_000
	cfg.EpochLen = 2_000
	result := Run(strategies, cfg, 9)
	require.Len(t, result.Strategies, 2)
	cheapTrades := result.Strategies[0].EpochSummaries
	_ = cheapTrades
	assert.NotEqual(t, result.Strategies[0].FinalEdge, result.Strategies[1].FinalEdge)
}

func TestRunEpochBoundaryProducesSummariesAcrossEpochs(t *testing.T) {
	strategies := []strategy.Strategy{
		fixedFeeStrategy{name: "a", feeBps: 30},
		fixedFeeStrategy{name: "b", feeBps: 30},
	}
	cfg := smallConfig()
	cfg.TotalSteps = 1_000
	cfg.EpochLen = 250
	result := Run(strategies, cfg, 3)
	for _, s := range result.Strategies {
		// 1000/250 = 4 epochs total, but the final epoch boundary is
		// skipped (no rebalance after the very last step).
		assert.Len(t, s.EpochSummaries, 3)
	}
}
