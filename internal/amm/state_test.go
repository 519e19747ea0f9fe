package amm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPoolHasUnitCapitalWeight(t *testing.T) {
	s := New(100_000_000_000, 10_000_000_000_000, 2, "alpha")
	assert.Equal(t, 1.0, s.CapitalWeight)
	assert.Equal(t, uint8(2), s.StrategyIndex)
	assert.Equal(t, "alpha", s.Name)
}

func TestSpotPrice(t *testing.T) {
	s := New(100, 1_000, 0, "p")
	assert.InDelta(t, 10.0, s.SpotPrice(), 1e-12)
}

func TestAccrueEdgeBuyAndSell(t *testing.T) {
	s := New(0, 0, 0, "p")
	s.AccrueEdge(1_000_000_000, 1_100_000_000, true, 1.0)
	assert.InDelta(t, 0.1, s.CumulativeEdge, 1e-9)
	assert.Equal(t, uint64(1), s.EpochTradeCount)

	s2 := New(0, 0, 0, "p")
	s2.AccrueEdge(1_000_000_000, 900_000_000, false, 1.0)
	assert.InDelta(t, 0.1, s2.CumulativeEdge, 1e-9)
}

func TestApplyTradeUpdatesReservesAndFloorsAtOne(t *testing.T) {
	s := New(1_000, 1_000, 0, "p")
	s.ApplyTrade(true, 500, 2_000)
	assert.Equal(t, uint64(1_500), s.ReserveY)
	assert.Equal(t, uint64(1), s.ReserveX)
}

func TestApplyTradeSellDirection(t *testing.T) {
	s := New(1_000, 1_000, 0, "p")
	s.ApplyTrade(false, 200, 100)
	assert.Equal(t, uint64(1_200), s.ReserveX)
	assert.Equal(t, uint64(900), s.ReserveY)
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(100, 200, 0, "p")
	c := s.Clone()
	c.ReserveX = 999
	assert.Equal(t, uint64(100), s.ReserveX)
	assert.Equal(t, uint64(999), c.ReserveX)
}
