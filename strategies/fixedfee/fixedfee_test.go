package fixedfee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
)

func TestNameReflectsFee(t *testing.T) {
	assert.Equal(t, "fixed_70bps", New(70).Name())
	assert.Equal(t, "fixed_5bps", New(5).Name())
}

func TestQuoteChargesConfiguredFee(t *testing.T) {
	s := New(DefaultFeeBps)
	cheap := New(1)

	ctx := strategy.SwapContext{
		IsBuy:       true,
		InputAmount: 1_000_000,
		ReserveX:    100_000_000_000,
		ReserveY:    10_000_000_000_000,
	}
	assert.Greater(t, cheap.Quote(ctx), s.Quote(ctx))
}

func TestQuoteZeroInputIsZero(t *testing.T) {
	s := New(DefaultFeeBps)
	ctx := strategy.SwapContext{IsBuy: false, InputAmount: 0, ReserveX: 1000, ReserveY: 1000}
	assert.Equal(t, uint64(0), s.Quote(ctx))
}

func TestAfterSwapAndEpochBoundaryPreserveStorage(t *testing.T) {
	s := New(DefaultFeeBps)
	var storage strategy.Storage
	storage[0] = 0xAB
	out := s.AfterSwap(strategy.AfterSwapContext{}, storage)
	assert.Equal(t, storage, out)
	out2 := s.OnEpochBoundary(strategy.EpochContext{}, storage)
	assert.Equal(t, storage, out2)
}
