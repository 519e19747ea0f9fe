package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
)

func TestSwapRoundTrip(t *testing.T) {
	var storage strategy.Storage
	storage[3] = 0xAB
	ctx := strategy.SwapContext{
		IsBuy:       true,
		InputAmount: 12_345,
		ReserveX:    100_000_000_000,
		ReserveY:    10_000_000_000_000,
		Storage:     storage,
	}

	buf := EncodeSwap(ctx)
	assert.Len(t, buf, SwapPayloadLen)

	got, ok := DecodeSwap(buf)
	assert.True(t, ok)
	assert.Equal(t, ctx, got)
}

func TestSwapSellTag(t *testing.T) {
	ctx := strategy.SwapContext{IsBuy: false, InputAmount: 1, ReserveX: 1, ReserveY: 1}
	buf := EncodeSwap(ctx)
	assert.Equal(t, TagSwapSell, buf[0])

	got, ok := DecodeSwap(buf)
	assert.True(t, ok)
	assert.False(t, got.IsBuy)
}

func TestAfterSwapRoundTrip(t *testing.T) {
	var storage strategy.Storage
	storage[0] = 0xFF

	ctx := strategy.AfterSwapContext{
		IsBuy:         true,
		InputAmount:   500,
		OutputAmount:  495,
		ReserveX:      99_500,
		ReserveY:      10_000_500,
		SimStep:       42,
		EpochStep:     7,
		EpochNumber:   1,
		NStrategies:   4,
		StrategyIndex: 2,
		FlowCaptured:  0.75,
		CapitalWeight: 0.3,
	}
	for i := range ctx.CompetingSpotPrices {
		ctx.CompetingSpotPrices[i] = float32(i) + 0.5
	}

	buf := EncodeAfterSwap(ctx, storage)
	assert.Len(t, buf, AfterSwapPayloadLen)
	assert.Equal(t, TagAfterSwap, buf[0])

	gotCtx, gotStorage, ok := DecodeAfterSwap(buf)
	assert.True(t, ok)
	assert.Equal(t, ctx, gotCtx)
	assert.Equal(t, storage, gotStorage)
}

func TestEpochRoundTrip(t *testing.T) {
	var storage strategy.Storage
	storage[100] = 7

	ctx := strategy.EpochContext{
		EpochNumber:    3,
		NewReserveX:    1_000_000,
		NewReserveY:    2_000_000,
		EpochEdge:      12.5,
		CumulativeEdge: -4.25,
		CapitalWeight:  0.125,
	}

	buf := EncodeEpoch(ctx, storage)
	assert.Len(t, buf, EpochPayloadLen)
	assert.Equal(t, TagEpochBoundary, buf[0])

	gotCtx, gotStorage, ok := DecodeEpoch(buf)
	assert.True(t, ok)
	assert.Equal(t, ctx, gotCtx)
	assert.Equal(t, storage, gotStorage)
}

func TestDecodeTooShortFails(t *testing.T) {
	_, ok := DecodeSwap(make([]byte, 10))
	assert.False(t, ok)

	_, _, ok2 := DecodeAfterSwap(make([]byte, 10))
	assert.False(t, ok2)

	_, _, ok3 := DecodeEpoch(make([]byte, 10))
	assert.False(t, ok3)
}

func TestAdapterRoundTripsQuoteAndStorage(t *testing.T) {
	adapter := &Adapter{
		ProgramName: "echo-program",
		Run: func(instruction []byte) []byte {
			switch instruction[0] {
			case TagSwapBuy, TagSwapSell:
				out := make([]byte, 8)
				out[0] = 42
				return out
			case TagAfterSwap:
				ctx, storage, ok := DecodeAfterSwap(instruction)
				assert.True(t, ok)
				storage[0] = byte(ctx.StrategyIndex)
				return storage[:]
			case TagEpochBoundary:
				_, storage, ok := DecodeEpoch(instruction)
				assert.True(t, ok)
				storage[1] = 9
				return storage[:]
			}
			return nil
		},
	}

	out := adapter.Quote(strategy.SwapContext{IsBuy: true, InputAmount: 1, ReserveX: 1, ReserveY: 1})
	assert.Equal(t, uint64(42), out)

	var storage strategy.Storage
	newStorage := adapter.AfterSwap(strategy.AfterSwapContext{StrategyIndex: 5}, storage)
	assert.Equal(t, byte(5), newStorage[0])

	newStorage2 := adapter.OnEpochBoundary(strategy.EpochContext{}, newStorage)
	assert.Equal(t, byte(9), newStorage2[1])
}
