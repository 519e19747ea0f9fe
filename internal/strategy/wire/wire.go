// Package wire implements the exact little-endian byte protocol a
// strategy program receives and returns, matching the tagged-payload
// layouts a real submission would be compiled against. internal/strategy
// dispatches through the Strategy interface directly; Adapter exists so a
// strategy can be authored purely in terms of encode/decode of these
// payloads — the same contract an out-of-process or sandboxed
// implementation would honor — without the engine caring which.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
)

// Instruction tags, matching the submission wire protocol.
const (
	TagSwapBuy       byte = 0
	TagSwapSell      byte = 1
	TagAfterSwap     byte = 2
	TagGetName       byte = 3
	TagGetModel      byte = 4
	TagEpochBoundary byte = 5
)

const storageSize = strategy.StorageSize

// SwapPayloadLen is the byte length of an encoded ComputeSwap payload:
// 1 (tag) + 8*3 (amounts/reserves) + 1024 (storage) = 1049.
const SwapPayloadLen = 1 + 8 + 8 + 8 + storageSize

// EncodeSwap serializes a swap quote request.
func EncodeSwap(ctx strategy.SwapContext) []byte {
	buf := make([]byte, SwapPayloadLen)
	if ctx.IsBuy {
		buf[0] = TagSwapBuy
	} else {
		buf[0] = TagSwapSell
	}
	binary.LittleEndian.PutUint64(buf[1:9], ctx.InputAmount)
	binary.LittleEndian.PutUint64(buf[9:17], ctx.ReserveX)
	binary.LittleEndian.PutUint64(buf[17:25], ctx.ReserveY)
	copy(buf[25:25+storageSize], ctx.Storage[:])
	return buf
}

// DecodeSwap parses a ComputeSwap payload back into a SwapContext.
func DecodeSwap(data []byte) (strategy.SwapContext, bool) {
	if len(data) < SwapPayloadLen {
		return strategy.SwapContext{}, false
	}
	var ctx strategy.SwapContext
	ctx.IsBuy = data[0] == TagSwapBuy
	ctx.InputAmount = binary.LittleEndian.Uint64(data[1:9])
	ctx.ReserveX = binary.LittleEndian.Uint64(data[9:17])
	ctx.ReserveY = binary.LittleEndian.Uint64(data[17:25])
	copy(ctx.Storage[:], data[25:25+storageSize])
	return ctx, true
}

// AfterSwapPayloadLen is the byte length of an encoded AfterSwap payload:
// header (92 bytes) + storage (1024) = 1116.
const AfterSwapPayloadLen = 92 + storageSize

// EncodeAfterSwap serializes a post-trade notification.
func EncodeAfterSwap(ctx strategy.AfterSwapContext, storage strategy.Storage) []byte {
	buf := make([]byte, AfterSwapPayloadLen)
	buf[0] = TagAfterSwap
	if ctx.IsBuy {
		buf[1] = 0
	} else {
		buf[1] = 1
	}
	binary.LittleEndian.PutUint64(buf[2:10], ctx.InputAmount)
	binary.LittleEndian.PutUint64(buf[10:18], ctx.OutputAmount)
	binary.LittleEndian.PutUint64(buf[18:26], ctx.ReserveX)
	binary.LittleEndian.PutUint64(buf[26:34], ctx.ReserveY)
	binary.LittleEndian.PutUint64(buf[34:42], ctx.SimStep)
	binary.LittleEndian.PutUint32(buf[42:46], ctx.EpochStep)
	binary.LittleEndian.PutUint32(buf[46:50], ctx.EpochNumber)
	buf[50] = ctx.NStrategies
	buf[51] = ctx.StrategyIndex
	binary.LittleEndian.PutUint32(buf[52:56], math.Float32bits(ctx.FlowCaptured))
	binary.LittleEndian.PutUint32(buf[56:60], math.Float32bits(ctx.CapitalWeight))
	for i := 0; i < strategy.CompetingSlots; i++ {
		off := 60 + i*4
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(ctx.CompetingSpotPrices[i]))
	}
	copy(buf[92:92+storageSize], storage[:])
	return buf
}

// DecodeAfterSwap parses an AfterSwap payload back into its context and
// the storage buffer that accompanied it.
func DecodeAfterSwap(data []byte) (strategy.AfterSwapContext, strategy.Storage, bool) {
	var ctx strategy.AfterSwapContext
	var storage strategy.Storage
	if len(data) < AfterSwapPayloadLen {
		return ctx, storage, false
	}
	ctx.IsBuy = data[1] == 0
	ctx.InputAmount = binary.LittleEndian.Uint64(data[2:10])
	ctx.OutputAmount = binary.LittleEndian.Uint64(data[10:18])
	ctx.ReserveX = binary.LittleEndian.Uint64(data[18:26])
	ctx.ReserveY = binary.LittleEndian.Uint64(data[26:34])
	ctx.SimStep = binary.LittleEndian.Uint64(data[34:42])
	ctx.EpochStep = binary.LittleEndian.Uint32(data[42:46])
	ctx.EpochNumber = binary.LittleEndian.Uint32(data[46:50])
	ctx.NStrategies = data[50]
	ctx.StrategyIndex = data[51]
	ctx.FlowCaptured = math.Float32frombits(binary.LittleEndian.Uint32(data[52:56]))
	ctx.CapitalWeight = math.Float32frombits(binary.LittleEndian.Uint32(data[56:60]))
	for i := 0; i < strategy.CompetingSlots; i++ {
		off := 60 + i*4
		ctx.CompetingSpotPrices[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	}
	copy(storage[:], data[92:92+storageSize])
	return ctx, storage, true
}

// EpochPayloadLen is the byte length of an encoded EpochBoundary payload:
// header (41 bytes) + storage (1024) = 1065.
const EpochPayloadLen = 41 + storageSize

// EncodeEpoch serializes an epoch-boundary notification.
func EncodeEpoch(ctx strategy.EpochContext, storage strategy.Storage) []byte {
	buf := make([]byte, EpochPayloadLen)
	buf[0] = TagEpochBoundary
	binary.LittleEndian.PutUint32(buf[1:5], ctx.EpochNumber)
	binary.LittleEndian.PutUint64(buf[5:13], ctx.NewReserveX)
	binary.LittleEndian.PutUint64(buf[13:21], ctx.NewReserveY)
	binary.LittleEndian.PutUint64(buf[21:29], math.Float64bits(ctx.EpochEdge))
	binary.LittleEndian.PutUint64(buf[29:37], math.Float64bits(ctx.CumulativeEdge))
	binary.LittleEndian.PutUint32(buf[37:41], math.Float32bits(ctx.CapitalWeight))
	copy(buf[41:41+storageSize], storage[:])
	return buf
}

// DecodeEpoch parses an EpochBoundary payload back into its context and
// storage buffer.
func DecodeEpoch(data []byte) (strategy.EpochContext, strategy.Storage, bool) {
	var ctx strategy.EpochContext
	var storage strategy.Storage
	if len(data) < EpochPayloadLen {
		return ctx, storage, false
	}
	ctx.EpochNumber = binary.LittleEndian.Uint32(data[1:5])
	ctx.NewReserveX = binary.LittleEndian.Uint64(data[5:13])
	ctx.NewReserveY = binary.LittleEndian.Uint64(data[13:21])
	ctx.EpochEdge = math.Float64frombits(binary.LittleEndian.Uint64(data[21:29]))
	ctx.CumulativeEdge = math.Float64frombits(binary.LittleEndian.Uint64(data[29:37]))
	ctx.CapitalWeight = math.Float32frombits(binary.LittleEndian.Uint32(data[37:41]))
	copy(storage[:], data[41:41+storageSize])
	return ctx, storage, true
}
