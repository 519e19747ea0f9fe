package wire

import "github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"

// Program is the byte-in/byte-out shape a strategy submission actually
// implements: given an instruction payload (tag-prefixed, as produced by
// Encode*), it returns either a little-endian u64 return value (for swap
// quotes) or an updated storage buffer (for AfterSwap/EpochBoundary).
//
// A real submission is a compiled program invoked this way; Program lets
// one be written and tested as a plain Go function without any process or
// sandbox boundary.
type Program func(instruction []byte) []byte

// Adapter wraps a Program so it satisfies strategy.Strategy, round-tripping
// every call through the wire encoding. This is how a submission authored
// purely against the byte protocol plugs into the engine.
type Adapter struct {
	ProgramName string
	Run         Program
}

var _ strategy.Strategy = (*Adapter)(nil)

// Name returns the adapter's configured strategy name.
func (a *Adapter) Name() string { return a.ProgramName }

// Quote encodes ctx, invokes the program, and decodes its u64 return value.
func (a *Adapter) Quote(ctx strategy.SwapContext) uint64 {
	out := a.Run(EncodeSwap(ctx))
	if len(out) < 8 {
		return 0
	}
	return leUint64(out)
}

// AfterSwap encodes ctx and the current storage, invokes the program, and
// decodes the storage buffer it returns.
func (a *Adapter) AfterSwap(ctx strategy.AfterSwapContext, storage strategy.Storage) strategy.Storage {
	out := a.Run(EncodeAfterSwap(ctx, storage))
	return decodeStorageReturn(out, storage)
}

// OnEpochBoundary encodes ctx and the current storage, invokes the
// program, and decodes the storage buffer it returns.
func (a *Adapter) OnEpochBoundary(ctx strategy.EpochContext, storage strategy.Storage) strategy.Storage {
	out := a.Run(EncodeEpoch(ctx, storage))
	return decodeStorageReturn(out, storage)
}

func leUint64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// decodeStorageReturn interprets the program's return value as an updated
// storage buffer; a short or absent return leaves storage unchanged.
func decodeStorageReturn(out []byte, fallback strategy.Storage) strategy.Storage {
	if len(out) < strategy.StorageSize {
		return fallback
	}
	var s strategy.Storage
	copy(s[:], out[:strategy.StorageSize])
	return s
}
