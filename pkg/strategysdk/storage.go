// Package strategysdk offers strategy authors the same typed storage
// accessors a real submission is built against, so a strategy's
// internal/strategy.Storage buffer can be read and written as named
// u64/f64 slots instead of raw bytes. The fixed-point helpers live in
// pkg/mathx.
package strategysdk

import (
	"encoding/binary"
	"math"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
)

// SlotSize is the byte width of one storage slot; a strategy's 1024-byte
// buffer holds 128 such slots.
const SlotSize = 8

// ReadU64 reads the u64 stored at the given slot (slot*8 byte offset).
func ReadU64(storage *strategy.Storage, slot int) uint64 {
	off := slot * SlotSize
	return binary.LittleEndian.Uint64(storage[off : off+SlotSize])
}

// WriteU64 writes val into the given slot.
func WriteU64(storage *strategy.Storage, slot int, val uint64) {
	off := slot * SlotSize
	binary.LittleEndian.PutUint64(storage[off:off+SlotSize], val)
}

// ReadF64 reads the f64 stored at the given slot.
func ReadF64(storage *strategy.Storage, slot int) float64 {
	return math.Float64frombits(ReadU64(storage, slot))
}

// WriteF64 writes val into the given slot.
func WriteF64(storage *strategy.Storage, slot int, val float64) {
	WriteU64(storage, slot, math.Float64bits(val))
}
