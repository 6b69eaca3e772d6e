package types

import (
	"math"
	"strconv"
)

// MaxHeight is used as an indefinite lock.
const MaxHeight = Height(math.MaxUint32)

// Height is a block height. Every state transition of the engine is keyed by it.
type Height uint32

// Uint32 returns the height as a uint32.
func (h Height) Uint32() uint32 {
	return uint32(h)
}

// Add returns h+delta, saturating at MaxHeight.
func (h Height) Add(delta uint32) Height {
	if uint64(h)+uint64(delta) > uint64(MaxHeight) {
		return MaxHeight
	}
	return h + Height(delta)
}

// AddMul returns h+period*factor, saturating at MaxHeight.
func (h Height) AddMul(period uint32, factor uint8) Height {
	delta := uint64(period) * uint64(factor)
	if delta > uint64(MaxHeight) {
		return MaxHeight
	}
	return h.Add(uint32(delta))
}

func (h Height) String() string {
	return strconv.FormatUint(uint64(h), 10)
}
