package types

import (
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
)

// Hash32Length is the expected length of the hash.
const Hash32Length = 32

// Hash32 is a 32-byte blake3 hash of arbitrary data.
type Hash32 [Hash32Length]byte

// Bytes returns the byte representation of the underlying hash.
func (h Hash32) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash32) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash32) String() string { return h.Hex() }

// ShortString returns the first 5 hex characters of the hash, for logging purposes.
func (h Hash32) ShortString() string {
	return hex.EncodeToString(h[:3])[:5]
}

// MarshalText returns the hex representation of h.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// EncodeScale implements scale codec interface.
func (h *Hash32) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash32) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}
