package types

import (
	"errors"
	"fmt"

	"github.com/cosmos/btcutil/bech32"
	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"
)

const (
	// AddressLength is the expected length of the address.
	AddressLength = 24
	// AddressReservedSpace define how much bytes from top is reserved in address for future.
	AddressReservedSpace = 4
)

var (
	// ErrWrongAddressLength is returned when the length of the address is not correct.
	ErrWrongAddressLength = errors.New("wrong address length")
	// ErrUnsupportedNetwork is returned when a network is not supported.
	ErrUnsupportedNetwork = errors.New("unsupported network")
	// ErrDecodeBech32 is returned when an error occurs during decoding bech32.
	ErrDecodeBech32 = errors.New("error decoding bech32")
	// ErrMissingReservedSpace is returned if top bytes of address is not 0.
	ErrMissingReservedSpace = errors.New("missing reserved space")
)

// AddressConfig is the configuration of the address encoding.
type AddressConfig struct {
	NetworkHRP string `mapstructure:"network-hrp"`
}

var networkHrp = "dem"

// SetNetworkHRP updates the human readable part used to encode and decode addresses.
func SetNetworkHRP(update string) {
	networkHrp = update
}

// NetworkHRP returns currently configured human readable part.
func NetworkHRP() string {
	return networkHrp
}

// DefaultAddressConfig returns the default configuration of the address encoding.
func DefaultAddressConfig() AddressConfig {
	return AddressConfig{NetworkHRP: "dem"}
}

// DefaultTestAddressConfig returns the default test configuration of the address encoding.
func DefaultTestAddressConfig() AddressConfig {
	return AddressConfig{NetworkHRP: "tdem"}
}

// Address identifies an account that holds stake, votes and delegates.
type Address [AddressLength]byte

// StringToAddress returns a new Address from a given string like `dem1abc...`.
func StringToAddress(src string) (Address, error) {
	var addr Address
	hrp, data, err := bech32.DecodeNoLimit(src)
	if err != nil {
		return addr, fmt.Errorf("%w: %w", ErrDecodeBech32, err)
	}

	// bech32 uses a slice of 5-bit unsigned integers. convert it back to 8-bit.
	converted, err := bech32.ConvertBits(data, 5, 8, true)
	if err != nil {
		return addr, fmt.Errorf("error converting bech32 bits: %w", err)
	}

	// ConvertBits pads one empty byte to the end of the slice.
	if len(converted) != AddressLength+1 {
		return addr, fmt.Errorf("expected %d bytes, got %d: %w", AddressLength, len(converted), ErrWrongAddressLength)
	}
	if networkHrp != hrp {
		return addr, fmt.Errorf("wrong network id: expected `%s`, got `%s`: %w", networkHrp, hrp, ErrUnsupportedNetwork)
	}
	for i := 0; i < AddressReservedSpace; i++ {
		if converted[i] != 0 {
			return addr, fmt.Errorf("expected first %d bytes to be 0, got %d: %w",
				AddressReservedSpace, converted[i], ErrMissingReservedSpace)
		}
	}
	copy(addr[:], converted)
	return addr, nil
}

// GenerateAddress derives an address from an arbitrary account key.
func GenerateAddress(key []byte) Address {
	var addr Address
	if len(key) > len(addr)-AddressReservedSpace {
		key = key[len(key)-AddressLength+AddressReservedSpace:]
	}
	copy(addr[AddressReservedSpace:], key)
	return addr
}

// Bytes returns the underlying bytes.
func (a Address) Bytes() []byte { return a[:] }

// IsEmpty checks if address is empty.
func (a Address) IsEmpty() bool {
	for i := AddressReservedSpace; i < AddressLength; i++ {
		if a[i] != 0 {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (a Address) String() string {
	converted, err := bech32.ConvertBits(a[:], 8, 5, true)
	if err != nil {
		panic("error converting bech32 bits: " + err.Error())
	}
	result, err := bech32.Encode(networkHrp, converted)
	if err != nil {
		panic("error encoding to bech32: " + err.Error())
	}
	return result
}

// Format implements fmt.Formatter, forcing the byte slice to be formatted as is,
// without going through the stringer interface used for logging.
func (a Address) Format(s fmt.State, c rune) {
	_, _ = fmt.Fprintf(s, "%"+string(c), a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(buf []byte) error {
	parsed, err := StringToAddress(string(buf))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// EncodeScale implements scale codec interface.
func (a *Address) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, a[:])
}

// DecodeScale implements scale codec interface.
func (a *Address) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, a[:])
}

// AddressList is a zapcore.ArrayMarshaler.
type AddressList []Address

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (l AddressList) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, addr := range l {
		enc.AppendString(addr.String())
	}
	return nil
}
