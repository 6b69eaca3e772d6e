package types

import (
	"errors"
	"math/bits"
	"strconv"
)

// ErrArithmeticOverflow is returned instead of wrapping an Amount.
var ErrArithmeticOverflow = errors.New("arithmetic overflow")

// Amount is a balance or a vote weight.
type Amount uint64

// Add returns a+b or ErrArithmeticOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, ErrArithmeticOverflow
	}
	return Amount(sum), nil
}

// Sub returns a-b or ErrArithmeticOverflow if b is larger than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		return 0, ErrArithmeticOverflow
	}
	return Amount(diff), nil
}

// Mul returns a*b or ErrArithmeticOverflow.
func (a Amount) Mul(b uint64) (Amount, error) {
	hi, lo := bits.Mul64(uint64(a), b)
	if hi != 0 {
		return 0, ErrArithmeticOverflow
	}
	return Amount(lo), nil
}

// SaturatingSub returns a-b, or zero if b is larger.
func (a Amount) SaturatingSub(b Amount) Amount {
	if b > a {
		return 0
	}
	return a - b
}

func (a Amount) String() string {
	return strconv.FormatUint(uint64(a), 10)
}
