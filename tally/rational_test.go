package tally

import (
	"math"
	"math/big"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func ratCompare(n1, d1, n2, d2 uint64) int {
	r1 := new(big.Rat).SetFrac(new(big.Int).SetUint64(n1), new(big.Int).SetUint64(d1))
	r2 := new(big.Rat).SetFrac(new(big.Int).SetUint64(n2), new(big.Int).SetUint64(d2))
	return r1.Cmp(r2)
}

func TestCompare(t *testing.T) {
	for _, tc := range []struct {
		n1, d1, n2, d2 uint64
		expect         int
	}{
		{0, 1, 0, 7, 0},
		{1, 2, 2, 4, 0},
		{1, 3, 1, 2, -1},
		{50, 6, 40, 10, 1},
		{50, 6, 601, 10, -1},
		{math.MaxUint64, math.MaxUint64 - 1, math.MaxUint64 - 1, math.MaxUint64 - 2, -1},
		{math.MaxUint64, 1, math.MaxUint64, 1, 0},
		{math.MaxUint64 - 1, math.MaxUint64, math.MaxUint64 - 2, math.MaxUint64 - 1, 1},
		{0, math.MaxUint64, 1, math.MaxUint64, -1},
	} {
		require.Equal(t, tc.expect, Compare(tc.n1, tc.d1, tc.n2, tc.d2), "%d/%d vs %d/%d", tc.n1, tc.d1, tc.n2, tc.d2)
		require.Equal(t, tc.expect < 0, LessThan(tc.n1, tc.d1, tc.n2, tc.d2))
		require.Equal(t, -tc.expect, Compare(tc.n2, tc.d2, tc.n1, tc.d1))
	}
}

func TestCompareZeroDenominator(t *testing.T) {
	require.Panics(t, func() { LessThan(1, 0, 1, 1) })
	require.Panics(t, func() { LessThan(1, 1, 1, 0) })
}

func TestCompareMatchesRationals(t *testing.T) {
	f := fuzz.NewWithSeed(1001)
	for i := 0; i < 100000; i++ {
		var n1, d1, n2, d2 uint64
		f.Fuzz(&n1)
		f.Fuzz(&d1)
		f.Fuzz(&n2)
		f.Fuzz(&d2)
		// small operands exercise equal quotients and long expansions
		switch i % 4 {
		case 1:
			n1, d1, n2, d2 = n1%1000, d1%1000, n2%1000, d2%1000
		case 2:
			d1, d2 = d1%64, d2%64
		case 3:
			n2 = n1 + n2%3
			d2 = d1 + d2%3
		}
		d1 = max(d1, 1)
		d2 = max(d2, 1)
		require.Equal(t, ratCompare(n1, d1, n2, d2), Compare(n1, d1, n2, d2),
			"%d/%d vs %d/%d", n1, d1, n2, d2)
	}
}
