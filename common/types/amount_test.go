package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmount_Checked(t *testing.T) {
	sum, err := Amount(40).Add(2)
	require.NoError(t, err)
	require.Equal(t, Amount(42), sum)

	_, err = Amount(math.MaxUint64).Add(1)
	require.ErrorIs(t, err, ErrArithmeticOverflow)

	prod, err := Amount(1 << 32).Mul(1 << 31)
	require.NoError(t, err)
	require.Equal(t, Amount(1<<63), prod)

	_, err = Amount(1 << 32).Mul(1 << 32)
	require.ErrorIs(t, err, ErrArithmeticOverflow)

	_, err = Amount(1).Sub(2)
	require.ErrorIs(t, err, ErrArithmeticOverflow)
	require.Equal(t, Amount(0), Amount(1).SaturatingSub(2))
	require.Equal(t, Amount(3), Amount(5).SaturatingSub(2))
}

func TestHeight_Saturates(t *testing.T) {
	require.Equal(t, Height(15), Height(10).Add(5))
	require.Equal(t, MaxHeight, (MaxHeight - 1).Add(5))
	require.Equal(t, Height(40), Height(10).AddMul(10, 3))
	require.Equal(t, MaxHeight, Height(1).AddMul(math.MaxUint32, 255))
}
