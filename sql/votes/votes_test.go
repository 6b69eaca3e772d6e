package votes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

func TestVoters(t *testing.T) {
	db := sql.InMemory()
	a, b, c := types.GenerateAddress([]byte{3}), types.GenerateAddress([]byte{1}), types.GenerateAddress([]byte{2})

	_, err := Get(db, 1, a)
	require.ErrorIs(t, err, sql.ErrNotFound)

	require.NoError(t, Set(db, 1, a, types.Vote{Direction: types.Approve, Strength: 1}))
	require.NoError(t, Set(db, 1, b, types.Vote{Direction: types.Reject, Strength: 2}))
	require.NoError(t, Set(db, 2, b, types.Vote{Direction: types.Approve, Strength: 1}))
	require.NoError(t, Set(db, 1, c, types.Vote{Direction: types.Approve, Strength: 3}))
	// re-vote keeps position
	require.NoError(t, Set(db, 1, a, types.Vote{Direction: types.Reject, Strength: 6}))

	voters, err := Voters(db, 1)
	require.NoError(t, err)
	require.Equal(t, []types.Address{a, b, c}, voters)

	vote, err := Get(db, 1, a)
	require.NoError(t, err)
	require.Equal(t, types.Vote{Direction: types.Reject, Strength: 6}, vote)

	all, err := All(db, 1)
	require.NoError(t, err)
	require.Equal(t, []Record{
		{Voter: a, Vote: types.Vote{Direction: types.Reject, Strength: 6}},
		{Voter: b, Vote: types.Vote{Direction: types.Reject, Strength: 2}},
		{Voter: c, Vote: types.Vote{Direction: types.Approve, Strength: 3}},
	}, all)

	n, err := Clear(db, 1)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	voters, err = Voters(db, 1)
	require.NoError(t, err)
	require.Empty(t, voters)
	voters, err = Voters(db, 2)
	require.NoError(t, err)
	require.Equal(t, []types.Address{b}, voters)
}
