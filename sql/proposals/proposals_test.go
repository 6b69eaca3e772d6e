package proposals

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

func TestProposals(t *testing.T) {
	db := sql.InMemory()
	alice, bob := types.GenerateAddress([]byte{1}), types.GenerateAddress([]byte{2})

	_, err := Get(db, 0)
	require.ErrorIs(t, err, sql.ErrNotFound)

	first := types.PublicProposal{
		Index:      0,
		Proposal:   types.Proposal{Kind: 1, Body: []byte("remark")},
		Proposer:   alice,
		Deposit:    10,
		Depositors: []types.Address{alice},
	}
	require.NoError(t, Add(db, &first))
	require.ErrorIs(t, Add(db, &first), sql.ErrObjectExists)

	second := first
	second.Index = 1
	second.Proposer = bob
	second.Depositors = []types.Address{bob}
	require.NoError(t, Add(db, &second))

	require.NoError(t, AddDeposit(db, 0, bob))
	require.NoError(t, AddDeposit(db, 0, bob))
	first.Depositors = []types.Address{alice, bob, bob}

	got, err := Get(db, 0)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(&first, got))

	all, err := All(db)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]types.PublicProposal{first, second}, all))

	require.NoError(t, Delete(db, 0))
	require.ErrorIs(t, Delete(db, 0), sql.ErrNotFound)
	all, err = All(db)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]types.PublicProposal{second}, all))

	// deposits of a deleted proposal don't leak into a reused index
	first.Depositors = []types.Address{alice}
	require.NoError(t, Add(db, &first))
	got, err = Get(db, 0)
	require.NoError(t, err)
	require.Equal(t, []types.Address{alice}, got.Depositors)
}
