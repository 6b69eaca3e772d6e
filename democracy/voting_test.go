package democracy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql/votes"
)

func TestVote(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	id, err := tt.InjectBallot(ctx, 10, remark("a"), types.SimpleMajority, 0)
	require.NoError(t, err)
	tt.drain()

	require.ErrorIs(t, tt.Vote(ctx, addr(1), id, types.Vote{Direction: types.Approve}), ErrZeroStrength)
	require.ErrorIs(t, tt.Vote(ctx, addr(1), id, types.Vote{Direction: types.Approve, Strength: 7}), ErrStrengthTooHigh)
	require.ErrorIs(t, tt.Vote(ctx, addr(1), id+1, types.Vote{Direction: types.Approve, Strength: 1}), ErrBallotNotActive)
	require.ErrorIs(t, tt.Vote(ctx, addr(1), id, types.Vote{Direction: types.Direction(5), Strength: 1}), ErrInvalidDirection)
	require.Empty(t, tt.drain())

	require.NoError(t, tt.Vote(ctx, addr(1), id, types.Vote{Direction: types.Approve, Strength: 1}))
	require.NoError(t, tt.Vote(ctx, addr(2), id, types.Vote{Direction: types.Reject, Strength: 6}))
	require.NoError(t, tt.Vote(ctx, addr(1), id, types.Vote{Direction: types.Reject, Strength: 2}))

	records, err := tt.VotersFor(id)
	require.NoError(t, err)
	require.Equal(t, []votes.Record{
		{Voter: addr(1), Vote: types.Vote{Direction: types.Reject, Strength: 2}},
		{Voter: addr(2), Vote: types.Vote{Direction: types.Reject, Strength: 6}},
	}, records)
	require.Equal(t, []events.Event{
		events.Voted{Ballot: id, Voter: addr(1), Vote: types.Vote{Direction: types.Approve, Strength: 1}},
		events.Voted{Ballot: id, Voter: addr(2), Vote: types.Vote{Direction: types.Reject, Strength: 6}},
		events.Voted{Ballot: id, Voter: addr(1), Vote: types.Vote{Direction: types.Reject, Strength: 2}},
	}, tt.drain())

	_, err = tt.VotersFor(id + 1)
	require.ErrorIs(t, err, ErrBallotNotActive)
}

func TestProxy(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	stash, proxy, other := addr(1), addr(2), addr(3)
	id, err := tt.InjectBallot(ctx, 10, remark("a"), types.SimpleMajority, 0)
	require.NoError(t, err)
	vote := types.Vote{Direction: types.Approve, Strength: 3}

	require.ErrorIs(t, tt.ProxyVote(ctx, proxy, id, vote), ErrNotProxy)
	require.NoError(t, tt.SetProxy(ctx, stash, proxy))
	require.ErrorIs(t, tt.SetProxy(ctx, other, proxy), ErrAlreadyProxy)
	actual, err := tt.ProxyOf(proxy)
	require.NoError(t, err)
	require.Equal(t, stash, actual)

	require.ErrorIs(t, tt.ProxyVote(ctx, proxy, id, types.Vote{Strength: 9}), ErrStrengthTooHigh)
	require.ErrorIs(t, tt.ProxyVote(ctx, proxy, id+1, vote), ErrBallotNotActive)
	require.NoError(t, tt.ProxyVote(ctx, proxy, id, vote))
	records, err := tt.VotersFor(id)
	require.NoError(t, err)
	require.Equal(t, []votes.Record{{Voter: stash, Vote: vote}}, records)

	require.ErrorIs(t, tt.ClearProxy(ctx, other, proxy), ErrWrongProxy)
	require.ErrorIs(t, tt.ClearProxy(ctx, stash, other), ErrNotProxy)
	require.NoError(t, tt.ClearProxy(ctx, stash, proxy))
	_, err = tt.ProxyOf(proxy)
	require.ErrorIs(t, err, ErrNotProxy)

	require.NoError(t, tt.SetProxy(ctx, other, proxy))
	require.NoError(t, tt.ResignProxy(ctx, proxy))
	require.ErrorIs(t, tt.ResignProxy(ctx, proxy), ErrNotProxy)

	require.Equal(t, []events.Event{
		events.Started{Ballot: id, End: 10, Threshold: types.SimpleMajority},
		events.ProxySet{Proxy: proxy, Stash: stash},
		events.Voted{Ballot: id, Voter: stash, Vote: vote, Proxy: proxy},
		events.ProxyRemoved{Proxy: proxy, Stash: stash},
		events.ProxySet{Proxy: proxy, Stash: other},
		events.ProxyRemoved{Proxy: proxy, Stash: other},
	}, tt.drain())
}

func TestDelegation(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	tt.fund(t, addr(1), 100)

	require.ErrorIs(t, tt.Delegate(ctx, addr(1), addr(2), 0), ErrZeroStrength)
	require.ErrorIs(t, tt.Undelegate(ctx, addr(1)), ErrNotDelegated)

	// strength above the maximum is accepted and capped
	require.NoError(t, tt.Delegate(ctx, addr(5), addr(2), 200))
	capped, err := tt.DelegationOf(addr(5))
	require.NoError(t, err)
	require.Equal(t, testConfig().MaxStrength, capped.MaxStrength)
	require.NoError(t, tt.Undelegate(ctx, addr(5)))
	tt.drain()

	require.NoError(t, tt.Delegate(ctx, addr(1), addr(2), 2))
	_, _, lock := tt.account(t, addr(1))
	require.Equal(t, types.MaxHeight, lock)

	// redelegation and self delegation are accepted
	require.NoError(t, tt.Delegate(ctx, addr(3), addr(3), 1))
	require.NoError(t, tt.Delegate(ctx, addr(1), addr(4), 4))
	delegation, err := tt.DelegationOf(addr(1))
	require.NoError(t, err)
	require.Equal(t, types.Delegation{Delegator: addr(1), Delegate: addr(4), MaxStrength: 4}, delegation)
	all, err := tt.Delegations()
	require.NoError(t, err)
	require.Equal(t, []types.Address{addr(1), addr(3)}, []types.Address{all[0].Delegator, all[1].Delegator})

	tt.tick(t, 1, 5)
	require.NoError(t, tt.Undelegate(ctx, addr(1)))
	_, _, lock = tt.account(t, addr(1))
	require.Equal(t, types.Height(5+3*4), lock)
	_, err = tt.DelegationOf(addr(1))
	require.ErrorIs(t, err, ErrNotDelegated)
	require.ErrorIs(t, tt.Undelegate(ctx, addr(1)), ErrNotDelegated)

	require.Equal(t, []events.Event{
		events.Delegated{Delegation: types.Delegation{Delegator: addr(1), Delegate: addr(2), MaxStrength: 2}},
		events.Delegated{Delegation: types.Delegation{Delegator: addr(3), Delegate: addr(3), MaxStrength: 1}},
		events.Delegated{Delegation: types.Delegation{Delegator: addr(1), Delegate: addr(4), MaxStrength: 4}},
		events.Undelegated{Delegator: addr(1)},
	}, tt.drain())
}
