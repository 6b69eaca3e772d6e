package democracy

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/tally"
)

func TestPropose(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	alice := addr(1)
	tt.fund(t, alice, 25)

	_, err := tt.Propose(ctx, alice, remark("a"), 9)
	require.ErrorIs(t, err, ErrDepositTooLow)
	_, err = tt.Propose(ctx, alice, remark("a"), 26)
	require.ErrorIs(t, err, ErrInsufficientBalance)
	_, err = tt.Propose(ctx, alice, types.Proposal{Body: make([]byte, types.MaxProposalBody+1)}, 10)
	require.ErrorIs(t, err, ErrProposalTooLarge)

	index, err := tt.Propose(ctx, alice, remark("a"), 15)
	require.NoError(t, err)
	require.Zero(t, index)
	free, reserved, _ := tt.account(t, alice)
	require.Equal(t, types.Amount(10), free)
	require.Equal(t, types.Amount(15), reserved)

	require.ErrorIs(t, tt.Second(ctx, alice, index), ErrInsufficientBalance)
	require.ErrorIs(t, tt.Second(ctx, alice, index+1), ErrProposalNotFound)
	free, reserved, _ = tt.account(t, alice)
	require.Equal(t, types.Amount(10), free)
	require.Equal(t, types.Amount(15), reserved)

	proposal := remark("a")
	require.Equal(t, []events.Event{
		events.Proposed{Index: index, Proposer: alice, Deposit: 15, Hash: proposal.Hash()},
	}, tt.drain())
}

func TestPromotion(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	alice, bob, carol := addr(1), addr(2), addr(3)
	for _, account := range []types.Address{alice, bob, carol} {
		tt.fund(t, account, 100)
	}

	first, err := tt.Propose(ctx, alice, remark("first"), 10)
	require.NoError(t, err)
	second, err := tt.Propose(ctx, bob, remark("second"), 25)
	require.NoError(t, err)
	require.NoError(t, tt.Second(ctx, carol, first))
	require.NoError(t, tt.Second(ctx, carol, first))
	free, reserved, _ := tt.account(t, carol)
	require.Equal(t, types.Amount(80), free)
	require.Equal(t, types.Amount(20), reserved)
	tt.drain()

	tt.tick(t, 1, 9)
	require.Empty(t, tt.drain())

	tt.tick(t, 10, 10)
	require.Equal(t, []events.Event{
		events.Tabled{
			Index:      first,
			Ballot:     0,
			Deposit:    10,
			Depositors: []types.Address{alice, carol, carol},
		},
		events.Started{Ballot: 0, End: 15, Threshold: types.SuperMajorityApprove},
	}, tt.drain())
	for _, account := range []types.Address{alice, carol} {
		free, reserved, _ := tt.account(t, account)
		require.Equal(t, types.Amount(100), free)
		require.Zero(t, reserved)
	}

	ballot, err := tt.BallotInfo(0)
	require.NoError(t, err)
	expected := types.Ballot{
		ID:        0,
		End:       15,
		Proposal:  remark("first"),
		Threshold: types.SuperMajorityApprove,
		Delay:     testConfig().EnactmentDelay,
	}
	if diff := cmp.Diff(expected, *ballot); diff != "" {
		t.Errorf("ballot mismatch (-want +got):\n%s", diff)
	}

	pending, err := tt.PublicProposals()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second, pending[0].Index)
	require.Equal(t, []types.Address{bob}, pending[0].Depositors)
}

func TestPromotionTieGoesToEarlierProposal(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	tt.fund(t, addr(1), 100)
	tt.fund(t, addr(2), 100)

	_, err := tt.Propose(ctx, addr(2), remark("b"), 20)
	require.NoError(t, err)
	_, err = tt.Propose(ctx, addr(1), remark("a"), 10)
	require.NoError(t, err)
	require.NoError(t, tt.Second(ctx, addr(1), 1))
	tt.drain()

	tt.tick(t, 0, 0)
	published := tt.drain()
	require.Len(t, published, 2)
	tabled, ok := published[0].(events.Tabled)
	require.True(t, ok)
	require.Equal(t, uint32(0), tabled.Index)
	require.Equal(t, []types.Address{addr(2)}, tabled.Depositors)

	pending, err := tt.PublicProposals()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, uint32(1), pending[0].Index)
}

func TestPromotionAfterFutureInjection(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	tt := newTester(t, WithLogger(zap.New(core)))
	ctx := context.Background()
	alice := addr(1)
	tt.fund(t, alice, 100)

	due, err := tt.InjectBallot(ctx, 10, remark("due"), types.SimpleMajority, 0)
	require.NoError(t, err)
	future, err := tt.InjectBallot(ctx, 1000, remark("future"), types.SimpleMajority, 0)
	require.NoError(t, err)
	index, err := tt.Propose(ctx, alice, remark("pending"), 10)
	require.NoError(t, err)
	require.NoError(t, tt.Vote(ctx, alice, due, types.Vote{Direction: types.Approve, Strength: 1}))
	tt.drain()

	tt.enactor.EXPECT().Enact(gomock.Any(), gomock.Any(), types.Height(10), remark("due")).Return(nil)
	tt.tick(t, 1, 10)
	require.Equal(t, []events.Event{
		events.Passed{Ballot: due, Approve: 100, Turnout: 100},
		events.Executed{Ballot: due, OK: true},
	}, tt.drain())
	require.Equal(t, 1, logs.FilterMessage("public proposal is not tabled").Len())

	height, processed, err := tt.LastTick()
	require.NoError(t, err)
	require.True(t, processed)
	require.Equal(t, types.Height(10), height)
	active, err := tt.ActiveBallots()
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, future, active[0].ID)

	pending, err := tt.PublicProposals()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, index, pending[0].Index)
	_, reserved, _ := tt.account(t, alice)
	require.Equal(t, types.Amount(10), reserved)

	// tabled once a ballot ending after the injected one can be started
	tt.tick(t, 11, 1000)
	require.Equal(t, 99, logs.FilterMessage("public proposal is not tabled").Len())
	published := tt.drain()
	require.Len(t, published, 3)
	tabled, ok := published[0].(events.Tabled)
	require.True(t, ok)
	require.Equal(t, index, tabled.Index)
	require.Equal(t, events.Started{Ballot: future + 1, End: 1005, Threshold: types.SuperMajorityApprove}, published[1])
	require.Equal(t, events.NotPassed{Ballot: future}, published[2])

	pending, err = tt.PublicProposals()
	require.NoError(t, err)
	require.Empty(t, pending)
	_, reserved, _ = tt.account(t, alice)
	require.Zero(t, reserved)
}

func TestPreviewCache(t *testing.T) {
	tt := newTester(t)
	ctx := context.Background()
	tt.fund(t, addr(1), 100)
	tt.fund(t, addr(2), 300)
	id, err := tt.InjectBallot(ctx, 10, remark("a"), types.SuperMajorityApprove, 0)
	require.NoError(t, err)

	_, err = tt.TallyPreview(id + 1)
	require.ErrorIs(t, err, ErrBallotNotActive)

	require.NoError(t, tt.Vote(ctx, addr(1), id, types.Vote{Direction: types.Approve, Strength: 1}))
	hits := testutil.ToFloat64(previewHit)
	preview, err := tt.TallyPreview(id)
	require.NoError(t, err)
	require.Equal(t, Preview{
		Result:     tally.Result{Approve: 100, Turnout: 100},
		Electorate: 400,
		Approved:   true,
	}, preview)
	cached, err := tt.TallyPreview(id)
	require.NoError(t, err)
	require.Equal(t, preview, cached)
	require.Equal(t, hits+1, testutil.ToFloat64(previewHit))

	require.NoError(t, tt.Vote(ctx, addr(2), id, types.Vote{Direction: types.Reject, Strength: 1}))
	preview, err = tt.TallyPreview(id)
	require.NoError(t, err)
	require.Equal(t, types.Amount(300), preview.Against)
	require.False(t, preview.Approved)
	require.Equal(t, hits+1, testutil.ToFloat64(previewHit))
}
