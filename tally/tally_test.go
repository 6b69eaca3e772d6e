package tally

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-democracy/common/types"
)

const ballot = types.BallotID(1)

type memSource struct {
	stakes map[types.Address]types.Amount
	voters []types.Address
	votes  map[types.Address]types.Vote
	edges  []types.Delegation

	stakeReads int
	failStake  error
}

func newMemSource() *memSource {
	return &memSource{
		stakes: map[types.Address]types.Amount{},
		votes:  map[types.Address]types.Vote{},
	}
}

func (m *memSource) vote(addr types.Address, direction types.Direction, strength uint8) {
	if _, exists := m.votes[addr]; !exists {
		m.voters = append(m.voters, addr)
	}
	m.votes[addr] = types.Vote{Direction: direction, Strength: strength}
}

func (m *memSource) delegate(from, to types.Address, strength uint8) {
	for i := range m.edges {
		if m.edges[i].Delegator == from {
			m.edges[i].Delegate = to
			m.edges[i].MaxStrength = strength
			return
		}
	}
	m.edges = append(m.edges, types.Delegation{Delegator: from, Delegate: to, MaxStrength: strength})
}

func (m *memSource) Voters(types.BallotID) ([]types.Address, error) {
	return m.voters, nil
}

func (m *memSource) VoteOf(_ types.BallotID, addr types.Address) (types.Vote, bool, error) {
	vote, exists := m.votes[addr]
	return vote, exists, nil
}

func (m *memSource) Delegators(addr types.Address) ([]types.Delegation, error) {
	var rst []types.Delegation
	for _, edge := range m.edges {
		if edge.Delegate == addr {
			rst = append(rst, edge)
		}
	}
	return rst, nil
}

func (m *memSource) Stake(addr types.Address) (types.Amount, error) {
	m.stakeReads++
	if m.failStake != nil {
		return 0, m.failStake
	}
	return m.stakes[addr], nil
}

func account(i int) types.Address {
	return types.GenerateAddress([]byte{byte(i >> 8), byte(i)})
}

func TestCountDirectVotes(t *testing.T) {
	src := newMemSource()
	alice, bob := account(1), account(2)
	src.stakes[alice] = 100
	src.stakes[bob] = 50
	src.vote(alice, types.Approve, 1)
	src.vote(bob, types.Reject, 1)

	rst, err := Count(src, ballot, DefaultDepth)
	require.NoError(t, err)
	require.Equal(t, Result{Approve: 100, Against: 50, Turnout: 150}, rst)
	require.True(t, Approved(types.SimpleMajority, rst.Approve, rst.Against, rst.Turnout, 1000))
}

func TestCountStrengthMultiplies(t *testing.T) {
	src := newMemSource()
	alice, bob := account(1), account(2)
	src.stakes[alice] = 10
	src.stakes[bob] = 25
	src.vote(alice, types.Approve, 6)
	src.vote(bob, types.Reject, 2)
	// re-vote overwrites in place
	src.vote(alice, types.Approve, 5)

	rst, err := Count(src, ballot, DefaultDepth)
	require.NoError(t, err)
	require.Equal(t, Result{Approve: 50, Against: 50, Turnout: 35}, rst)
}

func TestCountDelegationChain(t *testing.T) {
	src := newMemSource()
	carol, dave, erin, frank := account(1), account(2), account(3), account(4)
	src.stakes[carol] = 10
	src.stakes[dave] = 20
	src.stakes[erin] = 30
	src.stakes[frank] = 40
	src.delegate(carol, dave, 3)
	src.delegate(erin, dave, 1)
	src.delegate(dave, frank, 2)
	src.vote(frank, types.Approve, 4)

	var visited []Participant
	require.NoError(t, Walk(src, ballot, DefaultDepth, func(p *Participant) error {
		visited = append(visited, *p)
		return nil
	}))
	require.Equal(t, []Participant{
		{Account: frank, Direction: types.Approve, Strength: 4, Stake: 40},
		{Account: dave, Direction: types.Approve, Strength: 2, Stake: 20, Delegate: frank, Delegated: true},
		{Account: carol, Direction: types.Approve, Strength: 2, Stake: 10, Delegate: dave, Delegated: true},
		{Account: erin, Direction: types.Approve, Strength: 1, Stake: 30, Delegate: dave, Delegated: true},
	}, visited)

	rst, err := Count(src, ballot, DefaultDepth)
	require.NoError(t, err)
	require.Equal(t, Result{Approve: 160 + 40 + 20 + 30, Turnout: 100}, rst)

	// a delegator that votes directly is counted only once, with its own vote
	src.vote(dave, types.Reject, 1)
	rst, err = Count(src, ballot, DefaultDepth)
	require.NoError(t, err)
	require.Equal(t, Result{Approve: 160, Against: 20 + 10 + 30, Turnout: 100}, rst)
}

func TestCountDepthBudget(t *testing.T) {
	src := newMemSource()
	const chain = 10
	for i := 0; i < chain; i++ {
		src.stakes[account(i)] = 1
		if i > 0 {
			src.delegate(account(i), account(i-1), 1)
		}
	}
	src.vote(account(0), types.Reject, 1)

	for depth := 0; depth < chain+3; depth++ {
		rst, err := Count(src, ballot, depth)
		require.NoError(t, err)
		expect := types.Amount(1 + min(depth, chain-1))
		require.Equal(t, expect, rst.Turnout, "depth %d", depth)
		require.Equal(t, expect, rst.Against)
	}
}

func TestCountCycles(t *testing.T) {
	t.Run("self delegation", func(t *testing.T) {
		src := newMemSource()
		alice := account(1)
		src.stakes[alice] = 7
		src.delegate(alice, alice, 1)
		src.vote(alice, types.Approve, 1)
		rst, err := Count(src, ballot, DefaultDepth)
		require.NoError(t, err)
		require.Equal(t, Result{Approve: 7, Turnout: 7}, rst)
	})
	t.Run("long ring", func(t *testing.T) {
		src := newMemSource()
		const size = DefaultDepth + 5
		for i := 0; i < size; i++ {
			src.stakes[account(i)] = 1
			src.delegate(account((i+1)%size), account(i), 3)
		}
		src.vote(account(0), types.Approve, 1)
		rst, err := Count(src, ballot, DefaultDepth)
		require.NoError(t, err)
		require.Equal(t, Result{Approve: 1 + DefaultDepth, Turnout: 1 + DefaultDepth}, rst)
	})
	t.Run("ring without voters", func(t *testing.T) {
		src := newMemSource()
		for i := 0; i < 5; i++ {
			src.stakes[account(i)] = 1
			src.delegate(account(i), account((i+1)%5), 1)
		}
		voter := account(100)
		src.stakes[voter] = 3
		src.vote(voter, types.Approve, 2)
		rst, err := Count(src, ballot, DefaultDepth)
		require.NoError(t, err)
		require.Equal(t, Result{Approve: 6, Turnout: 3}, rst)
	})
}

func TestCountOverflow(t *testing.T) {
	src := newMemSource()
	alice, bob := account(1), account(2)
	src.stakes[alice] = math.MaxUint64 / 2
	src.stakes[bob] = math.MaxUint64 / 2
	src.vote(alice, types.Approve, 1)
	src.vote(bob, types.Approve, 1)
	_, err := Count(src, ballot, DefaultDepth)
	require.NoError(t, err)

	src.vote(bob, types.Approve, 3)
	_, err = Count(src, ballot, DefaultDepth)
	require.ErrorIs(t, err, types.ErrArithmeticOverflow)
}

func TestCountStakeError(t *testing.T) {
	src := newMemSource()
	src.vote(account(1), types.Approve, 1)
	src.failStake = errors.New("ledger unavailable")
	_, err := Count(src, ballot, DefaultDepth)
	require.ErrorIs(t, err, src.failStake)
}

func TestWalkStopsOnError(t *testing.T) {
	src := newMemSource()
	hub := account(1)
	for i := 2; i < 12; i++ {
		src.stakes[account(i)] = 1
		src.delegate(account(i), hub, 1)
	}
	src.vote(hub, types.Approve, 1)
	stop := errors.New("stop")
	visited := 0
	err := Walk(src, ballot, DefaultDepth, func(p *Participant) error {
		visited++
		if visited == 3 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 3, visited)
	require.Equal(t, 3, src.stakeReads)
}

// expected computes the tally by following the single outgoing edge of each
// non-voting account until it reaches a direct voter.
func expected(src *memSource, depth int) Result {
	out := map[types.Address]types.Delegation{}
	for _, edge := range src.edges {
		out[edge.Delegator] = edge
	}
	var rst Result
	add := func(p *Participant) {
		weight, _ := p.Weight()
		if p.Direction == types.Approve {
			rst.Approve += weight
		} else {
			rst.Against += weight
		}
		rst.Turnout += p.Stake
	}
	for _, voter := range src.voters {
		vote := src.votes[voter]
		add(&Participant{Direction: vote.Direction, Strength: vote.Strength, Stake: src.stakes[voter]})
	}
	for addr, stake := range src.stakes {
		if _, voted := src.votes[addr]; voted {
			continue
		}
		strength := uint8(math.MaxUint8)
		current := addr
		for step := 1; step <= depth; step++ {
			edge, ok := out[current]
			if !ok {
				break
			}
			strength = min(strength, edge.MaxStrength)
			if vote, voted := src.votes[edge.Delegate]; voted {
				add(&Participant{Direction: vote.Direction, Strength: min(strength, vote.Strength), Stake: stake})
				break
			}
			current = edge.Delegate
		}
	}
	return rst
}

func TestCountConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(1001))
	for round := 0; round < 200; round++ {
		src := newMemSource()
		accounts := 2 + rng.Intn(40)
		for i := 0; i < accounts; i++ {
			src.stakes[account(i)] = types.Amount(rng.Intn(1000))
		}
		for i := 0; i < accounts; i++ {
			if rng.Intn(4) != 0 {
				src.delegate(account(i), account(rng.Intn(accounts)), uint8(1+rng.Intn(6)))
			}
		}
		for i := 0; i < accounts; i++ {
			if rng.Intn(3) == 0 {
				direction := types.Reject
				if rng.Intn(2) == 0 {
					direction = types.Approve
				}
				src.vote(account(i), direction, uint8(1+rng.Intn(6)))
			}
		}
		depth := 1 + rng.Intn(DefaultDepth)
		rst, err := Count(src, ballot, depth)
		require.NoError(t, err)
		require.Equal(t, expected(src, depth), rst, "round %d depth %d", round, depth)
	}
}
