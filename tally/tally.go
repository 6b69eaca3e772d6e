// Package tally aggregates direct and delegated votes of a ballot.
package tally

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-democracy/common/types"
)

// DefaultDepth is the delegation depth used when none is configured.
const DefaultDepth = 16

// Source is a read only view of the state that a tally depends on.
type Source interface {
	// Voters returns direct voters of the ballot in the order they first voted.
	Voters(types.BallotID) ([]types.Address, error)
	// VoteOf returns false if the account did not vote directly.
	VoteOf(types.BallotID, types.Address) (types.Vote, bool, error)
	// Delegators returns edges pointing to the account in the order they were created.
	Delegators(types.Address) ([]types.Delegation, error)
	Stake(types.Address) (types.Amount, error)
}

// Participant is an account counted in a tally.
type Participant struct {
	Account   types.Address
	Direction types.Direction
	Strength  uint8
	Stake     types.Amount
	// Delegate is the account that the vote was inherited from. Empty for direct voters.
	Delegate  types.Address
	Delegated bool
}

// Weight is the stake multiplied by strength.
func (p *Participant) Weight() (types.Amount, error) {
	return p.Stake.Mul(uint64(p.Strength))
}

// MarshalLogObject implements logging interface.
func (p *Participant) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("account", p.Account.String())
	encoder.AddString("direction", p.Direction.String())
	encoder.AddUint8("strength", p.Strength)
	encoder.AddUint64("stake", uint64(p.Stake))
	if p.Delegated {
		encoder.AddString("delegate", p.Delegate.String())
	}
	return nil
}

// Result of a tally.
type Result struct {
	Approve types.Amount
	Against types.Amount
	// Turnout is the stake represented by every counted participant.
	Turnout types.Amount
}

// MarshalLogObject implements logging interface.
func (r *Result) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("approve", uint64(r.Approve))
	encoder.AddUint64("against", uint64(r.Against))
	encoder.AddUint64("turnout", uint64(r.Turnout))
	return nil
}

func (r *Result) add(p *Participant) error {
	weight, err := p.Weight()
	if err != nil {
		return err
	}
	side := &r.Against
	if p.Direction == types.Approve {
		side = &r.Approve
	}
	if *side, err = side.Add(weight); err != nil {
		return err
	}
	r.Turnout, err = r.Turnout.Add(p.Stake)
	return err
}

// Count tallies the ballot following delegations at most depth levels deep.
//
// Stakes are not deduplicated across participants. Every account has at most
// one outgoing edge, so a non-voting account is reached only through the first
// direct voter on its delegation path.
func Count(src Source, ballot types.BallotID, depth int) (Result, error) {
	var rst Result
	err := Walk(src, ballot, depth, func(p *Participant) error {
		if err := rst.add(p); err != nil {
			return fmt.Errorf("count %s: %w", p.Account, err)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return rst, nil
}

// Walk calls fn for every counted participant. Direct voters are visited
// first, then the delegators of each direct voter depth first.
func Walk(src Source, ballot types.BallotID, depth int, fn func(*Participant) error) error {
	w := &walker{src: src, ballot: ballot, fn: fn}
	voters, err := src.Voters(ballot)
	if err != nil {
		return fmt.Errorf("voters of %d: %w", ballot, err)
	}
	direct := make([]Participant, 0, len(voters))
	for _, voter := range voters {
		vote, exists, err := src.VoteOf(ballot, voter)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: voter %s without vote on %d", errInconsistent, voter, ballot)
		}
		stake, err := src.Stake(voter)
		if err != nil {
			return fmt.Errorf("stake of %s: %w", voter, err)
		}
		p := Participant{Account: voter, Direction: vote.Direction, Strength: vote.Strength, Stake: stake}
		if err := fn(&p); err != nil {
			return err
		}
		direct = append(direct, p)
	}
	for i := range direct {
		if err := w.delegated(direct[i].Account, direct[i].Direction, direct[i].Strength, depth); err != nil {
			return err
		}
	}
	return nil
}

var errInconsistent = errors.New("inconsistent vote records")

type walker struct {
	src    Source
	ballot types.BallotID
	fn     func(*Participant) error
}

// delegated visits accounts that delegate to root and didn't vote themselves.
// Depth bounds the recursion, cycles in the delegation graph are walked
// until the budget is exhausted.
func (w *walker) delegated(root types.Address, direction types.Direction, limit uint8, depth int) error {
	if depth <= 0 {
		return nil
	}
	edges, err := w.src.Delegators(root)
	if err != nil {
		return fmt.Errorf("delegators of %s: %w", root, err)
	}
	for _, edge := range edges {
		_, voted, err := w.src.VoteOf(w.ballot, edge.Delegator)
		if err != nil {
			return err
		}
		if voted {
			continue
		}
		stake, err := w.src.Stake(edge.Delegator)
		if err != nil {
			return fmt.Errorf("stake of %s: %w", edge.Delegator, err)
		}
		p := Participant{
			Account:   edge.Delegator,
			Direction: direction,
			Strength:  min(limit, edge.MaxStrength),
			Stake:     stake,
			Delegate:  root,
			Delegated: true,
		}
		if err := w.fn(&p); err != nil {
			return err
		}
		if err := w.delegated(edge.Delegator, direction, p.Strength, depth-1); err != nil {
			return err
		}
	}
	return nil
}
