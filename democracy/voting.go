package democracy

import (
	"context"
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql/ballots"
	"github.com/spacemeshos/go-democracy/sql/proxies"
	"github.com/spacemeshos/go-democracy/sql/votes"
)

// Vote records a direct vote of the account. A repeated vote replaces the
// previous one and keeps the position of the voter.
func (e *Engine) Vote(ctx context.Context, voter types.Address, ballot types.BallotID, vote types.Vote) error {
	if err := vote.Validate(e.cfg.MaxStrength); err != nil {
		return err
	}
	if err := e.mutate(ctx, func(u *update) error {
		return e.vote(u, voter, ballot, vote, types.Address{})
	}); err != nil {
		return err
	}
	directVotes.Inc()
	return nil
}

// ProxyVote records a vote on behalf of the stash account of the proxy.
func (e *Engine) ProxyVote(ctx context.Context, proxy types.Address, ballot types.BallotID, vote types.Vote) error {
	if err := vote.Validate(e.cfg.MaxStrength); err != nil {
		return err
	}
	if err := e.mutate(ctx, func(u *update) error {
		stash, err := proxies.Get(u.tx, proxy)
		if err != nil {
			return notFound(err, ErrNotProxy)
		}
		return e.vote(u, stash, ballot, vote, proxy)
	}); err != nil {
		return err
	}
	proxyVotes.Inc()
	return nil
}

func (e *Engine) vote(u *update, voter types.Address, ballot types.BallotID, vote types.Vote, proxy types.Address) error {
	active, err := ballots.Has(u.tx, ballot)
	if err != nil {
		return err
	}
	if !active {
		return fmt.Errorf("%w: %d", ErrBallotNotActive, ballot)
	}
	if err := votes.Set(u.tx, ballot, voter, vote); err != nil {
		return err
	}
	u.emit(events.Voted{Ballot: ballot, Voter: voter, Vote: vote, Proxy: proxy})
	return nil
}
