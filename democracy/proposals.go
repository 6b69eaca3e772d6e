package democracy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql/kvstore"
	"github.com/spacemeshos/go-democracy/sql/proposals"
)

// Propose submits a public proposal and reserves the deposit of the proposer.
// Returns the index of the proposal.
func (e *Engine) Propose(
	ctx context.Context,
	who types.Address,
	proposal types.Proposal,
	deposit types.Amount,
) (uint32, error) {
	if deposit < types.Amount(e.cfg.MinimumDeposit) {
		return 0, fmt.Errorf("%w: %d < %d", ErrDepositTooLow, deposit, e.cfg.MinimumDeposit)
	}
	if len(proposal.Body) > types.MaxProposalBody {
		return 0, fmt.Errorf("%w: %d bytes", ErrProposalTooLarge, len(proposal.Body))
	}
	var index uint32
	err := e.mutate(ctx, func(u *update) error {
		if err := e.ledger.Reserve(u.tx, who, deposit); err != nil {
			return err
		}
		next, err := kvstore.Increment(u.tx, nextProposalKey)
		if err != nil {
			return err
		}
		index = uint32(next)
		if err := proposals.Add(u.tx, &types.PublicProposal{
			Index:      index,
			Proposal:   proposal,
			Proposer:   who,
			Deposit:    deposit,
			Depositors: []types.Address{who},
		}); err != nil {
			return err
		}
		u.emit(events.Proposed{Index: index, Proposer: who, Deposit: deposit, Hash: proposal.Hash()})
		return nil
	})
	if err != nil {
		return 0, err
	}
	e.logger.Info("proposal submitted",
		zap.Uint32("index", index),
		zap.Stringer("proposer", who),
		zap.Uint64("deposit", uint64(deposit)),
	)
	return index, nil
}

// Second backs the public proposal with the same deposit as the proposer.
// An account may second the same proposal more than once.
func (e *Engine) Second(ctx context.Context, who types.Address, index uint32) error {
	return e.mutate(ctx, func(u *update) error {
		proposal, err := proposals.Get(u.tx, index)
		if err != nil {
			return notFound(err, ErrProposalNotFound)
		}
		if err := e.ledger.Reserve(u.tx, who, proposal.Deposit); err != nil {
			return err
		}
		if err := proposals.AddDeposit(u.tx, index, who); err != nil {
			return err
		}
		u.emit(events.Seconded{Index: index, Who: who})
		return nil
	})
}

// promote tables the public proposal with the largest backing. Ties are
// resolved in favor of the earlier proposal.
func (e *Engine) promote(u *update, now types.Height) error {
	all, err := proposals.All(u.tx)
	if err != nil {
		return err
	}
	var (
		best    *types.PublicProposal
		backing types.Amount
	)
	for i := range all {
		current, err := all[i].Backing()
		if err != nil {
			return fmt.Errorf("backing of %d: %w", all[i].Index, err)
		}
		if best == nil || current > backing {
			best, backing = &all[i], current
		}
	}
	if best == nil {
		return nil
	}
	for _, depositor := range best.Depositors {
		if _, err := e.ledger.Unreserve(u.tx, depositor, best.Deposit); err != nil {
			return err
		}
	}
	if err := proposals.Delete(u.tx, best.Index); err != nil {
		return err
	}
	ballot := types.Ballot{
		End:       now.Add(e.cfg.VotingPeriod),
		Proposal:  best.Proposal,
		Threshold: types.SuperMajorityApprove,
		Delay:     e.cfg.EnactmentDelay,
	}
	if err := e.inject(u, &ballot); err != nil {
		return err
	}
	u.emit(events.Tabled{
		Index:      best.Index,
		Ballot:     ballot.ID,
		Deposit:    best.Deposit,
		Depositors: best.Depositors,
	})
	u.emit(events.Started{Ballot: ballot.ID, End: ballot.End, Threshold: ballot.Threshold})
	e.logger.Info("proposal tabled",
		zap.Uint32("height", now.Uint32()),
		zap.Uint32("index", best.Index),
		zap.Uint32("ballot", uint32(ballot.ID)),
		zap.Uint64("backing", uint64(backing)),
	)
	return nil
}
