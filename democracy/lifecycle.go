package democracy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/ballots"
	"github.com/spacemeshos/go-democracy/sql/dispatch"
	"github.com/spacemeshos/go-democracy/sql/kvstore"
	"github.com/spacemeshos/go-democracy/sql/votes"
	"github.com/spacemeshos/go-democracy/tally"
)

// InjectBallot starts a ballot directly, bypassing public proposals.
// Ballots must be injected in order of their end heights.
func (e *Engine) InjectBallot(
	ctx context.Context,
	end types.Height,
	proposal types.Proposal,
	threshold types.VoteThreshold,
	delay uint32,
) (types.BallotID, error) {
	if !threshold.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidThreshold, threshold)
	}
	if len(proposal.Body) > types.MaxProposalBody {
		return 0, fmt.Errorf("%w: %d bytes", ErrProposalTooLarge, len(proposal.Body))
	}
	ballot := types.Ballot{End: end, Proposal: proposal, Threshold: threshold, Delay: delay}
	if err := e.mutate(ctx, func(u *update) error {
		if err := e.inject(u, &ballot); err != nil {
			return err
		}
		u.emit(events.Started{Ballot: ballot.ID, End: ballot.End, Threshold: ballot.Threshold})
		return nil
	}); err != nil {
		return 0, err
	}
	e.logger.Info("ballot injected", zap.Object("ballot", &ballot))
	return ballot.ID, nil
}

// inject assigns id to the ballot and stores it.
func (e *Engine) inject(u *update, ballot *types.Ballot) error {
	last, err := kvstore.GetUint64(u.tx, lastEndKey)
	if err != nil {
		return err
	}
	if uint64(ballot.End) < last {
		return fmt.Errorf("%w: end %d, previous end %d", ErrOutOfOrderInjection, ballot.End, last)
	}
	id, err := kvstore.Increment(u.tx, nextBallotKey)
	if err != nil {
		return err
	}
	ballot.ID = types.BallotID(id)
	if err := ballots.Add(u.tx, ballot); err != nil {
		return err
	}
	return kvstore.SetUint64(u.tx, lastEndKey, uint64(ballot.End))
}

// CancelBallot removes an active ballot and its votes without a tally.
func (e *Engine) CancelBallot(ctx context.Context, id types.BallotID) error {
	return e.mutate(ctx, func(u *update) error {
		if err := ballots.Delete(u.tx, id); err != nil {
			return notFound(err, ErrBallotNotActive)
		}
		if _, err := votes.Clear(u.tx, id); err != nil {
			return err
		}
		u.emit(events.Cancelled{Ballot: id})
		return nil
	})
}

// CancelQueued removes a passed proposal from the enactment queue.
func (e *Engine) CancelQueued(ctx context.Context, when types.Height, position uint32) error {
	return e.mutate(ctx, func(u *update) error {
		return notFound(dispatch.Delete(u.tx, when, position), ErrQueuedNotFound)
	})
}

// OnTick processes the height. Heights must be processed in increasing order,
// skipped heights are processed as a part of the next one.
//
// Promotion of a public proposal runs when height is a multiple of the launch
// period. Then every ballot that ended at or before the height is tallied,
// and every enactment due at the height is applied.
func (e *Engine) OnTick(ctx context.Context, height types.Height) error {
	return e.mutate(ctx, func(u *update) error {
		next, err := kvstore.GetUint64(u.tx, nextTickKey)
		if err != nil {
			return err
		}
		if uint64(height) < next {
			return fmt.Errorf("%w: %d, expected at least %d", ErrHeightProcessed, height, next)
		}
		if height.Uint32()%e.cfg.LaunchPeriod == 0 {
			err := sql.WithSavepoint(u.tx, "promotion", func() error {
				return e.promote(u, height)
			})
			switch {
			case errors.Is(err, ErrOutOfOrderInjection):
				// proposal stays pending until a later launch height
				e.logger.Warn("public proposal is not tabled",
					zap.Uint32("height", height.Uint32()),
					zap.Error(err),
				)
			case err != nil:
				return fmt.Errorf("promote at %d: %w", height, err)
			}
		}
		from, err := kvstore.GetUint64(u.tx, nextTallyKey)
		if err != nil {
			return err
		}
		matured, err := ballots.Matured(u.tx, types.BallotID(from), height)
		if err != nil {
			return err
		}
		for i := range matured {
			if err := e.bake(ctx, u, height, &matured[i]); err != nil {
				return fmt.Errorf("bake %d: %w", matured[i].ID, err)
			}
		}
		if len(matured) > 0 {
			if err := kvstore.SetUint64(u.tx, nextTallyKey, uint64(matured[len(matured)-1].ID)+1); err != nil {
				return err
			}
		}
		due, err := dispatch.Due(u.tx, height)
		if err != nil {
			return err
		}
		for _, enactment := range due {
			if err := dispatch.Delete(u.tx, enactment.When, enactment.Position); err != nil {
				return err
			}
			e.enact(ctx, u, height, enactment.Ballot, enactment.Proposal)
		}
		if err := kvstore.SetUint64(u.tx, nextTickKey, uint64(height)+1); err != nil {
			return err
		}
		lastTick.Set(float64(height))
		return nil
	})
}

// bake tallies the matured ballot and removes it with its votes.
func (e *Engine) bake(ctx context.Context, u *update, now types.Height, ballot *types.Ballot) error {
	start := time.Now()
	src := &source{db: u.tx, ledger: e.ledger}
	result, err := tally.Count(src, ballot.ID, e.cfg.MaxDelegationDepth)
	bakeDuration.Observe(time.Since(start).Seconds())
	passed := false
	switch {
	case errors.Is(err, types.ErrArithmeticOverflow):
		e.logger.Error("tally overflowed, ballot is not passed",
			zap.Uint32("height", now.Uint32()),
			zap.Uint32("ballot", uint32(ballot.ID)),
			zap.Error(err),
		)
		result = tally.Result{}
	case err != nil:
		return err
	default:
		electorate, err := e.ledger.TotalIssuance(u.tx)
		if err != nil {
			return err
		}
		passed = tally.Approved(ballot.Threshold, result.Approve, result.Against, result.Turnout, electorate)
	}
	if passed {
		if err := tally.Walk(src, ballot.ID, e.cfg.MaxDelegationDepth, func(p *tally.Participant) error {
			if p.Direction != types.Approve {
				return nil
			}
			return e.ledger.ExtendLock(u.tx, p.Account, now.AddMul(e.cfg.LockPeriod, p.Strength))
		}); err != nil {
			return fmt.Errorf("lock winners: %w", err)
		}
	}
	if _, err := votes.Clear(u.tx, ballot.ID); err != nil {
		return err
	}
	if err := ballots.Delete(u.tx, ballot.ID); err != nil {
		return err
	}
	e.logger.Info("ballot baked",
		zap.Uint32("height", now.Uint32()),
		zap.Object("ballot", ballot),
		zap.Object("result", &result),
		zap.Bool("passed", passed),
	)
	if !passed {
		bakedNotPassed.Inc()
		u.emit(events.NotPassed{
			Ballot:  ballot.ID,
			Approve: result.Approve,
			Against: result.Against,
			Turnout: result.Turnout,
		})
		return nil
	}
	bakedPassed.Inc()
	u.emit(events.Passed{
		Ballot:  ballot.ID,
		Approve: result.Approve,
		Against: result.Against,
		Turnout: result.Turnout,
	})
	if ballot.Delay == 0 {
		e.enact(ctx, u, now, ballot.ID, ballot.Proposal)
		return nil
	}
	when := now.Add(ballot.Delay)
	position, err := dispatch.Enqueue(u.tx, when, ballot.ID, &ballot.Proposal)
	if err != nil {
		return err
	}
	u.emit(events.Scheduled{Ballot: ballot.ID, When: when, Position: position})
	return nil
}

// enact applies the proposal within a savepoint. Failure is reported with
// an event and doesn't abort the tick.
func (e *Engine) enact(ctx context.Context, u *update, now types.Height, ballot types.BallotID, proposal types.Proposal) {
	err := sql.WithSavepoint(u.tx, "enactment", func() error {
		return e.enactor.Enact(ctx, u.tx, now, proposal)
	})
	if err != nil {
		enactmentsFailed.Inc()
		e.logger.Warn("enactment failed",
			zap.Uint32("height", now.Uint32()),
			zap.Uint32("ballot", uint32(ballot)),
			zap.Object("proposal", &proposal),
			zap.Error(err),
		)
		u.emit(events.Executed{Ballot: ballot, OK: false, Error: err.Error()})
		return
	}
	enactmentsOK.Inc()
	e.logger.Info("proposal enacted",
		zap.Uint32("height", now.Uint32()),
		zap.Uint32("ballot", uint32(ballot)),
		zap.Stringer("hash", proposal.Hash()),
	)
	u.emit(events.Executed{Ballot: ballot, OK: true})
}
