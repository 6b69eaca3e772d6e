package democracy

import (
	"fmt"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/ballots"
	"github.com/spacemeshos/go-democracy/sql/delegations"
	"github.com/spacemeshos/go-democracy/sql/dispatch"
	"github.com/spacemeshos/go-democracy/sql/kvstore"
	"github.com/spacemeshos/go-democracy/sql/proposals"
	"github.com/spacemeshos/go-democracy/sql/proxies"
	"github.com/spacemeshos/go-democracy/sql/votes"
	"github.com/spacemeshos/go-democracy/tally"
)

// Preview is a tally of an active ballot computed without side effects.
type Preview struct {
	tally.Result
	Electorate types.Amount
	Approved   bool
}

// MarshalLogObject implements logging interface.
func (p *Preview) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	if err := p.Result.MarshalLogObject(encoder); err != nil {
		return err
	}
	encoder.AddUint64("electorate", uint64(p.Electorate))
	encoder.AddBool("approved", p.Approved)
	return nil
}

type cachedPreview struct {
	version uint64
	preview Preview
}

// ActiveBallots returns ballots that are not baked or cancelled, ordered by id.
func (e *Engine) ActiveBallots() (rst []types.Ballot, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = ballots.Active(db)
		return err
	})
	return rst, err
}

// BallotInfo returns ErrBallotNotActive if the ballot is not active.
func (e *Engine) BallotInfo(id types.BallotID) (rst *types.Ballot, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = ballots.Get(db, id)
		return notFound(err, ErrBallotNotActive)
	})
	return rst, err
}

// TallyPreview counts votes of the active ballot as if it ended now.
func (e *Engine) TallyPreview(id types.BallotID) (rst Preview, err error) {
	err = e.view(func(db sql.Executor) error {
		if cached, exists := e.previews.Get(id); exists && cached.version == e.version {
			previewHit.Inc()
			rst = cached.preview
			return nil
		}
		previewMiss.Inc()
		ballot, err := ballots.Get(db, id)
		if err != nil {
			return notFound(err, ErrBallotNotActive)
		}
		start := time.Now()
		result, err := tally.Count(&source{db: db, ledger: e.ledger}, id, e.cfg.MaxDelegationDepth)
		previewDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return fmt.Errorf("tally %d: %w", id, err)
		}
		electorate, err := e.ledger.TotalIssuance(db)
		if err != nil {
			return err
		}
		rst = Preview{
			Result:     result,
			Electorate: electorate,
			Approved:   tally.Approved(ballot.Threshold, result.Approve, result.Against, result.Turnout, electorate),
		}
		e.previews.Add(id, cachedPreview{version: e.version, preview: rst})
		return nil
	})
	return rst, err
}

// VotersFor returns direct votes of the active ballot in order of the first vote.
func (e *Engine) VotersFor(id types.BallotID) (rst []votes.Record, err error) {
	err = e.view(func(db sql.Executor) error {
		active, err := ballots.Has(db, id)
		if err != nil {
			return err
		}
		if !active {
			return fmt.Errorf("%w: %d", ErrBallotNotActive, id)
		}
		rst, err = votes.All(db, id)
		return err
	})
	return rst, err
}

// PublicProposals returns proposals waiting to be tabled, ordered by index.
func (e *Engine) PublicProposals() (rst []types.PublicProposal, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = proposals.All(db)
		return err
	})
	return rst, err
}

// DelegationOf returns ErrNotDelegated if the account doesn't delegate.
func (e *Engine) DelegationOf(account types.Address) (rst types.Delegation, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = delegations.Get(db, account)
		return notFound(err, ErrNotDelegated)
	})
	return rst, err
}

// Delegations returns every delegation edge in insertion order.
func (e *Engine) Delegations() (rst []types.Delegation, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = delegations.All(db)
		return err
	})
	return rst, err
}

// ProxyOf returns the stash the proxy votes for.
func (e *Engine) ProxyOf(proxy types.Address) (rst types.Address, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = proxies.Get(db, proxy)
		return notFound(err, ErrNotProxy)
	})
	return rst, err
}

// Queued returns passed proposals waiting for enactment.
func (e *Engine) Queued() (rst []types.Enactment, err error) {
	err = e.view(func(db sql.Executor) error {
		rst, err = dispatch.All(db)
		return err
	})
	return rst, err
}

// LastTick returns the last processed height. False if nothing was processed yet.
func (e *Engine) LastTick() (height types.Height, processed bool, err error) {
	err = e.view(func(db sql.Executor) error {
		next, err := kvstore.GetUint64(db, nextTickKey)
		if err != nil {
			return err
		}
		if next > 0 {
			height, processed = types.Height(next-1), true
		}
		return nil
	})
	return height, processed, err
}
