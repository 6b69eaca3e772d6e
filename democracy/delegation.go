package democracy

import (
	"context"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql/delegations"
)

// Delegate votes of the account to another account with strength capped at
// maxStrength. Replaces an existing delegation. Funds of the delegator stay
// locked until the delegation is removed.
//
// Self delegation and cycles are accepted, the tally walk is bounded by depth.
// maxStrength above the configured maximum is lowered to it.
func (e *Engine) Delegate(ctx context.Context, who, to types.Address, maxStrength uint8) error {
	if maxStrength == 0 {
		return ErrZeroStrength
	}
	maxStrength = min(maxStrength, e.cfg.MaxStrength)
	delegation := types.Delegation{Delegator: who, Delegate: to, MaxStrength: maxStrength}
	return e.mutate(ctx, func(u *update) error {
		if err := delegations.Set(u.tx, delegation); err != nil {
			return err
		}
		if err := e.ledger.ExtendLock(u.tx, who, types.MaxHeight); err != nil {
			return err
		}
		u.emit(events.Delegated{Delegation: delegation})
		return nil
	})
}

// Undelegate removes the delegation. Funds stay locked for the lock period
// multiplied by strength of the removed delegation.
func (e *Engine) Undelegate(ctx context.Context, who types.Address) error {
	return e.mutate(ctx, func(u *update) error {
		delegation, err := delegations.Get(u.tx, who)
		if err != nil {
			return notFound(err, ErrNotDelegated)
		}
		if err := delegations.Delete(u.tx, who); err != nil {
			return err
		}
		current, err := now(u.tx)
		if err != nil {
			return err
		}
		if err := e.ledger.SetLock(u.tx, who, current.AddMul(e.cfg.LockPeriod, delegation.MaxStrength)); err != nil {
			return err
		}
		u.emit(events.Undelegated{Delegator: who})
		return nil
	})
}
