package democracy

import (
	"context"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/events"
	"github.com/spacemeshos/go-democracy/sql"
)

//go:generate mockgen -typed -package=democracy -destination=./mocks.go -source=./interface.go

// Ledger holds balances. Every call is made within the transaction of the engine.
type Ledger interface {
	Stake(sql.Executor, types.Address) (types.Amount, error)
	TotalIssuance(sql.Executor) (types.Amount, error)
	Reserve(sql.Executor, types.Address, types.Amount) error
	Unreserve(sql.Executor, types.Address, types.Amount) (types.Amount, error)
	ExtendLock(sql.Executor, types.Address, types.Height) error
	SetLock(sql.Executor, types.Address, types.Height) error
}

// Enactor applies passed proposals. Changes written to the executor are
// rolled back if Enact returns an error.
type Enactor interface {
	Enact(context.Context, sql.Executor, types.Height, types.Proposal) error
}

// Publisher receives events after the change that produced them is committed.
type Publisher interface {
	Publish(events.Event)
}
