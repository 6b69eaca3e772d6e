package democracy

import (
	"errors"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
	"github.com/spacemeshos/go-democracy/sql/delegations"
	"github.com/spacemeshos/go-democracy/sql/votes"
	"github.com/spacemeshos/go-democracy/tally"
)

// source reads tally inputs from the database and ledger within one transaction.
type source struct {
	db     sql.Executor
	ledger Ledger
}

var _ tally.Source = (*source)(nil)

func (s *source) Voters(ballot types.BallotID) ([]types.Address, error) {
	return votes.Voters(s.db, ballot)
}

func (s *source) VoteOf(ballot types.BallotID, voter types.Address) (types.Vote, bool, error) {
	vote, err := votes.Get(s.db, ballot, voter)
	switch {
	case errors.Is(err, sql.ErrNotFound):
		return types.Vote{}, false, nil
	case err != nil:
		return types.Vote{}, false, err
	}
	return vote, true, nil
}

func (s *source) Delegators(delegate types.Address) ([]types.Delegation, error) {
	return delegations.Delegators(s.db, delegate)
}

func (s *source) Stake(account types.Address) (types.Amount, error) {
	return s.ledger.Stake(s.db, account)
}
