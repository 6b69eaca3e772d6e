// Package votes stores direct votes. Voters of a ballot are ordered by the
// sequence number assigned on their first vote.
package votes

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

// Record is a direct vote of an account.
type Record struct {
	Voter types.Address
	Vote  types.Vote
}

// Set inserts a vote or overwrites direction and strength of the existing one.
// The voter keeps its original position.
func Set(db sql.Executor, ballot types.BallotID, voter types.Address, vote types.Vote) error {
	if _, err := db.Exec(`insert into votes (ballot, voter, direction, strength, seq)
		values (?1, ?2, ?3, ?4, (select coalesce(max(seq), 0) + 1 from votes where ballot = ?1))
		on conflict (ballot, voter) do update set
			direction = excluded.direction,
			strength = excluded.strength;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(ballot))
			stmt.BindBytes(2, voter.Bytes())
			stmt.BindInt64(3, int64(vote.Direction))
			stmt.BindInt64(4, int64(vote.Strength))
		}, nil); err != nil {
		return fmt.Errorf("set vote %s on %d: %w", voter, ballot, err)
	}
	return nil
}

// Get returns sql.ErrNotFound if the account did not vote.
func Get(db sql.Executor, ballot types.BallotID, voter types.Address) (types.Vote, error) {
	var vote types.Vote
	rows, err := db.Exec("select direction, strength from votes where ballot = ?1 and voter = ?2;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(ballot))
			stmt.BindBytes(2, voter.Bytes())
		}, func(stmt *sql.Statement) bool {
			vote.Direction = types.Direction(stmt.ColumnInt64(0))
			vote.Strength = uint8(stmt.ColumnInt64(1))
			return false
		})
	if err != nil {
		return types.Vote{}, fmt.Errorf("get vote %s on %d: %w", voter, ballot, err)
	}
	if rows == 0 {
		return types.Vote{}, fmt.Errorf("%w: vote %s on %d", sql.ErrNotFound, voter, ballot)
	}
	return vote, nil
}

// Voters of the ballot in the order of their first vote.
func Voters(db sql.Executor, ballot types.BallotID) ([]types.Address, error) {
	var rst []types.Address
	if _, err := db.Exec("select voter from votes where ballot = ?1 order by seq asc;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(ballot))
		}, func(stmt *sql.Statement) bool {
			var voter types.Address
			stmt.ColumnBytes(0, voter[:])
			rst = append(rst, voter)
			return true
		}); err != nil {
		return nil, fmt.Errorf("voters of %d: %w", ballot, err)
	}
	return rst, nil
}

// All votes of the ballot in the order of the first vote.
func All(db sql.Executor, ballot types.BallotID) ([]Record, error) {
	var rst []Record
	if _, err := db.Exec("select voter, direction, strength from votes where ballot = ?1 order by seq asc;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(ballot))
		}, func(stmt *sql.Statement) bool {
			var record Record
			stmt.ColumnBytes(0, record.Voter[:])
			record.Vote.Direction = types.Direction(stmt.ColumnInt64(1))
			record.Vote.Strength = uint8(stmt.ColumnInt64(2))
			rst = append(rst, record)
			return true
		}); err != nil {
		return nil, fmt.Errorf("votes of %d: %w", ballot, err)
	}
	return rst, nil
}

// Clear removes all votes of the ballot and returns how many were removed.
func Clear(db sql.Executor, ballot types.BallotID) (int, error) {
	rows, err := db.Exec("delete from votes where ballot = ?1 returning voter;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(ballot))
		}, nil)
	if err != nil {
		return 0, fmt.Errorf("clear votes of %d: %w", ballot, err)
	}
	return rows, nil
}
