// Package dispatch stores the queue of passed proposals waiting for enactment.
package dispatch

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/codec"
	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

// Enqueue the proposal for enactment at the height. Returns position of the entry.
func Enqueue(db sql.Executor, when types.Height, ballot types.BallotID, proposal *types.Proposal) (uint32, error) {
	var position uint32
	if _, err := db.Exec(`insert into dispatch (height, position, ballot, proposal)
		values (?1, (select coalesce(max(position) + 1, 0) from dispatch where height = ?1), ?2, ?3)
		returning position;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(when))
			stmt.BindInt64(2, int64(ballot))
			stmt.BindBytes(3, codec.MustEncode(proposal))
		}, func(stmt *sql.Statement) bool {
			position = uint32(stmt.ColumnInt64(0))
			return false
		}); err != nil {
		return 0, fmt.Errorf("enqueue %d at %d: %w", ballot, when, err)
	}
	return position, nil
}

func query(db sql.Executor, query string, enc sql.Encoder) ([]types.Enactment, error) {
	var (
		rst  []types.Enactment
		derr error
	)
	if _, err := db.Exec(query, enc, func(stmt *sql.Statement) bool {
		e := types.Enactment{
			When:     types.Height(stmt.ColumnInt64(0)),
			Position: uint32(stmt.ColumnInt64(1)),
			Ballot:   types.BallotID(stmt.ColumnInt64(2)),
		}
		if _, derr = codec.DecodeFrom(stmt.ColumnReader(3), &e.Proposal); derr != nil {
			derr = fmt.Errorf("decode enactment of %d: %w", e.Ballot, derr)
			return false
		}
		rst = append(rst, e)
		return true
	}); err != nil {
		return nil, err
	}
	return rst, derr
}

// At returns enactments scheduled at the height in queue order.
func At(db sql.Executor, when types.Height) ([]types.Enactment, error) {
	rst, err := query(db, `select height, position, ballot, proposal from dispatch
		where height = ?1 order by position asc;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(when))
		})
	if err != nil {
		return nil, fmt.Errorf("enactments at %d: %w", when, err)
	}
	return rst, nil
}

// Due returns enactments scheduled at or before the height in queue order.
func Due(db sql.Executor, height types.Height) ([]types.Enactment, error) {
	rst, err := query(db, `select height, position, ballot, proposal from dispatch
		where height <= ?1 order by height, position;`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(height))
		})
	if err != nil {
		return nil, fmt.Errorf("enactments due at %d: %w", height, err)
	}
	return rst, nil
}

// All queued enactments ordered by height and position.
func All(db sql.Executor) ([]types.Enactment, error) {
	rst, err := query(db, "select height, position, ballot, proposal from dispatch order by height, position;", nil)
	if err != nil {
		return nil, fmt.Errorf("all enactments: %w", err)
	}
	return rst, nil
}

// Delete returns sql.ErrNotFound if nothing is queued at the position.
func Delete(db sql.Executor, when types.Height, position uint32) error {
	rows, err := db.Exec("delete from dispatch where height = ?1 and position = ?2 returning ballot;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(when))
			stmt.BindInt64(2, int64(position))
		}, nil)
	if err != nil {
		return fmt.Errorf("delete enactment %d/%d: %w", when, position, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: enactment %d/%d", sql.ErrNotFound, when, position)
	}
	return nil
}
