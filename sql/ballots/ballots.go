package ballots

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/codec"
	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

const fields = "id, end_height, threshold, delay, proposal"

func decode(stmt *sql.Statement) (types.Ballot, error) {
	ballot := types.Ballot{
		ID:        types.BallotID(stmt.ColumnInt64(0)),
		End:       types.Height(stmt.ColumnInt64(1)),
		Threshold: types.VoteThreshold(stmt.ColumnInt64(2)),
		Delay:     uint32(stmt.ColumnInt64(3)),
	}
	if _, err := codec.DecodeFrom(stmt.ColumnReader(4), &ballot.Proposal); err != nil {
		return types.Ballot{}, fmt.Errorf("decode proposal of %d: %w", ballot.ID, err)
	}
	return ballot, nil
}

// Add ballot. Returns sql.ErrObjectExists if the id is taken.
func Add(db sql.Executor, ballot *types.Ballot) error {
	if _, err := db.Exec("insert into ballots ("+fields+") values (?1, ?2, ?3, ?4, ?5);",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(ballot.ID))
			stmt.BindInt64(2, int64(ballot.End))
			stmt.BindInt64(3, int64(ballot.Threshold))
			stmt.BindInt64(4, int64(ballot.Delay))
			stmt.BindBytes(5, codec.MustEncode(&ballot.Proposal))
		}, nil); err != nil {
		return fmt.Errorf("insert ballot %d: %w", ballot.ID, err)
	}
	return nil
}

// Get returns sql.ErrNotFound if ballot is not active.
func Get(db sql.Executor, id types.BallotID) (*types.Ballot, error) {
	var (
		rst  types.Ballot
		derr error
	)
	rows, err := db.Exec("select "+fields+" from ballots where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
		}, func(stmt *sql.Statement) bool {
			rst, derr = decode(stmt)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get ballot %d: %w", id, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: ballot %d", sql.ErrNotFound, id)
	}
	if derr != nil {
		return nil, derr
	}
	return &rst, nil
}

// Has returns true if ballot is active.
func Has(db sql.Executor, id types.BallotID) (bool, error) {
	rows, err := db.Exec("select 1 from ballots where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
		}, nil)
	if err != nil {
		return false, fmt.Errorf("has ballot %d: %w", id, err)
	}
	return rows > 0, nil
}

// Delete returns sql.ErrNotFound if ballot is not active.
func Delete(db sql.Executor, id types.BallotID) error {
	rows, err := db.Exec("delete from ballots where id = ?1 returning id;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(id))
		}, nil)
	if err != nil {
		return fmt.Errorf("delete ballot %d: %w", id, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: ballot %d", sql.ErrNotFound, id)
	}
	return nil
}

func query(db sql.Executor, query string, enc sql.Encoder) ([]types.Ballot, error) {
	var (
		rst  []types.Ballot
		derr error
	)
	if _, err := db.Exec(query, enc, func(stmt *sql.Statement) bool {
		var ballot types.Ballot
		ballot, derr = decode(stmt)
		if derr != nil {
			return false
		}
		rst = append(rst, ballot)
		return true
	}); err != nil {
		return nil, err
	}
	return rst, derr
}

// Active returns active ballots ordered by id.
func Active(db sql.Executor) ([]types.Ballot, error) {
	rst, err := query(db, "select "+fields+" from ballots order by id asc;", nil)
	if err != nil {
		return nil, fmt.Errorf("active ballots: %w", err)
	}
	return rst, nil
}

// Matured returns ballots with id at least from that end at or before the height, ordered by id.
func Matured(db sql.Executor, from types.BallotID, height types.Height) ([]types.Ballot, error) {
	rst, err := query(db, "select "+fields+" from ballots where id >= ?1 and end_height <= ?2 order by id asc;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(from))
			stmt.BindInt64(2, int64(height))
		})
	if err != nil {
		return nil, fmt.Errorf("matured ballots at %d: %w", height, err)
	}
	return rst, nil
}
