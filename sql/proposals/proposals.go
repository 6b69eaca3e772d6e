// Package proposals stores public proposals and their deposits until they are tabled.
package proposals

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/codec"
	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

// Add the proposal with the proposer as the first depositor.
func Add(db sql.Executor, p *types.PublicProposal) error {
	if _, err := db.Exec(`insert into proposals (idx, proposer, deposit, proposal)
		values (?1, ?2, ?3, ?4);`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(p.Index))
			stmt.BindBytes(2, p.Proposer.Bytes())
			stmt.BindInt64(3, int64(p.Deposit))
			stmt.BindBytes(4, codec.MustEncode(&p.Proposal))
		}, nil); err != nil {
		return fmt.Errorf("insert proposal %d: %w", p.Index, err)
	}
	for _, depositor := range p.Depositors {
		if err := AddDeposit(db, p.Index, depositor); err != nil {
			return err
		}
	}
	return nil
}

// AddDeposit appends a depositor to the proposal.
func AddDeposit(db sql.Executor, index uint32, depositor types.Address) error {
	if _, err := db.Exec(`insert into deposits (proposal, position, depositor)
		values (?1, (select count(*) from deposits where proposal = ?1), ?2);`,
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(index))
			stmt.BindBytes(2, depositor.Bytes())
		}, nil); err != nil {
		return fmt.Errorf("add deposit to %d: %w", index, err)
	}
	return nil
}

func depositors(db sql.Executor, index uint32) ([]types.Address, error) {
	var rst []types.Address
	if _, err := db.Exec("select depositor from deposits where proposal = ?1 order by position asc;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(index))
		}, func(stmt *sql.Statement) bool {
			var addr types.Address
			stmt.ColumnBytes(0, addr[:])
			rst = append(rst, addr)
			return true
		}); err != nil {
		return nil, fmt.Errorf("depositors of %d: %w", index, err)
	}
	return rst, nil
}

func decode(stmt *sql.Statement) (types.PublicProposal, error) {
	p := types.PublicProposal{
		Index:   uint32(stmt.ColumnInt64(0)),
		Deposit: types.Amount(stmt.ColumnInt64(2)),
	}
	stmt.ColumnBytes(1, p.Proposer[:])
	if _, err := codec.DecodeFrom(stmt.ColumnReader(3), &p.Proposal); err != nil {
		return p, fmt.Errorf("decode proposal %d: %w", p.Index, err)
	}
	return p, nil
}

// Get returns sql.ErrNotFound if proposal is not pending.
func Get(db sql.Executor, index uint32) (*types.PublicProposal, error) {
	var (
		rst  types.PublicProposal
		derr error
	)
	rows, err := db.Exec("select idx, proposer, deposit, proposal from proposals where idx = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(index))
		}, func(stmt *sql.Statement) bool {
			rst, derr = decode(stmt)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get proposal %d: %w", index, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: proposal %d", sql.ErrNotFound, index)
	}
	if derr != nil {
		return nil, derr
	}
	rst.Depositors, err = depositors(db, index)
	if err != nil {
		return nil, err
	}
	return &rst, nil
}

// All pending proposals ordered by index.
func All(db sql.Executor) ([]types.PublicProposal, error) {
	var (
		rst  []types.PublicProposal
		derr error
	)
	if _, err := db.Exec("select idx, proposer, deposit, proposal from proposals order by idx asc;", nil,
		func(stmt *sql.Statement) bool {
			var p types.PublicProposal
			p, derr = decode(stmt)
			if derr != nil {
				return false
			}
			rst = append(rst, p)
			return true
		}); err != nil {
		return nil, fmt.Errorf("all proposals: %w", err)
	}
	if derr != nil {
		return nil, derr
	}
	for i := range rst {
		var err error
		if rst[i].Depositors, err = depositors(db, rst[i].Index); err != nil {
			return nil, err
		}
	}
	return rst, nil
}

// Delete the proposal with its deposits.
func Delete(db sql.Executor, index uint32) error {
	rows, err := db.Exec("delete from proposals where idx = ?1 returning idx;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(index))
		}, nil)
	if err != nil {
		return fmt.Errorf("delete proposal %d: %w", index, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: proposal %d", sql.ErrNotFound, index)
	}
	if _, err := db.Exec("delete from deposits where proposal = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindInt64(1, int64(index))
		}, nil); err != nil {
		return fmt.Errorf("delete deposits of %d: %w", index, err)
	}
	return nil
}
