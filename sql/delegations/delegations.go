// Package delegations stores delegation edges. Each account has at most one
// outgoing edge, edges pointing to an account are iterated in creation order.
package delegations

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

const fields = "delegator, delegate, max_strength"

func decode(stmt *sql.Statement, d *types.Delegation) {
	stmt.ColumnBytes(0, d.Delegator[:])
	stmt.ColumnBytes(1, d.Delegate[:])
	d.MaxStrength = uint8(stmt.ColumnInt64(2))
}

// Set creates the edge or replaces the existing one in place.
func Set(db sql.Executor, d types.Delegation) error {
	if _, err := db.Exec(`insert into delegations (delegator, delegate, max_strength, seq)
		values (?1, ?2, ?3, (select coalesce(max(seq), 0) + 1 from delegations))
		on conflict (delegator) do update set
			delegate = excluded.delegate,
			max_strength = excluded.max_strength;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, d.Delegator.Bytes())
			stmt.BindBytes(2, d.Delegate.Bytes())
			stmt.BindInt64(3, int64(d.MaxStrength))
		}, nil); err != nil {
		return fmt.Errorf("set delegation of %s: %w", d.Delegator, err)
	}
	return nil
}

// Get returns sql.ErrNotFound if account doesn't delegate.
func Get(db sql.Executor, delegator types.Address) (types.Delegation, error) {
	var rst types.Delegation
	rows, err := db.Exec("select "+fields+" from delegations where delegator = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, delegator.Bytes())
		}, func(stmt *sql.Statement) bool {
			decode(stmt, &rst)
			return false
		})
	if err != nil {
		return rst, fmt.Errorf("get delegation of %s: %w", delegator, err)
	}
	if rows == 0 {
		return rst, fmt.Errorf("%w: delegation of %s", sql.ErrNotFound, delegator)
	}
	return rst, nil
}

// Delete returns sql.ErrNotFound if account doesn't delegate.
func Delete(db sql.Executor, delegator types.Address) error {
	rows, err := db.Exec("delete from delegations where delegator = ?1 returning delegator;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, delegator.Bytes())
		}, nil)
	if err != nil {
		return fmt.Errorf("delete delegation of %s: %w", delegator, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: delegation of %s", sql.ErrNotFound, delegator)
	}
	return nil
}

// Delegators returns edges pointing to the delegate in creation order.
func Delegators(db sql.Executor, delegate types.Address) ([]types.Delegation, error) {
	var rst []types.Delegation
	if _, err := db.Exec("select "+fields+" from delegations where delegate = ?1 order by seq asc;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, delegate.Bytes())
		}, func(stmt *sql.Statement) bool {
			var d types.Delegation
			decode(stmt, &d)
			rst = append(rst, d)
			return true
		}); err != nil {
		return nil, fmt.Errorf("delegators of %s: %w", delegate, err)
	}
	return rst, nil
}

// All edges in creation order.
func All(db sql.Executor) ([]types.Delegation, error) {
	var rst []types.Delegation
	if _, err := db.Exec("select "+fields+" from delegations order by seq asc;", nil,
		func(stmt *sql.Statement) bool {
			var d types.Delegation
			decode(stmt, &d)
			rst = append(rst, d)
			return true
		}); err != nil {
		return nil, fmt.Errorf("all delegations: %w", err)
	}
	return rst, nil
}
