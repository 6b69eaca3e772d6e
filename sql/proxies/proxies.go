// Package proxies maps proxy accounts to the stash accounts they vote for.
package proxies

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

// Add returns sql.ErrObjectExists if the proxy already votes for some account.
func Add(db sql.Executor, proxy, stash types.Address) error {
	if _, err := db.Exec("insert into proxies (proxy, stash) values (?1, ?2);",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, proxy.Bytes())
			stmt.BindBytes(2, stash.Bytes())
		}, nil); err != nil {
		return fmt.Errorf("add proxy %s: %w", proxy, err)
	}
	return nil
}

// Get returns stash of the proxy or sql.ErrNotFound.
func Get(db sql.Executor, proxy types.Address) (types.Address, error) {
	var stash types.Address
	rows, err := db.Exec("select stash from proxies where proxy = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, proxy.Bytes())
		}, func(stmt *sql.Statement) bool {
			stmt.ColumnBytes(0, stash[:])
			return false
		})
	if err != nil {
		return stash, fmt.Errorf("get proxy %s: %w", proxy, err)
	}
	if rows == 0 {
		return stash, fmt.Errorf("%w: proxy %s", sql.ErrNotFound, proxy)
	}
	return stash, nil
}

// Delete returns sql.ErrNotFound if proxy doesn't exist.
func Delete(db sql.Executor, proxy types.Address) error {
	rows, err := db.Exec("delete from proxies where proxy = ?1 returning stash;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, proxy.Bytes())
		}, nil)
	if err != nil {
		return fmt.Errorf("delete proxy %s: %w", proxy, err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: proxy %s", sql.ErrNotFound, proxy)
	}
	return nil
}

// Of returns proxies voting for the stash ordered by proxy address.
func Of(db sql.Executor, stash types.Address) ([]types.Address, error) {
	var rst []types.Address
	if _, err := db.Exec("select proxy from proxies where stash = ?1 order by proxy asc;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, stash.Bytes())
		}, func(stmt *sql.Statement) bool {
			var proxy types.Address
			stmt.ColumnBytes(0, proxy[:])
			rst = append(rst, proxy)
			return true
		}); err != nil {
		return nil, fmt.Errorf("proxies of %s: %w", stash, err)
	}
	return rst, nil
}
