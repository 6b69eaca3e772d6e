package accounts

import (
	"fmt"

	"github.com/spacemeshos/go-democracy/common/types"
	"github.com/spacemeshos/go-democracy/sql"
)

// Account is a balance record of an address.
type Account struct {
	Address   types.Address
	Balance   types.Amount
	Reserved  types.Amount
	LockUntil types.Height
}

func decode(stmt *sql.Statement, account *Account) {
	stmt.ColumnBytes(0, account.Address[:])
	account.Balance = types.Amount(stmt.ColumnInt64(1))
	account.Reserved = types.Amount(stmt.ColumnInt64(2))
	account.LockUntil = types.Height(uint32(stmt.ColumnInt64(3)))
}

// Get account by address. Returns sql.ErrNotFound if account was never updated.
func Get(db sql.Executor, address types.Address) (Account, error) {
	var account Account
	rows, err := db.Exec(`select address, balance, reserved, lock_until
		from accounts where address = ?1;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, func(stmt *sql.Statement) bool {
			decode(stmt, &account)
			return false
		})
	if err != nil {
		return Account{}, fmt.Errorf("load %s: %w", address, err)
	}
	if rows == 0 {
		return Account{}, fmt.Errorf("%w: account %s", sql.ErrNotFound, address)
	}
	return account, nil
}

// Has the account in the database.
func Has(db sql.Executor, address types.Address) (bool, error) {
	rows, err := db.Exec("select 1 from accounts where address = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, address.Bytes())
		}, nil,
	)
	if err != nil {
		return false, fmt.Errorf("has address %v: %w", address, err)
	}
	return rows > 0, nil
}

// Update inserts or overwrites the account.
func Update(db sql.Executor, account *Account) error {
	if _, err := db.Exec(`insert into accounts (address, balance, reserved, lock_until)
		values (?1, ?2, ?3, ?4)
		on conflict (address) do update set
			balance = excluded.balance,
			reserved = excluded.reserved,
			lock_until = excluded.lock_until;`,
		func(stmt *sql.Statement) {
			stmt.BindBytes(1, account.Address.Bytes())
			stmt.BindInt64(2, int64(account.Balance))
			stmt.BindInt64(3, int64(account.Reserved))
			stmt.BindInt64(4, int64(account.LockUntil))
		}, nil); err != nil {
		return fmt.Errorf("update %s: %w", account.Address, err)
	}
	return nil
}

// All returns accounts ordered by address.
func All(db sql.Executor) ([]Account, error) {
	var rst []Account
	if _, err := db.Exec(`select address, balance, reserved, lock_until
		from accounts order by address asc;`, nil,
		func(stmt *sql.Statement) bool {
			var account Account
			decode(stmt, &account)
			rst = append(rst, account)
			return true
		}); err != nil {
		return nil, fmt.Errorf("load all accounts: %w", err)
	}
	return rst, nil
}
