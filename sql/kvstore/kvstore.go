// Package kvstore keeps counters and small values that don't deserve a table.
package kvstore

import (
	"fmt"
	"strings"

	"github.com/spacemeshos/go-democracy/sql"
)

// Set stores value under the key, overwriting the previous one.
func Set(db sql.Executor, key string, value []byte) error {
	if _, err := db.Exec(`insert into kvstore (id, value) values (?1, ?2)
		on conflict (id) do update set value = excluded.value;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
			stmt.BindBytes(2, value)
		}, nil); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get returns sql.ErrNotFound if key is missing.
func Get(db sql.Executor, key string) ([]byte, error) {
	var value []byte
	rows, err := db.Exec("select value from kvstore where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
		}, func(stmt *sql.Statement) bool {
			value = make([]byte, stmt.ColumnLen(0))
			stmt.ColumnBytes(0, value)
			return false
		})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: key %s", sql.ErrNotFound, key)
	}
	return value, nil
}

// SetUint64 stores an integer value.
func SetUint64(db sql.Executor, key string, value uint64) error {
	if _, err := db.Exec(`insert into kvstore (id, value) values (?1, ?2)
		on conflict (id) do update set value = excluded.value;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
			stmt.BindInt64(2, int64(value))
		}, nil); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// GetUint64 returns zero if key is missing.
func GetUint64(db sql.Executor, key string) (uint64, error) {
	var value uint64
	if _, err := db.Exec("select value from kvstore where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
		}, func(stmt *sql.Statement) bool {
			value = uint64(stmt.ColumnInt64(0))
			return false
		}); err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Increment adds one to the counter and returns the value before increment.
func Increment(db sql.Executor, key string) (uint64, error) {
	value, err := GetUint64(db, key)
	if err != nil {
		return 0, err
	}
	if err := SetUint64(db, key, value+1); err != nil {
		return 0, err
	}
	return value, nil
}

// Delete the key. Missing keys are ignored.
func Delete(db sql.Executor, key string) error {
	if _, err := db.Exec("delete from kvstore where id = ?1;",
		func(stmt *sql.Statement) {
			stmt.BindText(1, key)
		}, nil); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// IteratePrefix calls fn for each key with the prefix in key order until fn returns false.
func IteratePrefix(db sql.Executor, prefix string, fn func(key string, value []byte) bool) error {
	if _, err := db.Exec(`select id, value from kvstore
		where id >= ?1 and id < ?2 order by id asc;`,
		func(stmt *sql.Statement) {
			stmt.BindText(1, prefix)
			stmt.BindText(2, prefix+"\xff")
		}, func(stmt *sql.Statement) bool {
			key := stmt.ColumnText(0)
			if !strings.HasPrefix(key, prefix) {
				return true
			}
			value := make([]byte, stmt.ColumnLen(1))
			stmt.ColumnBytes(1, value)
			return fn(key, value)
		}); err != nil {
		return fmt.Errorf("iterate %s: %w", prefix, err)
	}
	return nil
}
