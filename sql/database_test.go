package sql

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testTables(db Executor) error {
	if _, err := db.Exec(`create table testing1 (
		id varchar primary key,
		field int
	)`, nil, nil); err != nil {
		return err
	}
	return nil
}

func testURI(tb testing.TB) string {
	tb.Helper()
	return "file:" + filepath.Join(tb.TempDir(), "state.sql")
}

func insert(tb testing.TB, db Executor, key string, value int64) {
	tb.Helper()
	_, err := db.Exec("insert into testing1(id, field) values (?1, ?2)", func(stmt *Statement) {
		stmt.BindText(1, key)
		stmt.BindInt64(2, value)
	}, nil)
	require.NoError(tb, err)
}

func count(tb testing.TB, db Executor) int {
	tb.Helper()
	rows, err := db.Exec("select 1 from testing1", nil, nil)
	require.NoError(tb, err)
	return rows
}

func TestTransactionIsolation(t *testing.T) {
	db := InMemory(WithMigrations(testTables))

	tx, err := db.Tx(context.TODO())
	require.NoError(t, err)
	insert(t, tx, "dsada", 20)
	require.Equal(t, 1, count(t, tx))
	require.NoError(t, tx.Release())

	require.Equal(t, 0, count(t, db))
}

func TestWithTxRollback(t *testing.T) {
	db := InMemory(WithMigrations(testTables))
	fail := errors.New("fail")
	require.ErrorIs(t, db.WithTx(context.Background(), func(tx *Tx) error {
		insert(t, tx, "a", 1)
		return fail
	}), fail)
	require.Equal(t, 0, count(t, db))

	require.NoError(t, db.WithTx(context.Background(), func(tx *Tx) error {
		insert(t, tx, "a", 1)
		return nil
	}))
	require.Equal(t, 1, count(t, db))
}

func TestSavepoint(t *testing.T) {
	db := InMemory(WithMigrations(testTables))
	fail := errors.New("fail")
	require.NoError(t, db.WithTx(context.Background(), func(tx *Tx) error {
		insert(t, tx, "kept", 1)
		err := WithSavepoint(tx, "sp", func() error {
			insert(t, tx, "discarded", 2)
			require.Equal(t, 2, count(t, tx))
			return fail
		})
		require.ErrorIs(t, err, fail)
		require.Equal(t, 1, count(t, tx))
		return WithSavepoint(tx, "sp", func() error {
			insert(t, tx, "second", 3)
			return nil
		})
	}))
	require.Equal(t, 2, count(t, db))
}

func TestObjectExists(t *testing.T) {
	db := InMemory(WithMigrations(testTables))
	insert(t, db, "a", 1)
	_, err := db.Exec("insert into testing1(id, field) values ('a', 2)", nil, nil)
	require.ErrorIs(t, err, ErrObjectExists)
}

func TestMigrationsAppliedOnce(t *testing.T) {
	uri := testURI(t)
	db, err := Open(uri, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	v, err := version(db)
	require.NoError(t, err)
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Equal(t, migrations[len(migrations)-1].order, v)
	require.NoError(t, db.Close())

	db, err = Open(uri)
	require.NoError(t, err)
	v2, err := version(db)
	require.NoError(t, err)
	require.Equal(t, v, v2)
	require.NoError(t, Vacuum(db))
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())
}

func TestLatencyMetering(t *testing.T) {
	db := InMemory(WithMigrations(testTables), WithLatencyMetering(true))
	before := db.QueryCount()
	insert(t, db, "a", 1)
	require.Equal(t, before+1, db.QueryCount())
}
