// Package dbx provides tiny DB abstractions shared by the Postgres
// repositories of the intake daemon and the SQLite repositories of the
// host security tool.
//
// It contains:
//   - DBTX, a minimal interface implemented by both *sql.DB and *sql.Tx, so
//     a repository works the same inside and outside a transaction;
//   - WithTx, which runs a function in a transaction;
//   - IsMissingTable, which recognizes queries against a table that the
//     migrations have not created yet.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database/sql used by repositories.
// Both *sql.DB and *sql.Tx satisfy this interface.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with a transactional handle, and
// then commits on success or rolls back on error or panic. Panics are
// rethrown after the rollback.
//
// Parameters:
//
//	ctx  context for BeginTx; fn receives the same context
//	db   the connection pool
//	opts transaction options, nil for the driver defaults
//	fn   the work to run; it must use tx, never db
//
// Returns the error from BeginTx, fn or Commit, whichever fails first.
//
// Typical use:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    _, err := tx.ExecContext(ctx, "DELETE FROM ...")
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// pgUndefinedTable is SQLSTATE 42P01.
const pgUndefinedTable = "42P01"

// IsMissingTable reports whether err says the queried table does not exist.
//
// Postgres reports SQLSTATE 42P01 through *pgconn.PgError; SQLite has no
// error codes for this case and says "no such table". Repositories map a
// true result to common.ErrStoreNotInitialized so callers can tell the
// operator to run migrations. A nil err returns false.
func IsMissingTable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUndefinedTable
	}
	return strings.Contains(err.Error(), "no such table")
}
