// Package database defines the narrow query surface the repositories are
// written against, so Postgres access can be faked in tests without a
// live pool.
package database

import (
	"context"
	"database/sql"
)

// Querier is the read/write surface shared by the pooled handle and an
// open transaction. Exec reports the number of rows affected.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// DB is the pooled handle handed to repositories. SQLDB exposes the
// database/sql view of the same pool for the two places that need it:
// the migration runner and the prepared statements in the user
// repository.
type DB interface {
	Querier

	Ping(ctx context.Context) error
	Begin(ctx context.Context) (Tx, error)
	Close() error

	SQLDB() *sql.DB
}

// Tx covers the multi-statement writes that must be atomic, such as
// replacing a preference list.
type Tx interface {
	Querier

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
