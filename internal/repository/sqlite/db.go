// internal/repository/sqlite/db.go
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
	_ "modernc.org/sqlite"
)

// DB wraps the embedded in-memory sqlite connection. The pool is pinned to
// a single connection: an in-memory database exists per connection, and the
// store contract is one connection with sequential statements.
type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

// NewDB opens the embedded database and bootstraps the schema. dsn is
// normally ":memory:"; a file path works for debugging sessions.
func NewDB(dsn string) (*DB, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dsn, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &DB{
		DB:  db,
		sem: semaphore.NewWeighted(1),
	}, nil
}

// WithTx executes fn within a transaction, serialized behind the semaphore.
func (db *DB) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("could not acquire semaphore: %w", err)
	}
	defer db.sem.Release(1)

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("could not rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}
