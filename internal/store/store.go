// Package store owns the single on-device SQLite file backing the
// training record book and creates its schema idempotently.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/noah-isme/cadet-trb/pkg/config"
)

func init() {
	// modernc's driver registers as "sqlite", which sqlx does not know
	// about; map it to ? placeholders.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Store wraps the SQLite handle shared by all repositories.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database file, applies durability pragmas and
// creates every table if absent. A schema failure is fatal: the caller
// gets an error instead of a half-initialised store.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	db, err := sqlx.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite allows a single writer; serialise access through one
	// connection instead of relying on busy retries alone.
	db.SetMaxOpenConns(1)

	if cfg.WALEnabled {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	if cfg.BusyTimeoutMS > 0 {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeoutMS)); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set busy timeout: %w", err)
		}
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for repository construction.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx begins a transaction, runs fn with a transactional handle, and
// then commits on success or rolls back on error/panic. Panics are
// rethrown.
func WithTx(ctx context.Context, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
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
