package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// dsnParams are appended to data source names that carry no query string.
// _txlock=immediate makes every transaction take the write lock up front, so a
// read-then-write inside one transaction cannot interleave with another writer.
const dsnParams = "_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL"

// Store is the SQLite-backed repository for the roster, games and the RSVP ledger.
type Store struct {
	db *sqlx.DB
}

// InitDB opens the database, applies the schema and returns a Store.
// ":memory:" gives a private in-memory database, which the tests use.
func InitDB(dataSourceName string) (*Store, error) {
	dsn := dataSourceName
	if !strings.Contains(dsn, "?") {
		dsn += "?" + dsnParams
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite has a single writer; one connection also keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = loadSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// loadSchema executes the embedded schema. Every statement is idempotent.
func loadSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx runs fn inside a transaction, committing on success.
// fn must only use tx: the pool has a single connection.
func (s *Store) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
