// Package iosqlite implements store.Store on a local SQLite file using
// the pure Go modernc.org/sqlite driver. It serves single-user runs and
// tests that should not depend on a PostgreSQL server.
package iosqlite

import (
	"context"
	"database/sql"

	"github.com/startuplens/entres/pkg/store"
	_ "modernc.org/sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements store.Store. It keeps a single connection so
// writers are serialized inside the process.
type Store struct {
	ops
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite store at path. Tables have to be
// created by the schema manager before use.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path + "?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)&_txlock=immediate"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, ConnectionError(path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, ConnectionError(path, err)
	}

	res := &Store{
		ops:  ops{q: db},
		db:   db,
		path: path,
	}
	return res, nil
}

// DB returns the underlying database handle for schema management.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the location of the SQLite file.
func (s *Store) Path() string {
	return s.path
}

// Atomic runs fn in a transaction.
func (s *Store) Atomic(
	ctx context.Context,
	fn func(store.Tx) error,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TransactionError(err)
	}
	defer tx.Rollback()

	if err = fn(&ops{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return TransactionError(err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
