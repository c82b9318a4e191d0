// Package iodb implements store.Store on PostgreSQL using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxStore implements store.Store using pgxpool for connection
// pooling.
type PgxStore struct {
	ops
	pool *pgxpool.Pool
}

// NewPgxStore creates a new PostgreSQL store (without connecting).
func NewPgxStore() *PgxStore {
	return &PgxStore{}
}

// Connect establishes a connection pool to PostgreSQL.
// Uses sensible hardcoded pool settings that work well for
// most use cases.
func (p *PgxStore) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	p.ops = ops{q: pool}
	return nil
}

// Close releases all database connections.
func (p *PgxStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for schema management.
func (p *PgxStore) Pool() *pgxpool.Pool {
	return p.pool
}

// Atomic runs fn inside a transaction. Advisory locks taken by
// LockName are released at the end of it.
func (p *PgxStore) Atomic(
	ctx context.Context,
	fn func(store.Tx) error,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return TransactionError(err)
	}
	defer tx.Rollback(ctx)

	if err = fn(&ops{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return TransactionError(err)
	}
	return nil
}

// TableExists checks if a table exists in the current
// database.
func (p *PgxStore) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableCheckError(err)
	}

	return exists, nil
}

// HasTables checks if every store table exists in the public
// schema. Unrelated tables do not count.
func (p *PgxStore) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	for _, m := range schema.AllModels() {
		ok, err := p.TableExists(ctx, m.TableName())
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// DropAllTables drops all tables in the public schema.
func (p *PgxStore) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return QueryTablesError(err)
	}

	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return ScanTableError(err)
	}

	for _, table := range tables {
		dropSQL := fmt.Sprintf(
			"DROP TABLE IF EXISTS %s CASCADE",
			pgx.Identifier{table}.Sanitize())
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return DropTableError(table, err)
		}
	}

	return nil
}
