// Package ioschema implements entres.SchemaManager for both store
// backends. PostgreSQL schema is managed by GORM AutoMigrate, SQLite
// schema by DDL generated from the model struct tags.
package ioschema

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// pgManager implements entres.SchemaManager using GORM AutoMigrate.
type pgManager struct {
	pool *pgxpool.Pool
}

// NewManager creates a SchemaManager for PostgreSQL.
func NewManager(pool *pgxpool.Pool) entres.SchemaManager {
	return &pgManager{pool: pool}
}

// Create creates the schema using GORM AutoMigrate and sets "C"
// collation on columns used for ordering.
func (m *pgManager) Create(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(err)
	}

	return m.setCollation(ctx)
}

// Migrate updates the schema using GORM AutoMigrate.
func (m *pgManager) Migrate(ctx context.Context) error {
	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err = schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}

func (m *pgManager) gorm() (*gorm.DB, error) {
	if m.pool == nil {
		return nil, NotConnectedError()
	}

	db := stdlib.OpenDBFromPool(m.pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// setCollation makes ordering of names and keys byte-wise, the same
// as in SQLite and in Go sorting.
func (m *pgManager) setCollation(ctx context.Context) error {
	type columnDef struct {
		table, column string
		varchar       int
	}

	columns := []columnDef{
		{"canonical_entities", "primary_name", 500},
		{"entity_links", "source", 255},
		{"entity_links", "source_identifier", 255},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(%d) COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table, col.column, col.varchar)
		if _, err := m.pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}

// sqliteManager implements entres.SchemaManager with DDL statements.
type sqliteManager struct {
	db *sql.DB
}

// NewSQLiteManager creates a SchemaManager for SQLite.
func NewSQLiteManager(db *sql.DB) entres.SchemaManager {
	return &sqliteManager{db: db}
}

// Create runs CREATE TABLE and CREATE INDEX statements of all models
// in one transaction.
func (m *sqliteManager) Create(ctx context.Context) error {
	if m.db == nil {
		return NotConnectedError()
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return CreateSchemaError(err)
	}
	defer tx.Rollback()

	for _, model := range schema.AllModels() {
		if _, err = tx.ExecContext(ctx, model.TableDDL()); err != nil {
			return CreateSchemaError(err)
		}
		for _, idx := range model.IndexDDL() {
			if _, err = tx.ExecContext(ctx, idx); err != nil {
				return IndexError(model.TableName(), err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return CreateSchemaError(err)
	}
	return nil
}

// Migrate is the same as Create, all statements are idempotent.
func (m *sqliteManager) Migrate(ctx context.Context) error {
	return m.Create(ctx)
}
