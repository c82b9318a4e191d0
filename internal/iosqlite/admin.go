package iosqlite

import (
	"context"
	"fmt"

	"github.com/startuplens/entres/pkg/schema"
)

// HasTables checks if every store table exists.
func (s *Store) HasTables(ctx context.Context) (bool, error) {
	q := `SELECT COUNT(*) FROM sqlite_master
	  WHERE type = 'table' AND name = ?`
	for _, m := range schema.AllModels() {
		var count int
		err := s.db.QueryRowContext(ctx, q, m.TableName()).Scan(&count)
		if err != nil {
			return false, QueryError(q, err)
		}
		if count == 0 {
			return false, nil
		}
	}
	return true, nil
}

// DropAllTables drops the store tables.
func (s *Store) DropAllTables(ctx context.Context) error {
	models := schema.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		q := fmt.Sprintf("DROP TABLE IF EXISTS %s", models[i].TableName())
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return QueryError(q, err)
		}
	}
	return nil
}
