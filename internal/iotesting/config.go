// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/startuplens/entres/internal/ioconfig"
	"github.com/startuplens/entres/internal/ioschema"
	"github.com/startuplens/entres/internal/iosqlite"
	"github.com/startuplens/entres/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "entres_test"
)

// GetTestConfig returns a configuration suitable for PostgreSQL
// integration tests. It loads the user's config (file, env or defaults)
// and overrides the database name to TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()
	if home, err := os.UserHomeDir(); err == nil {
		if res, err := ioconfig.Load(home); err == nil {
			cfg = res
		}
	}

	cfg.Update([]config.Option{
		config.OptDatabaseDriver(config.DriverPostgres),
		config.OptDatabaseDatabase(TestDatabaseName),
	})
	return cfg
}

// NewSQLiteStore opens a store in a temporary SQLite file with the
// schema in place. The store is closed when the test finishes.
func NewSQLiteStore(t *testing.T) *iosqlite.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "entres.sqlite")
	st, err := iosqlite.Open(t.Context(), path)
	if err != nil {
		t.Fatalf("Failed to open SQLite store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sm := ioschema.NewSQLiteManager(st.DB())
	if err = sm.Create(t.Context()); err != nil {
		t.Fatalf("Failed to create SQLite schema: %v", err)
	}
	return st
}
