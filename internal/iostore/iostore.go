// Package iostore opens the canonical entity store selected by the
// configuration together with its schema manager.
package iostore

import (
	"context"
	"fmt"

	"github.com/startuplens/entres/internal/iodb"
	"github.com/startuplens/entres/internal/ioschema"
	"github.com/startuplens/entres/internal/iosqlite"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/store"
)

// Admin holds destructive and inspection operations used by the CLI.
type Admin interface {
	HasTables(ctx context.Context) (bool, error)
	DropAllTables(ctx context.Context) error
}

// Backend is an opened store with its administration helpers.
type Backend struct {
	store.Store
	Admin
	Schema entres.SchemaManager

	// Desc describes the store location for user messages.
	Desc string
}

// Open connects to the store of cfg.Database.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		path := cfg.SQLitePath()
		st, err := iosqlite.Open(ctx, path)
		if err != nil {
			return nil, err
		}
		res := &Backend{
			Store:  st,
			Admin:  st,
			Schema: ioschema.NewSQLiteManager(st.DB()),
			Desc:   "sqlite:" + path,
		}
		return res, nil
	case config.DriverPostgres:
		st := iodb.NewPgxStore()
		if err := st.Connect(ctx, &cfg.Database); err != nil {
			return nil, err
		}
		db := cfg.Database
		res := &Backend{
			Store:  st,
			Admin:  st,
			Schema: ioschema.NewManager(st.Pool()),
			Desc: fmt.Sprintf("postgres:%s@%s:%d/%s",
				db.User, db.Host, db.Port, db.Database),
		}
		return res, nil
	default:
		return nil, UnsupportedDriverError(cfg.Database.Driver)
	}
}

// Ready checks that the schema exists.
func (b *Backend) Ready(ctx context.Context) error {
	ok, err := b.HasTables(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return EmptyStoreError(b.Desc)
	}
	return nil
}
