package iostore_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/internal/iostore"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "store.sqlite")
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(path),
	})

	b, err := iostore.Open(ctx, cfg)
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, "sqlite:"+path, b.Desc)

	err = b.Ready(ctx)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBEmptyDatabaseError, gnErr.Code)

	require.NoError(t, b.Schema.Create(ctx))
	require.NoError(t, b.Ready(ctx))

	counts, err := b.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Entities)

	require.NoError(t, b.DropAllTables(ctx))
	require.Error(t, b.Ready(ctx))
}

func TestOpenUnsupported(t *testing.T) {
	cfg := config.New()
	cfg.Database.Driver = "mysql"

	_, err := iostore.Open(t.Context(), cfg)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBUnsupportedDriverError, gnErr.Code)
}
