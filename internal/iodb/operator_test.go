package iodb_test

import (
	"testing"

	"github.com/startuplens/entres/internal/iodb"
	"github.com/startuplens/entres/internal/ioschema"
	"github.com/startuplens/entres/internal/iotesting"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ store.Store = (*iodb.PgxStore)(nil)

// setup connects to the test database and recreates the schema.
func setup(t *testing.T) *iodb.PgxStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping PostgreSQL integration test")
	}
	ctx := t.Context()
	cfg := iotesting.GetTestConfig()

	st := iodb.NewPgxStore()
	err := st.Connect(ctx, &cfg.Database)
	if err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	require.NoError(t, st.DropAllTables(ctx))
	require.NoError(t, ioschema.NewManager(st.Pool()).Create(ctx))
	return st
}

func TestPgxStoreTables(t *testing.T) {
	st := setup(t)
	ctx := t.Context()

	ok, err := st.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.TableExists(ctx, "entity_links")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.TableExists(ctx, "no_such_table")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPgxStoreHasTablesPartial(t *testing.T) {
	st := setup(t)
	ctx := t.Context()

	_, err := st.Pool().Exec(ctx, "DROP TABLE entity_links")
	require.NoError(t, err)
	_, err = st.Pool().Exec(ctx, "CREATE TABLE unrelated (id int)")
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = st.Pool().Exec(t.Context(), "DROP TABLE IF EXISTS unrelated")
	})

	ok, err := st.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPgxStoreOps(t *testing.T) {
	st := setup(t)
	ctx := t.Context()

	ents := []schema.CanonicalEntity{
		{ID: "b", PrimaryName: "acme", Country: "us"},
		{ID: "a", PrimaryName: "acme", Country: "us"},
	}
	n, err := st.InsertEntities(ctx, ents)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	id, ok, err := st.EntityByName(ctx, "acme", "us")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok, err = st.EntityByName(ctx, "acme", "de")
	require.NoError(t, err)
	assert.False(t, ok)

	links := []schema.EntityLink{
		{ID: "l1", EntityID: "a", Source: "crm", SourceIdentifier: "1",
			MatchMethod: schema.ExactID, Confidence: 100},
		{ID: "l2", EntityID: "b", Source: "crm", SourceIdentifier: "2",
			MatchMethod: schema.Deterministic, Confidence: 90},
		{ID: "l3", EntityID: "b", Source: "crm", SourceIdentifier: "1",
			MatchMethod: schema.ExactID, Confidence: 100},
	}
	n, err = st.InsertLinks(ctx, links)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	existing, err := st.ExistingLinks(ctx, []schema.SourceKey{
		{Source: "crm", SourceIdentifier: "2"},
		{Source: "crm", SourceIdentifier: "3"},
	})
	require.NoError(t, err)
	assert.Len(t, existing, 1)

	err = st.Atomic(ctx, func(tx store.Tx) error {
		if err := tx.LockName(ctx, "acme", "us"); err != nil {
			return err
		}
		stamp := &store.LinkStamp{Method: schema.Probabilistic, Confidence: 95}
		if _, err := tx.ReassignLinks(ctx, "b", "a", stamp); err != nil {
			return err
		}
		_, err := tx.DeleteEntity(ctx, "b")
		return err
	})
	require.NoError(t, err)

	got, err := st.Links(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, schema.ExactID, got[0].MatchMethod)
	assert.Equal(t, schema.Probabilistic, got[1].MatchMethod)
	assert.Equal(t, 90, got[1].Confidence)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.Counts{Entities: 1, Links: 2}, counts)
}
