package ioresolve_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/internal/ioresolve"
	"github.com/startuplens/entres/internal/iosqlite"
	"github.com/startuplens/entres/internal/iotesting"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/dedupe"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(name, country, source, id string) schema.SourceRecord {
	return schema.SourceRecord{
		Name: name, Country: country, Source: source, SourceIdentifier: id,
	}
}

func newResolver(
	t *testing.T,
	opts ...config.Option,
) (entres.Resolver, *iosqlite.Store) {
	t.Helper()
	cfg := config.New()
	cfg.Update(opts)
	st := iotesting.NewSQLiteStore(t)
	return ioresolve.New(cfg, st, dedupe.New(cfg)), st
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), err)
	return gnErr.Code
}

func TestResolveSameCompany(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t)

	first, err := r.Resolve(ctx, rec("Acme Ltd", "GB", "registry", "001"))
	require.NoError(t, err)
	assert.Equal(t, entres.Created, first.Outcome)

	second, err := r.Resolve(ctx, rec("ACME LIMITED", "GB", "filings", "A-1"))
	require.NoError(t, err)
	assert.Equal(t, entres.Matched, second.Outcome)
	assert.Equal(t, first.EntityID, second.EntityID)

	links, err := st.Links(ctx, first.EntityID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	byKey := make(map[string]schema.EntityLink)
	for _, l := range links {
		byKey[l.Key().String()] = l
	}
	assert.Equal(t, schema.ExactID, byKey["registry:001"].MatchMethod)
	assert.Equal(t, 100, byKey["registry:001"].Confidence)
	assert.Equal(t, schema.Deterministic, byKey["filings:A-1"].MatchMethod)
	assert.Equal(t, 90, byKey["filings:A-1"].Confidence)
	assert.Equal(t, "ACME LIMITED", byKey["filings:A-1"].SourceName)
}

func TestResolveStable(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t)
	in := rec("Globex Corporation", "US", "crm", "42")

	res1, err := r.Resolve(ctx, in)
	require.NoError(t, err)
	res2, err := r.Resolve(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, res1.EntityID, res2.EntityID)
	assert.Equal(t, entres.Linked, res2.Outcome)

	// a new name for a known key does not move the record
	res3, err := r.Resolve(ctx, rec("Initech", "US", "crm", "42"))
	require.NoError(t, err)
	assert.Equal(t, res1.EntityID, res3.EntityID)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Entities)
	assert.Equal(t, 1, counts.Links)
}

func TestResolveSameSourceSameName(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t)

	first, err := r.Resolve(ctx, rec("Initech LLC", "US", "crm", "10"))
	require.NoError(t, err)
	second, err := r.Resolve(ctx, rec("INITECH", "us", "crm", "11"))
	require.NoError(t, err)
	assert.Equal(t, entres.Matched, second.Outcome)
	assert.Equal(t, first.EntityID, second.EntityID)

	links, err := st.Links(ctx, first.EntityID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	for _, l := range links {
		switch l.SourceIdentifier {
		case "10":
			assert.Equal(t, schema.ExactID, l.MatchMethod)
			assert.Equal(t, 100, l.Confidence)
		case "11":
			assert.Equal(t, schema.Deterministic, l.MatchMethod)
			assert.Equal(t, 90, l.Confidence)
		default:
			t.Errorf("unexpected link %s", l.Key().String())
		}
	}
}

func TestResolveCountryMismatch(t *testing.T) {
	ctx := t.Context()
	r, _ := newResolver(t)

	a, err := r.Resolve(ctx, rec("Acme Ltd", "GB", "registry", "1"))
	require.NoError(t, err)
	b, err := r.Resolve(ctx, rec("Acme Ltd", "IE", "registry", "2"))
	require.NoError(t, err)
	assert.NotEqual(t, a.EntityID, b.EntityID)
	assert.Equal(t, entres.Created, b.Outcome)
}

func TestResolveInvalid(t *testing.T) {
	r, st := newResolver(t)

	_, err := r.Resolve(t.Context(), rec("  ", "US", "crm", "1"))
	require.Error(t, err)
	assert.Equal(t, errcode.InvalidRecordError, errCode(t, err))

	counts, err := st.Counts(t.Context())
	require.NoError(t, err)
	assert.Zero(t, counts.Entities)
}

func TestResolveBatch(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t)

	recs := []schema.SourceRecord{
		rec("Acme Ltd", "GB", "registry", "001"),
		rec("ACME LIMITED", "GB", "filings", "A-1"),
		rec("Acme Ltd", "GB", "registry", "001"),
		rec("Globex GmbH", "DE", "registry", "002"),
		rec("No Country", "", "registry", "003"),
	}
	stats, err := r.ResolveBatch(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, entres.BatchStats{
		Matched: 2, Created: 2, Rejected: 1, Failed: 0, Total: 5,
	}, stats)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Entities)
	assert.Equal(t, 3, counts.Links)
}

func TestResolveBatchAllFailed(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t)
	require.NoError(t, st.DropAllTables(ctx))

	stats, err := r.ResolveBatch(ctx, []schema.SourceRecord{
		rec("Acme", "GB", "registry", "1"),
		rec("Globex", "DE", "registry", "2"),
	})
	require.Error(t, err)
	assert.Equal(t, errcode.ResolveAllRecordsFailedError, errCode(t, err))
	assert.Equal(t, 2, stats.Failed)
}

func TestResolveBatchCancelled(t *testing.T) {
	r, _ := newResolver(t)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := r.ResolveBatch(ctx, []schema.SourceRecord{
		rec("Acme", "GB", "registry", "1"),
	})
	require.Error(t, err)
	assert.Equal(t, errcode.ResolveCancelledError, errCode(t, err))
}

func TestBulkCreate(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t,
		config.OptResolveBulkBatchSize(2),
		config.OptResolveCommitEvery(3),
	)

	pre, err := r.Resolve(ctx, rec("Acme", "US", "formd", "0"))
	require.NoError(t, err)

	recs := []schema.SourceRecord{
		rec("Acme", "US", "formd", "0"),
		rec("Acme", "US", "formd", "1"),
		rec("Globex", "US", "formd", "2"),
		rec("Initech", "US", "formd", "3"),
		rec("Initech Again", "US", "formd", "3"),
		rec("Hooli", "US", "formd", "4"),
		rec("", "US", "formd", "5"),
		rec("Umbrella", "US", "formd", "6"),
	}
	stats, err := r.BulkCreate(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, entres.BulkStats{
		Created: 5, Skipped: 2, Rejected: 1, Total: 8,
	}, stats)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, counts.Entities)
	assert.Equal(t, 6, counts.Links)

	// bulk never matches by name
	links, err := st.Links(ctx, pre.EntityID)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	// second run skips everything
	stats, err = r.BulkCreate(ctx, recs)
	require.NoError(t, err)
	assert.Zero(t, stats.Created)
	assert.Equal(t, 7, stats.Skipped)
}

func TestRunProbabilistic(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t)

	stats, err := r.RunProbabilistic(ctx)
	require.NoError(t, err)
	assert.Equal(t, entres.MergeStats{}, stats)

	_, err = r.ResolveBatch(ctx, []schema.SourceRecord{
		rec("International Business Machines Corp", "US", "sec", "1"),
		rec("IBM", "US", "crm", "2"),
		rec("Globex", "US", "sec", "3"),
		rec("Globx", "US", "crm", "4"),
		rec("IBM", "GB", "crm", "5"),
	})
	require.NoError(t, err)

	stats, err = r.RunProbabilistic(ctx)
	require.NoError(t, err)
	assert.Equal(t, entres.MergeStats{
		PairsFound: 2, Merged: 1, BelowThreshold: 1,
	}, stats)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, counts.Entities)
	assert.Equal(t, 5, counts.Links)

	ents, err := st.Entities(ctx)
	require.NoError(t, err)
	var ibm string
	for _, e := range ents {
		if e.Country == "us" &&
			(e.PrimaryName == "ibm" || e.PrimaryName == "international business machines") {
			ibm = e.ID
		}
	}
	require.NotEmpty(t, ibm)
	links, err := st.Links(ctx, ibm)
	require.NoError(t, err)
	require.Len(t, links, 2)
	// moved links keep the method they were created with
	for _, l := range links {
		assert.Equal(t, schema.ExactID, l.MatchMethod, l.Key().String())
		assert.Equal(t, 100, l.Confidence, l.Key().String())
	}
}

func TestRunProbabilisticStamped(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t, config.OptResolveStampMerged(true))

	_, err := r.ResolveBatch(ctx, []schema.SourceRecord{
		rec("International Business Machines Corp", "US", "sec", "1"),
		rec("IBM", "US", "crm", "2"),
	})
	require.NoError(t, err)

	stats, err := r.RunProbabilistic(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Merged)

	ents, err := st.Entities(ctx)
	require.NoError(t, err)
	require.Len(t, ents, 1)
	links, err := st.Links(ctx, ents[0].ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	methods := map[schema.MatchMethod]int{}
	for _, l := range links {
		methods[l.MatchMethod] = l.Confidence
	}
	assert.Equal(t, 100, methods[schema.ExactID])
	assert.Equal(t, 90, methods[schema.Probabilistic])
}

func TestRunProbabilisticThreshold(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t, config.OptResolveConfidenceThreshold(0.8))

	_, err := r.ResolveBatch(ctx, []schema.SourceRecord{
		rec("Globex", "US", "sec", "3"),
		rec("Globx", "US", "crm", "4"),
	})
	require.NoError(t, err)

	stats, err := r.RunProbabilistic(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Merged)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Entities)
	assert.Equal(t, 2, counts.Links)
}

func TestRunModelFailure(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, os.WriteFile(path, []byte("corrupt"), 0644))
	r, st := newResolver(t, config.OptResolveModelPath(path))

	recs := []schema.SourceRecord{
		rec("Globex", "US", "sec", "1"),
		rec("Initech", "US", "sec", "2"),
		rec("Hooli", "US", "crm", "3"),
	}
	stats, err := r.Run(ctx, recs, entres.RunOptions{
		Source: "sec", Probabilistic: true,
	})
	require.Error(t, err)
	assert.Equal(t, errcode.ModelLoadError, errCode(t, err))
	assert.Equal(t, 2, stats.Batch.Created)
	assert.Equal(t, 2, stats.Batch.Total)

	// deterministic work is committed
	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Entities)
}

func TestRunBulkWithModel(t *testing.T) {
	ctx := t.Context()
	path := filepath.Join(t.TempDir(), "models", "model.gob")
	r, st := newResolver(t, config.OptResolveModelPath(path))

	recs := []schema.SourceRecord{
		rec("Globex", "US", "formd", "1"),
		rec("Globex Inc", "US", "formd", "2"),
	}
	stats, err := r.Run(ctx, recs, entres.RunOptions{
		Bulk: true, Probabilistic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Bulk.Created)
	assert.Equal(t, 1, stats.Merge.PairsFound)
	assert.Equal(t, 1, stats.Merge.Merged)

	_, err = os.Stat(path)
	require.NoError(t, err)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Entities)
	assert.Equal(t, 2, counts.Links)
}

func TestRunBatches(t *testing.T) {
	ctx := t.Context()
	r, st := newResolver(t, config.OptDatabaseBatchSize(2))

	recs := []schema.SourceRecord{
		rec("Acme Ltd", "GB", "registry", "1"),
		rec("Acme Limited", "GB", "filings", "1"),
		rec("Globex", "US", "registry", "2"),
		rec("", "US", "registry", "3"),
		rec("Initech", "US", "crm", "4"),
	}
	stats, err := r.Run(ctx, recs, entres.RunOptions{})
	require.NoError(t, err)
	assert.Equal(t, entres.BatchStats{
		Matched: 1, Created: 3, Rejected: 1, Total: 5,
	}, stats.Batch)
	assert.Equal(t, entres.MergeStats{}, stats.Merge)

	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts.Entities)
	assert.Equal(t, 4, counts.Links)
}

// racingStore drops the first link of every insert as if another
// writer had linked that key in the meantime.
type racingStore struct {
	*iosqlite.Store
}

func (s racingStore) Atomic(ctx context.Context, fn func(store.Tx) error) error {
	return s.Store.Atomic(ctx, func(tx store.Tx) error {
		return fn(racingTx{Tx: tx})
	})
}

type racingTx struct {
	store.Tx
}

func (t racingTx) InsertLinks(
	ctx context.Context,
	links []schema.EntityLink,
) (int, error) {
	return t.Tx.InsertLinks(ctx, links[1:])
}

func TestBulkCreateLinkConflict(t *testing.T) {
	ctx := t.Context()
	cfg := config.New()
	st := iotesting.NewSQLiteStore(t)
	r := ioresolve.New(cfg, racingStore{Store: st}, dedupe.New(cfg))

	_, err := r.BulkCreate(ctx, []schema.SourceRecord{
		rec("Acme", "US", "formd", "1"),
		rec("Globex", "US", "formd", "2"),
	})
	require.Error(t, err)
	assert.Equal(t, errcode.ResolveBulkError, errCode(t, err))

	// the group is rolled back, no entity stays without a link
	counts, err := st.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, counts.Entities)
	assert.Zero(t, counts.Links)
}
