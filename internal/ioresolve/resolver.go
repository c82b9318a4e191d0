// Package ioresolve implements entres.Resolver on top of a canonical
// entity store: deterministic resolution, bulk creation and the
// probabilistic merge pass.
package ioresolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/config"
	"github.com/startuplens/entres/pkg/dedupe"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
)

type resolver struct {
	cfg *config.Config
	st  store.Store
	mt  dedupe.Matcher
}

// New creates a Resolver that writes to st and uses mt for the
// probabilistic pass.
func New(cfg *config.Config, st store.Store, mt dedupe.Matcher) entres.Resolver {
	return &resolver{cfg: cfg, st: st, mt: mt}
}

// Run resolves records in batches of Database.BatchSize and optionally
// runs the probabilistic pass.
// Work committed by the deterministic phase stays when the
// probabilistic pass fails.
func (r *resolver) Run(
	ctx context.Context,
	recs []schema.SourceRecord,
	opts entres.RunOptions,
) (entres.RunStats, error) {
	var res entres.RunStats
	var err error
	startTime := time.Now()

	recs = filterSource(recs, opts.Source)
	slog.Info("Starting resolution",
		"records", len(recs),
		"source", opts.Source,
		"bulk", opts.Bulk,
		"probabilistic", opts.Probabilistic,
	)

	batchSize := max(r.cfg.Database.BatchSize, 1)
	for start := 0; start < len(recs); start += batchSize {
		chunk := recs[start:min(start+batchSize, len(recs))]
		if opts.Bulk {
			var st entres.BulkStats
			st, err = r.BulkCreate(ctx, chunk)
			res.Bulk.Created += st.Created
			res.Bulk.Skipped += st.Skipped
			res.Bulk.Rejected += st.Rejected
			res.Bulk.Total += st.Total
		} else {
			var st entres.BatchStats
			st, err = r.ResolveBatch(ctx, chunk)
			res.Batch.Matched += st.Matched
			res.Batch.Created += st.Created
			res.Batch.Rejected += st.Rejected
			res.Batch.Failed += st.Failed
			res.Batch.Total += st.Total
		}
		if err != nil {
			return res, err
		}
	}

	if opts.Bulk {
		gn.Info(
			"Bulk creation: created <em>%s</em>, skipped %s, rejected %s",
			humanize.Comma(int64(res.Bulk.Created)),
			humanize.Comma(int64(res.Bulk.Skipped)),
			humanize.Comma(int64(res.Bulk.Rejected)),
		)
	} else {
		gn.Info(
			"Resolution: matched <em>%s</em>, created <em>%s</em>, "+
				"rejected %s, failed %s",
			humanize.Comma(int64(res.Batch.Matched)),
			humanize.Comma(int64(res.Batch.Created)),
			humanize.Comma(int64(res.Batch.Rejected)),
			humanize.Comma(int64(res.Batch.Failed)),
		)
	}

	if opts.Probabilistic {
		res.Merge, err = r.RunProbabilistic(ctx)
		if err != nil {
			return res, err
		}
		gn.Info(
			"Probabilistic pass: pairs <em>%s</em>, merged <em>%s</em>, "+
				"below threshold %s",
			humanize.Comma(int64(res.Merge.PairsFound)),
			humanize.Comma(int64(res.Merge.Merged)),
			humanize.Comma(int64(res.Merge.BelowThreshold)),
		)
	}

	dur := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Resolution complete", "duration", dur)
	gn.Info(fmt.Sprintf("Resolution complete in <em>%s</em>", dur))
	return res, nil
}

func filterSource(recs []schema.SourceRecord, source string) []schema.SourceRecord {
	if source == "" {
		return recs
	}
	var res []schema.SourceRecord
	for _, v := range recs {
		if v.Source == source {
			res = append(res, v)
		}
	}
	return res
}
