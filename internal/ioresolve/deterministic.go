package ioresolve

import (
	"context"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/normalize"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
)

// Resolve tries, in order, the source key of the record, then its
// normalized name and country, and creates a new entity when both miss.
// Everything happens in one transaction.
func (r *resolver) Resolve(
	ctx context.Context,
	rec schema.SourceRecord,
) (entres.Resolution, error) {
	var res entres.Resolution
	if err := rec.Validate(); err != nil {
		return res, err
	}

	name := normalize.Normalize(rec.Name)
	country := store.NormCountry(rec.Country)

	err := r.st.Atomic(ctx, func(tx store.Tx) error {
		if err := tx.LockName(ctx, name, country); err != nil {
			return err
		}

		id, ok, err := tx.LinkedEntity(ctx, rec.Key())
		if err != nil {
			return err
		}
		if ok {
			res = entres.Resolution{EntityID: id, Outcome: entres.Linked}
			return nil
		}

		id, ok, err = tx.EntityByName(ctx, name, country)
		if err != nil {
			return err
		}
		if ok {
			_, err = store.Link(ctx, tx, id, rec,
				schema.Deterministic, schema.ConfidenceDeterministic)
			if err != nil {
				return err
			}
			res = entres.Resolution{EntityID: id, Outcome: entres.Matched}
			return nil
		}

		ent, err := store.CreateEntity(ctx, tx, rec.Name, rec.Country)
		if err != nil {
			return err
		}
		_, err = store.Link(ctx, tx, ent.ID, rec,
			schema.ExactID, schema.ConfidenceExactID)
		if err != nil {
			return err
		}
		res = entres.Resolution{EntityID: ent.ID, Outcome: entres.Created}
		return nil
	})
	if err != nil {
		return entres.Resolution{}, ResolveRecordError(rec.Key(), err)
	}
	return res, nil
}

// ResolveBatch resolves records sequentially. Invalid records are
// rejected, failing ones are logged and counted. The batch fails only
// when it is cancelled or when no record could be resolved.
func (r *resolver) ResolveBatch(
	ctx context.Context,
	recs []schema.SourceRecord,
) (entres.BatchStats, error) {
	res := entres.BatchStats{Total: len(recs)}
	if len(recs) == 0 {
		return res, nil
	}

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Resolving records: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	for _, rec := range recs {
		select {
		case <-ctx.Done():
			return res, ResolveCancelledError(ctx.Err())
		default:
		}
		bar.Increment()

		if err := rec.Validate(); err != nil {
			res.Rejected++
			slog.Warn("Rejected record", "record", rec.Key().String(),
				"error", err)
			continue
		}

		rsl, err := r.Resolve(ctx, rec)
		if err != nil {
			res.Failed++
			slog.Error("Cannot resolve record", "record", rec.Key().String(),
				"error", err)
			continue
		}

		switch rsl.Outcome {
		case entres.Created:
			res.Created++
		default:
			res.Matched++
		}
		slog.Debug("Resolved record", "record", rec.Key().String(),
			"entity", rsl.EntityID, "outcome", rsl.Outcome)
	}

	slog.Info("Batch resolved",
		"matched", res.Matched,
		"created", res.Created,
		"rejected", res.Rejected,
		"failed", res.Failed,
		"total", res.Total,
	)

	if res.Failed > 0 && res.Matched+res.Created == 0 {
		return res, AllRecordsFailedError(res.Failed)
	}
	return res, nil
}
