package ioresolve

import (
	"context"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
)

// BulkCreate gives every record without a link its own entity. Records
// are written with multi-row INSERTs in chunks of BulkBatchSize, the
// transaction is committed every CommitEvery records. Records that are
// linked already or repeat a source key of the input are skipped.
func (r *resolver) BulkCreate(
	ctx context.Context,
	recs []schema.SourceRecord,
) (entres.BulkStats, error) {
	res := entres.BulkStats{Total: len(recs)}

	valid := make([]schema.SourceRecord, 0, len(recs))
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			res.Rejected++
			slog.Warn("Rejected record", "record", rec.Key().String(),
				"error", err)
			continue
		}
		valid = append(valid, rec)
	}
	if len(valid) == 0 {
		return res, nil
	}

	batchSize := max(r.cfg.Resolve.BulkBatchSize, 1)
	commitEvery := max(r.cfg.Resolve.CommitEvery, batchSize)

	bar := pb.Full.Start(len(valid))
	bar.Set("prefix", "Creating entities: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	seen := make(map[schema.SourceKey]struct{}, len(valid))
	for start := 0; start < len(valid); start += commitEvery {
		select {
		case <-ctx.Done():
			return res, ResolveCancelledError(ctx.Err())
		default:
		}

		group := valid[start:min(start+commitEvery, len(valid))]
		var created, skipped int
		err := r.st.Atomic(ctx, func(tx store.Tx) error {
			created, skipped = 0, 0
			for i := 0; i < len(group); i += batchSize {
				chunk := group[i:min(i+batchSize, len(group))]
				c, s, err := insertChunk(ctx, tx, chunk, seen)
				if err != nil {
					return err
				}
				created += c
				skipped += s
			}
			return nil
		})
		if err != nil {
			return res, ResolveBulkError(res.Created, err)
		}

		res.Created += created
		res.Skipped += skipped
		bar.Add(len(group))
		slog.Info("Committed bulk group",
			"created", res.Created, "skipped", res.Skipped)
	}
	return res, nil
}

// insertChunk writes entities and links for records of the chunk that
// are neither linked in the store nor seen earlier in the input.
func insertChunk(
	ctx context.Context,
	tx store.Tx,
	chunk []schema.SourceRecord,
	seen map[schema.SourceKey]struct{},
) (int, int, error) {
	keys := make([]schema.SourceKey, len(chunk))
	for i, v := range chunk {
		keys[i] = v.Key()
	}
	existing, err := tx.ExistingLinks(ctx, keys)
	if err != nil {
		return 0, 0, err
	}

	var skipped int
	ents := make([]schema.CanonicalEntity, 0, len(chunk))
	links := make([]schema.EntityLink, 0, len(chunk))
	for _, rec := range chunk {
		key := rec.Key()
		_, inStore := existing[key]
		_, inInput := seen[key]
		if inStore || inInput {
			skipped++
			continue
		}
		seen[key] = struct{}{}

		ent := store.NewEntity(rec.Name, rec.Country)
		ents = append(ents, ent)
		links = append(links, store.NewLink(ent.ID, rec,
			schema.ExactID, schema.ConfidenceExactID))
	}
	if len(ents) == 0 {
		return 0, skipped, nil
	}

	if _, err = tx.InsertEntities(ctx, ents); err != nil {
		return 0, 0, err
	}
	n, err := tx.InsertLinks(ctx, links)
	if err != nil {
		return 0, 0, err
	}
	// a concurrent writer linked some keys, their entities would stay
	// without links
	if n != len(links) {
		return 0, 0, LinkConflictError(len(links), n)
	}
	return n, skipped, nil
}
