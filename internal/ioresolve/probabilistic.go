package ioresolve

import (
	"context"
	"log/slog"

	"github.com/startuplens/entres/internal/iomodel"
	entres "github.com/startuplens/entres/pkg"
	"github.com/startuplens/entres/pkg/dedupe"
	"github.com/startuplens/entres/pkg/store"
)

// RunProbabilistic trains or loads the matching model over all
// entities, finds candidate pairs and merges pairs with confidence at
// or above ConfidenceThreshold. The first id of a pair is kept. Moved
// links keep their method and confidence unless StampMerged is set.
func (r *resolver) RunProbabilistic(ctx context.Context) (entres.MergeStats, error) {
	var res entres.MergeStats

	ents, err := r.st.Entities(ctx)
	if err != nil {
		return res, err
	}
	if len(ents) < 2 {
		slog.Info("Not enough entities for probabilistic pass",
			"entities", len(ents))
		return res, nil
	}

	recs := make([]dedupe.Record, len(ents))
	for i, v := range ents {
		recs[i] = dedupe.Record{ID: v.ID, Name: v.PrimaryName, Country: v.Country}
	}

	model, err := iomodel.LoadOrTrain(r.cfg.Resolve.ModelPath, r.mt, recs)
	if err != nil {
		return res, err
	}

	cands, err := r.mt.FindCandidates(ctx, model, recs)
	if err != nil {
		return res, err
	}
	res.PairsFound = len(cands)

	threshold := r.cfg.Resolve.ConfidenceThreshold
	var removed int
	for _, c := range cands {
		select {
		case <-ctx.Done():
			return res, ResolveCancelledError(ctx.Err())
		default:
		}

		if c.Confidence < threshold {
			res.BelowThreshold++
			continue
		}

		var ok bool
		if r.cfg.Resolve.StampMerged {
			ok, err = store.MergeWithEvidence(ctx, r.st, c.KeepID, c.MergeID,
				c.Confidence)
		} else {
			ok, err = store.Merge(ctx, r.st, c.KeepID, c.MergeID)
		}
		if err != nil {
			return res, err
		}
		res.Merged++
		if ok {
			removed++
		}
	}

	slog.Info("Probabilistic pass complete",
		"pairs", res.PairsFound,
		"merged", res.Merged,
		"below_threshold", res.BelowThreshold,
		"entities_removed", removed,
	)
	return res, nil
}
