package store

import (
	"context"
	"log/slog"
	"math"

	"github.com/startuplens/entres/pkg/schema"
)

// Merge collapses the entity mergeID into keepID: all links of mergeID
// move to keepID, then mergeID is deleted, in one transaction.
//
// It returns false without changes when keepID equals mergeID, when
// mergeID is already gone, or when keepID does not exist.
func Merge(ctx context.Context, st Store, keepID, mergeID string) (bool, error) {
	return merge(ctx, st, keepID, mergeID, nil)
}

// MergeWithEvidence works like Merge and also marks the moved links as
// probabilistic with the merge score (0-1) converted to 0-100.
func MergeWithEvidence(
	ctx context.Context,
	st Store,
	keepID, mergeID string,
	score float64,
) (bool, error) {
	stamp := &LinkStamp{
		Method:     schema.Probabilistic,
		Confidence: ScoreToConfidence(score),
	}
	return merge(ctx, st, keepID, mergeID, stamp)
}

// ScoreToConfidence converts a 0-1 similarity score to a 0-100
// confidence.
func ScoreToConfidence(score float64) int {
	res := int(math.Round(score * 100))
	return max(0, min(100, res))
}

func merge(
	ctx context.Context,
	st Store,
	keepID, mergeID string,
	stamp *LinkStamp,
) (bool, error) {
	if keepID == mergeID {
		return false, nil
	}

	var merged bool
	var moved int
	err := st.Atomic(ctx, func(tx Tx) error {
		ok, err := tx.EntityExists(ctx, keepID)
		if err != nil || !ok {
			return err
		}

		moved, err = tx.ReassignLinks(ctx, mergeID, keepID, stamp)
		if err != nil {
			return err
		}

		merged, err = tx.DeleteEntity(ctx, mergeID)
		return err
	})
	if err != nil {
		return false, MergeError(keepID, mergeID, err)
	}

	if merged {
		slog.Debug("Merged entities",
			"keep", keepID, "merge", mergeID, "links", moved)
	}
	return merged, nil
}
