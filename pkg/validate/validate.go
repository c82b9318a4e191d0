// Package validate measures resolution quality against ground truth
// pairs of source records.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/startuplens/entres/pkg/schema"
)

// Pair is a ground truth statement about two source records.
type Pair struct {
	A          schema.SourceKey `json:"source_a"    yaml:"source_a"`
	B          schema.SourceKey `json:"source_b"    yaml:"source_b"`
	SameEntity bool             `json:"same_entity" yaml:"same_entity"`
}

// Lookup returns the entity a source record is resolved to. A record
// that is not resolved returns false.
type Lookup func(ctx context.Context, key schema.SourceKey) (string, bool, error)

// Metrics summarizes agreement of resolution with ground truth. True
// negatives are not tracked.
type Metrics struct {
	Precision      float64 `json:"precision"`
	Recall         float64 `json:"recall"`
	F1             float64 `json:"f1"`
	TruePositives  int     `json:"true_positives"`
	FalsePositives int     `json:"false_positives"`
	FalseNegatives int     `json:"false_negatives"`
	TotalPairs     int     `json:"total_pairs"`
}

// Evaluate classifies every pair by the entities its records resolve to.
// A pair with an unresolved side is a false negative when it is labeled
// as the same entity, and is skipped otherwise.
func Evaluate(ctx context.Context, lookup Lookup, pairs []Pair) (Metrics, error) {
	res := Metrics{TotalPairs: len(pairs)}

	for _, p := range pairs {
		idA, okA, err := lookup(ctx, p.A)
		if err != nil {
			return Metrics{}, LookupError(p.A, err)
		}
		idB, okB, err := lookup(ctx, p.B)
		if err != nil {
			return Metrics{}, LookupError(p.B, err)
		}

		if !okA || !okB {
			if p.SameEntity {
				res.FalseNegatives++
			}
			continue
		}

		predicted := idA == idB
		switch {
		case predicted && p.SameEntity:
			res.TruePositives++
		case predicted && !p.SameEntity:
			res.FalsePositives++
		case !predicted && p.SameEntity:
			res.FalseNegatives++
		}
	}

	res.Precision = ratio(res.TruePositives, res.TruePositives+res.FalsePositives)
	res.Recall = ratio(res.TruePositives, res.TruePositives+res.FalseNegatives)
	if res.Precision+res.Recall > 0 {
		res.F1 = 2 * res.Precision * res.Recall / (res.Precision + res.Recall)
	}
	return res, nil
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Tier is a qualitative grade of an F1 score.
type Tier string

const (
	Excellent Tier = "EXCELLENT"
	Good      Tier = "GOOD"
	Fair      Tier = "FAIR"
	Poor      Tier = "POOR"
)

// Assess returns the tier of an F1 score.
func Assess(f1 float64) Tier {
	switch {
	case f1 >= 0.95:
		return Excellent
	case f1 >= 0.85:
		return Good
	case f1 >= 0.70:
		return Fair
	default:
		return Poor
	}
}

var tierNotes = map[Tier]string{
	Excellent: "production-ready",
	Good:      "acceptable for production with monitoring",
	Fair:      "consider improving probabilistic matching",
	Poor:      "significant entity resolution errors",
}

// Report renders metrics as a human-readable text.
func Report(m Metrics) string {
	tier := Assess(m.F1)
	lines := []string{
		"Entity Resolution Validation Report",
		strings.Repeat("=", 40),
		"",
		fmt.Sprintf("Total pairs evaluated:  %d", m.TotalPairs),
		fmt.Sprintf("True positives:         %d", m.TruePositives),
		fmt.Sprintf("False positives:        %d", m.FalsePositives),
		fmt.Sprintf("False negatives:        %d", m.FalseNegatives),
		"",
		fmt.Sprintf("Precision:  %.4f", m.Precision),
		fmt.Sprintf("Recall:     %.4f", m.Recall),
		fmt.Sprintf("F1 Score:   %.4f", m.F1),
		"",
		fmt.Sprintf("Assessment: %s - %s", tier, tierNotes[tier]),
	}
	return strings.Join(lines, "\n")
}
