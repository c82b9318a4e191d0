// Package dedupe finds canonical entities that most likely describe the
// same company. It trains a token weighting model over the entity
// population, scores plausible pairs within a country and groups them
// into similarity clusters.
package dedupe

import (
	"context"

	"github.com/startuplens/entres/pkg/config"
)

// Record is an entity as seen by the matcher. Name is expected to be
// normalized already.
type Record struct {
	ID      string
	Name    string
	Country string
}

// Candidate is a pair of entities from the same similarity cluster.
// KeepID is always lexicographically smaller than MergeID.
type Candidate struct {
	KeepID  string
	MergeID string

	// Confidence is the mean similarity between the two sub-clusters
	// the records came from when they were joined, 0-1.
	Confidence float64
}

// Matcher trains a model and uses it to find duplicate candidates.
type Matcher interface {
	// Train fits a model over the whole entity population.
	Train(recs []Record) (*Model, error)

	// FindCandidates partitions records into similarity clusters and
	// returns all pairwise combinations within every cluster of two or
	// more members, sorted by KeepID and MergeID.
	FindCandidates(ctx context.Context, m *Model, recs []Record) ([]Candidate, error)
}

type matcher struct {
	threshold float64
	jobsNum   int
}

// New creates a Matcher. Pairs join a cluster when their similarity is
// at least cfg.Resolve.ClusterThreshold, scoring runs on
// cfg.JobsNumber workers.
func New(cfg *config.Config) Matcher {
	res := &matcher{
		threshold: cfg.Resolve.ClusterThreshold,
		jobsNum:   cfg.JobsNumber,
	}
	if res.threshold <= 0 {
		res.threshold = 0.5
	}
	if res.jobsNum <= 0 {
		res.jobsNum = 1
	}
	return res
}
