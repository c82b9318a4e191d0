package entres

import (
	"context"

	"github.com/startuplens/entres/pkg/schema"
)

// Outcome tells how a record was resolved.
type Outcome string

const (
	// Linked means the record was linked before, nothing was written.
	Linked Outcome = "linked"

	// Matched means the record joined an entity with the same normalized
	// name and country.
	Matched Outcome = "matched"

	// Created means a new entity was created for the record.
	Created Outcome = "created"
)

// Resolution is the result of resolving one record.
type Resolution struct {
	EntityID string
	Outcome  Outcome
}

// BatchStats summarizes deterministic resolution of a batch. Matched
// includes records that were linked already.
type BatchStats struct {
	Matched  int
	Created  int
	Rejected int
	Failed   int
	Total    int
}

// BulkStats summarizes bulk entity creation.
type BulkStats struct {
	Created  int
	Skipped  int
	Rejected int
	Total    int
}

// MergeStats summarizes the probabilistic pass. Merged counts pairs that
// passed the confidence threshold, including pairs whose entities were
// merged away earlier in the same pass.
type MergeStats struct {
	PairsFound     int
	Merged         int
	BelowThreshold int
}

// RunOptions selects phases of a resolution run.
type RunOptions struct {
	// Source limits the run to records of one source system.
	Source string

	// Bulk replaces matching with bulk creation of new entities.
	Bulk bool

	// Probabilistic adds the probabilistic pass after the deterministic
	// phase.
	Probabilistic bool
}

// RunStats holds results of every phase of a run.
type RunStats struct {
	Batch BatchStats
	Bulk  BulkStats
	Merge MergeStats
}

// Resolver maps source records to canonical entities.
type Resolver interface {
	// Resolve links one record to an entity, creating the entity when
	// neither its source key nor its normalized name and country are
	// known.
	Resolve(ctx context.Context, rec schema.SourceRecord) (Resolution, error)

	// ResolveBatch resolves records one by one. A failure of one record
	// does not stop the batch.
	ResolveBatch(ctx context.Context, recs []schema.SourceRecord) (BatchStats, error)

	// BulkCreate creates a new entity for every record that is not
	// linked yet, without matching.
	BulkCreate(ctx context.Context, recs []schema.SourceRecord) (BulkStats, error)

	// RunProbabilistic merges likely duplicates among all entities.
	RunProbabilistic(ctx context.Context) (MergeStats, error)

	// Run executes the deterministic (or bulk) phase and, optionally,
	// the probabilistic pass.
	Run(ctx context.Context, recs []schema.SourceRecord, opts RunOptions) (RunStats, error)
}
