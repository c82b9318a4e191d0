// Package store defines the canonical entity store contract and the
// entity, link and merge primitives built on top of it.
//
// Implementations live in internal/iodb (PostgreSQL) and
// internal/iosqlite (SQLite). Lookups that find nothing return
// ("", false, nil): a miss is not an error.
package store

import (
	"context"

	"github.com/startuplens/entres/pkg/schema"
)

// LinkStamp overrides match method and confidence of links reassigned
// by a merge.
type LinkStamp struct {
	Method schema.MatchMethod

	// Confidence never raises the confidence a link already has.
	Confidence int
}

// Counts holds sizes of the store tables.
type Counts struct {
	Entities int
	Links    int
}

// Tx is the set of store operations. It is implemented both by a
// store (autocommit) and by a transaction started with Store.Atomic.
type Tx interface {
	// LockName serializes resolution of the same normalized name and
	// country until the end of the current transaction.
	LockName(ctx context.Context, name, country string) error

	// LinkedEntity returns the entity a source record is linked to.
	LinkedEntity(ctx context.Context, key schema.SourceKey) (string, bool, error)

	// EntityByName returns an entity with the given normalized name and
	// country. If there are several, the smallest ID wins.
	EntityByName(ctx context.Context, name, country string) (string, bool, error)

	// EntityExists checks if an entity with the ID is present.
	EntityExists(ctx context.Context, id string) (bool, error)

	// InsertEntities saves entities with multi-row INSERT statements and
	// returns the number of inserted rows.
	InsertEntities(ctx context.Context, ents []schema.CanonicalEntity) (int, error)

	// InsertLinks saves links with multi-row INSERT statements. Links
	// with an already known source key are ignored. Returns the number
	// of inserted rows.
	InsertLinks(ctx context.Context, links []schema.EntityLink) (int, error)

	// ExistingLinks returns the subset of keys that already have links.
	ExistingLinks(
		ctx context.Context,
		keys []schema.SourceKey,
	) (map[schema.SourceKey]struct{}, error)

	// ReassignLinks moves all links of the entity fromID to toID and
	// returns the number of moved links. A non-nil stamp overrides
	// match method and caps confidence of the moved links.
	ReassignLinks(ctx context.Context, fromID, toID string, stamp *LinkStamp) (int, error)

	// DeleteEntity removes an entity, returns false if it was absent.
	DeleteEntity(ctx context.Context, id string) (bool, error)

	// Entities returns all canonical entities ordered by ID.
	Entities(ctx context.Context) ([]schema.CanonicalEntity, error)

	// Links returns links of an entity ordered by source key.
	Links(ctx context.Context, entityID string) ([]schema.EntityLink, error)

	// Counts returns the number of entities and links.
	Counts(ctx context.Context) (Counts, error)
}

// Store is a canonical entity store.
type Store interface {
	Tx

	// Atomic runs fn inside one transaction. The transaction commits if
	// fn returns nil and rolls back otherwise.
	Atomic(ctx context.Context, fn func(Tx) error) error

	// Close releases the store resources.
	Close() error
}
