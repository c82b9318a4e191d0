// Package entres holds the top-level contracts of the entity resolution
// engine and its version.
package entres

import (
	"context"
)

var (
	// Version of the application.
	Version = "v0.1.0"

	// Build timestamp, set by the linker.
	Build = "n/a"
)

// SchemaManager creates and updates the canonical entity store schema.
// Both operations are idempotent.
type SchemaManager interface {
	// Create creates tables and indexes of the store.
	Create(ctx context.Context) error

	// Migrate brings an existing schema to the current version.
	Migrate(ctx context.Context) error
}
