package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/startuplens/entres/pkg/normalize"
	"github.com/startuplens/entres/pkg/schema"
)

// NewEntity builds a canonical entity with a fresh ID, normalized name
// and lower-cased country.
func NewEntity(name, country string) schema.CanonicalEntity {
	return schema.CanonicalEntity{
		ID:          uuid.NewString(),
		PrimaryName: normalize.Normalize(name),
		Country:     NormCountry(country),
	}
}

// NormCountry returns the stored form of a country code.
func NormCountry(country string) string {
	return strings.ToLower(strings.TrimSpace(country))
}

// NewLink builds a link of a source record to an entity.
func NewLink(
	entityID string,
	rec schema.SourceRecord,
	method schema.MatchMethod,
	confidence int,
) schema.EntityLink {
	return schema.EntityLink{
		ID:               uuid.NewString(),
		EntityID:         entityID,
		Source:           rec.Source,
		SourceIdentifier: rec.SourceIdentifier,
		SourceName:       rec.Name,
		MatchMethod:      method,
		Confidence:       confidence,
	}
}

// CreateEntity saves a new canonical entity for the name and country.
func CreateEntity(
	ctx context.Context,
	tx Tx,
	name, country string,
) (schema.CanonicalEntity, error) {
	ent := NewEntity(name, country)
	if _, err := tx.InsertEntities(ctx, []schema.CanonicalEntity{ent}); err != nil {
		return schema.CanonicalEntity{}, err
	}
	slog.Debug("Created entity",
		"id", ent.ID, "name", ent.PrimaryName, "country", ent.Country)
	return ent, nil
}

// Link saves a link of a source record to an entity. It fails if the
// record is already linked.
func Link(
	ctx context.Context,
	tx Tx,
	entityID string,
	rec schema.SourceRecord,
	method schema.MatchMethod,
	confidence int,
) (schema.EntityLink, error) {
	if !method.Valid() || confidence < 0 || confidence > 100 {
		return schema.EntityLink{}, InvalidLinkError(method, confidence)
	}

	link := NewLink(entityID, rec, method, confidence)
	n, err := tx.InsertLinks(ctx, []schema.EntityLink{link})
	if err != nil {
		return schema.EntityLink{}, err
	}
	if n == 0 {
		return schema.EntityLink{}, LinkExistsError(rec.Key())
	}
	return link, nil
}
