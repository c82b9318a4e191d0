// Package schema provides the data model of the canonical entity store:
// canonical entities, the links that tie source records to them and the
// source records themselves.
package schema

// DDLGenerator defines how Go models generate SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// MatchMethod tells how an entity link was established.
type MatchMethod string

const (
	// ExactID links a source record to an entity created for it.
	ExactID MatchMethod = "exact_id"

	// Deterministic links a record by normalized name and country.
	Deterministic MatchMethod = "deterministic"

	// Probabilistic marks links moved by a fuzzy-match merge.
	Probabilistic MatchMethod = "probabilistic"
)

// Confidence of links created by the deterministic matcher.
const (
	ConfidenceExactID       = 100
	ConfidenceDeterministic = 90
)

// String implements fmt.Stringer.
func (m MatchMethod) String() string {
	return string(m)
}

// Valid reports if the method is one of the known values.
func (m MatchMethod) Valid() bool {
	switch m {
	case ExactID, Deterministic, Probabilistic:
		return true
	default:
		return false
	}
}

// CanonicalEntity is the deduplicated record of one real-world company.
type CanonicalEntity struct {
	// ID is a random UUID v4 generated at creation, never reused.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// PrimaryName is the normalized company name.
	PrimaryName string `db:"primary_name" ddl:"VARCHAR(500) NOT NULL" gorm:"type:varchar(500);not null;index:idx_canonical_entities_name_country,priority:1"`

	// Country is a lower-cased ISO-style country code.
	Country string `db:"country" ddl:"VARCHAR(16) NOT NULL" gorm:"type:varchar(16);not null;index:idx_canonical_entities_name_country,priority:2"`
}

// EntityLink asserts that a source record refers to a canonical entity.
// The pair (Source, SourceIdentifier) is unique.
type EntityLink struct {
	// ID is a random UUID v4.
	ID string `db:"id" ddl:"VARCHAR(36) PRIMARY KEY" gorm:"primaryKey;type:varchar(36)"`

	// EntityID refers to the owning CanonicalEntity.
	EntityID string `db:"entity_id" ddl:"VARCHAR(36) NOT NULL" gorm:"type:varchar(36);not null;index:idx_entity_links_entity_id"`

	// Source is the origin system of the record (registry, filings, etc).
	Source string `db:"source" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);not null;uniqueIndex:idx_entity_links_source_key,priority:1"`

	// SourceIdentifier is the native key of the record within its source.
	SourceIdentifier string `db:"source_identifier" ddl:"VARCHAR(255) NOT NULL" gorm:"type:varchar(255);not null;uniqueIndex:idx_entity_links_source_key,priority:2"`

	// SourceName is the name as it appeared in the source, for audit.
	SourceName string `db:"source_name" ddl:"VARCHAR(500)" gorm:"type:varchar(500)"`

	// MatchMethod is how the link was established.
	MatchMethod MatchMethod `db:"match_method" ddl:"VARCHAR(20) NOT NULL" gorm:"type:varchar(20);not null"`

	// Confidence is in the 0-100 range.
	Confidence int `db:"confidence" ddl:"SMALLINT NOT NULL" gorm:"type:smallint;not null"`
}

// Key returns the source key of the link.
func (l EntityLink) Key() SourceKey {
	return SourceKey{Source: l.Source, SourceIdentifier: l.SourceIdentifier}
}
