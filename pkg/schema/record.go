package schema

import (
	"strings"
)

// SourceKey identifies a record within its source system.
type SourceKey struct {
	Source           string `json:"source"            yaml:"source"`
	SourceIdentifier string `json:"source_identifier" yaml:"source_identifier"`
}

// String returns "source:identifier".
func (k SourceKey) String() string {
	return k.Source + ":" + k.SourceIdentifier
}

// SourceRecord is an incoming record about a company as given by one of
// the source systems.
type SourceRecord struct {
	// Name of the company as it appears in the source.
	Name string `json:"name" yaml:"name"`

	// Country code, any case.
	Country string `json:"country" yaml:"country"`

	// Source is the origin system of the record.
	Source string `json:"source" yaml:"source"`

	// SourceIdentifier is the native key of the record in its source.
	SourceIdentifier string `json:"source_identifier" yaml:"source_identifier"`
}

// Key returns the source key of the record.
func (r SourceRecord) Key() SourceKey {
	return SourceKey{Source: r.Source, SourceIdentifier: r.SourceIdentifier}
}

// Validate checks that all required fields are present. Fields that
// contain only whitespace count as absent.
func (r SourceRecord) Validate() error {
	var missing []string
	fields := []struct{ name, val string }{
		{"name", r.Name},
		{"country", r.Country},
		{"source", r.Source},
		{"source_identifier", r.SourceIdentifier},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return InvalidRecordError(r.Key(), missing)
	}
	return nil
}
