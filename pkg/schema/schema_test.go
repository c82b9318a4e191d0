package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalEntityTableDDL(t *testing.T) {
	e := schema.CanonicalEntity{}
	ddl := e.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS canonical_entities")
	assert.Contains(t, ddl, "id VARCHAR(36) PRIMARY KEY")
	assert.Contains(t, ddl, "primary_name VARCHAR(500) NOT NULL")
	assert.Contains(t, ddl, "country VARCHAR(16) NOT NULL")
	assert.Equal(t, "canonical_entities", e.TableName())
}

func TestCanonicalEntityIndexDDL(t *testing.T) {
	idx := schema.CanonicalEntity{}.IndexDDL()
	require.Len(t, idx, 1)
	assert.Contains(t, idx[0], "(primary_name, country)")
	assert.NotContains(t, idx[0], "UNIQUE")
}

func TestEntityLinkTableDDL(t *testing.T) {
	l := schema.EntityLink{}
	ddl := l.TableDDL()

	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS entity_links")
	assert.Contains(t, ddl, "entity_id VARCHAR(36) NOT NULL")
	assert.Contains(t, ddl, "source VARCHAR(255) NOT NULL")
	assert.Contains(t, ddl, "source_identifier VARCHAR(255) NOT NULL")
	assert.Contains(t, ddl, "source_name VARCHAR(500)")
	assert.Contains(t, ddl, "match_method VARCHAR(20) NOT NULL")
	assert.Contains(t, ddl, "confidence SMALLINT NOT NULL")
	assert.Equal(t, "entity_links", l.TableName())

	all := strings.Join(l.IndexDDL(), "\n")
	assert.Contains(t, all,
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_entity_links_source_key")
	assert.Contains(t, all, "entity_links(entity_id)")
}

func TestAllModels(t *testing.T) {
	models := schema.AllModels()
	require.Len(t, models, 2)
	assert.Equal(t, "canonical_entities", models[0].TableName())
	assert.Equal(t, "entity_links", models[1].TableName())
	for _, m := range models {
		assert.NotEmpty(t, m.TableDDL())
	}
}

func TestMatchMethod(t *testing.T) {
	tests := []struct {
		method schema.MatchMethod
		valid  bool
	}{
		{schema.ExactID, true},
		{schema.Deterministic, true},
		{schema.Probabilistic, true},
		{schema.MatchMethod("fuzzy"), false},
		{schema.MatchMethod(""), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, tt.method.Valid(), tt.method.String())
	}
	assert.Equal(t, "exact_id", schema.ExactID.String())
}

func TestSourceRecordValidate(t *testing.T) {
	tests := []struct {
		msg     string
		rec     schema.SourceRecord
		missing []string
	}{
		{
			msg: "complete record",
			rec: schema.SourceRecord{
				Name: "Acme Ltd", Country: "GB",
				Source: "registry", SourceIdentifier: "001",
			},
		},
		{
			msg: "missing name",
			rec: schema.SourceRecord{
				Country: "GB", Source: "registry", SourceIdentifier: "001",
			},
			missing: []string{"name"},
		},
		{
			msg: "whitespace is absent",
			rec: schema.SourceRecord{
				Name: "Acme", Country: "  ", Source: "registry",
				SourceIdentifier: "\t",
			},
			missing: []string{"country", "source_identifier"},
		},
		{
			msg:     "empty record",
			rec:     schema.SourceRecord{},
			missing: []string{"name", "country", "source", "source_identifier"},
		},
	}

	for _, tt := range tests {
		err := tt.rec.Validate()
		if len(tt.missing) == 0 {
			assert.NoError(t, err, tt.msg)
			continue
		}
		require.Error(t, err, tt.msg)
		var gnErr *gn.Error
		require.ErrorAs(t, err, &gnErr, tt.msg)
		assert.Equal(t, errcode.InvalidRecordError, gnErr.Code, tt.msg)
		for _, f := range tt.missing {
			assert.Contains(t, gnErr.Err.Error(), f, tt.msg)
		}
	}
}

func TestKeys(t *testing.T) {
	rec := schema.SourceRecord{
		Name: "Acme", Country: "gb", Source: "filings", SourceIdentifier: "A-1",
	}
	key := rec.Key()
	assert.Equal(t, schema.SourceKey{Source: "filings", SourceIdentifier: "A-1"}, key)
	assert.Equal(t, "filings:A-1", key.String())

	link := schema.EntityLink{Source: "filings", SourceIdentifier: "A-1"}
	assert.Equal(t, key, link.Key())
}
