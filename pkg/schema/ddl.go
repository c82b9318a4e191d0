package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var columns []string

	for i := range t.NumField() {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			columns = append(columns, fmt.Sprintf("    %s %s", dbTag, ddlTag))
		}
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// CanonicalEntity DDL methods
func (e CanonicalEntity) TableDDL() string {
	return generateDDL(e, e.TableName())
}

// IndexDDL has no uniqueness on name and country: bulk creation is
// allowed to produce same-name entities.
func (e CanonicalEntity) IndexDDL() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_canonical_entities_name_country " +
			"ON canonical_entities(primary_name, country);",
	}
}

func (e CanonicalEntity) TableName() string {
	return "canonical_entities"
}

// EntityLink DDL methods
func (l EntityLink) TableDDL() string {
	return generateDDL(l, l.TableName())
}

func (l EntityLink) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_entity_links_source_key " +
			"ON entity_links(source, source_identifier);",
		"CREATE INDEX IF NOT EXISTS idx_entity_links_entity_id " +
			"ON entity_links(entity_id);",
	}
}

func (l EntityLink) TableName() string {
	return "entity_links"
}
