package iosqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
)

// maxRows keeps multi-row statements under the SQLite variables limit.
const maxRows = 1000

// ops implements store.Tx over a querier.
type ops struct {
	q querier
}

// LockName is a no-op: a transaction takes the database write lock
// when it begins.
func (o *ops) LockName(_ context.Context, _, _ string) error {
	return nil
}

func (o *ops) LinkedEntity(
	ctx context.Context,
	key schema.SourceKey,
) (string, bool, error) {
	q := `SELECT entity_id FROM entity_links
	  WHERE source = ? AND source_identifier = ?`
	return o.queryID(ctx, q, key.Source, key.SourceIdentifier)
}

func (o *ops) EntityByName(
	ctx context.Context,
	name, country string,
) (string, bool, error) {
	q := `SELECT id FROM canonical_entities
	  WHERE primary_name = ? AND country = ?
	  ORDER BY id LIMIT 1`
	return o.queryID(ctx, q, name, country)
}

func (o *ops) queryID(
	ctx context.Context,
	q string,
	args ...any,
) (string, bool, error) {
	var id string
	err := o.q.QueryRowContext(ctx, q, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, QueryError(q, err)
	}
	return id, true, nil
}

func (o *ops) EntityExists(ctx context.Context, id string) (bool, error) {
	q := `SELECT COUNT(*) FROM canonical_entities WHERE id = ?`
	var count int
	if err := o.q.QueryRowContext(ctx, q, id).Scan(&count); err != nil {
		return false, QueryError(q, err)
	}
	return count > 0, nil
}

func (o *ops) InsertEntities(
	ctx context.Context,
	ents []schema.CanonicalEntity,
) (int, error) {
	rows := make([][]any, len(ents))
	for i, v := range ents {
		rows[i] = []any{v.ID, v.PrimaryName, v.Country}
	}
	return o.insert(ctx,
		"canonical_entities (id, primary_name, country)", rows)
}

func (o *ops) InsertLinks(
	ctx context.Context,
	links []schema.EntityLink,
) (int, error) {
	rows := make([][]any, len(links))
	for i, v := range links {
		rows[i] = []any{
			v.ID, v.EntityID, v.Source, v.SourceIdentifier,
			v.SourceName, string(v.MatchMethod), v.Confidence,
		}
	}
	return o.insert(ctx,
		"entity_links (id, entity_id, source, source_identifier, "+
			"source_name, match_method, confidence)",
		rows,
	)
}

// insert runs multi-row INSERT statements ignoring conflicting rows.
func (o *ops) insert(
	ctx context.Context,
	target string,
	rows [][]any,
) (int, error) {
	var total int
	for i := 0; i < len(rows); i += maxRows {
		batch := rows[i:min(i+maxRows, len(rows))]

		var valueStrings []string
		var valueArgs []any
		for _, row := range batch {
			valueStrings = append(valueStrings, placeholders(len(row)))
			valueArgs = append(valueArgs, row...)
		}

		q := fmt.Sprintf(
			"INSERT INTO %s VALUES %s ON CONFLICT DO NOTHING",
			target, strings.Join(valueStrings, ", "),
		)
		res, err := o.q.ExecContext(ctx, q, valueArgs...)
		if err != nil {
			return total, InsertError(target, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return total, InsertError(target, err)
		}
		total += int(n)
	}
	return total, nil
}

func (o *ops) ExistingLinks(
	ctx context.Context,
	keys []schema.SourceKey,
) (map[schema.SourceKey]struct{}, error) {
	res := make(map[schema.SourceKey]struct{})
	for i := 0; i < len(keys); i += maxRows {
		batch := keys[i:min(i+maxRows, len(keys))]

		var valueStrings []string
		var valueArgs []any
		for _, k := range batch {
			valueStrings = append(valueStrings, "(?, ?)")
			valueArgs = append(valueArgs, k.Source, k.SourceIdentifier)
		}

		q := fmt.Sprintf(
			`SELECT source, source_identifier FROM entity_links
			  WHERE (source, source_identifier) IN (VALUES %s)`,
			strings.Join(valueStrings, ", "),
		)
		if err := o.scanKeys(ctx, q, valueArgs, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (o *ops) scanKeys(
	ctx context.Context,
	q string,
	args []any,
	res map[schema.SourceKey]struct{},
) error {
	rows, err := o.q.QueryContext(ctx, q, args...)
	if err != nil {
		return QueryError(q, err)
	}
	defer rows.Close()

	for rows.Next() {
		var k schema.SourceKey
		if err = rows.Scan(&k.Source, &k.SourceIdentifier); err != nil {
			return QueryError(q, err)
		}
		res[k] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return QueryError(q, err)
	}
	return nil
}

func (o *ops) ReassignLinks(
	ctx context.Context,
	fromID, toID string,
	stamp *store.LinkStamp,
) (int, error) {
	q := `UPDATE entity_links SET entity_id = ? WHERE entity_id = ?`
	args := []any{toID, fromID}
	if stamp != nil {
		q = `UPDATE entity_links
		  SET entity_id = ?, match_method = ?, confidence = MIN(confidence, ?)
		  WHERE entity_id = ?`
		args = []any{toID, string(stamp.Method), stamp.Confidence, fromID}
	}
	return o.exec(ctx, q, args...)
}

func (o *ops) DeleteEntity(ctx context.Context, id string) (bool, error) {
	q := `DELETE FROM canonical_entities WHERE id = ?`
	n, err := o.exec(ctx, q, id)
	return n > 0, err
}

func (o *ops) exec(ctx context.Context, q string, args ...any) (int, error) {
	res, err := o.q.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, QueryError(q, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, QueryError(q, err)
	}
	return int(n), nil
}

func (o *ops) Entities(ctx context.Context) ([]schema.CanonicalEntity, error) {
	q := `SELECT id, primary_name, country FROM canonical_entities ORDER BY id`
	rows, err := o.q.QueryContext(ctx, q)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	var res []schema.CanonicalEntity
	for rows.Next() {
		var e schema.CanonicalEntity
		if err = rows.Scan(&e.ID, &e.PrimaryName, &e.Country); err != nil {
			return nil, QueryError(q, err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(q, err)
	}
	return res, nil
}

func (o *ops) Links(
	ctx context.Context,
	entityID string,
) ([]schema.EntityLink, error) {
	q := `SELECT id, entity_id, source, source_identifier, source_name,
	    match_method, confidence
	  FROM entity_links
	  WHERE entity_id = ?
	  ORDER BY source, source_identifier`
	rows, err := o.q.QueryContext(ctx, q, entityID)
	if err != nil {
		return nil, QueryError(q, err)
	}
	defer rows.Close()

	var res []schema.EntityLink
	for rows.Next() {
		var l schema.EntityLink
		var method string
		err = rows.Scan(
			&l.ID, &l.EntityID, &l.Source, &l.SourceIdentifier,
			&l.SourceName, &method, &l.Confidence,
		)
		if err != nil {
			return nil, QueryError(q, err)
		}
		l.MatchMethod = schema.MatchMethod(method)
		res = append(res, l)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(q, err)
	}
	return res, nil
}

func (o *ops) Counts(ctx context.Context) (store.Counts, error) {
	var res store.Counts
	q := `SELECT
	  (SELECT COUNT(*) FROM canonical_entities),
	  (SELECT COUNT(*) FROM entity_links)`
	err := o.q.QueryRowContext(ctx, q).Scan(&res.Entities, &res.Links)
	if err != nil {
		return res, QueryError(q, err)
	}
	return res, nil
}

// placeholders returns "(?, ?, ...)" for n columns.
func placeholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}
