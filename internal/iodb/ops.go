package iodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/store"
)

// PostgreSQL has a limit of 65535 parameters per query, a link row
// takes 7 of them.
const maxRows = 5000

// ops implements store.Tx over a querier. PgxStore must be connected
// before its operations are used.
type ops struct {
	q querier
}

// LockName takes a transaction-scoped advisory lock on the name and
// country, so concurrent resolvers of the same new company wait for
// each other instead of creating duplicates.
func (o *ops) LockName(ctx context.Context, name, country string) error {
	q := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	if _, err := o.q.Exec(ctx, q, country+"|"+name); err != nil {
		return QueryError("lock name", err)
	}
	return nil
}

func (o *ops) LinkedEntity(
	ctx context.Context,
	key schema.SourceKey,
) (string, bool, error) {
	q := `SELECT entity_id FROM entity_links
	  WHERE source = $1 AND source_identifier = $2`
	return o.queryID(ctx, "linked entity", q, key.Source, key.SourceIdentifier)
}

func (o *ops) EntityByName(
	ctx context.Context,
	name, country string,
) (string, bool, error) {
	q := `SELECT id FROM canonical_entities
	  WHERE primary_name = $1 AND country = $2
	  ORDER BY id COLLATE "C" LIMIT 1`
	return o.queryID(ctx, "entity by name", q, name, country)
}

func (o *ops) queryID(
	ctx context.Context,
	op, q string,
	args ...any,
) (string, bool, error) {
	var id string
	err := o.q.QueryRow(ctx, q, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, QueryError(op, err)
	}
	return id, true, nil
}

func (o *ops) EntityExists(ctx context.Context, id string) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM canonical_entities WHERE id = $1)`
	var exists bool
	if err := o.q.QueryRow(ctx, q, id).Scan(&exists); err != nil {
		return false, QueryError("entity exists", err)
	}
	return exists, nil
}

func (o *ops) InsertEntities(
	ctx context.Context,
	ents []schema.CanonicalEntity,
) (int, error) {
	rows := make([][]any, len(ents))
	for i, v := range ents {
		rows[i] = []any{v.ID, v.PrimaryName, v.Country}
	}
	return o.insert(ctx, "canonical_entities",
		[]string{"id", "primary_name", "country"}, rows)
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
	cols := []string{
		"id", "entity_id", "source", "source_identifier",
		"source_name", "match_method", "confidence",
	}
	return o.insert(ctx, "entity_links", cols, rows)
}

// insert builds parameterized multi-row INSERT statements with
// ON CONFLICT DO NOTHING.
func (o *ops) insert(
	ctx context.Context,
	table string,
	cols []string,
	rows [][]any,
) (int, error) {
	var total int
	for i := 0; i < len(rows); i += maxRows {
		batch := rows[i:min(i+maxRows, len(rows))]

		var valueStrings []string
		var valueArgs []any
		argIdx := 1
		for _, row := range batch {
			valueStrings = append(valueStrings, placeholders(argIdx, len(row)))
			valueArgs = append(valueArgs, row...)
			argIdx += len(row)
		}

		q := fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES %s ON CONFLICT DO NOTHING",
			table, strings.Join(cols, ", "), strings.Join(valueStrings, ", "),
		)
		res, err := o.q.Exec(ctx, q, valueArgs...)
		if err != nil {
			return total, InsertError(table, err)
		}
		total += int(res.RowsAffected())
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
		argIdx := 1
		for _, k := range batch {
			valueStrings = append(valueStrings, placeholders(argIdx, 2))
			valueArgs = append(valueArgs, k.Source, k.SourceIdentifier)
			argIdx += 2
		}

		q := fmt.Sprintf(
			`SELECT source, source_identifier FROM entity_links
			  WHERE (source, source_identifier) IN (VALUES %s)`,
			strings.Join(valueStrings, ", "),
		)
		rows, err := o.q.Query(ctx, q, valueArgs...)
		if err != nil {
			return nil, QueryError("existing links", err)
		}

		var k schema.SourceKey
		_, err = pgx.ForEachRow(rows, []any{&k.Source, &k.SourceIdentifier},
			func() error {
				res[k] = struct{}{}
				return nil
			})
		if err != nil {
			return nil, QueryError("existing links", err)
		}
	}
	return res, nil
}

func (o *ops) ReassignLinks(
	ctx context.Context,
	fromID, toID string,
	stamp *store.LinkStamp,
) (int, error) {
	q := `UPDATE entity_links SET entity_id = $1 WHERE entity_id = $2`
	args := []any{toID, fromID}
	if stamp != nil {
		q = `UPDATE entity_links
		  SET entity_id = $1, match_method = $3,
		    confidence = LEAST(confidence, $4)
		  WHERE entity_id = $2`
		args = append(args, string(stamp.Method), stamp.Confidence)
	}
	res, err := o.q.Exec(ctx, q, args...)
	if err != nil {
		return 0, QueryError("reassign links", err)
	}
	return int(res.RowsAffected()), nil
}

func (o *ops) DeleteEntity(ctx context.Context, id string) (bool, error) {
	q := `DELETE FROM canonical_entities WHERE id = $1`
	res, err := o.q.Exec(ctx, q, id)
	if err != nil {
		return false, QueryError("delete entity", err)
	}
	return res.RowsAffected() > 0, nil
}

func (o *ops) Entities(ctx context.Context) ([]schema.CanonicalEntity, error) {
	q := `SELECT id, primary_name, country
	  FROM canonical_entities ORDER BY id COLLATE "C"`
	rows, err := o.q.Query(ctx, q)
	if err != nil {
		return nil, QueryError("entities", err)
	}
	res, err := pgx.CollectRows(rows,
		func(row pgx.CollectableRow) (schema.CanonicalEntity, error) {
			var e schema.CanonicalEntity
			err := row.Scan(&e.ID, &e.PrimaryName, &e.Country)
			return e, err
		})
	if err != nil {
		return nil, QueryError("entities", err)
	}
	return res, nil
}

func (o *ops) Links(
	ctx context.Context,
	entityID string,
) ([]schema.EntityLink, error) {
	q := `SELECT id, entity_id, source, source_identifier,
	    COALESCE(source_name, ''), match_method, confidence
	  FROM entity_links
	  WHERE entity_id = $1
	  ORDER BY source, source_identifier`
	rows, err := o.q.Query(ctx, q, entityID)
	if err != nil {
		return nil, QueryError("links", err)
	}
	res, err := pgx.CollectRows(rows,
		func(row pgx.CollectableRow) (schema.EntityLink, error) {
			var l schema.EntityLink
			var method string
			err := row.Scan(
				&l.ID, &l.EntityID, &l.Source, &l.SourceIdentifier,
				&l.SourceName, &method, &l.Confidence,
			)
			l.MatchMethod = schema.MatchMethod(method)
			return l, err
		})
	if err != nil {
		return nil, QueryError("links", err)
	}
	return res, nil
}

func (o *ops) Counts(ctx context.Context) (store.Counts, error) {
	var res store.Counts
	q := `SELECT
	  (SELECT COUNT(*) FROM canonical_entities),
	  (SELECT COUNT(*) FROM entity_links)`
	err := o.q.QueryRow(ctx, q).Scan(&res.Entities, &res.Links)
	if err != nil {
		return res, QueryError("counts", err)
	}
	return res, nil
}

// placeholders returns "($n, $n+1, ...)" for cols columns.
func placeholders(n, cols int) string {
	ps := make([]string, cols)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", n+i)
	}
	return "(" + strings.Join(ps, ", ") + ")"
}
