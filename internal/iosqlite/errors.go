package iosqlite

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// ConnectionError is returned when the SQLite file cannot be opened.
func ConnectionError(path string, err error) error {
	msg := `Cannot open SQLite store <em>%s</em>

<em>How to fix:</em>
  1. Check that the directory exists and is writable
  2. Check that no other process holds an exclusive lock`
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// TransactionError is returned when a transaction cannot begin or commit.
func TransactionError(err error) error {
	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  "SQLite transaction failed",
		Err:  fmt.Errorf("sqlite transaction: %w", err),
	}
}

// QueryError is returned when a query fails.
func QueryError(query string, err error) error {
	q := strings.Join(strings.Fields(query), " ")
	if len(q) > 60 {
		q = q[:60] + "..."
	}
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Query failed: <em>%s</em>",
		Vars: []any{q},
		Err:  fmt.Errorf("query '%s': %w", q, err),
	}
}

// InsertError is returned when a multi-row insert fails.
func InsertError(target string, err error) error {
	table, _, _ := strings.Cut(target, " ")
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  "Cannot insert rows into <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("insert into %s: %w", table, err),
	}
}
