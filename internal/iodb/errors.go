package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string,
	port int,
	database, user string,
	err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>
  3. Check your configuration file:
     <em>~/.config/entres/config.yaml</em>
  4. Or use the SQLite store:
     <em>ENTRES_DATABASE_DRIVER=sqlite</em>`

	vars := []any{host, port, host, user}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Could not verify database state",
		Err:  fmt.Errorf("failed to check database tables: %w", err),
	}
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot get the list of tables",
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError is returned when table names cannot be read.
func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read the list of tables",
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// TransactionError is returned when a transaction cannot begin or
// commit.
func TransactionError(err error) error {
	return &gn.Error{
		Code: errcode.DBTransactionError,
		Msg:  "Database transaction failed",
		Err:  fmt.Errorf("transaction: %w", err),
	}
}

// QueryError is returned when a store operation fails.
func QueryError(op string, err error) error {
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  "Database query failed: <em>%s</em>",
		Vars: []any{op},
		Err:  fmt.Errorf("%s: %w", op, err),
	}
}

// InsertError is returned when a multi-row insert fails.
func InsertError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  "Cannot insert rows into <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("insert into %s: %w", table, err),
	}
}
