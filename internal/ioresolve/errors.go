package ioresolve

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/startuplens/entres/pkg/schema"
)

// ResolveRecordError is returned when a valid record cannot be resolved.
func ResolveRecordError(key schema.SourceKey, err error) error {
	msg := "Cannot resolve record <em>%s</em>"
	return &gn.Error{
		Code: errcode.ResolveRecordError,
		Msg:  msg,
		Vars: []any{key.String()},
		Err:  fmt.Errorf("cannot resolve %s: %w", key.String(), err),
	}
}

// AllRecordsFailedError is returned when not a single record of a batch
// was resolved.
func AllRecordsFailedError(failed int) error {
	msg := `All <em>%d</em> records failed to resolve

<em>How to fix:</em>
  1. Check the log file for the first error
  2. Check that the store schema exists (entres create)`
	return &gn.Error{
		Code: errcode.ResolveAllRecordsFailedError,
		Msg:  msg,
		Vars: []any{failed},
		Err:  fmt.Errorf("all %d records failed", failed),
	}
}

// ResolveBulkError is returned when a bulk creation group cannot be
// committed. Groups committed earlier stay in the store.
func ResolveBulkError(committed int, err error) error {
	msg := "Bulk creation stopped after <em>%d</em> committed entities"
	return &gn.Error{
		Code: errcode.ResolveBulkError,
		Msg:  msg,
		Vars: []any{committed},
		Err:  fmt.Errorf("bulk creation failed: %w", err),
	}
}

// LinkConflictError is returned when bulk creation inserts fewer links
// than entities because some source keys were linked meanwhile.
func LinkConflictError(want, got int) error {
	msg := `Only <em>%d</em> of <em>%d</em> links were inserted

<em>Possible causes:</em>
  Another process resolves the same records

<em>How to fix:</em>
  Rerun the command, linked records are skipped`
	return &gn.Error{
		Code: errcode.LinkExistsError,
		Msg:  msg,
		Vars: []any{got, want},
		Err:  fmt.Errorf("inserted %d of %d links", got, want),
	}
}

// ResolveCancelledError is returned when resolution is interrupted.
func ResolveCancelledError(err error) error {
	return &gn.Error{
		Code: errcode.ResolveCancelledError,
		Msg:  "Resolution was cancelled",
		Err:  fmt.Errorf("resolution cancelled: %w", err),
	}
}
