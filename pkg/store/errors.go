package store

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/startuplens/entres/pkg/schema"
)

// MergeError is returned when a merge transaction fails. Nothing is
// changed in the store in this case.
func MergeError(keepID, mergeID string, err error) error {
	msg := "Cannot merge entity <em>%s</em> into <em>%s</em>"
	vars := []any{mergeID, keepID}
	return &gn.Error{
		Code: errcode.MergeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"merge of %s into %s failed: %w", mergeID, keepID, err,
		),
	}
}

// LinkExistsError is returned when a source record is linked already.
func LinkExistsError(key schema.SourceKey) error {
	msg := "Record <em>%s</em> is already linked"
	vars := []any{key.String()}
	return &gn.Error{
		Code: errcode.LinkExistsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("link for %s exists", key.String()),
	}
}

// InvalidLinkError is returned for unknown match methods or confidence
// outside of 0-100 range.
func InvalidLinkError(method schema.MatchMethod, confidence int) error {
	msg := "Invalid link: method <em>%s</em>, confidence <em>%d</em>"
	vars := []any{method, confidence}
	return &gn.Error{
		Code: errcode.InvalidLinkError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"invalid link method '%s' or confidence %d", method, confidence,
		),
	}
}
