package schema

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// InvalidRecordError is returned for source records with missing
// required fields.
func InvalidRecordError(key SourceKey, missing []string) error {
	fields := strings.Join(missing, ", ")
	msg := "Record <em>%s</em> misses required fields: %s"
	vars := []any{key.String(), fields}
	return &gn.Error{
		Code: errcode.InvalidRecordError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"invalid record %s, missing %s", key.String(), fields,
		),
	}
}
