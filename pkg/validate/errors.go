package validate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
	"github.com/startuplens/entres/pkg/schema"
)

// LookupError is returned when a record cannot be looked up.
func LookupError(key schema.SourceKey, err error) error {
	msg := "Cannot look up entity of <em>%s</em>"
	return &gn.Error{
		Code: errcode.ValidationLookupError,
		Msg:  msg,
		Vars: []any{key.String()},
		Err:  fmt.Errorf("lookup of %s failed: %w", key.String(), err),
	}
}
