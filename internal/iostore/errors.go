package iostore

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// UnsupportedDriverError is returned for an unknown database driver.
func UnsupportedDriverError(driver string) error {
	msg := `Database driver <em>%s</em> is not supported

<em>How to fix:</em>
  Set database.driver to "postgres" or "sqlite" in
  <em>~/.config/entres/config.yaml</em>`
	return &gn.Error{
		Code: errcode.DBUnsupportedDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unsupported driver %q", driver),
	}
}

// EmptyStoreError is returned when the store has no schema.
func EmptyStoreError(desc string) error {
	msg := `Store <em>%s</em> has no tables

<em>How to fix:</em>
  Run <em>entres create</em> first`
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{desc},
		Err:  fmt.Errorf("store %s is empty", desc),
	}
}
