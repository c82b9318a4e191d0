package ioinput

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// InputReadError is returned when an input file cannot be read.
func InputReadError(path string, err error) error {
	msg := "Cannot read input file <em>%s</em>"
	return &gn.Error{
		Code: errcode.InputReadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// InputParseError is returned when an input file is not valid YAML or
// JSON of the expected shape.
func InputParseError(path string, err error) error {
	msg := `Cannot parse input file <em>%s</em>

<em>Expected format:</em>
  records:
    - name: Acme Corp
      country: US
      source: crm
      source_identifier: "42"`
	return &gn.Error{
		Code: errcode.InputParseError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot parse %s: %w", path, err),
	}
}
