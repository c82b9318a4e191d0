package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// OpenLogError means entres.log could not be opened for appending.
func OpenLogError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.OpenLogError,
		Msg:  "Cannot open resolution log <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: open log %s: %w", fn, path, err),
	}
}
