package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

// HomeDirError is returned when one of the entres config, cache, data or
// log directories cannot be made.
func HomeDirError(dir string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.HomeDirError,
		Msg:  "Cannot prepare entres directory <em>%s</em>",
		Vars: []any{dir},
		Err:  fmt.Errorf("from %s: entres directory %s: %w", fn, dir, err),
	}
}

// WriteConfigError is returned when the default config.yaml cannot be
// written.
func WriteConfigError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.WriteConfigError,
		Msg:  "Cannot write default entres config to <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: write default config %s: %w", fn, path, err),
	}
}

// ReadConfigError is returned when an existing config.yaml cannot be read
// or parsed.
func ReadConfigError(path string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ReadConfigError,
		Msg:  "Cannot load entres config <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: load config %s: %w", fn, path, err),
	}
}
