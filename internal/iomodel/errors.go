package iomodel

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

var errEmptyModel = errors.New("model has no population")

// ModelLoadError is returned when a stored model cannot be read.
func ModelLoadError(path string, err error) error {
	msg := `Cannot load matching model from <em>%s</em>

<em>How to fix:</em>
  1. Remove the file to retrain the model
  2. Point resolve.model_path to another location`
	return &gn.Error{
		Code: errcode.ModelLoadError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot load model %s: %w", path, err),
	}
}

// ModelSaveError is returned when a model cannot be written.
func ModelSaveError(path string, err error) error {
	msg := "Cannot save matching model to <em>%s</em>"
	return &gn.Error{
		Code: errcode.ModelSaveError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot save model %s: %w", path, err),
	}
}
