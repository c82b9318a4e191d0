package dedupe

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/startuplens/entres/pkg/errcode"
)

var (
	errEmptyPopulation = errors.New("empty population")
	errNoModel         = errors.New("model is nil")
)

// ModelTrainError is returned when a model cannot be trained.
func ModelTrainError(population int, err error) error {
	msg := "Cannot train matching model on <em>%d</em> entities"
	vars := []any{population}
	return &gn.Error{
		Code: errcode.ModelTrainError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot train model: %w", err),
	}
}

// ModelCandidatesError is returned when candidate search fails.
func ModelCandidatesError(err error) error {
	return &gn.Error{
		Code: errcode.ModelCandidatesError,
		Msg:  "Cannot find duplicate candidates",
		Err:  fmt.Errorf("cannot find candidates: %w", err),
	}
}
