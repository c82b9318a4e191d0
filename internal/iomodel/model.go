// Package iomodel persists trained dedupe models as gob files.
package iomodel

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/startuplens/entres/pkg/dedupe"
)

// Load reads a model from path. The boolean is false if the file does
// not exist. A file that cannot be decoded is an error.
func Load(path string) (*dedupe.Model, bool, error) {
	bs, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, ModelLoadError(path, err)
	}

	var res dedupe.Model
	enc := gnfmt.GNgob{}
	if err = enc.Decode(bs, &res); err != nil {
		return nil, false, ModelLoadError(path, err)
	}
	if res.Population == 0 || res.IDF == nil {
		return nil, false, ModelLoadError(path, errEmptyModel)
	}
	return &res, true, nil
}

// Save writes the model to path, creating missing directories.
func Save(path string, m *dedupe.Model) error {
	if err := gnsys.MakeDir(filepath.Dir(path)); err != nil {
		return ModelSaveError(path, err)
	}

	enc := gnfmt.GNgob{}
	bs, err := enc.Encode(m)
	if err != nil {
		return ModelSaveError(path, err)
	}

	if err = os.WriteFile(path, bs, 0644); err != nil {
		return ModelSaveError(path, err)
	}
	return nil
}

// LoadOrTrain returns the model stored at path if it was trained on
// the same population as recs. If path is empty, there is no file yet,
// or the stored model is stale, the model is trained on recs and saved
// when path is given.
func LoadOrTrain(
	path string,
	mt dedupe.Matcher,
	recs []dedupe.Record,
) (*dedupe.Model, error) {
	if path != "" {
		m, ok, err := Load(path)
		if err != nil {
			return nil, err
		}
		fp := dedupe.Fingerprint(recs)
		switch {
		case ok && m.Fingerprint == fp:
			slog.Info("Loaded matching model",
				"path", path, "population", m.Population)
			return m, nil
		case ok:
			slog.Warn("Matching model was trained on another population, retraining",
				"path", path,
				"model_population", m.Population,
				"population", len(recs),
			)
		}
	}

	m, err := mt.Train(recs)
	if err != nil {
		return nil, err
	}
	slog.Info("Trained matching model",
		"population", m.Population, "tokens", len(m.IDF))

	if path == "" {
		return m, nil
	}
	if err = Save(path, m); err != nil {
		return nil, err
	}
	slog.Info("Saved matching model", "path", path)
	return m, nil
}
