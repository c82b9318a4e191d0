// Package ioinput reads source records and ground truth pairs from YAML
// or JSON files.
package ioinput

import (
	"os"

	"github.com/startuplens/entres/pkg/schema"
	"github.com/startuplens/entres/pkg/validate"
	"gopkg.in/yaml.v3"
)

// LoadRecords reads records from path. The file either has a top-level
// "records" list or is the list itself. Records are not validated here.
func LoadRecords(path string) ([]schema.SourceRecord, error) {
	return load[schema.SourceRecord](path, "records")
}

// LoadGroundTruth reads labeled pairs from path. The file either has a
// top-level "pairs" list or is the list itself.
func LoadGroundTruth(path string) ([]validate.Pair, error) {
	return load[validate.Pair](path, "pairs")
}

// load decodes a YAML or JSON list found either at the document root or
// under key. Other top-level keys are ignored and an empty file gives no
// items.
func load[T any](path, key string) ([]T, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, InputReadError(path, err)
	}

	var doc yaml.Node
	if err = yaml.Unmarshal(bs, &doc); err != nil {
		return nil, InputParseError(path, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	list := &doc
	if !isSequence(&doc) {
		var top map[string]yaml.Node
		if err = doc.Decode(&top); err != nil {
			return nil, InputParseError(path, err)
		}
		node, ok := top[key]
		if !ok {
			return nil, nil
		}
		list = &node
	}

	var res []T
	if err = list.Decode(&res); err != nil {
		return nil, InputParseError(path, err)
	}
	return res, nil
}

func isSequence(doc *yaml.Node) bool {
	return doc.Kind == yaml.DocumentNode &&
		len(doc.Content) > 0 &&
		doc.Content[0].Kind == yaml.SequenceNode
}
