// Package storage loads the external inputs of a simulation: JSON Schema
// files describing collection documents, and scenario files describing a
// deployment plus the queries to price against it.
package storage

import (
	"os"

	"github.com/pkg/errors"

	"github.com/leengari/shardsim/internal/schema"
)

// LoadSchema reads and decodes one JSON Schema file.
func LoadSchema(path string) (*schema.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading schema %s", path)
	}
	node, err := schema.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding schema %s", path)
	}
	return node, nil
}
