// Package dataset loads chord datasets from disk and synthesizes demo data
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/chordflow/chord"
)

var (
	// ErrInvalidDataset marks structurally unusable input
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrUnsupportedFormat marks a file extension with no decoder
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)

// Load reads and validates a dataset, choosing the decoder by file extension
func Load(path string) (chord.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chord.Dataset{}, fmt.Errorf("reading dataset: %w", err)
	}
	ds, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return chord.Dataset{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return ds, nil
}

// Decode parses raw bytes in the format named by ext (".toml", ".yaml", ".yml", ".json")
func Decode(data []byte, ext string) (chord.Dataset, error) {
	var ds chord.Dataset
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &ds)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ds)
	case ".json":
		err = json.Unmarshal(data, &ds)
	default:
		return chord.Dataset{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return chord.Dataset{}, fmt.Errorf("parsing dataset: %w", err)
	}
	if err := Validate(ds); err != nil {
		return chord.Dataset{}, err
	}
	return ds, nil
}

// Validate enforces non-empty input, unique node IDs and resolvable link endpoints
func Validate(ds chord.Dataset) error {
	if len(ds.Nodes) == 0 {
		return fmt.Errorf("%w: no nodes", ErrInvalidDataset)
	}
	if len(ds.Links) == 0 {
		return fmt.Errorf("%w: no links", ErrInvalidDataset)
	}

	seen := make(map[string]bool, len(ds.Nodes))
	for i, n := range ds.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d has empty id", ErrInvalidDataset, i)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvalidDataset, n.ID)
		}
		seen[n.ID] = true
	}

	for i, l := range ds.Links {
		if !seen[l.Source] {
			return fmt.Errorf("%w: link %d source %q not found", ErrInvalidDataset, i, l.Source)
		}
		if !seen[l.Target] {
			return fmt.Errorf("%w: link %d target %q not found", ErrInvalidDataset, i, l.Target)
		}
		if l.Weight != nil && *l.Weight < 0 {
			return fmt.Errorf("%w: link %d has negative weight", ErrInvalidDataset, i)
		}
	}
	return nil
}
