package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/default.yaml
var defaultDataset []byte

// Loader loads and parses dataset files.
type Loader struct{}

// NewLoader creates a new dataset loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFromFile loads and validates a dataset from a YAML or JSON file.
// File errors are wrapped with context (use os.IsNotExist to check for missing file).
func (l *Loader) LoadFromFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}

	ds, err := l.LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", path, err)
	}

	return ds, nil
}

// LoadFromBytes parses and validates a dataset from raw YAML or JSON bytes.
// Empty data returns ErrConfigEmpty. Unknown fields are rejected so typos in
// hand-edited price tables surface as *yaml.TypeError.
func (l *Loader) LoadFromBytes(data []byte) (*Dataset, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrConfigEmpty
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrConfigEmpty
		}
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}

	if err := NewValidator().Validate(&ds); err != nil {
		return nil, err
	}

	return &ds, nil
}

// LoadDefault returns the dataset compiled into the binary.
func (l *Loader) LoadDefault() (*Dataset, error) {
	ds, err := l.LoadFromBytes(defaultDataset)
	if err != nil {
		return nil, fmt.Errorf("loading built-in dataset: %w", err)
	}
	return ds, nil
}

// Load reads path, or the built-in dataset when path is empty.
func (l *Loader) Load(path string) (*Dataset, error) {
	if path == "" {
		return l.LoadDefault()
	}
	return l.LoadFromFile(path)
}
