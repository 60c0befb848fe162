package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"xlister/models"
)

// JSONWriter exports listings as a single indented JSON array.
type JSONWriter struct {
	path string
	file *os.File
}

// NewJSONWriter creates (or truncates) the file at path. Intermediate
// directories are created automatically.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{path: path, file: f}, nil
}

// Write encodes listings as an array; a nil or empty slice becomes [].
func (j *JSONWriter) Write(listings []*models.Listing) error {
	if listings == nil {
		listings = []*models.Listing{}
	}

	enc := json.NewEncoder(j.file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return ioFailure(j.path, fmt.Errorf("json: encode: %w", err))
	}
	return nil
}

// Close closes the underlying file.
func (j *JSONWriter) Close() error {
	if err := j.file.Close(); err != nil {
		return ioFailure(j.path, fmt.Errorf("json: close: %w", err))
	}
	return nil
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, ioFailure(path, fmt.Errorf("create output dir: %w", err))
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, ioFailure(path, fmt.Errorf("create file: %w", err))
	}
	return f, nil
}

func ioFailure(path string, err error) error {
	return &models.PathError{Kind: models.IOFailure, Path: path, Err: err}
}
