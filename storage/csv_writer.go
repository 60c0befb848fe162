package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"xlister/models"
)

// CSVWriter exports listings in the same tabular layout the importer reads,
// so an export can be fed straight back to --import-csv.
type CSVWriter struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.FieldNames); err != nil {
		_ = f.Close()
		return nil, ioFailure(path, fmt.Errorf("csv: write header: %w", err))
	}

	return &CSVWriter{path: path, file: f, writer: w}, nil
}

// Write appends one row per listing.
func (c *CSVWriter) Write(listings []*models.Listing) error {
	for _, l := range listings {
		row := []string{
			l.Title,
			strconv.FormatFloat(l.Price, 'f', -1, 64),
			l.Description,
			l.Category,
			l.Condition,
			strconv.Itoa(l.Quantity),
			l.CreatedAt.Format(time.RFC3339Nano),
		}
		if err := c.writer.Write(row); err != nil {
			return ioFailure(c.path, fmt.Errorf("csv: write row: %w", err))
		}
	}

	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		return ioFailure(c.path, fmt.Errorf("csv: flush: %w", err))
	}
	return nil
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	flushErr := c.writer.Error()
	if err := c.file.Close(); err != nil {
		return ioFailure(c.path, fmt.Errorf("csv: close: %w", err))
	}
	if flushErr != nil {
		return ioFailure(c.path, fmt.Errorf("csv: flush: %w", flushErr))
	}
	return nil
}
