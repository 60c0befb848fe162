package services

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"xlister/models"
	"xlister/utils"
)

// ImportResult holds the accepted listings in row order and one error per
// rejected row.
type ImportResult struct {
	Listings []*models.Listing
	Errors   []*models.RowError
}

// Rows is the number of data rows seen.
func (r *ImportResult) Rows() int {
	return len(r.Listings) + len(r.Errors)
}

// Summary reports the counts followed by every row failure on one line.
func (r *ImportResult) Summary() string {
	s := fmt.Sprintf("%d rows imported, %d rows failed", len(r.Listings), len(r.Errors))
	if len(r.Errors) == 0 {
		return s
	}
	reasons := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		reasons[i] = e.Error()
	}
	return s + ": " + strings.Join(reasons, "; ")
}

// Importer turns tabular or exported JSON sources into validated listings.
// A bad row is recorded and skipped; it never aborts the run.
type Importer struct {
	logger *utils.Logger
}

// NewImporter creates an Importer with the given logger.
func NewImporter(logger *utils.Logger) *Importer {
	return &Importer{logger: logger}
}

// ImportFile reads path as JSON when it has a .json extension and as CSV
// otherwise. A missing or unreadable file yields a SourceNotFound PathError.
func (im *Importer) ImportFile(path string) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &models.PathError{Kind: models.SourceNotFound, Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &models.PathError{Kind: models.SourceNotFound, Path: path, Err: errors.New("is a directory")}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &models.PathError{Kind: models.SourceNotFound, Path: path, Err: err}
	}
	defer f.Close()

	var result *ImportResult
	if strings.EqualFold(filepath.Ext(path), ".json") {
		result, err = im.ImportJSON(f)
	} else {
		result, err = im.ImportCSV(f)
	}
	if err != nil {
		return nil, fmt.Errorf("import %q: %w", path, err)
	}

	im.logger.Info("[importer] %s: %d rows imported, %d rows failed",
		path, len(result.Listings), len(result.Errors))
	return result, nil
}

// ImportCSV reads a header row followed by data rows. Unknown columns are
// ignored and quoted fields may contain commas. Row numbers in errors count
// data rows from 1.
func (im *Importer) ImportCSV(r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	result := &ImportResult{}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}
	index := newHeaderIndex(header)

	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fmt.Errorf("csv: read row %d: %w", row, err)
			}
			im.reject(result, row, err)
			continue
		}
		im.collect(result, row, index.fields(record))
	}
	return result, nil
}

// ImportJSON reads the array-of-objects document written by the JSON
// exporter. Every element goes through the same validation as a CSV row;
// an element that is not an object is a row error. Only a document that is
// not an array fails the whole import.
func (im *Importer) ImportJSON(r io.Reader) (*ImportResult, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		if errors.Is(err, io.EOF) {
			return &ImportResult{}, nil
		}
		return nil, fmt.Errorf("json: decode: %w", err)
	}

	result := &ImportResult{}
	for i, raw := range elems {
		doc, err := decodeObject(raw)
		if err != nil {
			im.reject(result, i+1, err)
			continue
		}
		im.collect(result, i+1, jsonFields(doc))
	}
	return result, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("not a listing object: %s", raw)
	}
	return doc, nil
}

func (im *Importer) collect(result *ImportResult, row int, fields models.Fields) {
	l, err := models.BuildListing(fields)
	if err != nil {
		im.reject(result, row, err)
		return
	}
	result.Listings = append(result.Listings, l)
	im.logger.Debug("[importer] Row %d accepted: %s", row, l)
}

func (im *Importer) reject(result *ImportResult, row int, err error) {
	rowErr := &models.RowError{Row: row, Err: err}
	result.Errors = append(result.Errors, rowErr)
	im.logger.Warn("[importer] Skipping %v", rowErr)
}

// jsonFields renders the recognised keys of one JSON object back to text.
func jsonFields(doc map[string]any) models.Fields {
	h := make(map[string]string, len(doc))
	for key, v := range doc {
		name := normaliseHeader(key)
		switch v := v.(type) {
		case nil:
			continue
		case string:
			h[name] = v
		case json.Number:
			h[name] = v.String()
		case bool:
			h[name] = strconv.FormatBool(v)
		default:
			h[name] = fmt.Sprint(v)
		}
	}

	f := make(models.Fields, len(models.FieldNames))
	for _, name := range models.FieldNames {
		if v, ok := h[name]; ok {
			f[name] = v
		}
	}
	return f
}
