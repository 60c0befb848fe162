package services

import (
	"strings"
	"unicode"

	"xlister/models"
)

// byteOrderMark is written by some spreadsheet exports in front of the header.
const byteOrderMark = "\ufeff"

// headerIndex maps a recognised column name to its position in a row.
type headerIndex map[string]int

func newHeaderIndex(header []string) headerIndex {
	recognised := make(map[string]struct{}, len(models.FieldNames))
	for _, name := range models.FieldNames {
		recognised[name] = struct{}{}
	}

	idx := make(headerIndex, len(header))
	for pos, col := range header {
		name := normaliseHeader(col)
		if _, ok := recognised[name]; !ok {
			continue
		}
		// first occurrence wins
		if _, dup := idx[name]; dup {
			continue
		}
		idx[name] = pos
	}
	return idx
}

// fields picks the recognised cells out of a row. Columns the row is too
// short to contain stay absent so their defaults apply.
func (h headerIndex) fields(row []string) models.Fields {
	f := make(models.Fields, len(h))
	for name, pos := range h {
		if pos < len(row) {
			f[name] = row[pos]
		}
	}
	return f
}

func normaliseHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, byteOrderMark)))
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
