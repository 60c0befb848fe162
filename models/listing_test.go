package models

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListingDefaults(t *testing.T) {
	l, err := BuildListing(Fields{"title": "Vintage Watch", "price": "299.99"})
	require.NoError(t, err)

	assert.Equal(t, "Vintage Watch", l.Title)
	assert.Equal(t, 299.99, l.Price)
	assert.Equal(t, "", l.Description)
	assert.Equal(t, "", l.Category)
	assert.Equal(t, DefaultCondition, l.Condition)
	assert.Equal(t, DefaultQuantity, l.Quantity)
	assert.False(t, l.CreatedAt.IsZero())
}

func TestBuildListingEmptyOptionalsUseDefaults(t *testing.T) {
	l, err := BuildListing(Fields{
		"title": "Lamp", "price": "10", "condition": "  ", "quantity": "",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", l.Condition)
	assert.Equal(t, 1, l.Quantity)
}

func TestBuildListingAllFields(t *testing.T) {
	l, err := BuildListing(Fields{
		"title":       " Camera ",
		"price":       "$1,200.50",
		"description": "Mirrorless body",
		"category":    "Electronics",
		"condition":   "Used",
		"quantity":    "3",
		"created_at":  "2024-05-01T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "Camera", l.Title)
	assert.Equal(t, 1200.50, l.Price)
	assert.Equal(t, "Used", l.Condition)
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), l.CreatedAt)
	assert.InDelta(t, 3601.50, l.Value(), 1e-9)
}

func TestBuildListingErrors(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		kind   ErrorKind
		field  string
		value  string
	}{
		{"no title", Fields{"price": "1"}, MissingField, "title", ""},
		{"blank title", Fields{"title": "   ", "price": "1"}, MissingField, "title", ""},
		{"title checked before price", Fields{"price": "abc"}, MissingField, "title", ""},
		{"no price", Fields{"title": "Broken Item"}, InvalidField, "price", ""},
		{"text price", Fields{"title": "A", "price": "free"}, InvalidField, "price", "free"},
		{"negative price", Fields{"title": "A", "price": "-5"}, InvalidField, "price", "-5"},
		{"nan price", Fields{"title": "A", "price": "NaN"}, InvalidField, "price", "NaN"},
		{"inf price", Fields{"title": "A", "price": "Inf"}, InvalidField, "price", "Inf"},
		{"text quantity", Fields{"title": "A", "price": "1", "quantity": "two"}, InvalidField, "quantity", "two"},
		{"fractional quantity", Fields{"title": "A", "price": "1", "quantity": "1.5"}, InvalidField, "quantity", "1.5"},
		{"negative quantity", Fields{"title": "A", "price": "1", "quantity": "-1"}, InvalidField, "quantity", "-1"},
		{"bad timestamp", Fields{"title": "A", "price": "1", "created_at": "yesterday"}, InvalidField, "created_at", "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := BuildListing(tt.fields)
			require.Error(t, err)
			assert.Nil(t, l)

			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.field, fe.Field)
			assert.Equal(t, tt.value, fe.Value)
		})
	}
}

func TestBuildListingZeroValuesAllowed(t *testing.T) {
	l, err := BuildListing(Fields{"title": "Giveaway", "price": "0", "quantity": "0"})
	require.NoError(t, err)
	assert.Zero(t, l.Price)
	assert.Zero(t, l.Quantity)
	assert.Zero(t, l.Value())
}

func TestBuildListingCollapsesWhitespace(t *testing.T) {
	l, err := BuildListing(Fields{
		"title":       "  Vintage \t Watch ",
		"price":       " 10 ",
		"description": "  line one\n  line two  ",
		"category":    "Home   Decor",
		"condition":   " Like  new ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Vintage Watch", l.Title)
	assert.Equal(t, "line one\n  line two", l.Description)
	assert.Equal(t, "Home Decor", l.Category)
	assert.Equal(t, "Like new", l.Condition)
}

func TestNewListingMatchesBuiltShape(t *testing.T) {
	added, err := NewListing("Vintage  Watch", "299.99", "Beautiful vintage timepiece")
	require.NoError(t, err)

	imported, err := BuildListing(Fields{
		"title":       "Vintage Watch",
		"price":       "299.99",
		"description": "Beautiful vintage timepiece",
		"category":    "",
		"condition":   "",
		"quantity":    "",
	})
	require.NoError(t, err)

	added.CreatedAt, imported.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, imported, added)
}

func TestNewListingRejectsBadPrice(t *testing.T) {
	_, err := NewListing("Vintage Watch", "cheap", "")
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestListingString(t *testing.T) {
	l := &Listing{Title: "Vintage Watch", Price: 299.99, Condition: "New"}
	assert.Equal(t, "Vintage Watch - $299.99 (New)", l.String())
}

func TestErrorSentinels(t *testing.T) {
	missing := &FieldError{Kind: MissingField, Field: "title"}
	assert.ErrorIs(t, missing, ErrMissingField)
	assert.NotErrorIs(t, missing, ErrInvalidField)
	assert.Equal(t, `missing required field "title"`, missing.Error())

	row := &RowError{Row: 2, Err: &FieldError{Kind: InvalidField, Field: "price"}}
	assert.ErrorIs(t, row, ErrInvalidField)
	assert.Equal(t, `row 2: invalid price ""`, row.Error())

	notFound := &PathError{Kind: SourceNotFound, Path: "in.csv", Err: fs.ErrNotExist}
	assert.ErrorIs(t, notFound, ErrSourceNotFound)
	assert.ErrorIs(t, notFound, fs.ErrNotExist)
	assert.Contains(t, notFound.Error(), `"in.csv"`)

	ioErr := &PathError{Kind: IOFailure, Path: "out.json", Err: errors.New("disk full")}
	assert.ErrorIs(t, ioErr, ErrIOFailure)
	assert.Equal(t, `cannot write "out.json": disk full`, ioErr.Error())
}
