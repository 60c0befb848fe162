package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultCondition = "New"
	DefaultQuantity  = 1
)

// Recognised column / object keys. Anything else in a source is ignored.
const (
	FieldTitle       = "title"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldCondition   = "condition"
	FieldQuantity    = "quantity"
	FieldCreatedAt   = "created_at"
)

// FieldNames lists the recognised keys in export order.
var FieldNames = []string{
	FieldTitle, FieldPrice, FieldDescription, FieldCategory,
	FieldCondition, FieldQuantity, FieldCreatedAt,
}

var validate = validator.New()

// Fields holds the raw text of one record keyed by lowercase field name.
// It never travels past the importer; BuildListing turns it into a Listing.
type Fields map[string]string

func (f Fields) get(key string) string {
	return strings.TrimSpace(f[key])
}

// text is get with inner whitespace collapsed, for single-line fields.
func (f Fields) text(key string) string {
	return strings.Join(strings.Fields(f[key]), " ")
}

// Listing is one marketplace item. It is not mutated after BuildListing.
type Listing struct {
	Title       string    `json:"title"       validate:"required"`
	Price       float64   `json:"price"       validate:"gte=0"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Quantity    int       `json:"quantity"    validate:"gte=0"`
	CreatedAt   time.Time `json:"created_at"`
}

// BuildListing validates raw fields and applies defaults.
//
// The title is checked first, then price, then quantity, so a row with
// several problems always reports the same one.
func BuildListing(fields Fields) (*Listing, error) {
	title := fields.text(FieldTitle)
	if title == "" {
		return nil, &FieldError{Kind: MissingField, Field: FieldTitle}
	}

	rawPrice := fields.get(FieldPrice)
	price, ok := parsePrice(rawPrice)
	if !ok {
		return nil, &FieldError{Kind: InvalidField, Field: FieldPrice, Value: rawPrice}
	}

	l := &Listing{
		Title:       title,
		Price:       price,
		Description: fields.get(FieldDescription),
		Category:    fields.text(FieldCategory),
		Condition:   fields.text(FieldCondition),
		Quantity:    DefaultQuantity,
		CreatedAt:   time.Now(),
	}
	if l.Condition == "" {
		l.Condition = DefaultCondition
	}

	if raw := fields.get(FieldQuantity); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &FieldError{Kind: InvalidField, Field: FieldQuantity, Value: raw}
		}
		l.Quantity = qty
	}

	if raw := fields.get(FieldCreatedAt); raw != "" {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, &FieldError{Kind: InvalidField, Field: FieldCreatedAt, Value: raw}
		}
		l.CreatedAt = ts
	}

	if err := validate.Struct(l); err != nil {
		return nil, constraintError(err, fields)
	}
	return l, nil
}

// NewListing builds a listing from the discrete values given on the command
// line. Category, condition and quantity take their defaults.
func NewListing(title, price, description string) (*Listing, error) {
	return BuildListing(Fields{
		FieldTitle:       title,
		FieldPrice:       price,
		FieldDescription: description,
	})
}

// Value is the listing's contribution to the inventory total.
func (l *Listing) Value() float64 {
	return l.Price * float64(l.Quantity)
}

func (l *Listing) String() string {
	return fmt.Sprintf("%s - $%.2f (%s)", l.Title, l.Price, l.Condition)
}

// parsePrice accepts plain decimals plus a leading "$" and thousands
// separators, e.g. "$1,200.50". Negative values are left for the validator.
func parsePrice(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.TrimPrefix(raw, "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func constraintError(err error, fields Fields) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("models: validate listing: %w", err)
	}
	name := strings.ToLower(verrs[0].Field())
	if verrs[0].Tag() == "required" {
		return &FieldError{Kind: MissingField, Field: name}
	}
	return &FieldError{Kind: InvalidField, Field: name, Value: fields.get(name)}
}
