package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures reported to the user.
type ErrorKind int

const (
	MissingField ErrorKind = iota + 1
	InvalidField
	SourceNotFound
	IOFailure
)

var (
	ErrMissingField   = errors.New("missing field")
	ErrInvalidField   = errors.New("invalid field")
	ErrSourceNotFound = errors.New("source not found")
	ErrIOFailure      = errors.New("io failure")
)

func (k ErrorKind) String() string {
	switch k {
	case MissingField:
		return "MissingField"
	case InvalidField:
		return "InvalidField"
	case SourceNotFound:
		return "SourceNotFound"
	case IOFailure:
		return "IOFailure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MissingField:
		return ErrMissingField
	case InvalidField:
		return ErrInvalidField
	case SourceNotFound:
		return ErrSourceNotFound
	case IOFailure:
		return ErrIOFailure
	}
	return nil
}

// FieldError reports a required field that is absent or a field whose raw
// text cannot be converted to its type.
type FieldError struct {
	Kind  ErrorKind
	Field string
	Value string
}

func (e *FieldError) Error() string {
	if e.Kind == MissingField {
		return fmt.Sprintf("missing required field %q", e.Field)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *FieldError) Unwrap() error { return e.Kind.sentinel() }

// PathError reports a file that could not be read from or written to.
// It matches both its kind sentinel and the underlying cause via errors.Is.
type PathError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *PathError) Error() string {
	what := "cannot read"
	if e.Kind == IOFailure {
		what = "cannot write"
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %q", what, e.Path)
	}
	return fmt.Sprintf("%s %q: %v", what, e.Path, e.Err)
}

func (e *PathError) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// RowError ties a validation failure to its 1-based data row (header excluded).
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
