package invoice

import (
	"errors"
	"fmt"
)

// Common invoice retrieval errors
var (
	// ErrRequestFailed is returned when the HTTP request could not be completed
	// (DNS, connection refused, timeout, canceled context).
	ErrRequestFailed = errors.New("invoice request failed")

	// ErrUnexpectedStatus is returned when the endpoint answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrMalformedBody is returned when the response body is not a JSON object.
	ErrMalformedBody = errors.New("malformed response body")

	// ErrMissingListing is returned when the response lacks the invoice array field.
	ErrMissingListing = errors.New("response is missing the invoice listing")

	// ErrUnparseableDate is returned when a due date is not in a recognized format.
	ErrUnparseableDate = errors.New("unparseable date")
)

// NetworkError reports a failed request or a non-2xx response for one category.
type NetworkError struct {
	// Op is the operation that failed (e.g., "FetchDrafts").
	Op string

	// Category is the status category being fetched.
	Category Category

	// StatusCode is the HTTP status when a response arrived, zero otherwise.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("invoice: %s failed for %s (status %d): %v", e.Op, e.Category, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("invoice: %s failed for %s: %v", e.Op, e.Category, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *NetworkError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewNetworkError creates a NetworkError for the given operation and category.
func NewNetworkError(op string, category Category, statusCode int, err error) *NetworkError {
	return &NetworkError{
		Op:         op,
		Category:   category,
		StatusCode: statusCode,
		Err:        err,
	}
}

// SchemaError reports a response whose shape does not match the invoice listing.
type SchemaError struct {
	Op       string
	Category Category

	// Field names the missing or mistyped field, if known.
	Field string

	Err error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invoice: %s returned an invalid %s payload: field %q: %v", e.Op, e.Category, e.Field, e.Err)
	}
	return fmt.Sprintf("invoice: %s returned an invalid %s payload: %v", e.Op, e.Category, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *SchemaError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewSchemaError creates a SchemaError.
func NewSchemaError(op string, category Category, field string, err error) *SchemaError {
	return &SchemaError{
		Op:       op,
		Category: category,
		Field:    field,
		Err:      err,
	}
}

// FormatError reports a value that cannot be turned into display text.
type FormatError struct {
	Kind  string // "date" or "amount"
	Value string
	Err   error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format %s %q: %v", e.Kind, e.Value, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// NewFormatError creates a FormatError.
func NewFormatError(kind, value string, err error) *FormatError {
	return &FormatError{
		Kind:  kind,
		Value: value,
		Err:   err,
	}
}
