package codec

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedDocument = errors.New("codec: malformed document")
	ErrMalformedBoolish  = errors.New("codec: malformed boolish value")
	ErrInvalidDateFormat = errors.New("codec: invalid date format")
)

// DocumentError reports a structural violation: wrong token type for a field,
// a non-object where an object is required, or unparsable JSON.
type DocumentError struct {
	Field  string
	Reason string
	Err    error
}

func (e *DocumentError) Error() string {
	msg := ErrMalformedDocument.Error()
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *DocumentError) Is(target error) bool {
	return target == ErrMalformedDocument
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// BoolishError reports a wire value in boolish position that is neither a
// scalar boolean, an integer, a string, nor null.
type BoolishError struct {
	Field string
	Raw   string
}

func (e *BoolishError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: field %q: %s", ErrMalformedBoolish, e.Field, e.Raw)
	}
	return fmt.Sprintf("%v: %s", ErrMalformedBoolish, e.Raw)
}

func (e *BoolishError) Is(target error) bool {
	return target == ErrMalformedBoolish
}

// DateFormatError reports a date that is not a YYYY-MM-DD calendar date.
type DateFormatError struct {
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("%v: %s", ErrInvalidDateFormat, e.Value)
}

func (e *DateFormatError) Is(target error) bool {
	return target == ErrInvalidDateFormat
}

func malformed(field, reason string, err error) error {
	return &DocumentError{Field: field, Reason: reason, Err: err}
}
