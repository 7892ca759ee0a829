package domain

import (
	"errors"
	"fmt"
)

// ErrItemNotFound is returned when a list operation references an unknown id.
var ErrItemNotFound = errors.New("item not found")

// ValidationError reports a rejected edit. The record it targeted is left
// unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field, what string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("please enter %s", what)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
