package repository

import "errors"

var (
	// ErrUnknownKey is returned for a key outside the fixed namespace.
	ErrUnknownKey = errors.New("unknown storage key")

	// ErrQuotaExceeded is returned when a write would push the total stored
	// bytes past the configured limit. The previous value is kept.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)
