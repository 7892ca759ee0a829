package service

import "errors"

// ErrCorruptRecord is returned alongside the default record when a stored
// snapshot cannot be decoded. It is a notice, not a failure: callers keep
// working with the defaults.
var ErrCorruptRecord = errors.New("stored record is corrupt")

// ErrInvalidBackup is returned when a backup file cannot be parsed. Nothing
// is written when it occurs.
var ErrInvalidBackup = errors.New("invalid backup file")
