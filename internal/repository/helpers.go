package repository

import (
	"fmt"
	"time"
)

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func checkKey(k Key) error {
	if !k.Known() {
		return fmt.Errorf("%q: %w", string(k), ErrUnknownKey)
	}
	return nil
}
