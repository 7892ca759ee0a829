package domain

import "github.com/google/uuid"

// NewID returns a fresh identifier for a list entry. A non-empty prefix is
// joined with a dash, e.g. "milestone-3f1c...".
func NewID(prefix string) string {
	id := uuid.New().String()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}

// removeByID returns items without the first entry whose id matches, and
// whether anything was removed.
func removeByID[T any](items []T, id string, idOf func(T) string) ([]T, bool) {
	for i, it := range items {
		if idOf(it) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}
