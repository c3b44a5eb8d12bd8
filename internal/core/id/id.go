// Package id provides entity identifiers. Ids are UUIDv7: the leading
// timestamp bits keep index pages warm and make creation order sort
// naturally.
package id

import "github.com/google/uuid"

// ID identifies an entity.
type ID = uuid.UUID

// New generates a time-ordered id.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 fails only if the entropy source does; v4 keeps
		// uniqueness at the cost of ordering.
		return uuid.New()
	}
	return id
}

// Parse converts a string to an ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse converts a string to an ID, panicking on error. For
// constants and tests.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// Nil returns the zero id.
func Nil() ID {
	return uuid.Nil
}

// IsNil reports whether the id is the zero value.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
