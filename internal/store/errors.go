package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches every *NotFoundError via errors.Is.
	ErrNotFound = errors.New("record not found")
)

// ValidationError rejects a write because of a malformed or missing field.
// A rejected write leaves the store unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an update or lookup of a record that does not exist.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Collection, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(collection string, id uint) error {
	return &NotFoundError{Collection: collection, Key: fmt.Sprintf("%d", id)}
}
