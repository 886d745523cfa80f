package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when an operation addresses a record that does
// not exist. It is an expected outcome of normal operation; boundaries
// translate it to a 404-equivalent. Lookups by natural key (username) set
// Key instead of ID.
type NotFoundError struct {
	Entity EntityType
	ID     int64
	Key    string
}

func (e NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ReferenceError is returned when a create or update names a parent id that
// does not exist. It is produced before any mutation commits, so no partial
// state is ever observable.
type ReferenceError struct {
	Entity EntityType // the entity being created or updated
	Field  string     // the foreign-key field that failed to resolve
	Parent EntityType // the kind the field must reference
	ID     int64      // the dangling id
}

func (e ReferenceError) Error() string {
	return fmt.Sprintf("%s.%s references missing %s %d", e.Entity, e.Field, e.Parent, e.ID)
}

// ValidationError is returned when input violates a structural invariant the
// core re-validates defensively (quantity >= 1, cost >= 0, confidence within
// [0,1], enum membership).
type ValidationError struct {
	Entity  EntityType
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s invalid: %s", e.Entity, e.Field, e.Message)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

// IsReference reports whether err is (or wraps) a ReferenceError.
func IsReference(err error) bool {
	var re ReferenceError
	return errors.As(err, &re)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
