package core

import "errors"

// Common errors.
var (
	// ErrDuplicateID rejects an entity or relation whose id is already
	// present in the vocabulary.
	ErrDuplicateID = errors.New("id already exists")

	// ErrTagExists rejects a tag that is already present (value equality).
	ErrTagExists = errors.New("tag already exists")

	// ErrNotFound is returned by lookups against a missing record.
	ErrNotFound = errors.New("not found")
)

// FieldError describes one invalid form field. Key is the form-state
// key the error belongs to; Name is the property name shown to the
// user; Reason is the short inline message ("required", "must be a
// URI", ...).
type FieldError struct {
	Key    string
	Name   string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Name == "" {
		return e.Reason
	}
	return e.Name + ": " + e.Reason
}
