package domain

import "errors"

var (
	// ErrNotFound indicates that a referenced record does not exist or is not
	// owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates a missing or malformed required field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict indicates a uniqueness violation, such as a duplicate email.
	ErrConflict = errors.New("conflict")
)
