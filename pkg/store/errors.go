package store

import "errors"

// Common errors returned by the store.
var (
	// ErrDuplicateName is returned when a user name is already taken.
	ErrDuplicateName = errors.New("user name already exists")

	// ErrUserNotFound is returned when no user matches the given identifier.
	ErrUserNotFound = errors.New("user not found")
)
