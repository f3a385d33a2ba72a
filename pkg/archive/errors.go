package archive

import "errors"

var (
	// ErrMissingID indicates a record without an ID cannot be archived.
	ErrMissingID = errors.New("record has no id")
)
