package display

import "errors"

var (
	// ErrUnknownFormat is returned for unrecognized format names.
	ErrUnknownFormat = errors.New("unknown output format")
)
