package metadata

import "errors"

var (
	// ErrInvalidDocument: numbering plan document could not be compiled.
	ErrInvalidDocument = errors.New("invalid numbering plan document")

	// ErrDuplicateRegion: the same region appears twice in one document.
	ErrDuplicateRegion = errors.New("duplicate region in numbering plan")
)
