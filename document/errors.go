package document

import "errors"

// Errors returned by document operations.
var (
	// ErrIndexOutOfRange indicates a node index outside the valid range.
	ErrIndexOutOfRange = errors.New("node index out of range")

	// ErrNodeNotFound indicates a node id that is not in the document.
	ErrNodeNotFound = errors.New("node not found")
)
