package text

import "errors"

// Errors returned by text operations.
var (
	// ErrOffsetOutOfRange indicates an offset outside [0, len(text)].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (end < start or out of bounds).
	ErrRangeInvalid = errors.New("invalid range")
)
