package domain

import "errors"

// Error kinds surfaced by the simulation core. Callers discriminate with
// errors.Is; everything is local and recoverable, nothing is fatal.
var (
	// ErrInvalidConfiguration covers malformed scenarios and non-positive
	// iteration counts. Raised before any simulation work begins.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput covers misuse of internal components, such as
	// summarizing an empty results slice.
	ErrInvalidInput = errors.New("invalid input")
)
