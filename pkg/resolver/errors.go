package resolver

import "errors"

var (
	// ErrPrecondition means the caller omitted a required identifier
	// component. Never retried, surfaced immediately.
	ErrPrecondition = errors.New("missing required identifier")

	// ErrTransport means the relay pool itself could not be used. Distinct
	// from a record simply not being found, which is a nil result with a
	// nil error.
	ErrTransport = errors.New("relay transport unavailable")
)
