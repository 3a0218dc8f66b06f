package transport

import "errors"

// Error taxonomy for the transport kernel (spec.md §7).
var (
	// ErrInvalidInput signals a malformed configuration or grid.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResourceExhausted signals an allocation failure for a transient
	// array or accumulator grid; fatal to the current run.
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrInvariantViolation signals that a photon's terminal state failed
	// an end-of-run invariant check (non-finite or non-unit direction,
	// non-positive or NaN weight). spec.md §7 calls these "persistent
	// invariant violations ... detected at end-of-run and flagged".
	ErrInvariantViolation = errors.New("invariant violation")
)
