package mie

import "errors"

// Error taxonomy for the Mie precomputation engine (spec.md §7).
var (
	// ErrInvalidInput signals a malformed size parameter or refractive index.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnvalidated signals a size parameter outside the validated range
	// (x > 20000); the routine refuses to silently extrapolate.
	ErrUnvalidated = errors.New("unvalidated size parameter")

	// ErrConvergenceFailure signals the Lentz continued fraction failed to
	// converge within the iteration cap.
	ErrConvergenceFailure = errors.New("convergence failure")
)

// maxLentzIterations is the implementation-defined iteration cap of
// spec.md §7 ("recommended 10^5").
const maxLentzIterations = 100000

// maxSizeParameter is spec.md §4.B's validated upper bound on x.
const maxSizeParameter = 20000.0
