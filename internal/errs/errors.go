package errs

import "errors"

// Sentinel errors for the tracking and persistence core. Callers match with
// errors.Is; details are attached by wrapping with fmt.Errorf("%w: ...").
var (
	// ErrInvalidState signals a session transition attempted from the wrong
	// state (start while active, stop while idle).
	ErrInvalidState = errors.New("invalid session state")

	// ErrValidation signals malformed input data: non-finite coordinates,
	// mpg <= 0 during cost calculation, negative distance or earnings.
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied signals that the position source is not authorized
	// to deliver fixes.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrPersistence signals a trip store or settings store failure.
	ErrPersistence = errors.New("persistence failure")
)
