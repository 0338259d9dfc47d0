package sim

import "errors"

var (
	// ErrInvalidMatrix is returned for malformed transition count or rate matrices.
	ErrInvalidMatrix = errors.New("invalid transition matrix")

	// ErrInvalidParameters is returned when a parameter set or cohort is misconfigured.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrInvariant signals a simulation logic bug (e.g. an update after absorption).
	// A run that hits it is aborted.
	ErrInvariant = errors.New("simulation invariant violated")
)
