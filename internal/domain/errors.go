package domain

import "errors"

var (
	// ErrInvalidCoordinates marks client input that cannot be planned.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrSpatialStoreUnavailable marks a spatial store that could not be queried.
	// No option can be grounded without it, so planning fails as a service error.
	ErrSpatialStoreUnavailable = errors.New("spatial store unavailable")
)
