package cascade

import "errors"

// Sentinel errors for the cascade package.
var (
	// ErrNilChild is returned when a registry is built with a nil delegate.
	ErrNilChild = errors.New("child delegate is nil")

	// ErrDuplicatePosition is returned when two children report the same index.
	ErrDuplicatePosition = errors.New("duplicate child position")

	// ErrSparsePosition is returned when child indexes are not dense from zero.
	ErrSparsePosition = errors.New("child positions are not dense")

	// ErrInvalidMode is returned when a propagation mode cannot be parsed.
	ErrInvalidMode = errors.New("invalid propagation mode")

	// ErrUnknownKind is returned when a notification kind cannot be parsed.
	ErrUnknownKind = errors.New("unknown notification kind")
)
