package script

import "errors"

var (
	// ErrClosed is returned when a closed delegate is used.
	ErrClosed = errors.New("script delegate is closed")

	// ErrNoHandlers is returned when a script defines no notification functions.
	ErrNoHandlers = errors.New("script defines no notification functions")
)
