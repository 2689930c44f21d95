package sync

import "errors"

var (
	// ErrAlreadyExecuted is returned when a one-shot pull instance is
	// invoked a second time. A pull object models a single sync attempt;
	// callers build a fresh instance per attempt.
	ErrAlreadyExecuted = errors.New("pull already executed")

	// ErrUnknownResource is returned when an operation names a resource
	// type missing from the registry.
	ErrUnknownResource = errors.New("unknown resource type")
)
