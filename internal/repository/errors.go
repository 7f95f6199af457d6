package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist in the store.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the backing store connection is not
	// initialized or cannot be reached.
	ErrUnavailable = errors.New("store unavailable")

	// ErrPermissionDenied is returned when the store rejects an operation
	// under its access rules.
	ErrPermissionDenied = errors.New("permission denied")
)
