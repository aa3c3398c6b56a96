package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used throughout the application.
// Handlers translate these to HTTP status codes in a single place.
var (
	ErrNotFound = errors.New("not found")

	// ErrDebugDisabled is returned by the debug tooling outside the
	// allow-listed environments. It matches ErrNotFound so callers see a 404.
	ErrDebugDisabled = fmt.Errorf("debug tools disabled in this environment: %w", ErrNotFound)

	// ErrUserGone means a user row vanished between lookup and update.
	// It does not match ErrNotFound.
	ErrUserGone = errors.New("user no longer exists")

	ErrInvalidQuestionKey = errors.New("question key must not be empty")
	ErrInvalidUserGUID    = errors.New("user guid must not be empty")
)
