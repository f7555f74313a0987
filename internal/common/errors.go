// Package common defines sentinel errors shared by the time-tracking core
// and its terminal client. Callers should use errors.Is to match these
// values; concrete errors are wrapped with additional context.
package common

import "errors"

var (
	// Storage-level errors (I/O or serialization failures of the local store).
	ErrStorage = errors.New("storage error")

	// Business-rule errors.
	ErrDailyLimitExceeded = errors.New("daily clock-in limit exceeded")
	ErrNotFound           = errors.New("not found")
	ErrNoUser             = errors.New("no user profile")

	// Input errors.
	ErrFormat     = errors.New("invalid time format")
	ErrValidation = errors.New("validation error")
)
