// Package common defines shared constants and sentinel errors used across
// the booking server and its client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorValidation     = errors.New("validation error")
	ErrPermissionDenied = errors.New("permission denied")

	// Booking rule violations.
	ErrOutsideWorkingHours = errors.New("outside working hours")
	ErrLunchBreak          = errors.New("lunch break")
	ErrSlotTaken           = errors.New("slot taken")
	ErrInvalidData         = errors.New("invalid data")
)
