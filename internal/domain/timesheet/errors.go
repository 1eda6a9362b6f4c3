package timesheet

import "errors"

var (
	// Mutation errors
	ErrForbidden        = errors.New("role is not allowed to perform this action for the target date")
	ErrSessionNotFound  = errors.New("session not found")
	ErrVersionConflict  = errors.New("month record was modified concurrently")
	ErrAlreadyClockedIn = errors.New("an open session already exists")
	ErrNotClockedIn     = errors.New("no open session to close")
)
