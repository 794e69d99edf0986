package domain

import "errors"

// Error taxonomy. Services wrap these with fmt.Errorf("...: %w", ErrX) and the
// API error handler dispatches on them with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrUnauthenticated    = errors.New("invalid token, log in again")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConfiguration      = errors.New("configuration error")
	ErrUnavailable        = errors.New("store unavailable")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)
