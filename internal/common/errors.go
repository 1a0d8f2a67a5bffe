// Package common defines shared constants and sentinel errors used across
// the layers of the credentialing portal. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorPermissionDenied = errors.New("permission denied")

	// Request validation errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
