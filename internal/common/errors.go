// Package common defines shared constants and sentinel errors used across
// the Dishcovery client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrUnauthenticated    = errors.New("not authenticated")

	// Protocol errors: a response arrived but violates the expected shape
	// (wrong content type, missing required field).
	ErrInvalidServerResponse = errors.New("invalid server response")

	// Resource errors.
	ErrNotFound = errors.New("not found")
)
