// Package common defines shared constants and sentinel errors used across
// the server and the CLI client. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorValidation   = errors.New("validation error")
	ErrorUnauthorized = errors.New("invalid credentials")

	// Authorization gate errors.
	ErrMissingToken = errors.New("no token")
	ErrInvalidToken = errors.New("invalid token")

	// Login throttling.
	ErrTooManyRequests = errors.New("too many requests")
)
