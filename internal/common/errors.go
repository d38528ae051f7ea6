// Package common defines shared constants and sentinel errors used across
// the PeopleHub server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorInvalidCredentials is returned for both an unknown email and a
	// wrong password.
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
