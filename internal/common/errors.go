// Package common defines shared constants and sentinel errors used across
// client and server layers of postbox. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorIntegrity     = errors.New("integrity violation")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Everything below ErrorValidation wraps it, so a
	// single errors.Is check covers the whole family.
	ErrorValidation      = errors.New("validation error")
	ErrorInvalidUsername = validation("invalid username: 3-32 letters, digits, '_' or '-' expected")
	ErrorEmptyPassword   = validation("password must not be empty")
	ErrorKeyTooLong      = validation("key material exceeds 4096 characters")
	ErrorContentsTooLong = validation("message contents exceed 4096 characters")
	ErrorSelfSend        = validation("cannot send message to self")
	ErrorInvalidCutoff   = validation(`invalid field "until": valid unix timestamp expected`)
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	msg string
}

func validation(msg string) error {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }

func (e *ValidationError) Unwrap() error { return ErrorValidation }
