// Package common defines shared constants and sentinel errors used across
// service and transport layers. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("user already exists with this email")

	// Service-level errors.
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrorValidation       = errors.New("validation failed")

	// ErrCurrentPasswordIncorrect is the password-change flavour of
	// ErrInvalidCredentials.
	ErrCurrentPasswordIncorrect = fmt.Errorf("current password is incorrect: %w", ErrInvalidCredentials)

	// Token errors (malformed, bad signature, expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
