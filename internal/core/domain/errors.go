package domain

import "errors"

// Sentinel errors recognized by the API boundary. Services wrap them with
// context via fmt.Errorf("...: %w", ...); the HTTP error handler maps each
// to its status code and envelope message.
var (
	ErrValidation         = errors.New("validation failed")
	ErrClientNotFound     = errors.New("client not found")
	ErrRequestNotFound    = errors.New("request not found")
	ErrForbidden          = errors.New("forbidden")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
