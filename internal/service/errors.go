package service

import "errors"

// Sentinel errors surfaced by services; handlers map them to HTTP
// responses. Credential mismatches collapse "no such email" and "wrong
// password" into one error so callers cannot enumerate accounts; revoked
// and superseded refresh tokens collapse the same way.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRefreshInvalid     = errors.New("invalid or expired refresh token")
	ErrRefreshRevoked     = errors.New("refresh token revoked")
)

// InternalError wraps a collaborator fault with a message that is safe to
// return to the caller. The underlying error is logged, never exposed.
type InternalError struct {
	Message string
	Err     error
}

func (e *InternalError) Error() string { return e.Message }

func (e *InternalError) Unwrap() error { return e.Err }

func internal(message string, err error) error {
	return &InternalError{Message: message, Err: err}
}
