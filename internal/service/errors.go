package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")

	// Token verification failures. All collapse to a 401 at the HTTP
	// boundary but stay distinguishable for tests and logs.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenSignature = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")

	// Calendar preconditions.
	ErrNotLinked       = errors.New("google account not linked")
	ErrRefreshRequired = errors.New("google refresh token missing")

	ErrNotFound        = errors.New("not found")
	ErrDuplicateSignup = errors.New("already signed up")
)

// ValidationError carries a client-facing message for malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
