package auth

import "errors"

var (
	// ErrInvalidCredentials is returned for unknown emails and wrong
	// passwords alike, so callers cannot probe for account existence.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrUnauthenticated indicates a missing, malformed or expired session token.
	ErrUnauthenticated = errors.New("auth: unauthenticated")

	// ErrForbidden indicates a valid identity with insufficient role or scope.
	ErrForbidden = errors.New("auth: forbidden")

	// ErrSelfDeletion indicates an account attempting to delete itself.
	ErrSelfDeletion = errors.New("auth: self deletion forbidden")

	ErrNotFound     = errors.New("auth: not found")
	ErrInvalidInput = errors.New("auth: invalid input")
	ErrConflict     = errors.New("auth: resource conflict")
)
