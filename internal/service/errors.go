package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrInvalidCredentials indicates a login attempt with a wrong email or
	// password. API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrExplanationRefused indicates the generated explanation referenced
	// cards outside the deck and was withheld.
	ErrExplanationRefused = errors.New("explanation withheld")

	// ErrUnknownCard indicates a requested card name does not exist in the
	// catalog. API layer should map this to HTTP 404 Not Found.
	ErrUnknownCard = errors.New("card not found in catalog")
)
