package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/costs"
	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/guard"
	"github.com/phrazzld/forgebreaker/internal/resolver"
	"github.com/phrazzld/forgebreaker/internal/service"
	"github.com/phrazzld/forgebreaker/internal/service/auth"
	"github.com/phrazzld/forgebreaker/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var sizeErr *domain.DeckSizeError
	var resErr *resolver.ResolutionError
	var leakErr *guard.CardNameLeakageError
	var budgetErr *costs.BudgetExceededError

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrCollectionNotFound),
		errors.Is(err, service.ErrUnknownCard):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidFormat),
		errors.As(err, &resErr):
		return http.StatusBadRequest

	// Unprocessable requests: valid in shape, unsatisfiable in substance
	case errors.Is(err, domain.ErrEmptyCollection),
		errors.As(err, &sizeErr),
		errors.As(err, &leakErr),
		errors.Is(err, service.ErrExplanationRefused):
		return http.StatusUnprocessableEntity

	// Cost controls
	case errors.As(err, &budgetErr):
		return http.StatusTooManyRequests

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var sizeErr *domain.DeckSizeError
	var resErr *resolver.ResolutionError
	var leakErr *guard.CardNameLeakageError
	var budgetErr *costs.BudgetExceededError

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this deck"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrCollectionNotFound):
		return "No collection imported"

	case errors.Is(err, service.ErrUnknownCard):
		return "Card not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrInvalidFormat):
		return "Unknown format"

	case errors.Is(err, domain.ErrEmptyCollection):
		return "No collection imported"

	// Deck size and resolution failures carry actionable detail for the
	// user and contain no internal state, so their messages pass through.
	case errors.As(err, &sizeErr):
		return sizeErr.Error()

	case errors.As(err, &resErr):
		return resErr.Error()

	case errors.As(err, &leakErr),
		errors.Is(err, service.ErrExplanationRefused):
		return "The explanation referenced cards outside your deck and was withheld"

	case errors.As(err, &budgetErr):
		return budgetErr.Error()

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format:
	// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
