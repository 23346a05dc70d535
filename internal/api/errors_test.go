package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/forgebreaker/internal/costs"
	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/guard"
	"github.com/phrazzld/forgebreaker/internal/resolver"
	"github.com/phrazzld/forgebreaker/internal/service"
	"github.com/phrazzld/forgebreaker/internal/service/auth"
	"github.com/phrazzld/forgebreaker/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"deck not found", fmt.Errorf("lookup: %w", store.ErrDeckNotFound), http.StatusNotFound},
		{"collection not found", store.ErrCollectionNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown format", domain.ErrInvalidFormat, http.StatusBadRequest},
		{
			"resolution failure",
			&resolver.ResolutionError{Unresolved: []resolver.Unresolved{{}}},
			http.StatusBadRequest,
		},
		{"empty collection", domain.ErrEmptyCollection, http.StatusUnprocessableEntity},
		{
			"deck size failure",
			&domain.DeckSizeError{Requested: 60, Actual: 12},
			http.StatusUnprocessableEntity,
		},
		{
			"name leakage",
			&guard.CardNameLeakageError{LeakedName: "Black Lotus"},
			http.StatusUnprocessableEntity,
		},
		{
			"budget exceeded",
			&costs.BudgetExceededError{Scope: "daily", Limit: 500},
			http.StatusTooManyRequests,
		},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(service.ErrInvalidCredentials))
	assert.Equal(t, "Deck not found", GetSafeErrorMessage(store.ErrDeckNotFound))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("pq: connection refused")),
		"internal errors never leak their message")

	sizeErr := &domain.DeckSizeError{Requested: 60, Actual: 12, Detail: "only 12 cards available"}
	assert.Equal(t, sizeErr.Error(), GetSafeErrorMessage(sizeErr),
		"deck size detail is actionable and passes through")

	leak := &guard.CardNameLeakageError{LeakedName: "Black Lotus"}
	msg := GetSafeErrorMessage(leak)
	assert.NotContains(t, msg, "Black Lotus", "the leaked name itself is not repeated")
}

func TestSanitizeValidationError(t *testing.T) {
	err := errors.New("Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
