package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when a format name is empty or unknown.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrEmptyCollection is returned when an operation requires a non-empty
	// owned collection.
	ErrEmptyCollection = errors.New("collection is empty")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// CardNotAllowedError reports a card reference that falls outside the
// AllowedCardSet boundary: the card is unowned, illegal in the format, or
// owned in insufficient quantity. It is always recoverable by the caller
// (drop the suggestion) but must never be silently ignored.
type CardNotAllowedError struct {
	CardName string
	Reason   string
	Format   string
	// SetSize is the number of distinct cards in the allowed set the
	// reference was checked against, for diagnostics.
	SetSize int
}

func (e *CardNotAllowedError) Error() string {
	return fmt.Sprintf("card %q is not allowed: %s (format %s, allowed set has %d cards)",
		e.CardName, e.Reason, e.Format, e.SetSize)
}

// DeckSizeError reports that the builder could not reach the requested deck
// size after all selection phases. It is terminal for the request: the engine
// never retries internally and never returns an undersized deck.
type DeckSizeError struct {
	Requested int
	Actual    int
	Detail    string
}

func (e *DeckSizeError) Error() string {
	msg := fmt.Sprintf("unable to construct a %d-card deck: only %d cards available with the given constraints",
		e.Requested, e.Actual)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}
