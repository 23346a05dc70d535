package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Saved deck validation errors.
var (
	ErrEmptyDeckID    = errors.New("deck ID cannot be empty")
	ErrEmptyDeckOwner = errors.New("deck owner cannot be empty")
	ErrEmptyDeckName  = errors.New("deck name cannot be empty")
	ErrEmptyDeck      = errors.New("deck has no cards")
)

// SavedDeck is a built deck persisted for a user.
type SavedDeck struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Name      string         `json:"name"`
	Format    string         `json:"format"`
	Archetype Archetype      `json:"archetype"`
	Cards     map[string]int `json:"cards"`
	Lands     map[string]int `json:"lands"`
	Colors    []string       `json:"colors"`
	Notes     []string       `json:"notes"`
	Warnings  []string       `json:"warnings"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewSavedDeck captures a built deck for persistence.
func NewSavedDeck(userID uuid.UUID, built *BuiltDeck, format string) (*SavedDeck, error) {
	now := time.Now().UTC()
	deck := &SavedDeck{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      built.Name,
		Format:    format,
		Archetype: built.Archetype,
		Cards:     built.Cards,
		Lands:     built.Lands,
		Colors:    built.Colors,
		Notes:     built.Notes,
		Warnings:  built.Warnings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := deck.Validate(); err != nil {
		return nil, err
	}
	return deck, nil
}

// Validate checks the saved deck's fields.
func (d *SavedDeck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDeckID
	}
	if d.UserID == uuid.Nil {
		return ErrEmptyDeckOwner
	}
	if d.Name == "" {
		return ErrEmptyDeckName
	}
	if len(d.Cards) == 0 && len(d.Lands) == 0 {
		return ErrEmptyDeck
	}
	return nil
}

// TotalCards returns the deck's total card count.
func (d *SavedDeck) TotalCards() int {
	total := 0
	for _, qty := range d.Cards {
		total += qty
	}
	for _, qty := range d.Lands {
		total += qty
	}
	return total
}
