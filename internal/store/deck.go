package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/forgebreaker/internal/domain"
)

// DeckStore persists built decks.
type DeckStore interface {
	// Create saves a built deck. Returns ErrInvalidEntity if the deck
	// fails domain validation.
	Create(ctx context.Context, deck *domain.SavedDeck) error

	// GetByID retrieves a saved deck. Returns ErrDeckNotFound if it does
	// not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedDeck, error)

	// ListByUser returns the user's saved decks, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SavedDeck, error)

	// Delete removes a saved deck. Returns ErrDeckNotFound if it does not
	// exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore
}
