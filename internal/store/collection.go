package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// CollectionStore persists each user's owned card pool as (card name,
// quantity) rows.
type CollectionStore interface {
	// Replace overwrites the user's entire collection with the given cards.
	// Entries with a non-positive quantity are rejected with
	// ErrInvalidEntity. Used by import, which always supplies a fully
	// resolved collection.
	Replace(ctx context.Context, userID uuid.UUID, cards map[string]int) error

	// Get returns the user's collection as a card name to quantity map.
	// Returns ErrCollectionNotFound if the user has never imported one.
	Get(ctx context.Context, userID uuid.UUID) (map[string]int, error)

	// Count returns the number of distinct cards in the user's collection,
	// zero if none is stored.
	Count(ctx context.Context, userID uuid.UUID) (int, error)

	// WithTx returns a CollectionStore bound to the given transaction.
	WithTx(tx *sql.Tx) CollectionStore
}
