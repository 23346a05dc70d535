package deckgen

import (
	"github.com/phrazzld/forgebreaker/internal/domain"
)

// CardSource provides read access to card data during deck construction.
// Implementations must return names in ascending lexical order from Names
// so that construction is deterministic for identical inputs.
type CardSource interface {
	// Get returns the card record for an exact name match.
	Get(name string) (*domain.CardRecord, bool)

	// Names returns every known card name in ascending order.
	Names() []string
}

// candidate is a card from the allowed set together with its owned quantity.
type candidate struct {
	name string
	qty  int
	card *domain.CardRecord
}
