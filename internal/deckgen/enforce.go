package deckgen

import (
	"fmt"
	"sort"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// EnforceDeckSize guarantees the deck's exact total size. An exact deck
// passes through untouched. An oversized deck is trimmed by removing copies
// of the lowest-scoring nonland cards, ties broken by name ascending; lands
// are never removed. An undersized deck is a terminal *domain.DeckSizeError,
// never padded. The deck is modified in place and the same input always
// yields the same output.
func EnforceDeckSize(deck *domain.BuiltDeck, requested int) error {
	total := deck.NonlandCount() + deck.LandCount()
	deck.TotalCards = total

	if total == requested {
		return nil
	}

	if total < requested {
		return &domain.DeckSizeError{
			Requested: requested,
			Actual:    total,
			Detail: fmt.Sprintf(
				"only %d cards available after selection; need %d more",
				total, requested-total,
			),
		}
	}

	excess := total - requested
	names := make([]string, 0, len(deck.Cards))
	for name := range deck.Cards {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := deck.CardScores[names[i]], deck.CardScores[names[j]]
		if si != sj {
			return si < sj
		}
		return names[i] < names[j]
	})

	for _, name := range names {
		if excess == 0 {
			break
		}
		qty := deck.Cards[name]
		cut := qty
		if cut > excess {
			cut = excess
		}
		if cut == qty {
			delete(deck.Cards, name)
		} else {
			deck.Cards[name] = qty - cut
		}
		excess -= cut
	}

	if excess > 0 {
		// Lands alone exceed the requested size. Nothing nonland is left to
		// trim, so the request cannot be satisfied.
		return &domain.DeckSizeError{
			Requested: requested,
			Actual:    requested + excess,
			Detail:    "land count exceeds the requested deck size",
		}
	}

	deck.TotalCards = requested
	return nil
}
