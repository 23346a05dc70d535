package domain

import "sort"

// DefaultMaxCopies is the per-card copy limit in constructed decks.
// Basic lands are exempt.
const DefaultMaxCopies = 4

// OwnedCardPool is an immutable, count-aware view of a player's collection.
//
// Invariant: every card in the pool has count > 0. Zero and negative counts
// are dropped at construction, which removes the "owned with count 0" versus
// "owned" ambiguity everywhere downstream.
type OwnedCardPool struct {
	cards map[string]int
}

// NewOwnedCardPool builds a pool from a name -> count mapping, dropping any
// entry with count <= 0.
func NewOwnedCardPool(cards map[string]int) OwnedCardPool {
	filtered := make(map[string]int, len(cards))
	for name, count := range cards {
		if count > 0 {
			filtered[name] = count
		}
	}
	return OwnedCardPool{cards: filtered}
}

// Contains reports whether the card is owned (with count > 0).
func (p OwnedCardPool) Contains(name string) bool {
	_, ok := p.cards[name]
	return ok
}

// Count returns the owned count for a card, or 0 if not owned.
func (p OwnedCardPool) Count(name string) int {
	return p.cards[name]
}

// MaxCopies returns min(owned count, limit): the number of copies a deck may
// actually use. A limit <= 0 falls back to DefaultMaxCopies.
func (p OwnedCardPool) MaxCopies(name string, limit int) int {
	if limit <= 0 {
		limit = DefaultMaxCopies
	}
	owned := p.cards[name]
	if owned < limit {
		return owned
	}
	return limit
}

// Len returns the number of distinct cards in the pool.
func (p OwnedCardPool) Len() int {
	return len(p.cards)
}

// TotalCards returns the total count across all copies.
func (p OwnedCardPool) TotalCards() int {
	total := 0
	for _, count := range p.cards {
		total += count
	}
	return total
}

// Names returns the card names in the pool, sorted. Selection code iterates
// this rather than the underlying map so that output never depends on map
// iteration order.
func (p OwnedCardPool) Names() []string {
	names := make([]string, 0, len(p.cards))
	for name := range p.cards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterNames returns a new pool restricted to the given names, preserving
// counts. Used to intersect the pool with a format-legal set.
func (p OwnedCardPool) FilterNames(allowed map[string]struct{}) OwnedCardPool {
	filtered := make(map[string]int)
	for name, count := range p.cards {
		if _, ok := allowed[name]; ok {
			filtered[name] = count
		}
	}
	return OwnedCardPool{cards: filtered}
}

// AsMap exports the pool as a fresh name -> count map. Mutating the result
// does not affect the pool.
func (p OwnedCardPool) AsMap() map[string]int {
	out := make(map[string]int, len(p.cards))
	for name, count := range p.cards {
		out[name] = count
	}
	return out
}
