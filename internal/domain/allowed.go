package domain

import (
	"fmt"
	"sort"
)

// AllowedCardSet is the authoritative intersection of "owned" and
// "format-legal": the only universe any card suggestion may be drawn from.
//
// Invariant: every key is present in both the owned collection and the
// format-legal set. The structure is immutable once built; deck construction
// is selection from this set, never free-form generation.
type AllowedCardSet struct {
	cards map[string]int

	// Format is the format this set is valid for.
	Format string
	// Source describes how the set was constructed, for diagnostics.
	Source string
}

// BuildAllowedSet intersects a player's owned cards with a format's legal
// set, preserving owned quantities. This is the only way to construct a
// valid allowed set.
func BuildAllowedSet(owned OwnedCardPool, legal map[string]struct{}, format string) AllowedCardSet {
	cards := make(map[string]int)
	for _, name := range owned.Names() {
		if _, ok := legal[name]; ok {
			cards[name] = owned.Count(name)
		}
	}
	return AllowedCardSet{
		cards:  cards,
		Format: format,
		Source: fmt.Sprintf("intersection of %d owned cards and %d %s-legal cards",
			owned.Len(), len(legal), format),
	}
}

// Contains reports whether a card is in the allowed set.
func (s AllowedCardSet) Contains(name string) bool {
	_, ok := s.cards[name]
	return ok
}

// Quantity returns the owned quantity of a card, or 0 if not allowed.
func (s AllowedCardSet) Quantity(name string) int {
	return s.cards[name]
}

// Len returns the number of distinct cards in the allowed set.
func (s AllowedCardSet) Len() int {
	return len(s.cards)
}

// Empty reports whether the allowed set contains no cards.
func (s AllowedCardSet) Empty() bool {
	return len(s.cards) == 0
}

// Names returns the allowed card names, sorted.
func (s AllowedCardSet) Names() []string {
	names := make([]string, 0, len(s.cards))
	for name := range s.cards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidateCard checks that a single card is in the allowed set with at least
// the required quantity. This must be called before any card name can appear
// in output; violations return *CardNotAllowedError, never fail silently.
func ValidateCard(name string, set AllowedCardSet, requiredQty int) error {
	if !set.Contains(name) {
		return &CardNotAllowedError{
			CardName: name,
			Reason:   "not in player's collection or not legal in format",
			Format:   set.Format,
			SetSize:  set.Len(),
		}
	}
	if owned := set.Quantity(name); owned < requiredQty {
		return &CardNotAllowedError{
			CardName: name,
			Reason:   fmt.Sprintf("owned quantity (%d) less than required (%d)", owned, requiredQty),
			Format:   set.Format,
			SetSize:  set.Len(),
		}
	}
	return nil
}

// ValidateCards checks a card map against the allowed set and returns the
// full list of violation messages instead of failing on the first. Used for
// batch diagnostics; an empty result means all cards are valid.
func ValidateCards(cards map[string]int, set AllowedCardSet) []string {
	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)

	var violations []string
	for _, name := range names {
		required := cards[name]
		if !set.Contains(name) {
			violations = append(violations,
				fmt.Sprintf("%q is not in allowed set for %s", name, set.Format))
		} else if owned := set.Quantity(name); owned < required {
			violations = append(violations,
				fmt.Sprintf("%q requires %d copies but only %d owned", name, required, owned))
		}
	}
	return violations
}
