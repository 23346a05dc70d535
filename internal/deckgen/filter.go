package deckgen

import (
	"github.com/phrazzld/forgebreaker/internal/domain"
)

// FilterMetrics records how many candidates survived each filter stage.
// The counts are advisory; a shrinking pool is reported, never fatal.
type FilterMetrics struct {
	Initial        int
	AfterFormat    int
	AfterColor     int
	AfterTribe     int
	AfterArchetype int
}

// BuildCandidatePool reduces the allowed set to the candidates compatible
// with a deck intent. Stages run in a fixed order (format, color identity,
// tribe, archetype) and each stage only ever removes cards, so the result
// is a subset of the input. Unset intent fields leave their stage as a
// passthrough; the archetype stage is always a passthrough since archetype
// influences scoring rather than eligibility. Cards absent from the source
// are excluded and counted as catalog misses.
func BuildCandidatePool(
	intent domain.DeckIntent,
	allowed domain.AllowedCardSet,
	source CardSource,
) (map[string]struct{}, FilterMetrics) {
	var metrics FilterMetrics

	pool := make(map[string]struct{}, allowed.Len())
	records := make(map[string]*domain.CardRecord, allowed.Len())
	for _, name := range allowed.Names() {
		card, ok := source.Get(name)
		if !ok {
			continue
		}
		pool[name] = struct{}{}
		records[name] = card
	}
	metrics.Initial = len(pool)

	// Format. The allowed set is already legality-filtered when built with a
	// format, so this stage matters only when the intent names a different
	// format than the set was built for.
	if intent.Format != "" {
		for name, card := range records {
			if !card.LegalIn(intent.Format) {
				delete(pool, name)
			}
		}
	}
	metrics.AfterFormat = len(pool)

	if len(intent.Colors) > 0 {
		wanted := make(map[string]struct{}, len(intent.Colors))
		for _, c := range intent.Colors {
			wanted[c] = struct{}{}
		}
		for name := range pool {
			if !identityWithin(records[name], wanted) {
				delete(pool, name)
			}
		}
	}
	metrics.AfterColor = len(pool)

	if intent.Tribe != "" {
		for name := range pool {
			card := records[name]
			// Lands stay regardless of tribe so the mana base survives.
			if card.IsLand() {
				continue
			}
			if !domain.CardMatchesTribe(name, card, intent.Tribe) {
				delete(pool, name)
			}
		}
	}
	metrics.AfterTribe = len(pool)

	// Archetype influences scoring, not eligibility.
	metrics.AfterArchetype = len(pool)

	return pool, metrics
}

// identityWithin reports whether every color in the card's identity is in
// the wanted set. Colorless cards fit any identity.
func identityWithin(card *domain.CardRecord, wanted map[string]struct{}) bool {
	for _, c := range card.IdentityColors() {
		if _, ok := wanted[c]; !ok {
			return false
		}
	}
	return true
}
