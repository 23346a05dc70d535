package deckgen

import (
	"sort"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// SelectSupport greedily picks support cards to fill the remaining nonland
// slots. Only cards from the allowed set whose oracle text matches a support
// keyword and whose color identity fits the deck colors are considered.
// Candidates are ordered by curve fit (descending), then mana value
// (ascending), then name, and at most four copies of any card are taken.
func SelectSupport(
	allowed domain.AllowedCardSet,
	source CardSource,
	deckColors map[string]struct{},
	excluded map[string]int,
	slots int,
	current, target Curve,
	params *Params,
) []domain.CardQuantity {
	if slots <= 0 {
		return nil
	}

	var candidates []candidate
	for _, name := range allowed.Names() {
		if _, taken := excluded[name]; taken {
			continue
		}
		card, ok := source.Get(name)
		if !ok || card.IsLand() {
			continue
		}
		if !identityWithin(card, deckColors) {
			continue
		}
		if !matchesSupportKeyword(card, params) {
			continue
		}
		candidates = append(candidates, candidate{
			name: name,
			qty:  allowed.Quantity(name),
			card: card,
		})
	}

	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scores[c.name] = ScoreForCurve(c.card.ManaValue, current, target)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i].name], scores[candidates[j].name]
		if si != sj {
			return si > sj
		}
		if candidates[i].card.ManaValue != candidates[j].card.ManaValue {
			return candidates[i].card.ManaValue < candidates[j].card.ManaValue
		}
		return candidates[i].name < candidates[j].name
	})

	var picks []domain.CardQuantity
	remaining := slots
	for _, c := range candidates {
		if remaining <= 0 {
			break
		}
		qty := c.qty
		if qty > domain.DefaultMaxCopies {
			qty = domain.DefaultMaxCopies
		}
		if qty > remaining {
			qty = remaining
		}
		picks = append(picks, domain.CardQuantity{Name: c.name, Quantity: qty})
		remaining -= qty
	}
	return picks
}

func matchesSupportKeyword(card *domain.CardRecord, params *Params) bool {
	text := strings.ToLower(card.OracleText)
	if text == "" {
		return false
	}
	for _, keyword := range params.SupportKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
