package deckgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// DefaultSynergyLimit caps how many matches FindSynergies returns.
const DefaultSynergyLimit = 20

// synergyPatterns pairs a mechanic found on the source card with the oracle
// keywords that play well alongside it.
var synergyPatterns = []struct {
	trigger  string
	keywords []string
}{
	{"sacrifice", []string{"dies", "leaves the battlefield", "blood token", "food token", "treasure token"}},
	{"graveyard", []string{"mill", "dies", "flashback", "escape", "unearth"}},
	{"token", []string{"create", "populate", "convoke", "go wide"}},
	{"enchantment", []string{"constellation", "enchantress", "aura"}},
	{"artifact", []string{"affinity", "improvise", "metalcraft"}},
	{"+1/+1 counter", []string{"proliferate", "evolve", "adapt", "modify"}},
	{"life", []string{"lifelink", "soul warden", "ajani's pridemate"}},
	{"instant", []string{"prowess", "magecraft", "storm"}},
	{"sorcery", []string{"prowess", "magecraft", "storm"}},
}

// SynergyMatch is one owned card that pairs with the source card.
type SynergyMatch struct {
	Name     string
	Quantity int
	Reason   string
}

// SynergyResult lists the cards in a player's pool that synergize with a
// given card.
type SynergyResult struct {
	SourceCard  string
	SynergyType string
	Matches     []SynergyMatch
}

// FindSynergies scans the allowed set for cards whose text pairs with the
// named card's mechanics. Suggestions come only from the owned, format-legal
// intersection. Matches are ordered by owned quantity, then name. The second
// return value is false when the card is not in the catalog.
func FindSynergies(
	cardName string,
	allowed domain.AllowedCardSet,
	source CardSource,
	limit int,
) (*SynergyResult, bool) {
	card, ok := source.Get(cardName)
	if !ok {
		return nil, false
	}
	if limit <= 0 {
		limit = DefaultSynergyLimit
	}

	synergyType, keywords := synergyProfile(card)

	var matches []SynergyMatch
	for _, name := range allowed.Names() {
		if name == card.Name {
			continue
		}
		owned, ok := source.Get(name)
		if !ok {
			continue
		}
		oracle := strings.ToLower(owned.OracleText)
		typeLine := strings.ToLower(owned.TypeLine)
		for _, kw := range keywords {
			if strings.Contains(oracle, kw) || strings.Contains(typeLine, kw) {
				matches = append(matches, SynergyMatch{
					Name:     name,
					Quantity: allowed.Quantity(name),
					Reason:   fmt.Sprintf("has %q in its text", kw),
				})
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Quantity > matches[j].Quantity
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return &SynergyResult{
		SourceCard:  card.Name,
		SynergyType: synergyType,
		Matches:     matches,
	}, true
}

// synergyProfile derives the keywords to hunt for from the card's own text.
// Cards matching no mechanic pattern fall back to broad type-based keywords.
func synergyProfile(card *domain.CardRecord) (string, []string) {
	oracle := strings.ToLower(card.OracleText)
	typeLine := strings.ToLower(card.TypeLine)

	synergyType := "general"
	var keywords []string
	seen := make(map[string]struct{})
	for _, p := range synergyPatterns {
		if !strings.Contains(oracle, p.trigger) && !strings.Contains(typeLine, p.trigger) {
			continue
		}
		synergyType = p.trigger
		for _, kw := range p.keywords {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) > 0 {
		return synergyType, keywords
	}

	switch {
	case strings.Contains(typeLine, "creature"):
		return "creature", []string{"creature", "tribal"}
	case strings.Contains(typeLine, "enchantment"):
		return "enchantment", []string{"enchantment"}
	case strings.Contains(typeLine, "artifact"):
		return "artifact", []string{"artifact"}
	}
	return synergyType, nil
}
