package deckgen

import (
	"strings"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// DetectArchetype infers a deck archetype from the requested theme text and
// the cards matched to it. Indicator keywords found in the theme score ten
// points each, keyword hits in card oracle text score one point per card,
// and the average mana value of the matched cards adds a bonus for aggro
// (low curve) or control (high curve). Ties resolve in fixed priority order
// and an all-zero score falls back to midrange.
func DetectArchetype(theme string, cards []*domain.CardRecord, params *Params) domain.Archetype {
	scores := make(map[domain.Archetype]int, len(domain.ArchetypePriority))

	themeText := strings.ToLower(theme)
	for _, arch := range domain.ArchetypePriority {
		for _, keyword := range params.ArchetypeIndicators[arch] {
			if strings.Contains(themeText, keyword) {
				scores[arch] += 10
			}
		}
	}

	for _, card := range cards {
		text := strings.ToLower(card.OracleText)
		if text == "" {
			continue
		}
		for _, arch := range domain.ArchetypePriority {
			for _, keyword := range params.ArchetypeIndicators[arch] {
				if strings.Contains(text, keyword) {
					scores[arch]++
					break
				}
			}
		}
	}

	if len(cards) > 0 {
		total := 0.0
		for _, card := range cards {
			total += card.ManaValue
		}
		avg := total / float64(len(cards))
		if avg <= params.LowCurveThreshold {
			scores[domain.ArchetypeAggro] += 5
		}
		if avg >= params.HighCurveThreshold {
			scores[domain.ArchetypeControl] += 3
		}
	}

	best := domain.ArchetypeMidrange
	bestScore := 0
	for _, arch := range domain.ArchetypePriority {
		if scores[arch] > bestScore {
			best = arch
			bestScore = scores[arch]
		}
	}
	return best
}

// cardRoles returns every functional role a card fills, based on keyword
// matches in its oracle text.
func cardRoles(card *domain.CardRecord, params *Params) []domain.Role {
	text := strings.ToLower(card.OracleText)
	if text == "" {
		return nil
	}
	var roles []domain.Role
	for _, role := range domain.RoleOrder {
		for _, keyword := range params.RoleKeywords[role] {
			if strings.Contains(text, keyword) {
				roles = append(roles, role)
				break
			}
		}
	}
	return roles
}
