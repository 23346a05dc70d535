package deckgen

import (
	"sort"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// BuildManaBase allocates land slots for the deck's colors. Owned nonbasic
// lands that produce a needed color (or mana of any color) are taken first,
// at most four copies each in name order, then the remaining slots are
// filled with basics proportional to the deck's colored mana symbol counts.
// Lands already in the deck (must-includes) are skipped so the per-card copy
// limit holds across both sources. Every basic is capped at the quantity the
// player owns; when the player owns none of a needed basic the split falls
// back to an even division across the deck colors. The result never exceeds
// landTarget, and it falls short when the pool cannot fill every slot.
func BuildManaBase(
	allowed domain.AllowedCardSet,
	source CardSource,
	deckColors []string,
	landTarget int,
	pipCounts map[string]int,
	excluded map[string]int,
) map[string]int {
	lands := make(map[string]int)
	if landTarget <= 0 {
		return lands
	}

	colorSet := make(map[string]struct{}, len(deckColors))
	for _, c := range deckColors {
		colorSet[c] = struct{}{}
	}

	remaining := landTarget
	for _, name := range allowed.Names() {
		if remaining <= 0 {
			break
		}
		if _, taken := excluded[name]; taken {
			continue
		}
		card, ok := source.Get(name)
		if !ok || !card.IsLand() || card.IsBasicLand() {
			continue
		}
		if !producesNeededColor(card, colorSet) {
			continue
		}
		qty := allowed.Quantity(name)
		if qty > domain.DefaultMaxCopies {
			qty = domain.DefaultMaxCopies
		}
		if qty > remaining {
			qty = remaining
		}
		lands[name] = qty
		remaining -= qty
	}

	if remaining > 0 {
		available := make(map[string]int, len(deckColors))
		for _, c := range deckColors {
			basic := domain.BasicLandForColor[c]
			if basic == "" {
				continue
			}
			qty := allowed.Quantity(basic) - excluded[basic]
			if qty < 0 {
				qty = 0
			}
			available[c] = qty
		}

		pips := pipCounts
		for _, qty := range available {
			if qty == 0 {
				pips = nil
				break
			}
		}

		for color, qty := range basicSplit(deckColors, pips, remaining) {
			if qty > available[color] {
				qty = available[color]
			}
			if qty <= 0 {
				continue
			}
			lands[domain.BasicLandForColor[color]] += qty
		}
	}
	return lands
}

// producesNeededColor reports whether a land's oracle text mentions adding
// one of the needed colors or mana of any color.
func producesNeededColor(card *domain.CardRecord, colors map[string]struct{}) bool {
	text := strings.ToLower(card.OracleText)
	if text == "" {
		return false
	}
	if strings.Contains(text, "any color") {
		return true
	}
	for c := range colors {
		if strings.Contains(text, "{"+strings.ToLower(c)+"}") {
			return true
		}
		if word := domain.ColorWord[c]; word != "" && strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// basicSplit divides slots among the deck colors proportionally to their
// pip counts, handing out remainders largest fraction first with WUBRG
// order breaking ties. With no pips at all the slots split evenly.
func basicSplit(deckColors []string, pipCounts map[string]int, slots int) map[string]int {
	colors := make([]string, 0, len(deckColors))
	ordered := append(append([]string{}, domain.ColorOrder...), "C")
	for _, c := range ordered {
		for _, dc := range deckColors {
			if dc == c {
				colors = append(colors, c)
				break
			}
		}
	}
	if len(colors) == 0 {
		return nil
	}

	totalPips := 0
	for _, c := range colors {
		totalPips += pipCounts[c]
	}

	split := make(map[string]int, len(colors))
	if totalPips == 0 {
		per := slots / len(colors)
		extra := slots % len(colors)
		for i, c := range colors {
			split[c] = per
			if i < extra {
				split[c]++
			}
		}
		return split
	}

	type share struct {
		color string
		frac  float64
	}
	assigned := 0
	shares := make([]share, 0, len(colors))
	for _, c := range colors {
		exact := float64(pipCounts[c]) * float64(slots) / float64(totalPips)
		floor := int(exact)
		split[c] = floor
		assigned += floor
		shares = append(shares, share{color: c, frac: exact - float64(floor)})
	}
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].frac > shares[j].frac })
	for i := 0; assigned < slots && i < len(shares); i++ {
		split[shares[i].color]++
		assigned++
	}
	return split
}
