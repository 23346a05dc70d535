package deckgen

import (
	"fmt"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// Fallbacks for cards whose printing metadata is missing from the catalog.
const (
	fallbackSetCode         = "UNK"
	fallbackCollectorNumber = "1"
)

// ExportText renders a built deck in the plain-text import format: a "Deck"
// header, then one "<qty> <name> (<SET>) <collector_number>" line per card,
// nonlands first and lands after, each group sorted by name.
func ExportText(deck *domain.BuiltDeck, source CardSource) string {
	lines := []string{"Deck"}
	for _, name := range sortedKeys(deck.Cards) {
		lines = append(lines, exportLine(name, deck.Cards[name], source))
	}
	for _, name := range sortedKeys(deck.Lands) {
		lines = append(lines, exportLine(name, deck.Lands[name], source))
	}
	return strings.Join(lines, "\n")
}

func exportLine(name string, qty int, source CardSource) string {
	set := fallbackSetCode
	collector := fallbackCollectorNumber
	if card, ok := source.Get(name); ok {
		if card.Set != "" {
			set = strings.ToUpper(card.Set)
		}
		if card.CollectorNumber != "" {
			collector = card.CollectorNumber
		}
	}
	return fmt.Sprintf("%d %s (%s) %s", qty, name, set, collector)
}

// Summary renders a human-readable markdown overview of a built deck:
// composition, curve, roles, and any notes or warnings.
func Summary(deck *domain.BuiltDeck) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", deck.Name)
	fmt.Fprintf(&b, "**Archetype:** %s  \n", deck.Archetype)
	fmt.Fprintf(&b, "**Colors:** %s  \n", strings.Join(deck.Colors, ""))
	fmt.Fprintf(&b, "**Cards:** %d nonland + %d lands = %d total\n\n",
		deck.NonlandCount(), deck.LandCount(), deck.TotalCards)

	b.WriteString("**Mana curve:**")
	for bucket := 1; bucket <= 6; bucket++ {
		label := fmt.Sprintf("%d", bucket)
		if bucket == 6 {
			label = "6+"
		}
		fmt.Fprintf(&b, " %s:%d", label, deck.ManaCurve[bucket])
	}
	b.WriteString("\n")

	if len(deck.RoleCounts) > 0 {
		b.WriteString("\n**Roles:**")
		for _, role := range domain.RoleOrder {
			if count := deck.RoleCounts[role]; count > 0 {
				fmt.Fprintf(&b, " %s:%d", role.Display(), count)
			}
		}
		b.WriteString("\n")
	}

	if len(deck.Notes) > 0 {
		b.WriteString("\n**Notes:**\n")
		for _, note := range deck.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}
	if len(deck.Warnings) > 0 {
		b.WriteString("\n**Warnings:**\n")
		for _, warning := range deck.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}
	return b.String()
}
