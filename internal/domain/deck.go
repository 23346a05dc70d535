package domain

import (
	"sort"
	"strings"
)

// Default build targets for constructed decks.
const (
	DefaultDeckSize  = 60
	DefaultLandCount = 24
)

// BuildRequest carries the parameters for a deck build.
type BuildRequest struct {
	// Theme is a card name, type, or keyword to build around.
	Theme string
	// Colors optionally restricts the deck to these colors (W/U/B/R/G).
	Colors []string
	// Format is the format used for legality checking.
	Format string
	// IncludeCards are must-include cards; unowned or illegal entries become
	// warnings, not failures.
	IncludeCards []string
	// DeckSize is the exact total size the built deck must have.
	DeckSize int
	// LandCount is the target number of land slots.
	LandCount int
}

// Normalize applies defaults and canonicalizes the request: 60 cards, 24
// lands, lowercased format, uppercased colors.
func (r BuildRequest) Normalize() BuildRequest {
	out := r
	if out.DeckSize <= 0 {
		out.DeckSize = DefaultDeckSize
	}
	if out.LandCount <= 0 {
		out.LandCount = DefaultLandCount
	}
	out.Format = strings.ToLower(strings.TrimSpace(out.Format))
	colors := make([]string, 0, len(out.Colors))
	for _, c := range out.Colors {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			colors = append(colors, c)
		}
	}
	out.Colors = colors
	return out
}

// BuiltDeck is a deck constructed from a player's collection. Cards holds
// nonland cards, Lands the mana base; TotalCards is always the sum of both.
//
// Notes are informational; Warnings describe degraded but non-fatal
// conditions (missing theme matches, role shortfalls, land shortfalls).
// CardScores records per-card selection scores and is what makes size
// enforcement deterministic.
type BuiltDeck struct {
	Name         string             `json:"name"`
	Cards        map[string]int     `json:"cards"`
	Lands        map[string]int     `json:"lands"`
	TotalCards   int                `json:"total_cards"`
	Colors       []string           `json:"colors"`
	ThemeCards   []string           `json:"theme_cards"`
	SupportCards []string           `json:"support_cards"`
	Archetype    Archetype          `json:"archetype"`
	ManaCurve    map[int]int        `json:"mana_curve"`
	RoleCounts   map[Role]int       `json:"role_counts"`
	Notes        []string           `json:"notes"`
	Warnings     []string           `json:"warnings"`
	CardScores   map[string]float64 `json:"card_scores"`
}

// NonlandCount returns the number of nonland cards, counting quantities.
func (d *BuiltDeck) NonlandCount() int {
	total := 0
	for _, qty := range d.Cards {
		total += qty
	}
	return total
}

// LandCount returns the number of lands, counting quantities.
func (d *BuiltDeck) LandCount() int {
	total := 0
	for _, qty := range d.Lands {
		total += qty
	}
	return total
}

// CardQuantity is a (name, quantity) pair in a validated deck listing.
type CardQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ValidatedDeck is the single source of truth for card names in output.
// It is created only after size enforcement and allowed-set validation have
// both succeeded and is never mutated afterward. The output guard consults
// nothing else.
type ValidatedDeck struct {
	cards     map[string]struct{}
	maindeck  []CardQuantity
	sideboard []CardQuantity

	Name   string
	Format string
	// ValidationSource describes the validation path taken, for diagnostics.
	ValidationSource string
}

// NewValidatedDeck freezes validated maindeck and sideboard maps into a
// ValidatedDeck. Callers must only invoke this after all validation passed.
func NewValidatedDeck(maindeck, sideboard map[string]int, name, format, source string) ValidatedDeck {
	cards := make(map[string]struct{}, len(maindeck)+len(sideboard))
	for name := range maindeck {
		cards[name] = struct{}{}
	}
	for name := range sideboard {
		cards[name] = struct{}{}
	}
	return ValidatedDeck{
		cards:            cards,
		maindeck:         sortedQuantities(maindeck),
		sideboard:        sortedQuantities(sideboard),
		Name:             name,
		Format:           format,
		ValidationSource: source,
	}
}

func sortedQuantities(cards map[string]int) []CardQuantity {
	out := make([]CardQuantity, 0, len(cards))
	for name, qty := range cards {
		out = append(out, CardQuantity{Name: name, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Contains reports whether a card name is in the validated deck.
func (d ValidatedDeck) Contains(name string) bool {
	_, ok := d.cards[name]
	return ok
}

// Len returns the number of unique card names in the deck.
func (d ValidatedDeck) Len() int {
	return len(d.cards)
}

// CardNames returns all validated card names (maindeck and sideboard),
// sorted.
func (d ValidatedDeck) CardNames() []string {
	names := make([]string, 0, len(d.cards))
	for name := range d.cards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Maindeck returns the maindeck listing, sorted by name.
func (d ValidatedDeck) Maindeck() []CardQuantity {
	return d.maindeck
}

// Sideboard returns the sideboard listing, sorted by name.
func (d ValidatedDeck) Sideboard() []CardQuantity {
	return d.sideboard
}

// TotalCards returns the total card count across maindeck and sideboard.
func (d ValidatedDeck) TotalCards() int {
	total := 0
	for _, cq := range d.maindeck {
		total += cq.Quantity
	}
	for _, cq := range d.sideboard {
		total += cq.Quantity
	}
	return total
}
