package domain

import (
	"errors"
	"sort"
	"strings"
)

// Card-specific validation errors
var (
	// ErrCardNameEmpty is returned when a card record has no name.
	ErrCardNameEmpty = errors.New("card name cannot be empty")

	// ErrCardManaValueNegative is returned when a card record carries a
	// negative mana value.
	ErrCardManaValueNegative = errors.New("card mana value cannot be negative")
)

// LegalityLegal is the legality status string marking a card as legal in a
// format. Any other status ("banned", "restricted", "not_legal") excludes
// the card from that format.
const LegalityLegal = "legal"

// CardRecord is a single entry from the card catalog. Records are immutable;
// the catalog owns them and every other structure references cards by name.
//
// Fields that bulk card data may omit (ColorIdentity, Set, CollectorNumber)
// have explicit fallbacks applied by the accessors below rather than at every
// call site.
type CardRecord struct {
	Name            string            `json:"name"`
	TypeLine        string            `json:"type_line"`
	ManaCost        string            `json:"mana_cost"`
	ManaValue       float64           `json:"cmc"`
	Colors          []string          `json:"colors"`
	ColorIdentity   []string          `json:"color_identity"`
	OracleText      string            `json:"oracle_text"`
	Rarity          string            `json:"rarity"`
	Set             string            `json:"set"`
	CollectorNumber string            `json:"collector_number"`
	Legalities      map[string]string `json:"legalities"`
}

// Validate checks that the record satisfies the invariants the engine relies
// on. It is called once at catalog-load time so downstream code never has to
// re-check.
func (c *CardRecord) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrCardNameEmpty
	}
	if c.ManaValue < 0 {
		return ErrCardManaValueNegative
	}
	return nil
}

// IsLand reports whether the card's type line marks it as a land.
func (c *CardRecord) IsLand() bool {
	return strings.Contains(c.TypeLine, "Land")
}

// IsBasicLand reports whether the card is a basic land (exempt from the
// four-copy limit).
func (c *CardRecord) IsBasicLand() bool {
	return strings.Contains(c.TypeLine, "Basic") && c.IsLand()
}

// LegalIn reports whether the card is legal in the given format.
// Formats absent from the legality map count as not legal.
func (c *CardRecord) LegalIn(format string) bool {
	return c.Legalities[strings.ToLower(format)] == LegalityLegal
}

// IdentityColors returns the card's color identity, falling back to its
// printed colors when bulk data omits color_identity. The result is sorted
// so callers can compare identities without normalizing.
func (c *CardRecord) IdentityColors() []string {
	src := c.ColorIdentity
	if len(src) == 0 {
		src = c.Colors
	}
	out := make([]string, len(src))
	copy(out, src)
	sort.Strings(out)
	return out
}

// Subtypes returns the creature subtypes parsed from the type line, lowered
// for matching. Type lines separate subtypes with an em dash ("Creature —
// Goblin Rogue"); some older data uses a plain hyphen.
func (c *CardRecord) Subtypes() []string {
	line := strings.ToLower(c.TypeLine)
	sep := "—"
	if !strings.Contains(line, sep) {
		sep = " - "
	}
	parts := strings.SplitN(line, sep, 2)
	if len(parts) < 2 {
		return nil
	}
	return strings.Fields(strings.TrimSpace(parts[1]))
}
