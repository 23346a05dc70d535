package deckgen

import (
	"sort"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// memSource is an in-memory CardSource for tests. Names are kept sorted to
// satisfy the CardSource ordering contract.
type memSource struct {
	cards map[string]*domain.CardRecord
	names []string
}

func newMemSource(cards ...*domain.CardRecord) *memSource {
	s := &memSource{cards: make(map[string]*domain.CardRecord, len(cards))}
	for _, c := range cards {
		s.cards[c.Name] = c
		s.names = append(s.names, c.Name)
	}
	sort.Strings(s.names)
	return s
}

func (s *memSource) Get(name string) (*domain.CardRecord, bool) {
	c, ok := s.cards[name]
	return c, ok
}

func (s *memSource) Names() []string {
	return s.names
}

func modernLegal() map[string]string {
	return map[string]string{"modern": "legal"}
}

func goblinCard(name string, mv float64, oracle string) *domain.CardRecord {
	return &domain.CardRecord{
		Name:       name,
		TypeLine:   "Creature — Goblin",
		ManaCost:   "{R}",
		ManaValue:  mv,
		Colors:     []string{"R"},
		OracleText: oracle,
		Set:        "dom",
		Legalities: modernLegal(),
	}
}

func basicLand(name, color string) *domain.CardRecord {
	word := domain.ColorWord[color]
	return &domain.CardRecord{
		Name:       name,
		TypeLine:   "Basic Land — " + name,
		OracleText: "{T}: Add one " + word + " mana.",
		Set:        "dom",
		Legalities: modernLegal(),
	}
}

// testCatalog returns a card source with enough variety for end-to-end
// builds: a goblin package, red support spells, and lands.
func testCatalog() *memSource {
	return newMemSource(
		goblinCard("Goblin Raider", 2, "Goblin Raider can't block."),
		goblinCard("Goblin Piker", 2, ""),
		goblinCard("Raging Goblin", 1, "Haste"),
		goblinCard("Goblin Chieftain", 3, "Haste. Other Goblins you control get +1/+1 and have haste."),
		goblinCard("Goblin Warchief", 3, "Goblin spells you cast cost {1} less. Goblins you control have haste."),
		goblinCard("Krenko, Mob Boss", 4, "{T}: Create X 1/1 red Goblin creature tokens."),
		goblinCard("Goblin Ringleader", 4, "When this creature enters, reveal the top four cards of your library."),
		goblinCard("Siege-Gang Commander", 5, "When this creature enters, create three 1/1 red Goblin creature tokens."),
		&domain.CardRecord{
			Name: "Lightning Bolt", TypeLine: "Instant", ManaCost: "{R}", ManaValue: 1,
			Colors: []string{"R"}, OracleText: "Lightning Bolt deals 3 damage to any target.",
			Set: "dom", Legalities: modernLegal(),
		},
		&domain.CardRecord{
			Name: "Shock", TypeLine: "Instant", ManaCost: "{R}", ManaValue: 1,
			Colors: []string{"R"}, OracleText: "Shock deals 2 damage to any target.",
			Set: "dom", Legalities: modernLegal(),
		},
		&domain.CardRecord{
			Name: "Light Up the Stage", TypeLine: "Sorcery", ManaCost: "{2}{R}", ManaValue: 3,
			Colors: []string{"R"}, OracleText: "Exile the top two cards of your library. Draw a card.",
			Set: "rna", Legalities: modernLegal(),
		},
		&domain.CardRecord{
			Name: "Opt", TypeLine: "Instant", ManaCost: "{U}", ManaValue: 1,
			Colors: []string{"U"}, OracleText: "Scry 1. Draw a card.",
			Set: "dom", Legalities: modernLegal(),
		},
		&domain.CardRecord{
			Name: "Forgotten Cave", TypeLine: "Land", ManaValue: 0,
			OracleText: "{T}: Add {R}. Cycling {R}",
			Set:        "ons", Legalities: modernLegal(),
		},
		basicLand("Mountain", "R"),
		basicLand("Forest", "G"),
		basicLand("Island", "U"),
	)
}

// testLegalSet returns the modern-legal names from the catalog.
func testLegalSet(source *memSource) map[string]struct{} {
	legal := make(map[string]struct{})
	for _, name := range source.Names() {
		card, _ := source.Get(name)
		if card.LegalIn("modern") {
			legal[name] = struct{}{}
		}
	}
	return legal
}
