package deckgen

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

func testBuilder(t *testing.T, source *memSource) *Builder {
	t.Helper()
	b, err := NewBuilder(source, nil, slog.Default())
	require.NoError(t, err)
	return b
}

func goblinCollection() domain.OwnedCardPool {
	return domain.NewOwnedCardPool(map[string]int{
		"Goblin Raider":        4,
		"Goblin Piker":         4,
		"Raging Goblin":        4,
		"Goblin Chieftain":     4,
		"Goblin Warchief":      4,
		"Krenko, Mob Boss":     4,
		"Goblin Ringleader":    4,
		"Siege-Gang Commander": 4,
		"Lightning Bolt":       4,
		"Shock":                4,
		"Light Up the Stage":   4,
		"Forgotten Cave":       4,
		"Mountain":             20,
	})
}

func TestNewBuilder_RequiresSource(t *testing.T) {
	_, err := NewBuilder(nil, nil, nil)
	assert.Error(t, err)
}

func TestBuild_ExactSize(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	req := domain.BuildRequest{Theme: "goblins", Format: "Modern"}
	deck, validated, err := builder.Build(req, goblinCollection(), testLegalSet(source))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDeckSize, deck.TotalCards)
	assert.Equal(t, domain.DefaultDeckSize, deck.NonlandCount()+deck.LandCount())
	assert.Equal(t, domain.DefaultDeckSize, validated.TotalCards())
	assert.Equal(t, domain.ArchetypeAggro, deck.Archetype)
	assert.Equal(t, "Goblins Aggro", deck.Name)
	assert.Equal(t, []string{"R"}, deck.Colors)
	assert.NotEmpty(t, deck.ThemeCards)
}

func TestBuild_OnlyUsesAllowedCards(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)
	pool := goblinCollection()
	legal := testLegalSet(source)

	req := domain.BuildRequest{Theme: "goblins", Format: "modern"}
	_, validated, err := builder.Build(req, pool, legal)
	require.NoError(t, err)

	allowed := domain.BuildAllowedSet(pool, legal, "modern")
	for _, name := range validated.CardNames() {
		assert.True(t, allowed.Contains(name),
			"%s must come from the owned, format-legal intersection", name)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)
	legal := testLegalSet(source)

	req := domain.BuildRequest{Theme: "goblins", Format: "modern"}
	first, firstValidated, err := builder.Build(req, goblinCollection(), legal)
	require.NoError(t, err)
	second, secondValidated, err := builder.Build(req, goblinCollection(), legal)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce identical decks")
	assert.Equal(t, firstValidated.Maindeck(), secondValidated.Maindeck())
}

func TestBuild_UndersizedCollectionFails(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	pool := domain.NewOwnedCardPool(map[string]int{"Lightning Bolt": 4})
	req := domain.BuildRequest{Theme: "burn", Format: "modern"}

	_, _, err := builder.Build(req, pool, testLegalSet(source))

	var sizeErr *domain.DeckSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, domain.DefaultDeckSize, sizeErr.Requested)
	assert.Equal(t, 4, sizeErr.Actual, "the count reflects only cards the player owns")
}

func TestBuild_NoOwnedBasicsAddsNoBasics(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	pool := domain.NewOwnedCardPool(map[string]int{"Goblin Raider": 4})
	req := domain.BuildRequest{Theme: "goblins", Format: "modern", DeckSize: 10, LandCount: 6}

	_, _, err := builder.Build(req, pool, testLegalSet(source))

	var sizeErr *domain.DeckSizeError
	require.ErrorAs(t, err, &sizeErr,
		"without owned basics the mana base stays empty and the deck comes up short")
	assert.Equal(t, 10, sizeErr.Requested)
	assert.Equal(t, 4, sizeErr.Actual)
}

func TestBuild_NoLegalCardsFails(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	pool := domain.NewOwnedCardPool(map[string]int{"Lightning Bolt": 4})
	req := domain.BuildRequest{Theme: "burn", Format: "standard"}

	_, _, err := builder.Build(req, pool, map[string]struct{}{})

	var sizeErr *domain.DeckSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Contains(t, sizeErr.Detail, "no owned cards are legal")
}

func TestBuild_MustIncludes(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	req := domain.BuildRequest{
		Theme:        "goblins",
		Format:       "modern",
		IncludeCards: []string{"Shock", "Forgotten Cave", "Black Lotus"},
	}
	deck, _, err := builder.Build(req, goblinCollection(), testLegalSet(source))
	require.NoError(t, err)

	assert.Contains(t, deck.Cards, "Shock", "owned must-includes are kept")
	assert.Equal(t, scoreMustInclude, deck.CardScores["Shock"])
	assert.Contains(t, deck.Lands, "Forgotten Cave", "land must-includes join the mana base")
	assert.Equal(t, 4, deck.Lands["Forgotten Cave"], "the copy limit holds even for must-included lands")

	assert.True(t, hasWarning(deck.Warnings, "cannot include", "Black Lotus"),
		"unowned must-includes become warnings, not failures")
	assert.NotContains(t, deck.Cards, "Black Lotus")
}

func TestBuild_UnmatchedThemeFallsBack(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	req := domain.BuildRequest{Theme: "dragons", Format: "modern"}
	deck, _, err := builder.Build(req, goblinCollection(), testLegalSet(source))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultDeckSize, deck.TotalCards)
	assert.True(t, hasWarning(deck.Warnings, "no owned cards match the theme", "dragons"))
}

func TestBuild_ExplicitColorsWin(t *testing.T) {
	source := testCatalog()
	builder := testBuilder(t, source)

	req := domain.BuildRequest{Theme: "goblins", Format: "modern", Colors: []string{"r", "g"}}
	deck, _, err := builder.Build(req, goblinCollection(), testLegalSet(source))
	require.NoError(t, err)

	assert.Equal(t, []string{"R", "G"}, deck.Colors, "requested colors override theme colors, in WUBRG order")
}

// hasWarning reports whether any warning contains all of the substrings.
func hasWarning(warnings []string, subs ...string) bool {
	for _, w := range warnings {
		all := true
		for _, sub := range subs {
			if !strings.Contains(w, sub) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}
