package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Lightning Bolt", "lightning bolt"},
		{"Krenko, Mob Boss", "krenko"},
		{"  Goblin   Guide  ", "goblin guide"},
		{"JACE", "jace"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalKey(tt.name), "CanonicalKey(%q)", tt.name)
	}
}

func TestExtractCandidateNames(t *testing.T) {
	text := "Your deck runs 4 Lightning Bolt (DOM) and 2x Goblin Guide. " +
		"**Krenko, Mob Boss** leads the list; see also [Shock]."

	got := ExtractCandidateNames(text)

	assert.Contains(t, got, "Lightning Bolt")
	assert.Contains(t, got, "Goblin Guide")
	assert.Contains(t, got, "Krenko, Mob Boss")
	assert.Contains(t, got, "Shock")
	assert.IsIncreasing(t, got, "candidates come back sorted")
}

func TestExtractCandidateNames_FiltersProse(t *testing.T) {
	text := "## Deck Analysis\n\nThis is an **Instant** heavy deck with 24 lands " +
		"and a low Mana Curve. [Legendary] creatures are absent."

	got := ExtractCandidateNames(text)

	assert.NotContains(t, got, "Deck Analysis")
	assert.NotContains(t, got, "Instant")
	assert.NotContains(t, got, "Mana Curve")
	assert.NotContains(t, got, "Legendary")
}

func TestLikelyCardName(t *testing.T) {
	assert.True(t, likelyCardName("Lightning Bolt"))
	assert.False(t, likelyCardName("Ox"), "too short")
	assert.False(t, likelyCardName("lowercase start"))
	assert.False(t, likelyCardName("Sorcery"), "game terminology")
	assert.False(t, likelyCardName("Upgrade Tips"), "prose ending")
}
