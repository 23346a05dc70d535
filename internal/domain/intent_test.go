package domain

import "testing"

func TestNormalizeTheme(t *testing.T) {
	tests := []struct {
		raw       string
		wantTribe string
	}{
		{"goblin tribal", "goblin"},
		{"tribal goblins", "goblin"},
		{"goblins", "goblin"},
		{"Elf", "elf"},
		{"build me a zombie deck", "zombie"},
		{"vampires themed", "vampire"},
		{"burn", ""},
		{"lifegain", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			intent := NormalizeTheme(tt.raw)
			if intent.Tribe != tt.wantTribe {
				t.Errorf("NormalizeTheme(%q).Tribe = %q, want %q", tt.raw, intent.Tribe, tt.wantTribe)
			}
			if intent.RawTheme != tt.raw {
				t.Errorf("RawTheme = %q, want original %q", intent.RawTheme, tt.raw)
			}
			if intent.HasTribe() != (tt.wantTribe != "") {
				t.Errorf("HasTribe() = %v, inconsistent with Tribe %q", intent.HasTribe(), intent.Tribe)
			}
		})
	}
}

func TestCardMatchesTribe(t *testing.T) {
	tests := []struct {
		name     string
		cardName string
		card     CardRecord
		tribe    string
		want     bool
	}{
		{
			name:     "subtype match",
			cardName: "Skirk Prospector",
			card:     CardRecord{TypeLine: "Creature — Goblin"},
			tribe:    "goblin",
			want:     true,
		},
		{
			name:     "name word match without subtype",
			cardName: "Goblin Grenade",
			card:     CardRecord{TypeLine: "Sorcery"},
			tribe:    "goblin",
			want:     true,
		},
		{
			name:     "no match",
			cardName: "Lightning Bolt",
			card:     CardRecord{TypeLine: "Instant"},
			tribe:    "goblin",
			want:     false,
		},
		{
			name:     "substring of name word is not a match",
			cardName: "Hobgoblins of the Pit",
			card:     CardRecord{TypeLine: "Creature — Hobgoblin"},
			tribe:    "goblin",
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardMatchesTribe(tt.cardName, &tt.card, tt.tribe); got != tt.want {
				t.Errorf("CardMatchesTribe(%q, %q) = %v, want %v", tt.cardName, tt.tribe, got, tt.want)
			}
		})
	}
}

func TestMatchesThemeText(t *testing.T) {
	card := CardRecord{
		TypeLine:   "Instant",
		OracleText: "Lightning Bolt deals 3 damage to any target.",
	}
	if !MatchesThemeText("Lightning Bolt", &card, "damage") {
		t.Error("oracle text containing the theme should match")
	}
	if !MatchesThemeText("Lightning Bolt", &card, "lightning") {
		t.Error("card name containing the theme should match, case-insensitive")
	}
	if MatchesThemeText("Lightning Bolt", &card, "lifegain") {
		t.Error("unrelated theme should not match")
	}
}

func TestMatchesThemeIntent(t *testing.T) {
	goblin := CardRecord{TypeLine: "Creature — Goblin"}
	bolt := CardRecord{TypeLine: "Instant", OracleText: "deals 3 damage to any target"}

	tribal := NormalizeTheme("goblin tribal")
	if !MatchesThemeIntent("Raging Goblin", &goblin, tribal) {
		t.Error("tribal intent should match via subtype")
	}
	if MatchesThemeIntent("Lightning Bolt", &bolt, tribal) {
		t.Error("tribal intent should not fall back to text matching")
	}

	text := NormalizeTheme("damage")
	if !MatchesThemeIntent("Lightning Bolt", &bolt, text) {
		t.Error("non-tribal intent should match via oracle text")
	}
}
