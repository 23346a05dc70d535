package domain

import (
	"regexp"
	"strings"
)

// knownTribes is the set of creature subtypes the theme normalizer can
// extract from free text. A subset of common tribes, extensible as needed.
var knownTribes = map[string]struct{}{
	"goblin": {}, "elf": {}, "human": {}, "zombie": {}, "vampire": {},
	"merfolk": {}, "dragon": {}, "angel": {}, "demon": {}, "wizard": {},
	"warrior": {}, "knight": {}, "soldier": {}, "cleric": {}, "rogue": {},
	"shaman": {}, "druid": {}, "elemental": {}, "beast": {}, "bird": {},
	"cat": {}, "dog": {}, "dinosaur": {}, "spirit": {}, "horror": {},
	"skeleton": {}, "rat": {}, "snake": {}, "spider": {}, "wolf": {},
	"bear": {}, "giant": {}, "troll": {}, "ogre": {}, "orc": {},
	"dwarf": {}, "faerie": {}, "pirate": {}, "sliver": {}, "phyrexian": {},
	"eldrazi": {}, "fungus": {}, "saproling": {}, "treefolk": {},
	"hydra": {}, "sphinx": {}, "kraken": {}, "leviathan": {}, "wurm": {},
	"golem": {}, "construct": {}, "myr": {}, "thopter": {}, "servo": {},
}

// noiseWords are stripped from theme strings before tribe extraction.
var noiseWords = map[string]struct{}{
	"tribal": {}, "deck": {}, "build": {}, "me": {}, "a": {}, "the": {},
	"with": {}, "around": {}, "themed": {}, "theme": {}, "based": {},
	"type": {}, "creature": {}, "creatures": {},
}

var themeTokenSplit = regexp.MustCompile(`[\s,;:]+`)
var nameTokenSplit = regexp.MustCompile(`[\s,\-']+`)

// ThemeIntent is a raw theme string normalized into structured form.
// Raw theme strings must never be used directly for card matching; all
// matching goes through NormalizeTheme first. Normalization is fully
// deterministic: no embeddings, no fuzzy matching.
type ThemeIntent struct {
	// Tribe is the extracted creature subtype ("goblin"), or empty when the
	// theme is not tribal.
	Tribe string
	// RawTheme is the original theme string, kept for fallback matching and
	// logging.
	RawTheme string
}

// HasTribe reports whether a tribe was extracted from the theme.
func (t ThemeIntent) HasTribe() bool {
	return t.Tribe != ""
}

// NormalizeTheme extracts tribe information from user phrases like
// "goblin tribal", "tribal goblins", or plain "goblins". Tokens are lowered,
// noise words removed, and each remaining token (and its naive singular)
// checked against the known tribes.
func NormalizeTheme(rawTheme string) ThemeIntent {
	if rawTheme == "" {
		return ThemeIntent{RawTheme: rawTheme}
	}

	tokens := themeTokenSplit.Split(strings.ToLower(strings.TrimSpace(rawTheme)), -1)
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if _, noise := noiseWords[token]; noise {
			continue
		}
		if _, ok := knownTribes[token]; ok {
			return ThemeIntent{Tribe: token, RawTheme: rawTheme}
		}
		// Handle simple -s plurals.
		if strings.HasSuffix(token, "s") && len(token) > 2 {
			singular := strings.TrimSuffix(token, "s")
			if _, ok := knownTribes[singular]; ok {
				return ThemeIntent{Tribe: singular, RawTheme: rawTheme}
			}
		}
	}
	return ThemeIntent{RawTheme: rawTheme}
}

// CardMatchesTribe reports whether a card belongs to a tribe, checking the
// type line's creature subtypes first and falling back to whole-word matches
// in the card name ("Goblin Maskmaker").
func CardMatchesTribe(cardName string, card *CardRecord, tribe string) bool {
	tribe = strings.ToLower(tribe)

	for _, subtype := range card.Subtypes() {
		if subtype == tribe {
			return true
		}
	}

	for _, token := range nameTokenSplit.Split(strings.ToLower(cardName), -1) {
		if token == tribe {
			return true
		}
	}
	return false
}

// MatchesThemeText reports whether the theme text appears, case-insensitive,
// in the card's name, type line, or oracle text. This is the fallback for
// non-tribal themes like "burn" or "lifegain".
func MatchesThemeText(cardName string, card *CardRecord, theme string) bool {
	theme = strings.ToLower(theme)
	if strings.Contains(strings.ToLower(cardName), theme) {
		return true
	}
	if strings.Contains(strings.ToLower(card.TypeLine), theme) {
		return true
	}
	return strings.Contains(strings.ToLower(card.OracleText), theme)
}

// MatchesThemeIntent reports whether a card matches a normalized theme
// intent: subtype matching when a tribe was extracted, raw text matching
// otherwise.
func MatchesThemeIntent(cardName string, card *CardRecord, intent ThemeIntent) bool {
	if intent.HasTribe() {
		return CardMatchesTribe(cardName, card, intent.Tribe)
	}
	return MatchesThemeText(cardName, card, intent.RawTheme)
}

// DeckIntent is the normalized request driving candidate-pool filtering.
// Zero values mean "no constraint": an absent field makes the corresponding
// filter stage a full passthrough.
type DeckIntent struct {
	Format     string
	Colors     []string
	Tribe      string
	Archetype  Archetype
	Confidence float64
}
