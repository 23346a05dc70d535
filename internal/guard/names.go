package guard

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Patterns that detect card-name-shaped references in output text:
// a quantity prefix ("4 Lightning Bolt", "4x Lightning Bolt"), markdown
// bold, and bracket references. Intentionally broad; every match is
// validated against the deck rather than trusted.
var cardReferencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)\b\d+x?\s+([A-Z][A-Za-z'\-,\s]+?)(?:\s*[(,.:]|$)`),
	regexp.MustCompile(`\*\*([A-Z][A-Za-z'\-,\s]+?)\*\*`),
	regexp.MustCompile(`\[([A-Z][A-Za-z'\-,\s]+?)\]`),
}

// Trailing words that mark a capitalized phrase as prose, not a card name.
var nonCardEndings = []string{
	"analysis", "deck", "cards", "lands", "spells", "creatures", "colors",
	"curve", "tips", "warnings", "issues", "notes", "reference", "upgrades",
	"section", "breakdown", "count",
}

// Game terminology that looks like a card name but never is one.
var nonCardExact = map[string]struct{}{
	"summon":       {},
	"instant":      {},
	"sorcery":      {},
	"enchantment":  {},
	"artifact":     {},
	"creature":     {},
	"planeswalker": {},
	"tribal":       {},
	"legendary":    {},
}

// CanonicalKey returns the comparison key for a card name: the subtitle
// after the first comma is stripped, internal whitespace is collapsed, and
// the result is lowercased. This gives existence-level matching, not
// identity resolution; a bare "Jace" matches any validated Jace card.
func CanonicalKey(name string) string {
	base, _, _ := strings.Cut(name, ",")
	return strings.ToLower(strings.Join(strings.Fields(base), " "))
}

// ExtractCandidateNames scans text for anything that might be a card name
// and returns the candidates sorted and deduplicated.
func ExtractCandidateNames(text string) []string {
	seen := make(map[string]struct{})
	for _, pattern := range cardReferencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(match[len(match)-1])
			if likelyCardName(name) {
				seen[name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// likelyCardName filters obvious non-names. Deliberately conservative:
// anything that might be a card name passes and gets validated.
func likelyCardName(name string) bool {
	if len(name) < 3 || len(name) > 50 {
		return false
	}
	first := []rune(name)[0]
	if !unicode.IsUpper(first) {
		return false
	}
	lower := strings.ToLower(name)
	if _, ok := nonCardExact[lower]; ok {
		return false
	}
	for _, ending := range nonCardEndings {
		if strings.HasSuffix(lower, ending) {
			return false
		}
	}
	return true
}
