// Package deckgen implements deterministic deck construction: candidate
// filtering, theme and archetype detection, curve-driven selection, mana
// base allocation, and exact-size enforcement. All functions are pure with
// respect to their inputs; identical inputs produce identical decks.
package deckgen

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// Selection scores. Must-includes outrank theme cards, which outrank
// support, so size enforcement trims in the reverse of selection priority.
const (
	scoreMustInclude = 100.0
	scoreThemeBase   = 10.0
	scoreSupport     = 5.0
)

// Curve comfort thresholds used for archetype warnings.
const curveWarningPivot = 2.5

// Builder constructs decks from a player's owned, format-legal cards.
// It is stateless across builds and safe for concurrent use.
type Builder struct {
	source CardSource
	params *Params
	logger *slog.Logger
}

// NewBuilder creates a deck builder backed by the given card source.
// A nil params uses the default tuning.
func NewBuilder(source CardSource, params *Params, logger *slog.Logger) (*Builder, error) {
	if source == nil {
		return nil, errors.New("card source is required")
	}
	if params == nil {
		params = NewDefaultParams()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		source: source,
		params: params,
		logger: logger.With("component", "deck_builder"),
	}, nil
}

// Build constructs an exactly req.DeckSize card deck around a theme, drawing
// only from the intersection of the owned pool and the format's legal set.
// Degraded conditions (no theme matches, role shortfalls, a thin mana base)
// surface as warnings on the returned deck. An unsatisfiable size is a
// *domain.DeckSizeError and no deck is returned. Identical inputs always
// produce identical decks.
func (b *Builder) Build(
	req domain.BuildRequest,
	pool domain.OwnedCardPool,
	legal map[string]struct{},
) (*domain.BuiltDeck, domain.ValidatedDeck, error) {
	req = req.Normalize()

	allowed := domain.BuildAllowedSet(pool, legal, req.Format)
	if allowed.Empty() {
		return nil, domain.ValidatedDeck{}, &domain.DeckSizeError{
			Requested: req.DeckSize,
			Actual:    0,
			Detail:    fmt.Sprintf("no owned cards are legal in %s", req.Format),
		}
	}

	intent := domain.NormalizeTheme(req.Theme)
	poolIntent := domain.DeckIntent{
		Colors: req.Colors,
		Tribe:  intent.Tribe,
	}
	candidatePool, metrics := BuildCandidatePool(poolIntent, allowed, b.source)
	b.logger.Debug("candidate pool filtered",
		"initial", metrics.Initial,
		"after_format", metrics.AfterFormat,
		"after_color", metrics.AfterColor,
		"after_tribe", metrics.AfterTribe,
		"after_archetype", metrics.AfterArchetype,
	)

	var warnings, notes []string

	themeCards := b.themeCandidates(candidatePool, allowed, intent, true)
	if len(themeCards) == 0 {
		warnings = append(warnings,
			fmt.Sprintf("no owned cards match the theme %q; built a general-purpose deck instead", req.Theme))
		themeCards = b.themeCandidates(candidatePool, allowed, intent, false)
	}

	deckColors := b.deckColors(req.Colors, themeCards)

	records := make([]*domain.CardRecord, 0, len(themeCards))
	for _, c := range themeCards {
		records = append(records, c.card)
	}
	archetype := DetectArchetype(req.Theme, records, b.params)

	nonlandTarget := req.DeckSize - req.LandCount
	if nonlandTarget < 0 {
		nonlandTarget = 0
	}
	targetCurve := b.params.curveForTarget(archetype, nonlandTarget)

	cards := make(map[string]int)
	includedLands := make(map[string]int)
	scores := make(map[string]float64)

	for _, name := range req.IncludeCards {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := domain.ValidateCard(name, allowed, 1); err != nil {
			var notAllowed *domain.CardNotAllowedError
			if errors.As(err, &notAllowed) {
				warnings = append(warnings,
					fmt.Sprintf("cannot include %q: %s", name, notAllowed.Reason))
				continue
			}
			return nil, domain.ValidatedDeck{}, err
		}
		card, _ := b.source.Get(name)
		qty := allowed.Quantity(name)
		if qty > domain.DefaultMaxCopies {
			qty = domain.DefaultMaxCopies
		}
		if card != nil && card.IsLand() {
			includedLands[name] = qty
		} else {
			cards[name] = qty
		}
		scores[name] = scoreMustInclude
	}

	b.addThemeCards(cards, scores, themeCards, nonlandTarget, targetCurve)

	nonlands := countCards(cards)
	if nonlands < nonlandTarget {
		picks := SelectSupport(
			allowed, b.source, asSet(deckColors), cards,
			nonlandTarget-nonlands,
			CalculateCurve(cards, b.source), targetCurve, b.params,
		)
		for _, pick := range picks {
			cards[pick.Name] = pick.Quantity
			scores[pick.Name] = scoreSupport
		}
		if len(picks) > 0 {
			notes = append(notes,
				fmt.Sprintf("added %d support cards to round out the deck", len(picks)))
		}
	}

	nonlands = countCards(cards)
	if nonlands < nonlandTarget {
		warnings = append(warnings,
			fmt.Sprintf("collection only fills %d of %d nonland slots", nonlands, nonlandTarget))
	}

	landTarget := req.LandCount - countCards(includedLands)
	if landTarget < 0 {
		landTarget = 0
	}
	lands := BuildManaBase(allowed, b.source, deckColors, landTarget, b.pipCounts(cards, deckColors), includedLands)
	for name, qty := range includedLands {
		lands[name] += qty
	}
	if got := countCards(lands); got < req.LandCount {
		warnings = append(warnings,
			fmt.Sprintf("mana base is short: %d of %d land slots filled", got, req.LandCount))
	}

	roleCounts := b.roleCounts(cards)
	warnings = append(warnings, b.roleWarnings(archetype, roleCounts)...)
	warnings = append(warnings, b.curveWarnings(archetype, cards)...)

	deck := &domain.BuiltDeck{
		Name:         deckName(req.Theme, archetype),
		Cards:        cards,
		Lands:        lands,
		Colors:       deckColors,
		ThemeCards:   memberNames(cards, themeCards),
		SupportCards: supportNamesIn(cards, scores),
		Archetype:    archetype,
		ManaCurve:    CalculateCurve(cards, b.source),
		RoleCounts:   roleCounts,
		Notes:        notes,
		Warnings:     warnings,
		CardScores:   scores,
	}

	if err := EnforceDeckSize(deck, req.DeckSize); err != nil {
		b.logger.Info("deck build failed size enforcement",
			"requested", req.DeckSize, "error", err)
		return nil, domain.ValidatedDeck{}, err
	}
	deck.ManaCurve = CalculateCurve(deck.Cards, b.source)
	deck.RoleCounts = b.roleCounts(deck.Cards)
	deck.ThemeCards = memberNames(deck.Cards, themeCards)
	deck.SupportCards = supportNamesIn(deck.Cards, scores)

	maindeck := make(map[string]int, len(deck.Cards)+len(deck.Lands))
	for name, qty := range deck.Cards {
		maindeck[name] = qty
	}
	for name, qty := range deck.Lands {
		maindeck[name] += qty
	}
	for _, name := range sortedKeys(maindeck) {
		if err := domain.ValidateCard(name, allowed, 1); err != nil {
			return nil, domain.ValidatedDeck{}, err
		}
	}

	validated := domain.NewValidatedDeck(maindeck, nil, deck.Name, req.Format, allowed.Source)
	b.logger.Info("deck built",
		"name", deck.Name,
		"archetype", string(archetype),
		"total_cards", deck.TotalCards,
		"warnings", len(deck.Warnings),
	)
	return deck, validated, nil
}

// themeCandidates collects nonland candidates from the filtered pool, in
// name order. With matchTheme set only cards matching the theme intent are
// returned; otherwise every nonland candidate qualifies.
func (b *Builder) themeCandidates(
	pool map[string]struct{},
	allowed domain.AllowedCardSet,
	intent domain.ThemeIntent,
	matchTheme bool,
) []candidate {
	var out []candidate
	for _, name := range sortedSet(pool) {
		card, ok := b.source.Get(name)
		if !ok || card.IsLand() {
			continue
		}
		if matchTheme && !domain.MatchesThemeIntent(name, card, intent) {
			continue
		}
		out = append(out, candidate{name: name, qty: allowed.Quantity(name), card: card})
	}
	return out
}

// addThemeCards adds theme matches to the deck, best curve fit first, until
// the nonland target is reached or the matches run out.
func (b *Builder) addThemeCards(
	cards map[string]int,
	scores map[string]float64,
	themeCards []candidate,
	nonlandTarget int,
	targetCurve Curve,
) {
	current := CalculateCurve(cards, b.source)

	ranked := make([]candidate, 0, len(themeCards))
	fit := make(map[string]float64, len(themeCards))
	for _, c := range themeCards {
		if _, taken := cards[c.name]; taken {
			continue
		}
		ranked = append(ranked, c)
		fit[c.name] = ScoreForCurve(c.card.ManaValue, current, targetCurve)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return fit[ranked[i].name] > fit[ranked[j].name]
	})

	remaining := nonlandTarget - countCards(cards)
	for _, c := range ranked {
		if remaining <= 0 {
			break
		}
		qty := c.qty
		if qty > domain.DefaultMaxCopies {
			qty = domain.DefaultMaxCopies
		}
		if qty > remaining {
			qty = remaining
		}
		cards[c.name] = qty
		scores[c.name] = scoreThemeBase + fit[c.name]
		remaining -= qty
	}
}

// deckColors determines the deck's colors: an explicit request wins,
// otherwise the union of theme card color identities, in WUBRG order.
// A deck with no colored cards at all is colorless.
func (b *Builder) deckColors(requested []string, themeCards []candidate) []string {
	if len(requested) > 0 {
		return orderColors(asSet(requested))
	}
	union := make(map[string]struct{})
	for _, c := range themeCards {
		for _, color := range c.card.IdentityColors() {
			union[color] = struct{}{}
		}
	}
	if len(union) == 0 {
		return []string{"C"}
	}
	return orderColors(union)
}

// pipCounts tallies colored mana symbols in the mana costs of the deck's
// nonland cards, weighted by quantity, for the deck's colors only.
func (b *Builder) pipCounts(cards map[string]int, deckColors []string) map[string]int {
	counts := make(map[string]int, len(deckColors))
	for name, qty := range cards {
		card, ok := b.source.Get(name)
		if !ok {
			continue
		}
		cost := strings.ToUpper(card.ManaCost)
		for _, color := range deckColors {
			counts[color] += strings.Count(cost, color) * qty
		}
	}
	return counts
}

func (b *Builder) roleCounts(cards map[string]int) map[domain.Role]int {
	counts := make(map[domain.Role]int)
	for name, qty := range cards {
		card, ok := b.source.Get(name)
		if !ok {
			continue
		}
		for _, role := range cardRoles(card, b.params) {
			counts[role] += qty
		}
	}
	return counts
}

func (b *Builder) roleWarnings(archetype domain.Archetype, counts map[domain.Role]int) []string {
	targets := b.params.RoleTargets[archetype]
	var out []string
	for _, role := range domain.RoleOrder {
		want := targets[role]
		if want > 0 && counts[role] < want {
			out = append(out, fmt.Sprintf("light on %s: %d of %d recommended for %s",
				role.Display(), counts[role], want, archetype))
		}
	}
	return out
}

func (b *Builder) curveWarnings(archetype domain.Archetype, cards map[string]int) []string {
	total := 0
	weighted := 0.0
	for name, qty := range cards {
		card, ok := b.source.Get(name)
		if !ok {
			continue
		}
		total += qty
		weighted += card.ManaValue * float64(qty)
	}
	if total == 0 {
		return nil
	}
	avg := weighted / float64(total)
	switch {
	case archetype == domain.ArchetypeAggro && avg > curveWarningPivot:
		return []string{fmt.Sprintf("average mana value %.1f is high for an aggressive deck", avg)}
	case archetype == domain.ArchetypeControl && avg < curveWarningPivot:
		return []string{fmt.Sprintf("average mana value %.1f is low for a control deck", avg)}
	}
	return nil
}

func deckName(theme string, archetype domain.Archetype) string {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return titleCase(string(archetype)) + " Deck"
	}
	return titleCase(theme) + " " + titleCase(string(archetype))
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func countCards(cards map[string]int) int {
	total := 0
	for _, qty := range cards {
		total += qty
	}
	return total
}

func asSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func orderColors(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for _, c := range domain.ColorOrder {
		if _, ok := set[c]; ok {
			out = append(out, c)
		}
	}
	if _, ok := set["C"]; ok {
		out = append(out, "C")
	}
	return out
}

// memberNames returns the candidates that made it into the deck, sorted.
func memberNames(cards map[string]int, candidates []candidate) []string {
	var out []string
	for _, c := range candidates {
		if _, ok := cards[c.name]; ok {
			out = append(out, c.name)
		}
	}
	sort.Strings(out)
	return out
}

// supportNamesIn returns deck cards that were selected as support, sorted.
func supportNamesIn(cards map[string]int, scores map[string]float64) []string {
	var out []string
	for name := range cards {
		if scores[name] == scoreSupport {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
