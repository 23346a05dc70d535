package deckgen

import (
	"github.com/phrazzld/forgebreaker/internal/domain"
)

// Curve maps mana value buckets (1 through 6, where 6 means "six or more")
// to a target number of nonland cards at that bucket.
type Curve map[int]int

// Params defines all configurable parameters for the deck building algorithm.
type Params struct {
	// Target mana curves per archetype, expressed for a 36 nonland deck.
	ArchetypeCurves map[domain.Archetype]Curve

	// Keywords whose presence in a theme or in card text counts toward an
	// archetype's detection score.
	ArchetypeIndicators map[domain.Archetype][]string

	// Keywords that mark a card as filling a functional role.
	RoleKeywords map[domain.Role][]string

	// Minimum number of cards each archetype wants per role.
	RoleTargets map[domain.Archetype]map[domain.Role]int

	// Generic keywords that make a card a reasonable support inclusion.
	SupportKeywords []string

	// Average mana value thresholds used as archetype detection bonuses.
	LowCurveThreshold  float64
	HighCurveThreshold float64
}

// NewDefaultParams returns the standard tuning for deck construction.
func NewDefaultParams() *Params {
	return &Params{
		ArchetypeCurves: map[domain.Archetype]Curve{
			domain.ArchetypeAggro:    {1: 10, 2: 12, 3: 8, 4: 4, 5: 2, 6: 0},
			domain.ArchetypeMidrange: {1: 4, 2: 8, 3: 10, 4: 8, 5: 4, 6: 2},
			domain.ArchetypeControl:  {1: 2, 2: 6, 3: 8, 4: 10, 5: 6, 6: 4},
			domain.ArchetypeCombo:    {1: 6, 2: 8, 3: 8, 4: 6, 5: 4, 6: 4},
		},
		ArchetypeIndicators: map[domain.Archetype][]string{
			domain.ArchetypeAggro: {
				"haste", "attack", "combat", "first strike", "double strike",
				"prowess", "aggressive", "burn", "damage to any target",
			},
			domain.ArchetypeControl: {
				"counter target", "destroy all", "exile all", "board wipe",
				"draw two", "draw three", "return target", "wrath",
			},
			domain.ArchetypeCombo: {
				"whenever you cast", "storm", "copy", "untap", "infinite",
				"sacrifice a", "search your library",
			},
			domain.ArchetypeMidrange: {
				"value", "enters the battlefield", "when this creature dies",
				"graveyard", "deathtouch", "trample",
			},
		},
		RoleKeywords: map[domain.Role][]string{
			domain.RoleRemoval: {
				"destroy target", "exile target", "deals damage to target",
				"fight target", "-x/-x", "return target creature",
			},
			domain.RoleCardDraw: {
				"draw a card", "draw two", "draw three", "scry", "surveil",
				"look at the top",
			},
			domain.RoleRamp: {
				"add one mana", "add two mana", "search your library for a basic",
				"add {", "treasure",
			},
			domain.RoleFinisher: {
				"flying", "trample", "can't be blocked", "double strike",
				"overwhelm", "each opponent loses",
			},
		},
		RoleTargets: map[domain.Archetype]map[domain.Role]int{
			domain.ArchetypeAggro: {
				domain.RoleRemoval:  4,
				domain.RoleFinisher: 4,
			},
			domain.ArchetypeMidrange: {
				domain.RoleRemoval:  6,
				domain.RoleCardDraw: 2,
				domain.RoleRamp:     2,
				domain.RoleFinisher: 4,
			},
			domain.ArchetypeControl: {
				domain.RoleRemoval:  8,
				domain.RoleCardDraw: 4,
				domain.RoleFinisher: 2,
			},
			domain.ArchetypeCombo: {
				domain.RoleRemoval:  4,
				domain.RoleCardDraw: 4,
				domain.RoleRamp:     2,
			},
		},
		SupportKeywords: []string{
			"draw", "destroy", "exile", "counter", "search", "scry",
			"damage", "create", "token", "sacrifice", "return",
		},
		LowCurveThreshold:  2.0,
		HighCurveThreshold: 3.5,
	}
}

// curveForTarget scales an archetype curve, defined for a 36 nonland deck,
// to an arbitrary nonland target. Bucket counts are scaled proportionally
// with remainders assigned to the fullest buckets first so the totals match.
func (p *Params) curveForTarget(archetype domain.Archetype, nonlandTarget int) Curve {
	base, ok := p.ArchetypeCurves[archetype]
	if !ok {
		base = p.ArchetypeCurves[domain.ArchetypeMidrange]
	}

	baseTotal := 0
	for _, n := range base {
		baseTotal += n
	}
	if baseTotal == 0 || baseTotal == nonlandTarget {
		out := make(Curve, len(base))
		for k, v := range base {
			out[k] = v
		}
		return out
	}

	out := make(Curve, len(base))
	assigned := 0
	type remainder struct {
		bucket int
		frac   float64
	}
	remainders := make([]remainder, 0, len(base))
	for bucket := 1; bucket <= 6; bucket++ {
		exact := float64(base[bucket]) * float64(nonlandTarget) / float64(baseTotal)
		floor := int(exact)
		out[bucket] = floor
		assigned += floor
		remainders = append(remainders, remainder{bucket: bucket, frac: exact - float64(floor)})
	}

	// Largest remainder first, lower bucket wins ties.
	for i := 0; i < len(remainders); i++ {
		for j := i + 1; j < len(remainders); j++ {
			a, b := remainders[i], remainders[j]
			if b.frac > a.frac || (b.frac == a.frac && b.bucket < a.bucket) {
				remainders[i], remainders[j] = b, a
			}
		}
	}
	for i := 0; assigned < nonlandTarget && i < len(remainders); i++ {
		out[remainders[i].bucket]++
		assigned++
	}
	return out
}
