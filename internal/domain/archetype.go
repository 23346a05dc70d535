package domain

// Archetype classifies a deck's overall game plan. Detection is a ranking,
// not a classifier with probabilities; ties are broken by the fixed priority
// order in ArchetypePriority so results are deterministic.
type Archetype string

const (
	ArchetypeAggro    Archetype = "aggro"
	ArchetypeMidrange Archetype = "midrange"
	ArchetypeControl  Archetype = "control"
	ArchetypeCombo    Archetype = "combo"
)

// ArchetypePriority is the tie-break order used by archetype detection:
// earlier entries win ties. Midrange is last because it is also the default
// on a complete tie or all-zero scores.
var ArchetypePriority = []Archetype{
	ArchetypeAggro,
	ArchetypeControl,
	ArchetypeCombo,
	ArchetypeMidrange,
}

// Valid reports whether a is one of the known archetypes.
func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeAggro, ArchetypeMidrange, ArchetypeControl, ArchetypeCombo:
		return true
	}
	return false
}

// Role classifies the function a card serves in a deck. Roles are detected
// by independent oracle-text keyword membership, so one card can count
// toward several roles.
type Role string

const (
	RoleRemoval  Role = "removal"
	RoleCardDraw Role = "card_draw"
	RoleRamp     Role = "ramp"
	RoleFinisher Role = "finisher"
)

// RoleOrder fixes the iteration order for role detection and reporting.
var RoleOrder = []Role{RoleRemoval, RoleCardDraw, RoleRamp, RoleFinisher}

// Display returns the human-readable form of the role ("card_draw" ->
// "card draw").
func (r Role) Display() string {
	switch r {
	case RoleCardDraw:
		return "card draw"
	default:
		return string(r)
	}
}
