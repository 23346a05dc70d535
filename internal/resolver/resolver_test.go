package resolver

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

type memSource struct {
	cards map[string]*domain.CardRecord
	names []string
}

func newMemSource(names ...string) *memSource {
	s := &memSource{cards: make(map[string]*domain.CardRecord, len(names))}
	for _, name := range names {
		s.cards[name] = &domain.CardRecord{Name: name}
		s.names = append(s.names, name)
	}
	sort.Strings(s.names)
	return s
}

func (s *memSource) Get(name string) (*domain.CardRecord, bool) {
	c, ok := s.cards[name]
	return c, ok
}

func (s *memSource) Names() []string { return s.names }

func testResolver() *Resolver {
	return New(newMemSource(
		"Lightning Bolt",
		"Lightning Strike",
		"Goblin Guide",
		"Shock",
	), nil)
}

func TestResolve_ExactMatch(t *testing.T) {
	r := testResolver()
	result := r.Resolve([]InventoryEntry{{Name: "Lightning Bolt", Count: 4}})

	assert.True(t, result.AllResolved())
	assert.Equal(t, map[string]int{"Lightning Bolt": 4}, result.Owned)
}

func TestResolve_CaseInsensitiveFallback(t *testing.T) {
	r := testResolver()
	result := r.Resolve([]InventoryEntry{{Name: "lightning bolt", Count: 2}})

	assert.True(t, result.AllResolved())
	assert.Equal(t, 2, result.Owned["Lightning Bolt"], "counts land on the canonical name")
}

func TestResolve_ConsolidatesPrintings(t *testing.T) {
	r := testResolver()
	result := r.Resolve([]InventoryEntry{
		{Name: "Shock", Count: 2, SetCode: "dom"},
		{Name: "Shock", Count: 3, SetCode: "m19"},
	})

	assert.Equal(t, map[string]int{"Shock": 5}, result.Owned)
}

func TestResolve_UnknownNameGetsSuggestions(t *testing.T) {
	r := testResolver()
	result := r.Resolve([]InventoryEntry{{Name: "Lightning Bolt", Count: 1}})

	require.Len(t, result.Unresolved, 1)
	u := result.Unresolved[0]
	assert.Equal(t, "card not found in catalog", u.Reason)
	assert.Contains(t, u.Suggestions, "Lightning Bolt",
		"suggestions come from real catalog names only")
	assert.LessOrEqual(t, len(u.Suggestions), maxSuggestions)
}

func TestResolve_BadEntries(t *testing.T) {
	r := testResolver()
	result := r.Resolve([]InventoryEntry{
		{Name: "   ", Count: 1},
		{Name: "Shock", Count: 0},
		{Name: "Shock", Count: -2},
	})

	require.Len(t, result.Unresolved, 3)
	assert.Equal(t, "empty card name", result.Unresolved[0].Reason)
	assert.Equal(t, "invalid count 0", result.Unresolved[1].Reason)
	assert.Equal(t, "invalid count -2", result.Unresolved[2].Reason)
	assert.Empty(t, result.Owned)
}

func TestResolveOrFail(t *testing.T) {
	r := testResolver()

	owned, err := r.ResolveOrFail([]InventoryEntry{
		{Name: "Shock", Count: 4},
		{Name: "Goblin Guide", Count: 4},
	})
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	_, err = r.ResolveOrFail([]InventoryEntry{
		{Name: "Shock", Count: 4},
		{Name: "Totally Made Up Card", Count: 1},
	})
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Len(t, resErr.Unresolved, 1)
	assert.Contains(t, resErr.Error(), "Totally Made Up Card")
}

func TestResolutionError_TruncatesLongFailureLists(t *testing.T) {
	unresolved := make([]Unresolved, 8)
	for i := range unresolved {
		unresolved[i] = Unresolved{Entry: InventoryEntry{Name: "Fake Card"}}
	}
	err := &ResolutionError{Unresolved: unresolved}

	assert.Contains(t, err.Error(), "8 cards could not be resolved")
	assert.Contains(t, err.Error(), "(and 3 more)")
}
