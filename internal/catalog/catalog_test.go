package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogJSON = `[
	{
		"name": "Lightning Bolt",
		"type_line": "Instant",
		"cmc": 1,
		"colors": ["R"],
		"oracle_text": "Lightning Bolt deals 3 damage to any target.",
		"set": "lea",
		"collector_number": "161",
		"legalities": {"modern": "legal", "standard": "not_legal"}
	},
	{
		"name": "Lightning Bolt",
		"type_line": "Instant",
		"cmc": 1,
		"set": "m10",
		"collector_number": "146",
		"legalities": {"modern": "legal"}
	},
	{
		"name": "Shock",
		"type_line": "Instant",
		"cmc": 1,
		"legalities": {"standard": "legal", "modern": "legal"}
	},
	{
		"name": "",
		"type_line": "Invalid",
		"cmc": 2
	},
	{
		"name": "Negative Cost",
		"cmc": -3
	}
]`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(strings.NewReader(testCatalogJSON), nil)
	require.NoError(t, err)
	return c
}

func TestLoad(t *testing.T) {
	c := loadTestCatalog(t)

	assert.Equal(t, 2, c.Len(), "invalid records are dropped, duplicates collapse")
	assert.Equal(t, []string{"Lightning Bolt", "Shock"}, c.Names())
}

func TestLoad_FirstPrintingWins(t *testing.T) {
	c := loadTestCatalog(t)

	card, ok := c.Get("Lightning Bolt")
	require.True(t, ok)
	assert.Equal(t, "lea", card.Set)
	assert.Equal(t, "161", card.CollectorNumber)
}

func TestLoad_EmptyCatalog(t *testing.T) {
	_, err := Load(strings.NewReader(`[]`), nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = Load(strings.NewReader(`[{"name": "", "cmc": 1}]`), nil)
	assert.ErrorIs(t, err, ErrEmptyCatalog, "a catalog of only invalid records is empty")
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"not": "an array"}`), nil)
	assert.Error(t, err)

	_, err = Load(strings.NewReader(`[{"name": "Shock", "cmc":`), nil)
	assert.Error(t, err)
}

func TestCatalog_Get(t *testing.T) {
	c := loadTestCatalog(t)

	card, ok := c.Get("Shock")
	require.True(t, ok)
	assert.Equal(t, "Shock", card.Name)

	_, ok = c.Get("shock")
	assert.False(t, ok, "lookup is exact, not case-insensitive")

	_, ok = c.Get("Black Lotus")
	assert.False(t, ok)
}

func TestCatalog_LegalSet(t *testing.T) {
	c := loadTestCatalog(t)

	modern := c.LegalSet("modern")
	assert.Len(t, modern, 2)

	standard := c.LegalSet("standard")
	assert.Len(t, standard, 1)
	assert.Contains(t, standard, "Shock")
	assert.NotContains(t, standard, "Lightning Bolt")

	unknown := c.LegalSet("vintage-ish")
	assert.Empty(t, unknown, "unknown formats yield an empty set, not an error")

	again := c.LegalSet("modern")
	assert.Len(t, again, 2, "cached set is stable across calls")
}
