package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forgebreaker/internal/resolver"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Format
	}{
		{"empty", "", FormatSimple},
		{"simple lines", "4 Lightning Bolt\n2 Shock", FormatSimple},
		{"simple with x", "4x Lightning Bolt", FormatSimple},
		{"full export", "Deck\n4 Lightning Bolt (LEB) 163", FormatFull},
		{"csv header", "Card Name,Quantity,Set\nLightning Bolt,4,LEB", FormatCSV},
		{"count header", "count,name\n4,Shock", FormatCSV},
		{"comma without header is not csv", "Krenko, Mob Boss rules", FormatSimple},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.text))
		})
	}
}

func TestParseLines_Simple(t *testing.T) {
	entries := ParseLines("4 Lightning Bolt\n2x Shock\n\n1 Krenko, Mob Boss")

	assert.Equal(t, []resolver.InventoryEntry{
		{Name: "Lightning Bolt", Count: 4},
		{Name: "Shock", Count: 2},
		{Name: "Krenko, Mob Boss", Count: 1},
	}, entries)
}

func TestParseLines_FullExport(t *testing.T) {
	text := `Deck
4 Lightning Bolt (LEB) 163
20 Mountain (DOM) 290a

Sideboard
2 Smash to Smithereens (M15) 159`

	entries := ParseLines(text)

	assert.Equal(t, []resolver.InventoryEntry{
		{Name: "Lightning Bolt", Count: 4, SetCode: "LEB", Collector: "163"},
		{Name: "Mountain", Count: 20, SetCode: "DOM", Collector: "290a"},
		{Name: "Smash to Smithereens", Count: 2, SetCode: "M15", Collector: "159"},
	}, entries, "section headers and blank lines are skipped")
}

func TestParseLines_SkipsUnparseableLines(t *testing.T) {
	entries := ParseLines("4 Lightning Bolt\nthis is not a card line\nShock")
	assert.Equal(t, []resolver.InventoryEntry{{Name: "Lightning Bolt", Count: 4}}, entries)
}

func TestParseCSV(t *testing.T) {
	text := `Card Name,Quantity,Set
Lightning Bolt,4,LEB
Shock,,M19
"Krenko, Mob Boss",2,M13`

	entries, err := ParseCSV(text)
	require.NoError(t, err)

	assert.Equal(t, []resolver.InventoryEntry{
		{Name: "Lightning Bolt", Count: 4, SetCode: "LEB"},
		{Name: "Shock", Count: 1, SetCode: "M19"},
		{Name: "Krenko, Mob Boss", Count: 2, SetCode: "M13"},
	}, entries, "missing quantities default to one per row")
}

func TestParseCSV_NoNameColumn(t *testing.T) {
	entries, err := ParseCSV("foo,bar\n1,2")
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestParse_AutoDetects(t *testing.T) {
	entries, err := Parse("Card Name,Count\nShock,3")
	require.NoError(t, err)
	assert.Equal(t, []resolver.InventoryEntry{{Name: "Shock", Count: 3}}, entries)

	entries, err = Parse("3 Shock")
	require.NoError(t, err)
	assert.Equal(t, []resolver.InventoryEntry{{Name: "Shock", Count: 3}}, entries)
}
