package domain

// ColorOrder is the canonical WUBRG ordering used whenever colors are listed.
var ColorOrder = []string{"W", "U", "B", "R", "G"}

// BasicLandForColor maps a color letter to its basic land.
var BasicLandForColor = map[string]string{
	"W": "Plains",
	"U": "Island",
	"B": "Swamp",
	"R": "Mountain",
	"G": "Forest",
	"C": "Wastes",
}

// ColorWord maps a color letter to the word used in oracle text
// ("Add one {R}" lands say "red").
var ColorWord = map[string]string{
	"W": "white",
	"U": "blue",
	"B": "black",
	"R": "red",
	"G": "green",
}
