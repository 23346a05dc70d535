// Package parser reads collection export text in the formats players
// actually paste: full deck-export lines with set codes, bare
// "quantity name" lines, and CSV collection exports. Parsing does not
// consolidate duplicates; that is the resolver's job.
package parser

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"

	"github.com/phrazzld/forgebreaker/internal/resolver"
)

// Format identifies a detected collection export format.
type Format string

const (
	FormatSimple Format = "simple"
	FormatCSV    Format = "csv"
	FormatFull   Format = "full"
)

var (
	// "4 Lightning Bolt (LEB) 163", collector numbers may have letter
	// suffixes like "290a".
	fullLinePattern = regexp.MustCompile(`^(\d+)\s+(.+?)\s+\(([A-Z0-9]+)\)\s+(\S+)$`)

	// "4 Lightning Bolt" or "4x Lightning Bolt".
	simpleLinePattern = regexp.MustCompile(`(?i)^(\d+)x?\s+(.+)$`)
)

// Section headers in deck exports, skipped during parsing.
var sectionHeaders = map[string]struct{}{
	"deck":      {},
	"sideboard": {},
	"commander": {},
	"companion": {},
}

// DetectFormat guesses the format of collection text: CSV if the first line
// looks like a header row, full deck-export if early lines carry set codes,
// simple otherwise.
func DetectFormat(text string) Format {
	text = strings.TrimSpace(text)
	if text == "" {
		return FormatSimple
	}
	lines := strings.Split(text, "\n")

	first := strings.ToLower(strings.TrimSpace(lines[0]))
	if strings.Contains(first, ",") {
		for _, header := range []string{"card name", "name", "quantity", "count"} {
			if strings.Contains(first, header) {
				return FormatCSV
			}
		}
	}

	for i, line := range lines {
		if i == 10 {
			break
		}
		if fullLinePattern.MatchString(strings.TrimSpace(line)) {
			return FormatFull
		}
	}
	return FormatSimple
}

// Parse auto-detects the format and parses the text into inventory
// entries, one per input line. Empty lines, section headers, and lines
// matching no pattern are skipped.
func Parse(text string) ([]resolver.InventoryEntry, error) {
	switch DetectFormat(text) {
	case FormatCSV:
		return ParseCSV(text)
	default:
		return ParseLines(text), nil
	}
}

// ParseLines parses line-oriented exports, accepting both the full format
// with set codes and the bare "quantity name" format on a per-line basis.
func ParseLines(text string) []resolver.InventoryEntry {
	var entries []resolver.InventoryEntry
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, ok := sectionHeaders[strings.ToLower(line)]; ok {
			continue
		}

		if m := fullLinePattern.FindStringSubmatch(line); m != nil {
			qty, _ := strconv.Atoi(m[1])
			entries = append(entries, resolver.InventoryEntry{
				Name:      strings.TrimSpace(m[2]),
				Count:     qty,
				SetCode:   m[3],
				Collector: m[4],
			})
			continue
		}
		if m := simpleLinePattern.FindStringSubmatch(line); m != nil {
			name := strings.TrimSpace(m[2])
			if name == "" {
				continue
			}
			qty, _ := strconv.Atoi(m[1])
			entries = append(entries, resolver.InventoryEntry{
				Name:  name,
				Count: qty,
			})
		}
	}
	return entries
}

// ParseCSV parses a CSV collection export. The name column is required
// (headers "card name", "name", or "card", case-insensitive); the quantity
// column is optional and defaults to 1 per row.
func ParseCSV(text string) ([]resolver.InventoryEntry, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(text)))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	nameCol, qtyCol, setCol := -1, -1, -1
	for i, header := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(header)) {
		case "card name", "name", "card":
			if nameCol == -1 {
				nameCol = i
			}
		case "quantity", "count", "qty":
			if qtyCol == -1 {
				qtyCol = i
			}
		case "set", "set code":
			if setCol == -1 {
				setCol = i
			}
		}
	}
	if nameCol == -1 {
		return nil, nil
	}

	var entries []resolver.InventoryEntry
	for _, row := range rows[1:] {
		if nameCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		qty := 1
		if qtyCol >= 0 && qtyCol < len(row) {
			if parsed, err := strconv.Atoi(strings.TrimSpace(row[qtyCol])); err == nil {
				qty = parsed
			}
		}
		entry := resolver.InventoryEntry{Name: name, Count: qty}
		if setCol >= 0 && setCol < len(row) {
			entry.SetCode = strings.TrimSpace(row[setCol])
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
