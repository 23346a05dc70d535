// Package catalog loads and serves the card catalog from a bulk card-data
// snapshot. The catalog is read-only after load; per-format legality sets
// are computed lazily and cached for the life of the process.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// ErrEmptyCatalog is returned when a load yields no usable card records.
var ErrEmptyCatalog = errors.New("catalog contains no cards")

// Catalog is an immutable card database keyed by exact card name.
// Safe for concurrent use.
type Catalog struct {
	cards map[string]*domain.CardRecord
	names []string

	mu       sync.RWMutex
	legality map[string]map[string]struct{}

	logger *slog.Logger
}

// Load reads a JSON array of card records. The first printing of each name
// wins; later printings of the same card are skipped. Records that fail
// validation are dropped and counted, never stored.
func Load(r io.Reader, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog")

	dec := json.NewDecoder(r)
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading catalog array start: %w", err)
	}

	cards := make(map[string]*domain.CardRecord)
	skipped := 0
	for dec.More() {
		var card domain.CardRecord
		if err := dec.Decode(&card); err != nil {
			return nil, fmt.Errorf("decoding card record: %w", err)
		}
		if err := card.Validate(); err != nil {
			skipped++
			continue
		}
		if _, exists := cards[card.Name]; exists {
			continue
		}
		record := card
		cards[card.Name] = &record
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("reading catalog array end: %w", err)
	}

	if len(cards) == 0 {
		return nil, ErrEmptyCatalog
	}

	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)

	logger.Info("catalog loaded", "cards", len(cards), "skipped", skipped)
	return &Catalog{
		cards:    cards,
		names:    names,
		legality: make(map[string]map[string]struct{}),
		logger:   logger,
	}, nil
}

// LoadFile loads a catalog from a bulk JSON file on disk.
func LoadFile(path string, logger *slog.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, logger)
}

// Get returns the record for an exact card name.
func (c *Catalog) Get(name string) (*domain.CardRecord, bool) {
	card, ok := c.cards[name]
	return card, ok
}

// Names returns every card name in the catalog, in ascending order.
// Callers must not modify the returned slice.
func (c *Catalog) Names() []string {
	return c.names
}

// Len returns the number of distinct cards in the catalog.
func (c *Catalog) Len() int {
	return len(c.cards)
}

// LegalSet returns the names legal in a format. The set is computed on
// first access and cached; an unknown format yields an empty set, which
// downstream treats as exclusion rather than an error. Callers must not
// modify the returned map.
func (c *Catalog) LegalSet(format string) map[string]struct{} {
	c.mu.RLock()
	set, ok := c.legality[format]
	c.mu.RUnlock()
	if ok {
		return set
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.legality[format]; ok {
		return set
	}

	set = make(map[string]struct{})
	for name, card := range c.cards {
		if card.LegalIn(format) {
			set[name] = struct{}{}
		}
	}
	c.legality[format] = set
	c.logger.Debug("legality index built", "format", format, "legal_cards", len(set))
	return set
}
