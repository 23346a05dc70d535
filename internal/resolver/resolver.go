// Package resolver is the trust boundary for collection import: it maps
// raw inventory entries to canonical catalog cards. Resolution failures are
// terminal for the import; no partial collection is ever produced.
package resolver

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// Maximum edit distance for a near-miss suggestion, and how many
// suggestions an unresolved entry carries.
const (
	maxSuggestionDistance = 3
	maxSuggestions        = 3
)

// How many failed names a ResolutionError lists before truncating.
const maxReportedFailures = 5

// InventoryEntry is one raw line of an imported collection.
type InventoryEntry struct {
	Name      string
	Count     int
	SetCode   string
	Collector string
}

// Unresolved is an inventory entry that could not be matched to the
// catalog, with near-miss suggestions drawn only from real catalog names.
type Unresolved struct {
	Entry       InventoryEntry
	Reason      string
	Suggestions []string
}

// ResolutionError reports a failed import. It is terminal: the caller gets
// no partial collection.
type ResolutionError struct {
	Unresolved []Unresolved
}

func (e *ResolutionError) Error() string {
	names := make([]string, 0, maxReportedFailures)
	for i, u := range e.Unresolved {
		if i == maxReportedFailures {
			break
		}
		names = append(names, u.Entry.Name)
	}
	msg := fmt.Sprintf("collection import failed: %d cards could not be resolved: %s",
		len(e.Unresolved), strings.Join(names, ", "))
	if extra := len(e.Unresolved) - maxReportedFailures; extra > 0 {
		msg += fmt.Sprintf(" (and %d more)", extra)
	}
	return msg
}

// Result holds a successful resolution pass.
type Result struct {
	// Owned maps canonical card names to summed counts across printings.
	Owned map[string]int
	// Unresolved entries, empty when the whole inventory resolved.
	Unresolved []Unresolved
}

// AllResolved reports whether every inventory entry resolved.
func (r *Result) AllResolved() bool {
	return len(r.Unresolved) == 0
}

// CardSource is the catalog view the resolver needs.
type CardSource interface {
	Get(name string) (*domain.CardRecord, bool)
	Names() []string
}

// Resolver maps inventory entries to canonical catalog cards.
type Resolver struct {
	source CardSource
	logger *slog.Logger
}

// New creates a resolver over a card source.
func New(source CardSource, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		source: source,
		logger: logger.With("component", "resolver"),
	}
}

// Resolve matches every inventory entry against the catalog, consolidating
// duplicate printings of the same card by summing counts. Entries with a
// non-positive count are rejected rather than dropped.
func (r *Resolver) Resolve(inventory []InventoryEntry) *Result {
	result := &Result{Owned: make(map[string]int)}

	for _, entry := range inventory {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			result.Unresolved = append(result.Unresolved, Unresolved{
				Entry:  entry,
				Reason: "empty card name",
			})
			continue
		}
		if entry.Count <= 0 {
			result.Unresolved = append(result.Unresolved, Unresolved{
				Entry:  entry,
				Reason: fmt.Sprintf("invalid count %d", entry.Count),
			})
			continue
		}

		card, ok := r.lookup(name)
		if !ok {
			result.Unresolved = append(result.Unresolved, Unresolved{
				Entry:       entry,
				Reason:      "card not found in catalog",
				Suggestions: r.suggest(name),
			})
			continue
		}
		result.Owned[card.Name] += entry.Count
	}

	r.logger.Debug("inventory resolved",
		"entries", len(inventory),
		"owned", len(result.Owned),
		"unresolved", len(result.Unresolved),
	)
	return result
}

// ResolveOrFail is the import entry point: any unresolved entry makes the
// whole import fail with a *ResolutionError.
func (r *Resolver) ResolveOrFail(inventory []InventoryEntry) (map[string]int, error) {
	result := r.Resolve(inventory)
	if !result.AllResolved() {
		r.logger.Info("collection import rejected",
			"unresolved", len(result.Unresolved))
		return nil, &ResolutionError{Unresolved: result.Unresolved}
	}
	return result.Owned, nil
}

// lookup tries an exact match first, then a case-insensitive match.
func (r *Resolver) lookup(name string) (*domain.CardRecord, bool) {
	if card, ok := r.source.Get(name); ok {
		return card, true
	}
	lower := strings.ToLower(name)
	for _, known := range r.source.Names() {
		if strings.ToLower(known) == lower {
			card, _ := r.source.Get(known)
			return card, true
		}
	}
	return nil, false
}

// suggest returns the closest catalog names by edit distance. Suggestions
// come only from the catalog; no name is ever invented.
func (r *Resolver) suggest(name string) []string {
	type scored struct {
		name string
		dist int
	}
	var near []scored
	lower := strings.ToLower(name)
	for _, known := range r.source.Names() {
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(known))
		if dist <= maxSuggestionDistance {
			near = append(near, scored{name: known, dist: dist})
		}
	}
	sort.Slice(near, func(i, j int) bool {
		if near[i].dist != near[j].dist {
			return near[i].dist < near[j].dist
		}
		return near[i].name < near[j].name
	})
	out := make([]string, 0, maxSuggestions)
	for i := 0; i < len(near) && i < maxSuggestions; i++ {
		out = append(out, near[i].name)
	}
	return out
}
