// Package guard is the final output barrier for card names. No user-facing
// string may reference a card unless that card is present in the validated
// deck (or an explicitly allowed extra set, such as the user's own
// collection). Output that fails the check is rejected whole, never
// redacted.
package guard

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

const contextPreviewLen = 200

// CardNameLeakageError reports a card name in output that is not part of
// the validated deck. This is an invariant violation: the response carrying
// it must be refused, never trimmed down and sent anyway.
type CardNameLeakageError struct {
	LeakedName string
	// Context is a truncated preview of the offending output.
	Context  string
	DeckSize int
}

func (e *CardNameLeakageError) Error() string {
	return fmt.Sprintf(
		"card name %q found in output but not in validated deck (%d cards): %s",
		e.LeakedName, e.DeckSize, e.Context)
}

// Result describes one guard pass over a piece of output.
type Result struct {
	Valid        bool
	LeakedNames  []string
	CheckedCount int
}

// Guard validates output text against a validated deck. Counters are
// diagnostic only; a single Guard is safe for concurrent use.
type Guard struct {
	logger *slog.Logger

	invocations atomic.Int64
	leaks       atomic.Int64
}

// New creates an output guard. A nil logger uses the default.
func New(logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{logger: logger.With("component", "output_guard")}
}

// Validate scans output for card-name-shaped tokens and checks each
// against the validated deck plus any extra allowed names, comparing by
// canonical key. It reports all leaks rather than stopping at the first.
func (g *Guard) Validate(output string, deck domain.ValidatedDeck, extraAllowed map[string]struct{}) Result {
	candidates := ExtractCandidateNames(output)
	if len(candidates) == 0 {
		return Result{Valid: true}
	}

	allowed := make(map[string]struct{}, deck.Len()+len(extraAllowed))
	for _, name := range deck.CardNames() {
		allowed[CanonicalKey(name)] = struct{}{}
	}
	for name := range extraAllowed {
		allowed[CanonicalKey(name)] = struct{}{}
	}

	var leaked []string
	for _, name := range candidates {
		if _, ok := allowed[CanonicalKey(name)]; !ok {
			leaked = append(leaked, name)
		}
	}
	return Result{
		Valid:        len(leaked) == 0,
		LeakedNames:  leaked,
		CheckedCount: len(candidates),
	}
}

// Check guards output before it reaches a caller. Valid output is returned
// unchanged; any leak returns a *CardNameLeakageError and no output at all.
func (g *Guard) Check(output string, deck domain.ValidatedDeck, extraAllowed map[string]struct{}) (string, error) {
	invocation := g.invocations.Add(1)
	result := g.Validate(output, deck, extraAllowed)

	if !result.Valid {
		g.leaks.Add(1)
		g.logger.Warn("card name leak detected",
			"invocation", invocation,
			"leaked_count", len(result.LeakedNames),
			"checked", result.CheckedCount,
			"deck_cards", deck.Len(),
		)
		preview := output
		if len(preview) > contextPreviewLen {
			preview = preview[:contextPreviewLen]
		}
		return "", &CardNameLeakageError{
			LeakedName: result.LeakedNames[0],
			Context:    preview,
			DeckSize:   deck.Len(),
		}
	}

	g.logger.Debug("output guard passed",
		"invocation", invocation,
		"checked", result.CheckedCount,
	)
	return output, nil
}

// Stats returns the diagnostic counters: total invocations and total leaks.
func (g *Guard) Stats() (invocations, leaks int64) {
	return g.invocations.Load(), g.leaks.Load()
}
