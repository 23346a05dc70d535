// Package generation defines the boundary between the application core and
// external language model services. The core depends only on the Explainer
// interface; the Gemini adapter lives in internal/platform/gemini.
package generation

import (
	"context"

	"github.com/phrazzld/forgebreaker/internal/domain"
)

// Explainer produces natural-language explanations of a built deck.
//
// Implementations receive only already-validated deck data, and their
// output must still pass the output guard before reaching a caller; the
// interface itself gives no card-name guarantees.
type Explainer interface {
	// ExplainDeck answers a question about a saved deck. Returns the raw
	// model text or an error (see errors.go for the taxonomy).
	ExplainDeck(ctx context.Context, question string, deck *domain.SavedDeck) (string, error)
}
