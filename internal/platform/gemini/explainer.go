// Package gemini implements the generation.Explainer interface using
// Google's Gemini API. It is an infrastructure adapter: it translates
// between deck data and the external model without exposing API details to
// the core, and retries transient failures with exponential backoff.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/phrazzld/forgebreaker/internal/config"
	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/generation"
)

// ErrEmptyQuestion is returned when the caller provides no question text.
var ErrEmptyQuestion = errors.New("question cannot be empty")

const baseRetryDelaySeconds = 2

// Explainer calls the Gemini API to explain built decks.
type Explainer struct {
	logger *slog.Logger
	config config.LLMConfig
	client *genai.Client
	model  string
}

// NewExplainer creates a Gemini-backed explainer.
func NewExplainer(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Explainer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Explainer{
		logger: logger.With("component", "gemini_explainer"),
		config: cfg,
		client: client,
		model:  cfg.ModelName,
	}, nil
}

var _ generation.Explainer = (*Explainer)(nil)

// ExplainDeck implements generation.Explainer. The prompt is built only
// from the saved deck's own card data, so the model is never asked to
// invent cards, and the caller still guards the returned text.
func (e *Explainer) ExplainDeck(ctx context.Context, question string, deck *domain.SavedDeck) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	if deck == nil {
		return "", fmt.Errorf("%w: deck is nil", generation.ErrGenerationFailed)
	}

	prompt := e.buildPrompt(question, deck)
	e.logger.DebugContext(ctx, "built explanation prompt",
		"prompt_length", len(prompt),
		"deck_id", deck.ID.String())

	return e.callWithRetry(ctx, prompt)
}

// buildPrompt renders the deck list and the user's question into a single
// instruction. The card list constrains the model to cards actually in the
// deck.
func (e *Explainer) buildPrompt(question string, deck *domain.SavedDeck) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an assistant explaining a Magic: The Gathering deck.\n")
	fmt.Fprintf(&b, "Deck name: %s\nFormat: %s\nArchetype: %s\nColors: %s\n\n",
		deck.Name, deck.Format, deck.Archetype, strings.Join(deck.Colors, ""))

	b.WriteString("Deck list:\n")
	for _, line := range deckLines(deck.Cards) {
		b.WriteString(line + "\n")
	}
	for _, line := range deckLines(deck.Lands) {
		b.WriteString(line + "\n")
	}

	b.WriteString("\nOnly mention cards from the deck list above. ")
	b.WriteString("Do not reference any other card by name.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", question)
	return b.String()
}

func deckLines(cards map[string]int) []string {
	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)
	lines := make([]string, 0, len(names))
	for _, name := range names {
		lines = append(lines, fmt.Sprintf("%d %s", cards[name], name))
	}
	return lines
}

// callWithRetry calls the Gemini API with exponential backoff and jitter
// for transient errors. Permanent errors (blocked content, malformed
// responses) return immediately.
func (e *Explainer) callWithRetry(ctx context.Context, prompt string) (string, error) {
	maxRetries := e.config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		e.logger.InfoContext(ctx, "calling Gemini API",
			"attempt", attempt+1,
			"max_attempts", maxRetries+1)

		text, err, transient := e.generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		e.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		if !transient {
			return "", err
		}
		if attempt >= maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d)",
				generation.ErrTransientFailure, maxRetries)
		}

		// delay = base * 2^attempt * jitter in [0.5, 1.0)
		backoff := float64(baseRetryDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// generate performs one API call. The second return reports whether the
// failure is worth retrying.
func (e *Explainer) generate(ctx context.Context, prompt string) (string, error, bool) {
	resp, err := e.client.Models.GenerateContent(ctx, e.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err), true
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse), false
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response blocked", generation.ErrContentBlocked), false
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse), false
	}
	return text, nil, false
}
