package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/forgebreaker/internal/costs"
	"github.com/phrazzld/forgebreaker/internal/deckgen"
	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/generation"
	"github.com/phrazzld/forgebreaker/internal/guard"
	"github.com/phrazzld/forgebreaker/internal/store"
)

// Cataloger is the card knowledge the deck service needs: card lookups for
// the engine plus per-format legality sets.
type Cataloger interface {
	deckgen.CardSource
	LegalSet(format string) map[string]struct{}
}

// DeckService builds decks from a user's collection and manages the results.
type DeckService interface {
	// BuildDeck constructs a deck from the user's imported collection and
	// persists it. Returns domain.ErrEmptyCollection if no collection exists
	// and a *domain.DeckSizeError if the collection cannot fill the
	// requested size.
	BuildDeck(ctx context.Context, userID uuid.UUID, req domain.BuildRequest) (*domain.SavedDeck, error)

	// GetDeck retrieves one of the user's saved decks. Returns ErrNotOwned
	// if the deck belongs to another user.
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.SavedDeck, error)

	// ListDecks returns the user's saved decks, newest first.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.SavedDeck, error)

	// DeleteDeck removes one of the user's saved decks.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error

	// ExportDeck renders a saved deck in Arena import format.
	ExportDeck(ctx context.Context, userID, deckID uuid.UUID) (string, error)

	// ExplainDeck answers a question about a saved deck using the LLM.
	// The response is validated so it only references cards in the deck;
	// a leaked name yields a *guard.CardNameLeakageError and no text.
	ExplainDeck(ctx context.Context, userID, deckID uuid.UUID, question string) (string, error)

	// FindSynergies lists cards in the user's collection whose text pairs
	// with the named card's mechanics. Suggestions come only from the
	// owned, format-legal intersection. Returns ErrUnknownCard when the
	// card is not in the catalog and domain.ErrEmptyCollection when no
	// collection has been imported.
	FindSynergies(ctx context.Context, userID uuid.UUID, cardName, format string) (*deckgen.SynergyResult, error)
}

// DeckServiceImpl implements DeckService.
type DeckServiceImpl struct {
	collectionStore store.CollectionStore
	deckStore       store.DeckStore
	builder         *deckgen.Builder
	catalog         Cataloger
	guard           *guard.Guard
	costs           *costs.Controller
	explainer       generation.Explainer
	db              *sql.DB
	logger          *slog.Logger
}

// NewDeckService creates a new DeckService.
func NewDeckService(
	collectionStore store.CollectionStore,
	deckStore store.DeckStore,
	builder *deckgen.Builder,
	catalog Cataloger,
	g *guard.Guard,
	controller *costs.Controller,
	explainer generation.Explainer,
	db *sql.DB,
	logger *slog.Logger,
) DeckService {
	return &DeckServiceImpl{
		collectionStore: collectionStore,
		deckStore:       deckStore,
		builder:         builder,
		catalog:         catalog,
		guard:           g,
		costs:           controller,
		explainer:       explainer,
		db:              db,
		logger:          logger.With("component", "deck_service"),
	}
}

// BuildDeck builds and persists a deck from the user's collection.
func (s *DeckServiceImpl) BuildDeck(
	ctx context.Context,
	userID uuid.UUID,
	req domain.BuildRequest,
) (*domain.SavedDeck, error) {
	req = req.Normalize()

	cards, err := s.collectionStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			return nil, domain.ErrEmptyCollection
		}
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	pool := domain.NewOwnedCardPool(cards)
	legal := s.catalog.LegalSet(req.Format)

	built, _, err := s.builder.Build(req, pool, legal)
	if err != nil {
		s.logger.Debug("deck build failed",
			"error", err,
			"user_id", userID,
			"theme", req.Theme,
			"format", req.Format)
		return nil, err
	}

	saved, err := domain.NewSavedDeck(userID, built, req.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck record: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.deckStore.WithTx(tx).Create(ctx, saved)
	})
	if err != nil {
		s.logger.Error("failed to save deck",
			"error", err,
			"user_id", userID,
			"deck_name", saved.Name)
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	s.logger.Info("deck built",
		"user_id", userID,
		"deck_id", saved.ID,
		"deck_name", saved.Name,
		"archetype", saved.Archetype,
		"total_cards", saved.TotalCards())

	return saved, nil
}

// GetDeck retrieves a deck and enforces ownership.
func (s *DeckServiceImpl) GetDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (*domain.SavedDeck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve deck: %w", err)
	}
	if deck.UserID != userID {
		s.logger.Debug("deck access denied",
			"deck_id", deckID,
			"owner_id", deck.UserID,
			"requester_id", userID)
		return nil, ErrNotOwned
	}
	return deck, nil
}

// ListDecks returns all of the user's decks.
func (s *DeckServiceImpl) ListDecks(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.SavedDeck, error) {
	decks, err := s.deckStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return decks, nil
}

// DeleteDeck removes a deck after an ownership check.
func (s *DeckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	if _, err := s.GetDeck(ctx, userID, deckID); err != nil {
		return err
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.deckStore.WithTx(tx).Delete(ctx, deckID); err != nil {
			return fmt.Errorf("failed to delete deck: %w", err)
		}
		s.logger.Info("deck deleted",
			"user_id", userID,
			"deck_id", deckID)
		return nil
	})
}

// ExportDeck renders a deck in Arena import format. The rendered text passes
// through the same card name guard as LLM output before leaving the service.
func (s *DeckServiceImpl) ExportDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
) (string, error) {
	deck, err := s.GetDeck(ctx, userID, deckID)
	if err != nil {
		return "", err
	}

	built := &domain.BuiltDeck{
		Name:  deck.Name,
		Cards: deck.Cards,
		Lands: deck.Lands,
	}
	text := deckgen.ExportText(built, s.catalog)

	return s.guard.Check(text, validatedFromSaved(deck), nil)
}

// ExplainDeck asks the LLM about a deck, under cost controls, and guards the
// response against references to cards outside the deck.
func (s *DeckServiceImpl) ExplainDeck(
	ctx context.Context,
	userID, deckID uuid.UUID,
	question string,
) (string, error) {
	if err := s.costs.Allow(userID.String()); err != nil {
		return "", err
	}

	deck, err := s.GetDeck(ctx, userID, deckID)
	if err != nil {
		return "", err
	}

	answer, err := s.explainer.ExplainDeck(ctx, question, deck)
	if err != nil {
		s.logger.Error("explanation generation failed",
			"error", err,
			"deck_id", deckID)
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}

	checked, err := s.guard.Check(answer, validatedFromSaved(deck), deckNameWords(deck.Name))
	if err != nil {
		s.logger.Warn("explanation withheld",
			"error", err,
			"deck_id", deckID)
		return "", err
	}

	return checked, nil
}

// FindSynergies builds the user's allowed card set and scans it for cards
// that pair with the named card.
func (s *DeckServiceImpl) FindSynergies(
	ctx context.Context,
	userID uuid.UUID,
	cardName, format string,
) (*deckgen.SynergyResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	cards, err := s.collectionStore.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrCollectionNotFound) {
			return nil, domain.ErrEmptyCollection
		}
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	pool := domain.NewOwnedCardPool(cards)
	allowed := domain.BuildAllowedSet(pool, s.catalog.LegalSet(format), format)

	result, ok := deckgen.FindSynergies(cardName, allowed, s.catalog, deckgen.DefaultSynergyLimit)
	if !ok {
		return nil, ErrUnknownCard
	}

	s.logger.Debug("synergies found",
		"user_id", userID,
		"card", result.SourceCard,
		"synergy_type", result.SynergyType,
		"matches", len(result.Matches))

	return result, nil
}

// validatedFromSaved rebuilds the validated view of a stored deck so the
// guard can check generated text against its card list.
func validatedFromSaved(deck *domain.SavedDeck) domain.ValidatedDeck {
	maindeck := make(map[string]int, len(deck.Cards)+len(deck.Lands))
	for name, qty := range deck.Cards {
		maindeck[name] += qty
	}
	for name, qty := range deck.Lands {
		maindeck[name] += qty
	}
	return domain.NewValidatedDeck(maindeck, nil, deck.Name, deck.Format, "stored")
}

// deckNameWords allows a generated answer to mention the deck's own title
// without tripping the guard.
func deckNameWords(name string) map[string]struct{} {
	if name == "" {
		return nil
	}
	return map[string]struct{}{
		guard.CanonicalKey(name): {},
	}
}
