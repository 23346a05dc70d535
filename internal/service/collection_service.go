package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/forgebreaker/internal/parser"
	"github.com/phrazzld/forgebreaker/internal/resolver"
	"github.com/phrazzld/forgebreaker/internal/store"
)

// ImportResult summarizes a completed collection import.
type ImportResult struct {
	// DistinctCards is the number of unique card names stored.
	DistinctCards int `json:"distinct_cards"`
	// TotalCards is the sum of all quantities.
	TotalCards int `json:"total_cards"`
}

// CollectionService manages each user's imported card collection.
type CollectionService interface {
	// ImportCollection parses an exported collection, resolves every entry
	// against the card catalog, and replaces the user's stored collection.
	// Unresolvable entries fail the whole import with a
	// *resolver.ResolutionError carrying suggestions.
	ImportCollection(ctx context.Context, userID uuid.UUID, text string) (*ImportResult, error)

	// GetCollection returns the user's stored collection as a card name to
	// quantity map. Returns store.ErrCollectionNotFound if none was imported.
	GetCollection(ctx context.Context, userID uuid.UUID) (map[string]int, error)
}

// CollectionServiceImpl implements CollectionService.
type CollectionServiceImpl struct {
	collectionStore store.CollectionStore
	resolver        *resolver.Resolver
	db              *sql.DB
	logger          *slog.Logger
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(
	collectionStore store.CollectionStore,
	res *resolver.Resolver,
	db *sql.DB,
	logger *slog.Logger,
) CollectionService {
	return &CollectionServiceImpl{
		collectionStore: collectionStore,
		resolver:        res,
		db:              db,
		logger:          logger.With("component", "collection_service"),
	}
}

// ImportCollection parses, resolves, and stores a collection export.
// The import is all-or-nothing: a resolution failure leaves the previously
// stored collection untouched.
func (s *CollectionServiceImpl) ImportCollection(
	ctx context.Context,
	userID uuid.UUID,
	text string,
) (*ImportResult, error) {
	entries, err := parser.Parse(text)
	if err != nil {
		s.logger.Debug("collection parse failed",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to parse collection: %w", err)
	}

	owned, err := s.resolver.ResolveOrFail(entries)
	if err != nil {
		s.logger.Debug("collection resolution failed",
			"error", err,
			"user_id", userID,
			"entries", len(entries))
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.collectionStore.WithTx(tx).Replace(ctx, userID, owned)
	})
	if err != nil {
		s.logger.Error("failed to store collection",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to store collection: %w", err)
	}

	result := &ImportResult{DistinctCards: len(owned)}
	for _, qty := range owned {
		result.TotalCards += qty
	}

	s.logger.Info("collection imported",
		"user_id", userID,
		"distinct_cards", result.DistinctCards,
		"total_cards", result.TotalCards)

	return result, nil
}

// GetCollection returns the user's stored collection.
func (s *CollectionServiceImpl) GetCollection(
	ctx context.Context,
	userID uuid.UUID,
) (map[string]int, error) {
	cards, err := s.collectionStore.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve collection: %w", err)
	}
	return cards, nil
}
