package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/platform/logger"
	"github.com/phrazzld/forgebreaker/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface using a
// PostgreSQL database as the storage backend. Card maps and text lists are
// stored as JSONB.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{db: tx, logger: s.logger}
}

// Create implements store.DeckStore.Create
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.SavedDeck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	cards, err := json.Marshal(deck.Cards)
	if err != nil {
		return fmt.Errorf("marshaling deck cards: %w", err)
	}
	lands, err := json.Marshal(deck.Lands)
	if err != nil {
		return fmt.Errorf("marshaling deck lands: %w", err)
	}
	colors, err := json.Marshal(deck.Colors)
	if err != nil {
		return fmt.Errorf("marshaling deck colors: %w", err)
	}
	notes, err := json.Marshal(deck.Notes)
	if err != nil {
		return fmt.Errorf("marshaling deck notes: %w", err)
	}
	warnings, err := json.Marshal(deck.Warnings)
	if err != nil {
		return fmt.Errorf("marshaling deck warnings: %w", err)
	}

	query := `
		INSERT INTO decks
			(id, user_id, name, format, archetype, cards, lands, colors,
			 notes, warnings, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(ctx, query,
		deck.ID, deck.UserID, deck.Name, deck.Format, string(deck.Archetype),
		cards, lands, colors, notes, warnings, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, deck.UserID)
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	log.Info("deck saved",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()),
		slog.Int("total_cards", deck.TotalCards()))
	return nil
}

// GetByID implements store.DeckStore.GetByID
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedDeck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, format, archetype, cards, lands, colors,
		       notes, warnings, created_at, updated_at
		FROM decks
		WHERE id = $1
	`
	deck, err := s.scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}
	return deck, nil
}

// ListByUser implements store.DeckStore.ListByUser
// Returns the user's decks newest first; an empty slice if none exist.
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.SavedDeck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, format, archetype, cards, lands, colors,
		       notes, warnings, created_at, updated_at
		FROM decks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	decks := []*domain.SavedDeck{}
	for rows.Next() {
		deck, err := s.scanDeck(rows)
		if err != nil {
			log.Error("failed to scan deck row",
				slog.String("error", err.Error()))
			return nil, err
		}
		decks = append(decks, deck)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return decks, nil
}

// Delete implements store.DeckStore.Delete
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	if err := CheckRowsAffected(result, "deck"); err != nil {
		return store.ErrDeckNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *PostgresDeckStore) scanDeck(row scanner) (*domain.SavedDeck, error) {
	var deck domain.SavedDeck
	var archetype string
	var cards, lands, colors, notes, warnings []byte

	err := row.Scan(
		&deck.ID, &deck.UserID, &deck.Name, &deck.Format, &archetype,
		&cards, &lands, &colors, &notes, &warnings,
		&deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		return nil, err
	}

	deck.Archetype = domain.Archetype(archetype)
	if err := json.Unmarshal(cards, &deck.Cards); err != nil {
		return nil, fmt.Errorf("unmarshaling deck cards: %w", err)
	}
	if err := json.Unmarshal(lands, &deck.Lands); err != nil {
		return nil, fmt.Errorf("unmarshaling deck lands: %w", err)
	}
	if err := json.Unmarshal(colors, &deck.Colors); err != nil {
		return nil, fmt.Errorf("unmarshaling deck colors: %w", err)
	}
	if err := json.Unmarshal(notes, &deck.Notes); err != nil {
		return nil, fmt.Errorf("unmarshaling deck notes: %w", err)
	}
	if err := json.Unmarshal(warnings, &deck.Warnings); err != nil {
		return nil, fmt.Errorf("unmarshaling deck warnings: %w", err)
	}
	return &deck, nil
}
