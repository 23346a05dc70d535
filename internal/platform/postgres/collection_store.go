package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/forgebreaker/internal/platform/logger"
	"github.com/phrazzld/forgebreaker/internal/store"
)

// PostgresCollectionStore implements the store.CollectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCollectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCollectionStore creates a new PostgreSQL implementation of
// the CollectionStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresCollectionStore(db store.DBTX, logger *slog.Logger) *PostgresCollectionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresCollectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "collection_store")),
	}
}

// Ensure PostgresCollectionStore implements store.CollectionStore interface
var _ store.CollectionStore = (*PostgresCollectionStore)(nil)

// WithTx implements store.CollectionStore.WithTx
func (s *PostgresCollectionStore) WithTx(tx *sql.Tx) store.CollectionStore {
	return &PostgresCollectionStore{db: tx, logger: s.logger}
}

// Replace implements store.CollectionStore.Replace
// It deletes the user's existing rows and inserts the new collection.
// Callers should run this inside a transaction via WithTx.
func (s *PostgresCollectionStore) Replace(ctx context.Context, userID uuid.UUID, cards map[string]int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for name, qty := range cards {
		if qty <= 0 {
			return fmt.Errorf("%w: card %q has non-positive quantity %d",
				store.ErrInvalidEntity, name, qty)
		}
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM collections WHERE user_id = $1`, userID); err != nil {
		log.Error("failed to clear collection",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return MapError(err)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO collections (user_id, card_name, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	names := make([]string, 0, len(cards))
	for name := range cards {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := s.db.ExecContext(ctx, query, userID, name, cards[name], now); err != nil {
			if IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: user with ID %s not found",
					store.ErrInvalidEntity, userID)
			}
			log.Error("failed to insert collection row",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
			return MapError(err)
		}
	}

	log.Info("collection replaced",
		slog.String("user_id", userID.String()),
		slog.Int("distinct_cards", len(cards)))
	return nil
}

// Get implements store.CollectionStore.Get
// Returns store.ErrCollectionNotFound if the user has no stored rows.
func (s *PostgresCollectionStore) Get(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT card_name, quantity FROM collections WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to query collection",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := make(map[string]int)
	for rows.Next() {
		var name string
		var qty int
		if err := rows.Scan(&name, &qty); err != nil {
			log.Error("failed to scan collection row",
				slog.String("error", err.Error()))
			return nil, err
		}
		cards[name] = qty
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}
	if len(cards) == 0 {
		return nil, store.ErrCollectionNotFound
	}
	return cards, nil
}

// Count implements store.CollectionStore.Count
func (s *PostgresCollectionStore) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM collections WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}
	return count, nil
}
