package service

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/resolver"
	"github.com/phrazzld/forgebreaker/internal/store"
)

type mockCollectionStore struct {
	collections map[uuid.UUID]map[string]int
}

func newMockCollectionStore() *mockCollectionStore {
	return &mockCollectionStore{collections: make(map[uuid.UUID]map[string]int)}
}

func (s *mockCollectionStore) Replace(_ context.Context, userID uuid.UUID, cards map[string]int) error {
	s.collections[userID] = cards
	return nil
}

func (s *mockCollectionStore) Get(_ context.Context, userID uuid.UUID) (map[string]int, error) {
	cards, ok := s.collections[userID]
	if !ok {
		return nil, store.ErrCollectionNotFound
	}
	return cards, nil
}

func (s *mockCollectionStore) Count(_ context.Context, userID uuid.UUID) (int, error) {
	return len(s.collections[userID]), nil
}

func (s *mockCollectionStore) WithTx(_ *sql.Tx) store.CollectionStore { return s }

type resolverSource struct {
	names []string
}

func (s *resolverSource) Get(name string) (*domain.CardRecord, bool) {
	for _, known := range s.names {
		if known == name {
			return &domain.CardRecord{Name: name}, true
		}
	}
	return nil, false
}

func (s *resolverSource) Names() []string {
	out := append([]string{}, s.names...)
	sort.Strings(out)
	return out
}

func TestCollectionService_ImportRejectsUnresolvable(t *testing.T) {
	collectionStore := newMockCollectionStore()
	res := resolver.New(&resolverSource{names: []string{"Lightning Bolt"}}, nil)
	svc := NewCollectionService(collectionStore, res, nil, slog.Default())

	userID := uuid.New()
	_, err := svc.ImportCollection(context.Background(), userID, "4 Lightning Bolt\n2 Made Up Card")

	var resErr *resolver.ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Empty(t, collectionStore.collections,
		"a failed import never stores a partial collection")
}

func TestCollectionService_GetCollection(t *testing.T) {
	collectionStore := newMockCollectionStore()
	userID := uuid.New()
	collectionStore.collections[userID] = map[string]int{"Shock": 4}
	res := resolver.New(&resolverSource{}, nil)
	svc := NewCollectionService(collectionStore, res, nil, slog.Default())

	cards, err := svc.GetCollection(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Shock": 4}, cards)
}

func TestCollectionService_GetCollection_NotFound(t *testing.T) {
	svc := NewCollectionService(newMockCollectionStore(),
		resolver.New(&resolverSource{}, nil), nil, slog.Default())

	_, err := svc.GetCollection(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrCollectionNotFound)
}
