package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/forgebreaker/internal/resolver"
	"github.com/phrazzld/forgebreaker/internal/service"
	"github.com/phrazzld/forgebreaker/internal/store"
)

type mockCollectionService struct {
	importResult *service.ImportResult
	importErr    error
	cards        map[string]int
	getErr       error

	importedText string
}

func (m *mockCollectionService) ImportCollection(
	_ context.Context,
	_ uuid.UUID,
	text string,
) (*service.ImportResult, error) {
	m.importedText = text
	return m.importResult, m.importErr
}

func (m *mockCollectionService) GetCollection(
	context.Context,
	uuid.UUID,
) (map[string]int, error) {
	return m.cards, m.getErr
}

var _ service.CollectionService = (*mockCollectionService)(nil)

func TestCollectionHandler_Import(t *testing.T) {
	svc := &mockCollectionService{
		importResult: &service.ImportResult{DistinctCards: 2, TotalCards: 8},
	}
	h := NewCollectionHandler(svc)

	rec := httptest.NewRecorder()
	h.Import(rec, deckRequest(http.MethodPut, "/collection",
		`{"text": "4 Lightning Bolt\n4 Goblin Guide"}`, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result service.ImportResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.DistinctCards)
	assert.Equal(t, 8, result.TotalCards)
	assert.Equal(t, "4 Lightning Bolt\n4 Goblin Guide", svc.importedText)
}

func TestCollectionHandler_Import_EmptyText(t *testing.T) {
	h := NewCollectionHandler(&mockCollectionService{})

	rec := httptest.NewRecorder()
	h.Import(rec, deckRequest(http.MethodPut, "/collection", `{"text": ""}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCollectionHandler_Import_NoAuthContext(t *testing.T) {
	h := NewCollectionHandler(&mockCollectionService{})

	req := httptest.NewRequest(http.MethodPut, "/collection", nil)
	rec := httptest.NewRecorder()
	h.Import(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCollectionHandler_Import_UnresolvableCards(t *testing.T) {
	resErr := &resolver.ResolutionError{
		Unresolved: []resolver.Unresolved{{
			Entry:       resolver.InventoryEntry{Name: "Lightnig Bolt", Count: 4},
			Reason:      "card not found in catalog",
			Suggestions: []string{"Lightning Bolt"},
		}},
	}
	h := NewCollectionHandler(&mockCollectionService{importErr: resErr})

	rec := httptest.NewRecorder()
	h.Import(rec, deckRequest(http.MethodPut, "/collection",
		`{"text": "4 Lightnig Bolt"}`, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Lightnig Bolt")
}

func TestCollectionHandler_Get(t *testing.T) {
	h := NewCollectionHandler(&mockCollectionService{
		cards: map[string]int{"Lightning Bolt": 4, "Mountain": 20},
	})

	rec := httptest.NewRecorder()
	h.Get(rec, deckRequest(http.MethodGet, "/collection", "", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp CollectionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.DistinctCards)
	assert.Equal(t, 24, resp.TotalCards)
	assert.Equal(t, 4, resp.Cards["Lightning Bolt"])
}

func TestCollectionHandler_Get_NotImported(t *testing.T) {
	h := NewCollectionHandler(&mockCollectionService{getErr: store.ErrCollectionNotFound})

	rec := httptest.NewRecorder()
	h.Get(rec, deckRequest(http.MethodGet, "/collection", "", uuid.New()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
