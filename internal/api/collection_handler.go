package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/forgebreaker/internal/api/shared"
	"github.com/phrazzld/forgebreaker/internal/service"
)

// CollectionHandler handles collection import and retrieval requests.
type CollectionHandler struct {
	collectionService service.CollectionService
	validator         *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(collectionService service.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		validator:         validator.New(),
	}
}

// Import handles PUT /collection. The submitted export replaces the user's
// stored collection atomically; a single unresolvable name fails the whole
// import with suggestions.
func (h *CollectionHandler) Import(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ImportCollectionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.collectionService.ImportCollection(r.Context(), userID, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Get handles GET /collection.
func (h *CollectionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	cards, err := h.collectionService.GetCollection(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := CollectionResponse{Cards: cards, DistinctCards: len(cards)}
	for _, qty := range cards {
		resp.TotalCards += qty
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
