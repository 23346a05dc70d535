package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/forgebreaker/internal/api/shared"
	"github.com/phrazzld/forgebreaker/internal/domain"
	"github.com/phrazzld/forgebreaker/internal/service"
)

// DeckHandler handles deck building and management requests.
type DeckHandler struct {
	deckService service.DeckService
	validator   *validator.Validate
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
		validator:   validator.New(),
	}
}

// Build handles POST /decks.
func (h *DeckHandler) Build(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req BuildDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.BuildDeck(r.Context(), userID, domain.BuildRequest{
		Theme:        req.Theme,
		Colors:       req.Colors,
		Format:       req.Format,
		IncludeCards: req.IncludeCards,
		DeckSize:     req.DeckSize,
		LandCount:    req.LandCount,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewDeckResponse(deck))
}

// List handles GET /decks.
func (h *DeckHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := make([]DeckResponse, 0, len(decks))
	for _, deck := range decks {
		resp = append(resp, NewDeckResponse(deck))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Get handles GET /decks/{deckID}.
func (h *DeckHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := requireUserAndPathID(w, r, "deckID")
	if !ok {
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDeckResponse(deck))
}

// Delete handles DELETE /decks/{deckID}.
func (h *DeckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := requireUserAndPathID(w, r, "deckID")
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), userID, deckID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /decks/{deckID}/export, returning the Arena import
// text as plain text.
func (h *DeckHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := requireUserAndPathID(w, r, "deckID")
	if !ok {
		return
	}

	text, err := h.deckService.ExportDeck(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		return
	}
}

// Synergies handles GET /synergies. The card and format come in as query
// parameters so the endpoint stays cacheable.
func (h *DeckHandler) Synergies(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	card := r.URL.Query().Get("card")
	format := r.URL.Query().Get("format")
	if card == "" || format == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "card and format query parameters are required")
		return
	}

	result, err := h.deckService.FindSynergies(r.Context(), userID, card, format)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewSynergyResponse(result))
}

// Explain handles POST /decks/{deckID}/explain.
func (h *DeckHandler) Explain(w http.ResponseWriter, r *http.Request) {
	userID, deckID, ok := requireUserAndPathID(w, r, "deckID")
	if !ok {
		return
	}

	var req ExplainRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	answer, err := h.deckService.ExplainDeck(r.Context(), userID, deckID, req.Question)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ExplainResponse{Answer: answer})
}
