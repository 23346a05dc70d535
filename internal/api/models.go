package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/forgebreaker/internal/deckgen"
	"github.com/phrazzld/forgebreaker/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UpdatePasswordRequest defines the payload for the password change endpoint.
type UpdatePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=12,max=72"`
}

// ImportCollectionRequest carries a raw collection export to import.
type ImportCollectionRequest struct {
	// Text is the collection export in simple, CSV, or Arena full format.
	Text string `json:"text" validate:"required"`
}

// CollectionResponse returns a stored collection.
type CollectionResponse struct {
	Cards         map[string]int `json:"cards"`
	DistinctCards int            `json:"distinct_cards"`
	TotalCards    int            `json:"total_cards"`
}

// BuildDeckRequest defines the payload for the deck build endpoint.
type BuildDeckRequest struct {
	Theme        string   `json:"theme"  validate:"required"`
	Format       string   `json:"format" validate:"required"`
	Colors       []string `json:"colors,omitempty"`
	IncludeCards []string `json:"include_cards,omitempty"`
	DeckSize     int      `json:"deck_size,omitempty"  validate:"omitempty,gt=0,lte=250"`
	LandCount    int      `json:"land_count,omitempty" validate:"omitempty,gt=0"`
}

// DeckResponse is the API view of a saved deck.
type DeckResponse struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Format     string         `json:"format"`
	Archetype  string         `json:"archetype"`
	Colors     []string       `json:"colors"`
	Cards      map[string]int `json:"cards"`
	Lands      map[string]int `json:"lands"`
	TotalCards int            `json:"total_cards"`
	Notes      []string       `json:"notes,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewDeckResponse converts a saved deck into its API representation.
func NewDeckResponse(deck *domain.SavedDeck) DeckResponse {
	return DeckResponse{
		ID:         deck.ID,
		Name:       deck.Name,
		Format:     deck.Format,
		Archetype:  string(deck.Archetype),
		Colors:     deck.Colors,
		Cards:      deck.Cards,
		Lands:      deck.Lands,
		TotalCards: deck.TotalCards(),
		Notes:      deck.Notes,
		Warnings:   deck.Warnings,
		CreatedAt:  deck.CreatedAt,
	}
}

// ExplainRequest defines the payload for the deck explanation endpoint.
type ExplainRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
}

// ExplainResponse returns a guarded explanation.
type ExplainResponse struct {
	Answer string `json:"answer"`
}

// SynergyMatchResponse is one suggested card with the owned quantity and the
// text that earned the suggestion.
type SynergyMatchResponse struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// SynergyResponse lists owned, format-legal cards that pair with a card.
type SynergyResponse struct {
	SourceCard  string                 `json:"source_card"`
	SynergyType string                 `json:"synergy_type"`
	Matches     []SynergyMatchResponse `json:"matches"`
}

// NewSynergyResponse converts a synergy result into its API representation.
func NewSynergyResponse(result *deckgen.SynergyResult) SynergyResponse {
	matches := make([]SynergyMatchResponse, 0, len(result.Matches))
	for _, m := range result.Matches {
		matches = append(matches, SynergyMatchResponse{
			Name:     m.Name,
			Quantity: m.Quantity,
			Reason:   m.Reason,
		})
	}
	return SynergyResponse{
		SourceCard:  result.SourceCard,
		SynergyType: result.SynergyType,
		Matches:     matches,
	}
}
