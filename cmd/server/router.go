package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/forgebreaker/internal/api"
	apimiddleware "github.com/phrazzld/forgebreaker/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.passwordVerifier)
	collectionHandler := api.NewCollectionHandler(app.collectionService)
	deckHandler := api.NewDeckHandler(app.deckService)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Account endpoints
			r.Put("/account/password", authHandler.UpdatePassword)
			r.Delete("/account", authHandler.DeleteAccount)

			// Collection endpoints
			r.Put("/collection", collectionHandler.Import)
			r.Get("/collection", collectionHandler.Get)

			// Deck endpoints
			r.Post("/decks", deckHandler.Build)
			r.Get("/decks", deckHandler.List)
			r.Get("/decks/{deckID}", deckHandler.Get)
			r.Delete("/decks/{deckID}", deckHandler.Delete)
			r.Get("/decks/{deckID}/export", deckHandler.Export)
			r.Post("/decks/{deckID}/explain", deckHandler.Explain)
			r.Get("/synergies", deckHandler.Synergies)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
