package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/phrazzld/forgebreaker/internal/catalog"
	"github.com/phrazzld/forgebreaker/internal/config"
	"github.com/phrazzld/forgebreaker/internal/costs"
	"github.com/phrazzld/forgebreaker/internal/deckgen"
	"github.com/phrazzld/forgebreaker/internal/generation"
	"github.com/phrazzld/forgebreaker/internal/guard"
	"github.com/phrazzld/forgebreaker/internal/platform/gemini"
	"github.com/phrazzld/forgebreaker/internal/platform/postgres"
	"github.com/phrazzld/forgebreaker/internal/resolver"
	"github.com/phrazzld/forgebreaker/internal/service"
	"github.com/phrazzld/forgebreaker/internal/service/auth"
	"github.com/phrazzld/forgebreaker/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Card knowledge
	catalog *catalog.Catalog

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	collectionStore store.CollectionStore
	deckStore       store.DeckStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	userService       service.UserService
	collectionService service.CollectionService
	deckService       service.DeckService
	explainer         generation.Explainer

	// Cross-cutting
	outputGuard    *guard.Guard
	costController *costs.Controller
}

// newApplication creates a new application instance with all dependencies
// initialized. Core dependencies (configuration, logger, database) must be
// established before calling it.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.catalog, err = catalog.LoadFile(cfg.Catalog.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load card catalog: %w", err)
	}
	logger.Info("card catalog loaded",
		"path", cfg.Catalog.Path,
		"cards", app.catalog.Len())

	app.userStore = postgres.NewPostgresUserStore(db, bcrypt.DefaultCost, logger)
	app.collectionStore = postgres.NewPostgresCollectionStore(db, logger)
	app.deckStore = postgres.NewPostgresDeckStore(db, logger)

	app.explainer, err = gemini.NewExplainer(
		ctx,
		logger.With("component", "llm_explainer"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM explainer: %w", err)
	}
	logger.Info("LLM explainer initialized", "model", cfg.LLM.ModelName)

	app.outputGuard = guard.New(logger)
	app.costController = costs.NewController(cfg.Costs, logger)

	builder, err := deckgen.NewBuilder(app.catalog, deckgen.NewDefaultParams(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck builder: %w", err)
	}

	app.userService = service.NewUserService(app.userStore, db, logger)
	app.collectionService = service.NewCollectionService(
		app.collectionStore,
		resolver.New(app.catalog, logger),
		db,
		logger,
	)
	app.deckService = service.NewDeckService(
		app.collectionStore,
		app.deckStore,
		builder,
		app.catalog,
		app.outputGuard,
		app.costController,
		app.explainer,
		db,
		logger,
	)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	invocations, leaks := app.outputGuard.Stats()
	app.logger.Info("application shutdown completed",
		"guard_invocations", invocations,
		"guard_leaks", leaks)
}
