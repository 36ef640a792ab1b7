package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nola-analytics/nola/config"
	"github.com/nola-analytics/nola/internal/database"
	"github.com/nola-analytics/nola/internal/domain"
	nolahttp "github.com/nola-analytics/nola/internal/http"
	"github.com/nola-analytics/nola/internal/http/middleware"
	"github.com/nola-analytics/nola/internal/repository"
	"github.com/nola-analytics/nola/internal/service"
	"github.com/nola-analytics/nola/pkg/analytics"
	"github.com/nola-analytics/nola/pkg/logger"
)

// App encapsulates the application dependencies and configuration
type App struct {
	config  *config.Config
	logger  logger.Logger
	db      *sql.DB
	catalog *analytics.Catalog

	// Repositories
	analyticsRepo domain.AnalyticsRepository
	metadataRepo  domain.MetadataRepository
	healthChecker domain.HealthChecker

	// Services
	analyticsService domain.AnalyticsService
	metadataService  domain.MetadataService

	// HTTP
	mux    *http.ServeMux
	server *http.Server

	serverMu sync.RWMutex
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config:  cfg,
		logger:  logger.NewLoggerWithLevel(cfg.LogLevel),
		catalog: analytics.NewDefaultCatalog(),
		mux:     http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitDB connects to the analytics database unless a mock was injected.
func (a *App) InitDB() error {
	if a.db != nil {
		return nil
	}

	db, err := database.Connect(&a.config.Database, a.config.Environment, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	a.db = db
	return nil
}

// InitRepositories initializes the repositories
func (a *App) InitRepositories() error {
	a.analyticsRepo = repository.NewAnalyticsRepository(a.db, a.catalog, a.logger)
	a.metadataRepo = repository.NewMetadataRepository(a.db)
	a.healthChecker = repository.NewHealthChecker(a.db)
	return nil
}

// InitServices initializes the services
func (a *App) InitServices() error {
	a.analyticsService = service.NewAnalyticsService(a.analyticsRepo, a.logger)
	a.metadataService = service.NewMetadataService(a.metadataRepo, a.logger)
	return nil
}

// InitHandlers initializes the HTTP handlers and registers the routes
func (a *App) InitHandlers() error {
	analyticsHandler := nolahttp.NewAnalyticsHandler(a.analyticsService, a.logger)
	metadataHandler := nolahttp.NewMetadataHandler(a.metadataService, a.logger)
	rootHandler := nolahttp.NewRootHandler(a.healthChecker, a.logger)

	analyticsHandler.RegisterRoutes(a.mux)
	metadataHandler.RegisterRoutes(a.mux)
	rootHandler.RegisterRoutes(a.mux)

	return nil
}

// Initialize initializes all app components in dependency order.
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.WithField("version", a.config.Version).Info("Application initialized")
	return nil
}

// Start starts the HTTP server. It blocks until the server stops.
func (a *App) Start() error {
	var handler http.Handler = a.mux
	handler = middleware.CORS(a.config.CORS.AllowOrigin)(handler)
	handler = middleware.RequestID()(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info("Server starting")

	a.serverMu.Lock()
	a.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	a.serverMu.Unlock()

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown")

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err.Error()).Error("Server shutdown failed")
			return err
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Failed to close database")
			return err
		}
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// GetConfig returns the application configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the application logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the HTTP request multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}
