// Package di provides a dependency injection container for managing service lifecycle and dependencies.
package di

import (
	"context"
	"database/sql"
	"sync"

	"aitutor/internal/config"
	"aitutor/internal/database"
	"aitutor/internal/observability"
	"aitutor/internal/services"
	contextutils "aitutor/internal/utils"
)

// ServiceContainer manages service dependencies and lifecycle
type ServiceContainer struct {
	cfg            *config.Config
	logger         *observability.Logger
	dbManager      *database.Manager
	db             *sql.DB
	aiService      *services.AIService
	historyService services.HistoryServiceInterface
	mu             sync.Mutex
	shutdownFuncs  []func(context.Context) error
}

// NewServiceContainer creates a new dependency injection container
func NewServiceContainer(cfg *config.Config, logger *observability.Logger) *ServiceContainer {
	return &ServiceContainer{
		cfg:    cfg,
		logger: logger,
	}
}

// Initialize sets up all services and their dependencies. When no database URL
// is configured the gateway runs stateless: history reads return empty lists
// and history writes are no-ops.
func (sc *ServiceContainer) Initialize(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.aiService = services.NewAIService(sc.cfg, sc.logger)

	if sc.cfg.Database.URL == "" {
		sc.logger.Info(ctx, "No database configured, running in stateless mode", nil)
		sc.historyService = services.NewNoopHistoryService()
		return nil
	}

	sc.dbManager = database.NewManager(sc.logger)
	db, err := sc.dbManager.InitDBWithConfig(sc.cfg.Database)
	if err != nil {
		return contextutils.WrapErrorf(err, "failed to initialize database")
	}
	sc.db = db
	sc.shutdownFuncs = append(sc.shutdownFuncs, func(_ context.Context) error {
		return db.Close()
	})

	sc.historyService = services.NewHistoryService(sc.db, sc.logger)
	return nil
}

// GetAIService returns the AI service
func (sc *ServiceContainer) GetAIService() *services.AIService {
	return sc.aiService
}

// GetHistoryService returns the history service
func (sc *ServiceContainer) GetHistoryService() services.HistoryServiceInterface {
	return sc.historyService
}

// GetDatabase returns the database instance, nil in stateless mode
func (sc *ServiceContainer) GetDatabase() *sql.DB {
	return sc.db
}

// GetConfig returns the configuration
func (sc *ServiceContainer) GetConfig() *config.Config {
	return sc.cfg
}

// GetLogger returns the logger
func (sc *ServiceContainer) GetLogger() *observability.Logger {
	return sc.logger
}

// Shutdown gracefully shuts down all services in reverse order of initialization
func (sc *ServiceContainer) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var errs []error
	for i := len(sc.shutdownFuncs) - 1; i >= 0; i-- {
		if err := sc.shutdownFuncs[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	sc.shutdownFuncs = nil

	if len(errs) > 0 {
		return contextutils.ErrorWithContextf("shutdown errors: %v", errs)
	}
	return nil
}
