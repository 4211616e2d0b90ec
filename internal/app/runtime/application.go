// Package runtime assembles the process: configuration, logging, store
// selection, seed loading and the HTTP server lifecycle.
package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	app "github.com/workhands/service_market/internal/app"
	"github.com/workhands/service_market/internal/app/httpapi"
	"github.com/workhands/service_market/internal/app/seed"
	"github.com/workhands/service_market/internal/app/storage/postgres"
	"github.com/workhands/service_market/internal/config"
	"github.com/workhands/service_market/internal/middleware"
	"github.com/workhands/service_market/pkg/logger"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        *logger.Logger
	app        *app.Application
	httpServer *http.Server
	db         *sql.DB
}

// NewApplication constructs an application instance with default wiring.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.LoggingConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	stores, db, err := buildStores(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("configure stores: %w", err)
	}

	application := app.New(stores, app.Options{EnforceReferences: cfg.Store.EnforceReferences}, log)

	if cfg.Seed.Enabled {
		if err := loadSeed(cfg, stores, log); err != nil {
			if db != nil {
				db.Close()
			}
			return nil, fmt.Errorf("load seed data: %w", err)
		}
	}

	handler := buildHandler(cfg, application, log)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	return &Application{
		cfg:        cfg,
		log:        log,
		app:        application,
		httpServer: httpServer,
		db:         db,
	}, nil
}

// App exposes the wired services, mainly for tests.
func (a *Application) App() *app.Application {
	return a.app
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.log.Infof("HTTP server listening on %s", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully drains the HTTP server and closes the database.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}
	return nil
}

// buildStores selects postgres when a driver and DSN are configured and the
// in-memory store otherwise.
func buildStores(cfg *config.Config, log *logger.Logger) (app.Stores, *sql.DB, error) {
	if cfg.Database.Driver == "" || cfg.Database.DSN == "" {
		log.Warn("database not configured; using in-memory store")
		return app.Stores{}, nil, nil
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return app.Stores{}, nil, err
	}

	store := postgres.New(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return app.Stores{}, nil, err
	}

	return app.Stores{Users: store, Orders: store, Offers: store, Refs: store}, db, nil
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// loadSeed inserts the dataset unless the store already holds users, so a
// restart against a persistent database does not duplicate records.
func loadSeed(cfg *config.Config, stores app.Stores, log *logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	existing, err := stores.Users.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("store already populated; skipping seed")
		return nil
	}

	data := seed.Default()
	if cfg.Seed.Path != "" {
		if data, err = seed.ReadFile(cfg.Seed.Path); err != nil {
			return err
		}
	}

	return seed.Load(ctx, seed.Stores{
		Users:  stores.Users,
		Orders: stores.Orders,
		Offers: stores.Offers,
	}, data, log)
}

func buildHandler(cfg *config.Config, application *app.Application, log *logger.Logger) http.Handler {
	router := httpapi.NewHandler(application, log)

	var handler http.Handler = router
	handler = middleware.NewCORS(cfg.Server.CORSOrigins).Handler(handler)
	if cfg.Server.RateLimitPerSecond > 0 {
		handler = middleware.NewRateLimiter(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst, log).Handler(handler)
	}
	handler = middleware.Metrics()(handler)
	handler = middleware.Logging(log)(handler)
	return handler
}
