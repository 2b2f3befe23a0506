package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/emiliopalmerini/worktime/internal/adapters/logger"
	"github.com/emiliopalmerini/worktime/internal/adapters/otel"
	"github.com/emiliopalmerini/worktime/internal/adapters/turso"
	"github.com/emiliopalmerini/worktime/internal/app"
	"github.com/emiliopalmerini/worktime/internal/migrate"
	"github.com/emiliopalmerini/worktime/internal/ports"
	"github.com/emiliopalmerini/worktime/internal/store"
	"github.com/emiliopalmerini/worktime/internal/tracker"
	"github.com/emiliopalmerini/worktime/internal/transfer"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *app.Config
	DB       *turso.DB
	Slots    ports.SlotStore
	Stores   store.Stores
	Tracker  *tracker.Controller
	History  *tracker.HistoryService
	Importer *transfer.Importer
	Logger   ports.Logger
	Metrics  ports.MetricsExporter

	logFile *logger.FileLogger
}

// NewAppContext opens the database, applies pending migrations and restores
// the saved session. Notifications go to notifier.
func NewAppContext(ctx context.Context, cfg *app.Config, notifier ports.Notifier) (*AppContext, error) {
	logFile, err := logger.NewFileLogger(cfg.LogPath(), cfg.Debug)
	if err != nil {
		return nil, err
	}
	a := &AppContext{Config: cfg, Logger: logFile, logFile: logFile}

	db, err := turso.Open(cfg.Database())
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.DB = db

	if db.Remote() {
		if err := db.Sync(); err != nil {
			a.Logger.Warn(fmt.Sprintf("initial sync failed, using local replica: %v", err))
		}
	}
	if err := migrate.RunAll(ctx, db.DB); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	metrics, err := otel.NewFromConfig(ctx, cfg.Otel)
	if err != nil {
		a.Logger.Error(fmt.Sprintf("metrics export disabled: %v", err))
	}
	a.Metrics = metrics

	a.Slots = turso.NewSlotStore(db.DB)
	a.Stores = store.NewStores(a.Slots, a.Logger)
	a.Tracker = tracker.NewController(a.Stores, notifier, a.Logger, a.Metrics)
	a.History = tracker.NewHistoryService(a.Stores, a.Tracker.Now)
	a.Importer = transfer.NewImporter(a.Slots, a.Stores, a.Logger)

	if _, err := a.Tracker.Restore(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return a, nil
}

// Close flushes metrics, pushes local writes to the remote database when
// one is configured and releases all resources.
func (a *AppContext) Close() error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if a.Metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.Metrics.Close(ctx); err != nil && a.Logger != nil {
			a.Logger.Error(fmt.Sprintf("failed to flush metrics: %v", err))
		}
		cancel()
	}
	if a.DB != nil {
		if err := a.DB.Sync(); err != nil && a.Logger != nil {
			a.Logger.Warn(err.Error())
		}
		keep(a.DB.Close())
	}
	if a.logFile != nil {
		keep(a.logFile.Close())
	}
	return firstErr
}
