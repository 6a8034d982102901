package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/db"
	"github.com/jakechorley/duty-roster/pkg/postgres"
	"github.com/jakechorley/duty-roster/pkg/sqlite"
)

// OpenDatabase connects to the configured backend and wraps it so every
// committed write is published on broker
func OpenDatabase(ctx context.Context, cfg *config.Config, broker *db.Broker, logger *zap.Logger) (db.Database, error) {
	var (
		store db.Database
		err   error
	)

	switch cfg.Backend {
	case config.BackendPostgres:
		logger.Info("Connecting to Postgres")
		store, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	case config.BackendSQLite:
		logger.Info("Opening SQLite database", zap.String("path", cfg.SQLitePath))
		store, err = sqlite.NewDB(ctx, cfg.SQLitePath)
	case config.BackendMemory:
		logger.Warn("Using in-memory store: nothing is persisted after exit")
		store = db.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Backend, err)
	}

	broker.Subscribe(func(event db.ChangeEvent) {
		logger.Debug("Store changed",
			zap.String("change_id", event.ID),
			zap.String("kind", string(event.Kind)),
			zap.Int("shifts", len(event.Shifts)))
	})

	return db.NewNotifyingStore(store, broker), nil
}
