package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/cache"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/persistence"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

// OpenDatabase connects to the SQL database named by snapshot.driver with zap
// query logging and, when enabled, query tracing
func OpenDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	level := cfg.Database.LogLevel
	if level == "" {
		level = cfg.Log.Level
	}
	opts := []persistence.Option{
		persistence.WithGormLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(level),
			logger.WithSlowThreshold(cfg.Database.SlowThreshold))),
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		opts = append(opts, persistence.WithPlugin(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			SlowQueryThresh: cfg.Database.SlowThreshold,
			DBSystem:        cfg.Snapshot.Driver,
		}, log)))
	}
	return persistence.NewDatabase(&cfg.Database, cfg.Snapshot.Driver, opts...)
}

// OpenSQLStore opens the SQL snapshot store and creates its table
func OpenSQLStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*persistence.GormSnapshotStore, error) {
	db, err := OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	store := persistence.NewGormSnapshotStore(db, cfg.Snapshot.TTL)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenSnapshotStore creates the store selected by snapshot.driver
func OpenSnapshotStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (shared.SnapshotStore, error) {
	factory := cache.NewSnapshotStoreFactory(cfg.Snapshot, cfg.Redis,
		cache.WithLogger(log),
		cache.WithSQLOpener(func(ctx context.Context) (shared.SnapshotStore, error) {
			return OpenSQLStore(ctx, cfg, log)
		}),
	)
	store, err := factory.CreateStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return store, nil
}
