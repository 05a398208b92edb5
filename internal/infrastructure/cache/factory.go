package cache

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
)

// SQLOpener opens the SQL-backed snapshot store for the sqlite, postgres and mysql drivers
type SQLOpener func(ctx context.Context) (shared.SnapshotStore, error)

// SnapshotStoreFactory creates the snapshot store selected by configuration
type SnapshotStoreFactory struct {
	snapshotConfig config.SnapshotConfig
	redisConfig    config.RedisConfig
	logger         *zap.Logger
	openSQL        SQLOpener
}

// SnapshotStoreFactoryOption is a functional option for configuring the factory
type SnapshotStoreFactoryOption func(*SnapshotStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SnapshotStoreFactoryOption {
	return func(f *SnapshotStoreFactory) {
		f.logger = logger
	}
}

// WithSQLOpener provides the constructor used for SQL drivers
func WithSQLOpener(open SQLOpener) SnapshotStoreFactoryOption {
	return func(f *SnapshotStoreFactory) {
		f.openSQL = open
	}
}

// NewSnapshotStoreFactory creates a new factory
func NewSnapshotStoreFactory(snapshotCfg config.SnapshotConfig, redisCfg config.RedisConfig, opts ...SnapshotStoreFactoryOption) *SnapshotStoreFactory {
	f := &SnapshotStoreFactory{
		snapshotConfig: snapshotCfg,
		redisConfig:    redisCfg,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryStore creates an in-memory snapshot store.
// Visitors lose their cart and wishlist when the process restarts.
func (f *SnapshotStoreFactory) CreateInMemoryStore() *InMemorySnapshotStore {
	return NewInMemorySnapshotStore(f.snapshotConfig.CleanupInterval, WithTTL(f.snapshotConfig.TTL))
}

// CreateRedisStore creates a Redis-based snapshot store
func (f *SnapshotStoreFactory) CreateRedisStore(ctx context.Context) (*RedisSnapshotStore, error) {
	store, err := NewRedisSnapshotStore(ctx, RedisConfig{
		Addr:      f.redisConfig.Addr(),
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.snapshotConfig.KeyPrefix,
		TTL:       f.snapshotConfig.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis snapshot store: %w", err)
	}
	return store, nil
}

// CreateStore creates the store named by snapshot.driver. When the backing
// service is unreachable and fallback is enabled it returns an in-memory store
// and logs a warning instead of failing.
func (f *SnapshotStoreFactory) CreateStore(ctx context.Context) (shared.SnapshotStore, error) {
	driver := f.snapshotConfig.Driver

	var (
		store shared.SnapshotStore
		err   error
	)
	switch driver {
	case config.DriverMemory, "":
		f.logger.Info("using in-memory snapshot store")
		return f.CreateInMemoryStore(), nil
	case config.DriverRedis:
		store, err = f.CreateRedisStore(ctx)
	case config.DriverSQLite, config.DriverPostgres, config.DriverMySQL:
		if f.openSQL == nil {
			err = errors.New("no SQL opener configured")
		} else {
			store, err = f.openSQL(ctx)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot driver %q", driver)
	}

	if err == nil {
		f.logger.Info("using snapshot store", zap.String("driver", driver))
		return store, nil
	}

	if !f.snapshotConfig.FallbackToMemory {
		return nil, fmt.Errorf("snapshot driver %s unavailable: %w", driver, err)
	}

	f.logger.Warn("snapshot store unavailable, falling back to in-memory store. "+
		"Visitor carts will not survive restarts or be shared between instances.",
		zap.String("driver", driver),
		zap.Error(err),
	)
	return f.CreateInMemoryStore(), nil
}
