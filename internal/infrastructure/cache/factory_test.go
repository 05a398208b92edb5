package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/config"
)

// Nothing listens on port 1, so connecting fails fast.
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestSnapshotStoreFactory_Memory(t *testing.T) {
	f := NewSnapshotStoreFactory(config.SnapshotConfig{Driver: config.DriverMemory}, unreachableRedis)

	store, err := f.CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemorySnapshotStore{}, store)
}

func TestSnapshotStoreFactory_RedisFallback(t *testing.T) {
	core, recorded := observer.New(zapcore.WarnLevel)

	f := NewSnapshotStoreFactory(
		config.SnapshotConfig{Driver: config.DriverRedis, FallbackToMemory: true, TTL: time.Hour},
		unreachableRedis,
		WithLogger(zap.New(core)),
	)

	store, err := f.CreateStore(context.Background())
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &InMemorySnapshotStore{}, store)
	require.Len(t, recorded.All(), 1)
	assert.Equal(t, "redis", recorded.All()[0].ContextMap()["driver"])
}

func TestSnapshotStoreFactory_RedisWithoutFallback(t *testing.T) {
	f := NewSnapshotStoreFactory(config.SnapshotConfig{Driver: config.DriverRedis}, unreachableRedis)

	_, err := f.CreateStore(context.Background())
	assert.ErrorContains(t, err, "snapshot driver redis unavailable")
}

func TestSnapshotStoreFactory_SQL(t *testing.T) {
	t.Run("uses opener", func(t *testing.T) {
		want := NewInMemorySnapshotStore(0)
		defer want.Close()

		f := NewSnapshotStoreFactory(
			config.SnapshotConfig{Driver: config.DriverSQLite},
			unreachableRedis,
			WithSQLOpener(func(context.Context) (shared.SnapshotStore, error) { return want, nil }),
		)

		got, err := f.CreateStore(context.Background())
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("opener failure without fallback", func(t *testing.T) {
		f := NewSnapshotStoreFactory(
			config.SnapshotConfig{Driver: config.DriverPostgres},
			unreachableRedis,
			WithSQLOpener(func(context.Context) (shared.SnapshotStore, error) { return nil, errors.New("connection refused") }),
		)

		_, err := f.CreateStore(context.Background())
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("missing opener falls back", func(t *testing.T) {
		f := NewSnapshotStoreFactory(config.SnapshotConfig{Driver: config.DriverMySQL, FallbackToMemory: true}, unreachableRedis)

		store, err := f.CreateStore(context.Background())
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &InMemorySnapshotStore{}, store)
	})
}

func TestSnapshotStoreFactory_UnknownDriver(t *testing.T) {
	f := NewSnapshotStoreFactory(config.SnapshotConfig{Driver: "etcd", FallbackToMemory: true}, unreachableRedis)

	_, err := f.CreateStore(context.Background())
	assert.ErrorContains(t, err, "unknown snapshot driver")
}
