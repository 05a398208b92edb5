package storefront

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gustavohenri316/Montink-Store/internal/domain/catalog"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shared/valueobject"
	"github.com/gustavohenri316/Montink-Store/internal/domain/shipping"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/cache"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

const visitor = "5d0f6a52-8c1e-4b3a-9d7e-0c2f1a4b6e8d"

var errStoreDown = errors.New("store down")

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockAddressLookup is a mock implementation of shipping.AddressLookup
type MockAddressLookup struct {
	mock.Mock
}

func (m *MockAddressLookup) Lookup(ctx context.Context, code valueobject.PostalCode) (*shipping.Address, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipping.Address), args.Error(1)
}

// flakyStore fails writes while failWrites is set
type flakyStore struct {
	shared.SnapshotStore
	mu         sync.Mutex
	failWrites bool
}

func (s *flakyStore) setFailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	fail := s.failWrites
	s.mu.Unlock()
	if fail {
		return errStoreDown
	}
	return s.SnapshotStore.Set(ctx, key, value)
}

type fixture struct {
	svc     *Services
	store   *flakyStore
	lookup  *MockAddressLookup
	clock   *testClock
	logs    *observer.ObservedLogs
	metrics *telemetry.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	mem := cache.NewInMemorySnapshotStore(0)
	t.Cleanup(func() { _ = mem.Close() })

	obsCore, logs := observer.New(zapcore.DebugLevel)
	f := &fixture{
		store:   &flakyStore{SnapshotStore: mem},
		lookup:  new(MockAddressLookup),
		clock:   &testClock{now: time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC)},
		logs:    logs,
		metrics: telemetry.NewMetrics(),
	}
	f.svc = f.build(zap.New(obsCore))
	return f
}

// build wires a fresh set of services over the fixture's store, like a
// process restart would
func (f *fixture) build(l *zap.Logger) *Services {
	var seq int
	var mu sync.Mutex
	return NewServices(f.store, catalog.NewStaticCatalog(catalog.CourtVisionLow()), f.lookup,
		WithLogger(l),
		WithMetrics(f.metrics),
		WithClock(f.clock.Now),
		WithIDGenerator(func() string {
			mu.Lock()
			defer mu.Unlock()
			seq++
			return "confirm-" + strconv.Itoa(seq)
		}),
	)
}

func (f *fixture) raw(t *testing.T, name string) ([]byte, error) {
	t.Helper()
	return f.store.Get(context.Background(), SnapshotKey(visitor, name))
}

// selectVariant puts the visitor's page in the complete state
func (f *fixture) selectVariant(t *testing.T, color, size string) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.svc.Page.SelectColor(ctx, visitor, color); err != nil {
		t.Fatalf("select color: %v", err)
	}
	if size == "" {
		return
	}
	if _, err := f.svc.Page.SelectSize(ctx, visitor, size); err != nil {
		t.Fatalf("select size: %v", err)
	}
}
