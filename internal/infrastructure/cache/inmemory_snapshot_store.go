package cache

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// InMemorySnapshotStore implements SnapshotStore using an in-memory map.
// State is lost on restart and not shared between instances, so it suits
// single-instance deployments and tests.
type InMemorySnapshotStore struct {
	mu        sync.RWMutex
	entries   map[string]entry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// InMemoryOption configures an InMemorySnapshotStore
type InMemoryOption func(*InMemorySnapshotStore)

// WithTTL expires every value ttl after it was last written. Zero keeps values forever.
func WithTTL(ttl time.Duration) InMemoryOption {
	return func(s *InMemorySnapshotStore) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) InMemoryOption {
	return func(s *InMemorySnapshotStore) {
		s.now = now
	}
}

// NewInMemorySnapshotStore creates an in-memory store. When cleanupInterval is
// positive a background goroutine evicts expired values; Close stops it.
func NewInMemorySnapshotStore(cleanupInterval time.Duration, opts ...InMemoryOption) *InMemorySnapshotStore {
	store := &InMemorySnapshotStore{
		entries:  make(map[string]entry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(store)
	}

	if cleanupInterval > 0 {
		store.wg.Add(1)
		go store.cleanupLoop(cleanupInterval)
	}

	return store
}

// Get returns a copy of the value stored under key
func (s *InMemorySnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.expired(s.now()) {
		return nil, shared.ErrSnapshotNotFound
	}
	return slices.Clone(e.value), nil
}

// Set stores a copy of value under key
func (s *InMemorySnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: slices.Clone(value)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = e
	return nil
}

// Delete removes key
func (s *InMemorySnapshotStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Keys lists the live keys starting with prefix, sorted
func (s *InMemorySnapshotStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	keys := make([]string, 0, len(s.entries))
	for k, e := range s.entries {
		if strings.HasPrefix(k, prefix) && !e.expired(now) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Ping always succeeds
func (s *InMemorySnapshotStore) Ping(ctx context.Context) error {
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemorySnapshotStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

func (s *InMemorySnapshotStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySnapshotStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, key)
		}
	}
}

// Size returns the number of stored values, expired ones included until evicted
func (s *InMemorySnapshotStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

var (
	_ shared.SnapshotStore  = (*InMemorySnapshotStore)(nil)
	_ shared.SnapshotLister = (*InMemorySnapshotStore)(nil)
)
