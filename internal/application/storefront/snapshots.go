package storefront

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/logger"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/telemetry"
)

// Snapshot names stored per visitor
const (
	KeyCart                = "cart"
	KeyWishlist            = "wishlist"
	KeyProductSelections   = "productSelections"
	KeyPendingConfirmation = "pendingConfirmation"
)

// SnapshotKey is the store key of a visitor's snapshot. Stores add their own namespace.
func SnapshotKey(visitorID, name string) string {
	return visitorID + ":" + name
}

// snapshots reads and writes JSON snapshots for one kind of state
type snapshots struct {
	store   shared.SnapshotStore
	logger  *zap.Logger
	metrics *telemetry.Metrics
}

// load decodes the visitor's snapshot into dst and reports whether it did.
// A missing or unreadable snapshot leaves dst untouched. A corrupt one is
// also deleted so the next load starts clean.
func (s *snapshots) load(ctx context.Context, visitorID, name string, dst any) bool {
	key := SnapshotKey(visitorID, name)
	log := logger.WithLogger(ctx, logger.FromContextOr(ctx, s.logger)).With(zap.String("snapshot", name))

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, shared.ErrSnapshotNotFound) {
			s.metrics.IncSnapshotError(name, "read")
			log.Warn("failed to read snapshot, using empty state", zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		s.metrics.IncSnapshotError(name, "corrupt")
		log.Warn("discarding corrupt snapshot", zap.Error(err))
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Warn("failed to delete corrupt snapshot", zap.Error(delErr))
		}
		return false
	}
	return true
}

// save replaces the visitor's snapshot with v
func (s *snapshots) save(ctx context.Context, visitorID, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, SnapshotKey(visitorID, name), data); err != nil {
		s.metrics.IncSnapshotError(name, "write")
		return err
	}
	return nil
}

func (s *snapshots) remove(ctx context.Context, visitorID, name string) error {
	if err := s.store.Delete(ctx, SnapshotKey(visitorID, name)); err != nil {
		s.metrics.IncSnapshotError(name, "delete")
		return err
	}
	return nil
}
