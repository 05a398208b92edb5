package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gustavohenri316/Montink-Store/internal/domain/shared"
	"github.com/gustavohenri316/Montink-Store/internal/infrastructure/persistence/models"
)

// GormSnapshotStore implements shared.SnapshotStore on a SQL table
type GormSnapshotStore struct {
	db  *Database
	ttl time.Duration
	now func() time.Time
}

// NewGormSnapshotStore creates a store over an open database.
// A zero ttl keeps snapshots until they are deleted.
func NewGormSnapshotStore(db *Database, ttl time.Duration) *GormSnapshotStore {
	return &GormSnapshotStore{
		db:  db,
		ttl: ttl,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates or updates the snapshot table
func (s *GormSnapshotStore) Migrate(ctx context.Context) error {
	if err := s.db.DB.WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate snapshot table: %w", err)
	}
	return nil
}

// Get returns the value stored under key
func (s *GormSnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	var m models.Snapshot
	err := s.db.DB.WithContext(ctx).Where("snapshot_key = ?", key).Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
	}
	if m.Expired(s.now()) {
		return nil, shared.ErrSnapshotNotFound
	}
	return m.Value, nil
}

// Set upserts the value under key and refreshes its expiry
func (s *GormSnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	now := s.now()
	m := models.Snapshot{
		Key:       key,
		Value:     value,
		UpdatedAt: now,
	}
	if s.ttl > 0 {
		expiresAt := now.Add(s.ttl)
		m.ExpiresAt = &expiresAt
	}

	err := s.db.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "snapshot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *GormSnapshotStore) Delete(ctx context.Context, key string) error {
	err := s.db.DB.WithContext(ctx).Where("snapshot_key = ?", key).Delete(&models.Snapshot{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}

// Keys lists live keys starting with prefix, sorted
func (s *GormSnapshotStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.DB.WithContext(ctx).
		Model(&models.Snapshot{}).
		Where("snapshot_key LIKE ?", prefix+"%").
		Where("(expires_at IS NULL OR expires_at > ?)", s.now()).
		Order("snapshot_key").
		Pluck("snapshot_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	// LIKE treats _ as a wildcard and sqlite folds case
	filtered := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			filtered = append(filtered, k)
		}
	}
	return filtered, nil
}

// PurgeExpired deletes expired rows and returns how many were removed
func (s *GormSnapshotStore) PurgeExpired(ctx context.Context) (int64, error) {
	result := s.db.DB.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&models.Snapshot{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge snapshots: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Ping checks the database connection
func (s *GormSnapshotStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying database
func (s *GormSnapshotStore) Close() error {
	return s.db.Close()
}

var (
	_ shared.SnapshotStore  = (*GormSnapshotStore)(nil)
	_ shared.SnapshotLister = (*GormSnapshotStore)(nil)
)
