// Package models holds the GORM models of the storefront database.
package models

import "time"

// Snapshot is one persisted visitor snapshot (cart, wishlist, selections or a pending confirmation)
type Snapshot struct {
	Key       string     `gorm:"column:snapshot_key;primaryKey;size:255"`
	Value     []byte     `gorm:"not null"`
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Snapshot) TableName() string {
	return "storefront_snapshots"
}

// Expired reports whether the snapshot is past its expiry
func (s *Snapshot) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// AllModels lists every model managed by AutoMigrate
func AllModels() []any {
	return []any{&Snapshot{}}
}
