package shared

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by SnapshotStore.Get when no value is stored under the key
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is a durable string key-value store holding opaque serialized
// visitor state. Values are written whole and never merged.
type SnapshotStore interface {
	// Get returns the value stored under key, or ErrSnapshotNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the resources held by the store
	Close() error
}

// SnapshotLister is implemented by stores that can enumerate their keys.
// It is used by operator tooling, never by request handling.
type SnapshotLister interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
}
