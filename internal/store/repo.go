package store

import (
	"context"
	"time"
)

// Snapshot is one keyed blob, overwritten as a whole value.
type Snapshot struct {
	Key       string
	Data      []byte
	UpdatedAt time.Time
}

// SnapshotRepo manages keyed snapshots.
type SnapshotRepo interface {
	// Save overwrites the snapshot stored under snap.Key.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the snapshot stored under key, or nil if there is none.
	Load(ctx context.Context, key string) (*Snapshot, error)

	// Delete removes the snapshot stored under key. Deleting a missing key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
