package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/quizdeck/ent"
	"github.com/abhisek/quizdeck/ent/snapshot"
)

// snapshotRepo implements SnapshotRepo using the ent client.
type snapshotRepo struct {
	client *ent.Client
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Key == "" {
		return errors.New("save snapshot: empty key")
	}
	ts := snap.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	tx, err := r.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snap.Key, err)
	}
	if err := upsertSnapshot(ctx, tx.Snapshot, snap.Key, snap.Data, ts.UTC()); err != nil {
		tx.Rollback()
		return fmt.Errorf("save snapshot %q: %w", snap.Key, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot %q: %w", snap.Key, err)
	}
	return nil
}

// upsertSnapshot overwrites the row for key, creating it on first save.
func upsertSnapshot(ctx context.Context, c *ent.SnapshotClient, key string, data []byte, ts time.Time) error {
	existing, err := c.Query().Where(snapshot.Key(key)).Only(ctx)
	switch {
	case ent.IsNotFound(err):
		_, err = c.Create().
			SetKey(key).
			SetData(data).
			SetUpdatedAt(ts).
			Save(ctx)
		return err
	case err != nil:
		return err
	}
	_, err = c.UpdateOne(existing).
		SetData(data).
		SetUpdatedAt(ts).
		Save(ctx)
	return err
}

func (r *snapshotRepo) Load(ctx context.Context, key string) (*Snapshot, error) {
	s, err := r.client.Snapshot.Query().
		Where(snapshot.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return &Snapshot{Key: s.Key, Data: s.Data, UpdatedAt: s.UpdatedAt}, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.client.Snapshot.Delete().
		Where(snapshot.Key(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
