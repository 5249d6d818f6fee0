package redis

import (
	"context"
	"errors"

	"github.com/malik80-glitch/accsolver/internal/storage"
)

// SnapshotStore persists session snapshots in redis under a fixed key per
// session name. Snapshots never expire; Clear removes them explicitly.
type SnapshotStore struct {
	client *Client
}

// NewSnapshotStore wraps a connected client.
func NewSnapshotStore(client *Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func snapshotKey(name string) string {
	return "accsolver:session:" + name
}

// Save replaces the stored snapshot for name.
func (s *SnapshotStore) Save(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, snapshotKey(name), string(data), 0)
}

// Load returns the stored snapshot for name, or storage.ErrNoSnapshot.
func (s *SnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	value, err := s.client.Get(ctx, snapshotKey(name))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, storage.ErrNoSnapshot
		}
		return nil, err
	}
	return []byte(value), nil
}

// Clear deletes the snapshot for name.
func (s *SnapshotStore) Clear(ctx context.Context, name string) error {
	return s.client.Del(ctx, snapshotKey(name))
}
