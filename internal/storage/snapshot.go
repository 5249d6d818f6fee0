package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoSnapshot reports an absent durable snapshot.
var ErrNoSnapshot = errors.New("no session snapshot")

// SnapshotStore persists the serialized session wholesale under a fixed
// name. Every save replaces the prior snapshot in full; there is no
// incremental diffing.
type SnapshotStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	Clear(ctx context.Context, name string) error
}

// SQLStore keeps snapshots in a keyed table, one row per session name.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an opened, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Save replaces the stored snapshot for name.
func (s *SQLStore) Save(ctx context.Context, name string, data []byte) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`REPLACE INTO session_snapshots (name, data, updated_at) VALUES (?, ?, ?)`,
		name, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot for name, or ErrNoSnapshot.
func (s *SQLStore) Load(ctx context.Context, name string) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM session_snapshots WHERE name = ?`, name,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return []byte(data), nil
}

// Clear deletes the snapshot for name. Clearing an absent snapshot is a
// no-op.
func (s *SQLStore) Clear(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM session_snapshots WHERE name = ?`, name,
	); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
