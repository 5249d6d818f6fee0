package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/malik80-glitch/accsolver/internal/models"
	"github.com/malik80-glitch/accsolver/internal/storage"
)

const (
	// snapshotName keys the single durable record for this client.
	snapshotName = "active"

	DefaultAutosaveInterval = 30 * time.Second

	// savingSignalDuration is how long the transient saving indicator stays
	// on after a write.
	savingSignalDuration = 2 * time.Second
)

// Store owns the canonical in-memory session and its durable snapshot. All
// mutation goes through Append, Reset, and SetTopic; readers get copies, so
// projections like search and assembly never touch shared state.
type Store struct {
	mu          sync.Mutex
	session     models.Session
	snapshots   storage.SnapshotStore
	interval    time.Duration
	savingUntil time.Time
	now         func() time.Time
}

// NewStore builds a store persisting to snapshots at the given interval.
func NewStore(snapshots storage.SnapshotStore, interval time.Duration) *Store {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Store{snapshots: snapshots, interval: interval, now: time.Now}
}

// NewMessageID returns an identifier unique within the session.
func NewMessageID() string {
	return uuid.NewString()
}

// Append adds a message to the session. A user message marks a request in
// flight; a model message clears it. Appending after a reset lands the
// message in whatever session exists now: a late backend response is kept,
// never dropped.
func (s *Store) Append(msg models.Message) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg.ID == "" {
		msg.ID = NewMessageID()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now().UTC()
	}
	s.session.Messages = append(s.session.Messages, msg)
	s.session.IsBusy = msg.Role == models.RoleUser
	return msg
}

// Reset replaces the session with an empty default and clears the durable
// snapshot immediately rather than waiting for the next autosave.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()
	if err := s.snapshots.Clear(ctx, snapshotName); err != nil {
		log.Printf("clear session snapshot: %v", err)
	}
}

// SetTopic sets the active subject without touching messages.
func (s *Store) SetTopic(name string) {
	s.mu.Lock()
	s.session.ActiveTopic = name
	s.mu.Unlock()
}

// ActiveTopic returns the current subject, empty when unset.
func (s *Store) ActiveTopic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.ActiveTopic
}

// IsBusy reports whether a backend request is in flight.
func (s *Store) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.IsBusy
}

// Messages returns a copy of the message sequence in insertion order.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.session.Messages))
	copy(out, s.session.Messages)
	return out
}

// Snapshot returns a deep copy of the full session suitable for
// serialization.
func (s *Store) Snapshot() models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Clone()
}

// Restore loads the latest durable snapshot, if any. Failures fall back to
// an empty session and are only logged. A snapshot written while a request
// was in flight still restores idle: nothing survives a restart in flight.
func (s *Store) Restore(ctx context.Context) {
	data, err := s.snapshots.Load(ctx, snapshotName)
	if err != nil {
		if !errors.Is(err, storage.ErrNoSnapshot) {
			log.Printf("restore session: %v", err)
		}
		return
	}
	var restored models.Session
	if err := json.Unmarshal(data, &restored); err != nil {
		log.Printf("decode session snapshot: %v", err)
		return
	}
	restored.IsBusy = false
	s.mu.Lock()
	s.session = restored
	s.mu.Unlock()
}

// IsSaving reports the transient autosave indicator.
func (s *Store) IsSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.savingUntil)
}

// StartAutosave launches the periodic persistence loop; it runs until ctx is
// cancelled.
func (s *Store) StartAutosave(ctx context.Context) {
	go s.autosaveLoop(ctx)
}

func (s *Store) autosaveLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SaveNow(ctx)
		}
	}
}

// SaveNow serializes the session and replaces the durable snapshot
// wholesale. An empty session is skipped: there is nothing to persist yet.
// Write failures are logged and swallowed; the conversation loop never
// blocks on persistence.
func (s *Store) SaveNow(ctx context.Context) {
	snap := s.Snapshot()
	if len(snap.Messages) == 0 {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("encode session snapshot: %v", err)
		return
	}
	if err := s.snapshots.Save(ctx, snapshotName, data); err != nil {
		log.Printf("save session snapshot: %v", err)
		return
	}
	s.mu.Lock()
	s.savingUntil = s.now().Add(savingSignalDuration)
	s.mu.Unlock()
}
