package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/observability"
)

const backendMemory = "memory"

// MemoryStore keeps sessions in process memory. Sessions are stored as
// encoded snapshots so callers never share a draft with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		observability.Session().OnSessionMiss(ctx, backendMemory)
		return nil, ErrNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.expire(id, entry.expiresAt)
		observability.Session().OnSessionMiss(ctx, backendMemory)
		return nil, ErrExpired
	}

	var sess Session
	if err := json.Unmarshal(entry.data, &sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode session")
	}
	observability.Session().OnSessionHit(ctx, backendMemory)
	return &sess, nil
}

func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode session")
	}

	s.mu.Lock()
	s.sessions[sess.ID] = memoryEntry{data: data, expiresAt: sess.ExpiresAt}
	s.mu.Unlock()

	observability.Session().OnSessionSave(ctx, backendMemory, len(data))
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// expire removes id if it still holds the entry that was seen expiring at
// seen. A session saved again in the meantime is kept.
func (s *MemoryStore) expire(id string, seen time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || !entry.expiresAt.Equal(seen) {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *MemoryStore) Cleanup(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
