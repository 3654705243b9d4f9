// Package session keeps per-browser form state for the web server.
//
// A session holds the draft a visitor is editing so that the form survives
// page reloads and the download link can re-render the same submission.
// Three backends implement [Store]:
//   - memory: in-process map, the default for a single server
//   - redis: shared storage for multi-instance deployments
//   - file: JSON files in a directory, for single-instance deployments that
//     should survive restarts
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(session.DefaultTTL)
//	sess.Draft.Name = "Ada"
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if errors.Is(err, errors.ErrCodeSessionNotFound) || errors.Is(err, errors.ErrCodeSessionExpired) {
//	    // start over with a fresh session
//	}
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// Sentinel errors for session operations. Match them by code with
// errors.Is(err, errors.ErrCodeSessionNotFound) and friends.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New(errors.ErrCodeSessionNotFound, "session not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New(errors.ErrCodeSessionExpired, "session expired")
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session is one visitor's form state.
type Session struct {
	ID        string      `json:"id"`
	Draft     *tier.Draft `json:"draft"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// New creates a session with a fresh random ID and an empty draft.
func New(ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Draft:     tier.NewDraft(),
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s.ExpiresAt = time.Now().Add(ttl)
}

// ValidID reports whether id has the shape of a session ID. Stores reject
// anything else before touching their backend.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}

// Store is the interface for session storage backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist and ErrExpired if it
	// exists but has expired. Expired sessions are removed.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session, replacing any previous value.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions (no-op for Redis).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
