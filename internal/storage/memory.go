// Package storage provides session and dish persistence implementations.
package storage

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/hammamikhairi/cuisine/internal/domain"
	"github.com/hammamikhairi/cuisine/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionStore = (*MemoryStore)(nil)

var errNoSessionID = errors.New("session has no id")

// MemoryStore keeps sessions by value, so callers never share state with
// the store. Safe for concurrent access.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	log      *logger.Logger
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]domain.Session),
		log:      log,
	}
}

// Save records session, replacing any earlier state under its ID.
func (s *MemoryStore) Save(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		return errNoSessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = *session
	s.log.Debug("session %s at %s is %s", session.ID, session.Vessel, session.Status)
	return nil
}

// Load returns the session stored under id.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &sess, nil
}

// Delete removes a session by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, id)
	s.log.Debug("dropped session %s", id)
	return nil
}

// ListActive returns the open sessions, oldest first.
func (s *MemoryStore) ListActive(ctx context.Context) ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Session
	for _, sess := range s.sessions {
		if sess.Open() {
			out = append(out, &sess)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Session) int {
		return cmp.Or(a.StartedAt.Compare(b.StartedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// Prune drops closed sessions last touched before cutoff and returns how
// many went. Open sessions are never pruned.
func (s *MemoryStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if !sess.Open() && sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.log.Debug("pruned %d closed sessions older than %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}
