package httpapi

import (
	"sync"

	"MoneySmartz/internal/sim"

	"github.com/google/uuid"
)

// entry serializes access to one session; sim.Session itself is not safe for concurrent use.
type entry struct {
	mu   sync.Mutex
	sess *sim.Session
}

// Store holds sessions in memory. Sessions do not survive a restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry
	metrics  *Metrics
}

func NewStore(m *Metrics) *Store {
	return &Store{sessions: make(map[uuid.UUID]*entry), metrics: m}
}

// Add registers sess under a fresh id.
func (s *Store) Add(sess *sim.Session) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &entry{sess: sess}
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetActiveSessions(n)
	return id
}

func (s *Store) get(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	return e, ok
}

// With runs fn while holding the session's lock.
func (s *Store) With(id uuid.UUID, fn func(*sim.Session) error) error {
	e, ok := s.get(id)
	if !ok {
		return errSessionNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sess)
}

// Delete removes a session and reports whether it existed.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()
	s.metrics.SetActiveSessions(n)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
