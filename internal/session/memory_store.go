package session

import (
	"context"
	"sync"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// MemoryStore is an in-process Store for tests and single-node local runs.
// Entries never expire.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session

	SaveErr   error
	DeleteErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]Session)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	s.isNew = false
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)
