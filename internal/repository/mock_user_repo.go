package repository

import (
	"context"
	"sync"
	"time"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// MockUserRepository is a hand-written, in-memory UserRepository used in
// unit tests. No mock-generation library needed.
type MockUserRepository struct {
	mu        sync.RWMutex
	nextID    int64
	users     map[int64]*domain.User
	responses map[int64]*domain.Response

	// Optional error overrides, set in tests to simulate failure paths.
	GetByIDErr         error
	GetOrCreateErr     error
	SaveErr            error
	DeleteErr          error
	DeleteResponsesErr error
	ListResponsesErr   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:     make(map[int64]*domain.User),
		responses: make(map[int64]*domain.Response),
	}
}

func (m *MockUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if m.GetByIDErr != nil {
		return nil, m.GetByIDErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *MockUserRepository) GetOrCreateByGUID(_ context.Context, guid, displayName string) (*domain.User, bool, error) {
	if m.GetOrCreateErr != nil {
		return nil, false, m.GetOrCreateErr
	}
	if guid == "" {
		return nil, false, domain.ErrInvalidUserGUID
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	for _, u := range m.users {
		if u.UserGUID == guid {
			u.LastLogin = &now
			if displayName != "" {
				u.DisplayName = displayName
			}
			clone := *u
			return &clone, false, nil
		}
	}

	m.nextID++
	u := &domain.User{
		ID:          m.nextID,
		UserGUID:    guid,
		DisplayName: displayName,
		DateJoined:  now,
		LastLogin:   &now,
	}
	m.users[u.ID] = u
	clone := *u
	return &clone, true, nil
}

func (m *MockUserRepository) Save(_ context.Context, u *domain.User) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; !ok {
		return domain.ErrUserGone
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *MockUserRepository) Delete(_ context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, id)
	for rid, r := range m.responses {
		if r.UserID == id {
			delete(m.responses, rid)
		}
	}
	return nil
}

func (m *MockUserRepository) ListResponses(_ context.Context, userID int64) ([]*domain.Response, error) {
	if m.ListResponsesErr != nil {
		return nil, m.ListResponsesErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Response
	for _, r := range m.responses {
		if r.UserID == userID {
			clone := *r
			result = append(result, &clone)
		}
	}
	return result, nil
}

// SaveResponse stores an answer. Test-only: the service never writes
// answers, so UserRepository has no such method.
func (m *MockUserRepository) SaveResponse(_ context.Context, r *domain.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[r.UserID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range m.responses {
		if existing.UserID == r.UserID && existing.QuestionKey == r.QuestionKey {
			existing.Value = r.Value
			r.ID = existing.ID
			return nil
		}
	}
	m.nextID++
	r.ID = m.nextID
	clone := *r
	m.responses[r.ID] = &clone
	return nil
}

func (m *MockUserRepository) DeleteResponses(_ context.Context, userID int64) (int64, error) {
	return m.deleteResponsesWhere(func(r *domain.Response) bool { return r.UserID == userID })
}

func (m *MockUserRepository) DeleteResponsesByQuestion(_ context.Context, userID int64, questionKey string) (int64, error) {
	return m.deleteResponsesWhere(func(r *domain.Response) bool {
		return r.UserID == userID && r.QuestionKey == questionKey
	})
}

func (m *MockUserRepository) deleteResponsesWhere(match func(*domain.Response) bool) (int64, error) {
	if m.DeleteResponsesErr != nil {
		return 0, m.DeleteResponsesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, r := range m.responses {
		if match(r) {
			delete(m.responses, id)
			n++
		}
	}
	return n, nil
}
