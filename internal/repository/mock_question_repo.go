package repository

import (
	"context"
	"sync"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// MockQuestionRepository is a hand-written, in-memory QuestionRepository
// used in unit tests.
type MockQuestionRepository struct {
	mu        sync.RWMutex
	questions map[string]domain.Question

	// Optional error overrides, set in tests to simulate failure paths.
	CountErr  error
	UpsertErr error
}

func NewMockQuestionRepository(questions ...domain.Question) *MockQuestionRepository {
	m := &MockQuestionRepository{questions: make(map[string]domain.Question)}
	for _, q := range questions {
		m.questions[q.Key] = q
	}
	return m
}

func (m *MockQuestionRepository) Count(_ context.Context) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.questions), nil
}

func (m *MockQuestionRepository) Upsert(_ context.Context, questions []domain.Question) (int, error) {
	if m.UpsertErr != nil {
		return 0, m.UpsertErr
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return 0, err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range questions {
		m.questions[q.Key] = q
	}
	return len(questions), nil
}
