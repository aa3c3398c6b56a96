package repository

import (
	"context"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// QuestionRepository defines persistence operations for interview questions.
type QuestionRepository interface {
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, questions []domain.Question) (int, error)
}

// UserRepository defines persistence operations for users and their
// responses. The pgx implementations are in pg_*.go; tests use the
// hand-written mocks in mock_*.go.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetOrCreateByGUID returns the user with the given guid, creating it
	// on first sign-in. last_login is refreshed either way.
	GetOrCreateByGUID(ctx context.Context, guid, displayName string) (*domain.User, bool, error)
	Save(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error

	ListResponses(ctx context.Context, userID int64) ([]*domain.Response, error)
	DeleteResponses(ctx context.Context, userID int64) (int64, error)
	DeleteResponsesByQuestion(ctx context.Context, userID int64, questionKey string) (int64, error)
}
