// Package session keeps per-browser state between requests. Sessions live in
// a Store keyed by an opaque id carried in a cookie; the Manager ties the two
// together for HTTP handlers.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side state of one browser.
type Session struct {
	ID        string    `json:"-"`
	UserID    *int64    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// isNew is true until the session has been written to the store.
	isNew bool
}

// New returns an empty, unsaved session with a fresh random id.
func New() *Session {
	return &Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		isNew:     true,
	}
}

func (s *Session) IsNew() bool { return s.isNew }

// Login binds a user to the session.
func (s *Session) Login(userID int64) {
	s.UserID = &userID
}

// Store persists sessions. Load returns domain.ErrNotFound for unknown or
// expired ids.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying s.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by the session middleware, or nil.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(contextKey{}).(*Session)
	return s
}
