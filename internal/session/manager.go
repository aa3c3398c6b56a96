package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// Options controls the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager loads, saves and flushes sessions on behalf of HTTP handlers and
// keeps the session cookie in step with the store.
type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts}
}

// Load returns the session named by the request cookie. A missing cookie or
// an unknown id yields a new, unsaved session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil || c.Value == "" {
		return New(), nil
	}

	s, err := m.store.Load(r.Context(), c.Value)
	if errors.Is(err, domain.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Save persists s and writes the session cookie. It must be called before
// the response body is written.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Flush deletes s from the store and expires the cookie. The returned
// session is a fresh, unsaved replacement for the rest of the request.
func (m *Manager) Flush(ctx context.Context, w http.ResponseWriter, s *Session) (*Session, error) {
	if s != nil && !s.IsNew() {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return nil, fmt.Errorf("flush session: %w", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return New(), nil
}

// FlushContext flushes the session carried by ctx and returns a copy of ctx
// carrying the fresh replacement.
func (m *Manager) FlushContext(ctx context.Context, w http.ResponseWriter) (context.Context, error) {
	fresh, err := m.Flush(ctx, w, FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return NewContext(ctx, fresh), nil
}
