package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edivorce/edivorce-api/internal/session"
)

func newManager() (*session.Manager, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return session.NewManager(store, session.Options{
		CookieName: "sessionid",
		TTL:        20 * time.Minute,
	}), store
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	m, _ := newManager()

	s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsNew() || s.ID == "" || s.UserID != nil {
		t.Fatalf("expected a fresh anonymous session, got %+v", s)
	}
}

func TestManager_SaveThenLoad(t *testing.T) {
	m, _ := newManager()
	ctx := context.Background()

	s := session.New()
	s.Login(7)
	rec := httptest.NewRecorder()
	if err := m.Save(ctx, rec, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != s.ID {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected HttpOnly cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	got, err := m.Load(req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != s.ID || got.UserID == nil || *got.UserID != 7 {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestManager_LoadUnknownCookie(t *testing.T) {
	m, _ := newManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "stale"})
	s, err := m.Load(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsNew() || s.ID == "stale" {
		t.Fatalf("expected a replacement session, got %+v", s)
	}
}

func TestManager_Flush(t *testing.T) {
	m, store := newManager()
	ctx := context.Background()

	s := session.New()
	s.Login(1)
	if err := m.Save(ctx, httptest.NewRecorder(), s); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	fresh, err := m.Flush(ctx, rec, s)
	if err != nil {
		t.Fatalf("flush: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected store to be empty, got %d", store.Len())
	}
	if fresh.ID == s.ID || fresh.UserID != nil || !fresh.IsNew() {
		t.Fatalf("expected fresh session, got %+v", fresh)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %v", cookies)
	}
}

func TestManager_FlushUnsavedSession(t *testing.T) {
	m, store := newManager()
	store.DeleteErr = context.Canceled

	// Unsaved sessions are never written, so nothing is deleted.
	if _, err := m.Flush(context.Background(), httptest.NewRecorder(), session.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestManager_FlushContextReplacesSession(t *testing.T) {
	m, store := newManager()

	s := session.New()
	s.Login(3)
	if err := m.Save(context.Background(), httptest.NewRecorder(), s); err != nil {
		t.Fatalf("save: %v", err)
	}
	ctx := session.NewContext(context.Background(), s)

	next, err := m.FlushContext(ctx, httptest.NewRecorder())
	if err != nil {
		t.Fatalf("flush: %v", err)
	}

	fresh := session.FromContext(next)
	if fresh == nil || fresh.ID == s.ID || fresh.UserID != nil || !fresh.IsNew() {
		t.Fatalf("expected a fresh session on the context, got %+v", fresh)
	}
	if store.Len() != 0 {
		t.Fatal("expected old session deleted")
	}
	if session.FromContext(ctx) != s {
		t.Fatal("original context must be left as is")
	}
}

func TestManager_FlushContextStoreError(t *testing.T) {
	m, store := newManager()

	s := session.New()
	if err := m.Save(context.Background(), httptest.NewRecorder(), s); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.DeleteErr = context.DeadlineExceeded

	if _, err := m.FlushContext(session.NewContext(context.Background(), s), httptest.NewRecorder()); err == nil {
		t.Fatal("expected store error")
	}
}
