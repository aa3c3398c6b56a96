package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/edivorce/edivorce-api/internal/domain"
	"github.com/edivorce/edivorce-api/internal/session"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, ttl), mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)
	ctx := context.Background()

	s := session.New()
	s.Login(42)
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.IsNew() {
		t.Fatal("expected session to be marked saved")
	}

	got, err := store.Load(ctx, s.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != s.ID {
		t.Fatalf("expected id %s, got %s", s.ID, got.ID)
	}
	if got.UserID == nil || *got.UserID != 42 {
		t.Fatalf("expected user 42, got %v", got.UserID)
	}
	if got.IsNew() {
		t.Fatal("loaded session must not be new")
	}
}

func TestRedisStore_LoadMissing(t *testing.T) {
	store, _ := newRedisStore(t, time.Minute)

	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	s := session.New()
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, s.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired session to be gone, got %v", err)
	}
}

func TestRedisStore_LoadSlidesExpiry(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	s := session.New()
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	mr.FastForward(40 * time.Second)
	if _, err := store.Load(ctx, s.ID); err != nil {
		t.Fatalf("load before expiry: %v", err)
	}
	mr.FastForward(40 * time.Second)
	if _, err := store.Load(ctx, s.ID); err != nil {
		t.Fatalf("expected load to have refreshed the ttl, got %v", err)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	s := session.New()
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("session:" + s.ID) {
		t.Fatal("expected key to be removed")
	}
}
