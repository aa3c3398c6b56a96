package ratelimiter

import (
	"testing"
	"time"
)

func TestClientLimiters_Allow(t *testing.T) {
	cl := New(2, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cl.now = func() time.Time { return now }

	if !cl.Allow("a") || !cl.Allow("a") {
		t.Fatal("expected burst of 2 to be allowed")
	}
	if cl.Allow("a") {
		t.Fatal("expected third request in the same instant to be denied")
	}
	if !cl.Allow("b") {
		t.Fatal("expected independent bucket per client")
	}

	now = now.Add(time.Second)
	if !cl.Allow("a") {
		t.Fatal("expected bucket to refill after one second")
	}
}

func TestClientLimiters_Sweep(t *testing.T) {
	cl := New(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cl.now = func() time.Time { return now }

	cl.Allow("old")
	now = now.Add(2 * time.Minute)
	cl.Allow("fresh")

	if n := cl.Sweep(); n != 1 {
		t.Fatalf("expected 1 bucket swept, got %d", n)
	}
	if cl.Len() != 1 {
		t.Fatalf("expected 1 bucket left, got %d", cl.Len())
	}
}
