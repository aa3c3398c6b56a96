package db_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/edivorce/edivorce-api/internal/db"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@host:5432/edivorce", "pgx5://u:p@host:5432/edivorce"},
		{"postgresql://u:p@host/edivorce?sslmode=disable", "pgx5://u:p@host/edivorce?sslmode=disable"},
		{"pgx5://u:p@host/edivorce", "pgx5://u:p@host/edivorce"},
		{"u:p@host/edivorce", "pgx5://u:p@host/edivorce"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if got := db.MigrationURL(tc.in); got != tc.want {
				t.Fatalf("MigrationURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := db.ConnectRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()
}

func TestConnectRedis_BadURL(t *testing.T) {
	if _, err := db.ConnectRedis(context.Background(), "not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}
