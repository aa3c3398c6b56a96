package domain_test

import (
	"errors"
	"testing"

	"github.com/edivorce/edivorce-api/internal/domain"
)

func TestEnvironment_DebugEnabled(t *testing.T) {
	tests := []struct {
		env  domain.Environment
		want bool
	}{
		{domain.EnvLocalDev, true},
		{domain.EnvDev, true},
		{domain.EnvTest, true},
		{domain.EnvMinishift, true},
		{domain.EnvProd, false},
		{"", false},
		{"DEV", false},
		{"staging", false},
	}

	for _, tc := range tests {
		t.Run(string(tc.env), func(t *testing.T) {
			if got := tc.env.DebugEnabled(); got != tc.want {
				t.Fatalf("DebugEnabled(%q) = %v, want %v", tc.env, got, tc.want)
			}
		})
	}
}

func TestErrDebugDisabled_IsNotFound(t *testing.T) {
	if !errors.Is(domain.ErrDebugDisabled, domain.ErrNotFound) {
		t.Fatal("expected ErrDebugDisabled to match ErrNotFound")
	}
}

func TestUser_ToggleTerms(t *testing.T) {
	u := domain.User{}

	if got := u.ToggleTerms(); !got {
		t.Fatal("expected first toggle to accept terms")
	}
	if got := u.ToggleTerms(); got {
		t.Fatal("expected second toggle to revert terms")
	}
	if u.HasAcceptedTerms {
		t.Fatal("expected toggle to have period 2")
	}
}

func TestQuestion_Validate(t *testing.T) {
	t.Run("valid key passes", func(t *testing.T) {
		q := domain.Question{Key: domain.QuestionWantWhichOrders}
		if err := q.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("blank key", func(t *testing.T) {
		q := domain.Question{Key: "   "}
		if err := q.Validate(); err != domain.ErrInvalidQuestionKey {
			t.Fatalf("expected ErrInvalidQuestionKey, got %v", err)
		}
	})
}
