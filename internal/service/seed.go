package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/edivorce/edivorce-api/internal/domain"
)

// SeedQuestions reads a JSON array of questions from r and upserts them.
// It returns the number of questions written.
func (s *SystemService) SeedQuestions(ctx context.Context, r io.Reader) (int, error) {
	var questions []domain.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return 0, fmt.Errorf("parse questions: %w", err)
	}
	if len(questions) == 0 {
		return 0, nil
	}

	n, err := s.questions.Upsert(ctx, questions)
	if err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	return n, nil
}
