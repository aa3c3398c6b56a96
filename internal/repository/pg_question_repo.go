package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edivorce/edivorce-api/internal/domain"
)

type pgQuestionRepository struct {
	pool *pgxpool.Pool
}

// NewPgQuestionRepository returns a QuestionRepository backed by PostgreSQL.
func NewPgQuestionRepository(pool *pgxpool.Pool) QuestionRepository {
	return &pgQuestionRepository{pool: pool}
}

func (r *pgQuestionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM core_question`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Upsert inserts or updates every question in a single transaction.
func (r *pgQuestionRepository) Upsert(ctx context.Context, questions []domain.Question) (int, error) {
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return 0, fmt.Errorf("question %d: %w", i, err)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, q := range questions {
		_, err := tx.Exec(ctx, `
			INSERT INTO core_question (key, name, description, summary_order, required)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (key) DO UPDATE
			SET name = EXCLUDED.name,
			    description = EXCLUDED.description,
			    summary_order = EXCLUDED.summary_order,
			    required = EXCLUDED.required`,
			q.Key, q.Name, q.Description, q.SummaryOrder, q.Required,
		)
		if err != nil {
			return 0, fmt.Errorf("upsert question %q: %w", q.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit questions: %w", err)
	}
	return len(questions), nil
}
