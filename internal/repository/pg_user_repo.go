package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edivorce/edivorce-api/internal/domain"
)

type pgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository returns a UserRepository backed by PostgreSQL.
func NewPgUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUserRepository{pool: pool}
}

const userColumns = `id, user_guid, display_name, has_seen_orders_page,
	has_accepted_terms, date_joined, last_login`

func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM core_bceiduser WHERE id = $1`, id)

	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *pgUserRepository) GetOrCreateByGUID(ctx context.Context, guid, displayName string) (*domain.User, bool, error) {
	if strings.TrimSpace(guid) == "" {
		return nil, false, domain.ErrInvalidUserGUID
	}

	// xmax is zero only for a freshly inserted row.
	row := r.pool.QueryRow(ctx, `
		INSERT INTO core_bceiduser (user_guid, display_name, date_joined, last_login)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_guid) DO UPDATE
		SET last_login = NOW(),
		    display_name = COALESCE(NULLIF(EXCLUDED.display_name, ''), core_bceiduser.display_name)
		RETURNING `+userColumns+`, (xmax = 0)`, guid, displayName)

	var u domain.User
	var created bool
	err := row.Scan(
		&u.ID, &u.UserGUID, &u.DisplayName, &u.HasSeenOrdersPage,
		&u.HasAcceptedTerms, &u.DateJoined, &u.LastLogin, &created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("get or create user: %w", err)
	}
	return &u, created, nil
}

func (r *pgUserRepository) Save(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE core_bceiduser
		SET display_name = $1, has_seen_orders_page = $2, has_accepted_terms = $3
		WHERE id = $4`,
		u.DisplayName, u.HasSeenOrdersPage, u.HasAcceptedTerms, u.ID)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save user %d: %w", u.ID, domain.ErrUserGone)
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM core_bceiduser WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *pgUserRepository) ListResponses(ctx context.Context, userID int64) ([]*domain.Response, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, bceid_user_id, question_id, value
		FROM core_userresponse
		WHERE bceid_user_id = $1
		ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var result []*domain.Response
	for rows.Next() {
		var resp domain.Response
		if err := rows.Scan(&resp.ID, &resp.UserID, &resp.QuestionKey, &resp.Value); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		result = append(result, &resp)
	}
	return result, rows.Err()
}

func (r *pgUserRepository) DeleteResponses(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM core_userresponse WHERE bceid_user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("delete responses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *pgUserRepository) DeleteResponsesByQuestion(ctx context.Context, userID int64, questionKey string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM core_userresponse
		WHERE bceid_user_id = $1 AND question_id = $2`, userID, questionKey)
	if err != nil {
		return 0, fmt.Errorf("delete responses for question %q: %w", questionKey, err)
	}
	return tag.RowsAffected(), nil
}

// ---- helpers ----

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.UserGUID, &u.DisplayName, &u.HasSeenOrdersPage,
		&u.HasAcceptedTerms, &u.DateJoined, &u.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
