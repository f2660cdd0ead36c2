package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type resumeRepo struct {
	db *pgxpool.Pool
}

func NewResumeRepository(db *pgxpool.Pool) domain.ResumeRepository {
	return &resumeRepo{db: db}
}

// The tweets sequence lives in a single jsonb column so element order
// survives the round trip verbatim. Marshalling is done here rather
// than left to the driver because the pool runs the simple query
// protocol (see pkg/database).

func (r *resumeRepo) GetByProfileID(ctx context.Context, profileID string) (*domain.Resume, error) {
	query := `SELECT id, user_profile_id, tweets, created_at, updated_at
	          FROM resumes WHERE user_profile_id = $1`

	var res domain.Resume
	var tweetsJSON []byte
	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&res.ID, &res.UserProfileID, &tweetsJSON, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(tweetsJSON, &res.Tweets); err != nil {
		return nil, apperror.Internal(err)
	}
	return &res, nil
}

func (r *resumeRepo) Create(ctx context.Context, resume *domain.Resume) error {
	tweetsJSON, err := json.Marshal(resume.Tweets)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `
		INSERT INTO resumes (id, user_profile_id, tweets, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		resume.ID, resume.UserProfileID, string(tweetsJSON), resume.CreatedAt, resume.UpdatedAt,
	).Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Resume already exists. Use PUT to update.")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *resumeRepo) Update(ctx context.Context, resume *domain.Resume) error {
	tweetsJSON, err := json.Marshal(resume.Tweets)
	if err != nil {
		return apperror.Internal(err)
	}

	query := `
		UPDATE resumes
		SET tweets = $2::jsonb, updated_at = $3
		WHERE user_profile_id = $1
		RETURNING id, created_at`

	err = r.db.QueryRow(ctx, query,
		resume.UserProfileID, string(tweetsJSON), resume.UpdatedAt,
	).Scan(&resume.ID, &resume.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *resumeRepo) Delete(ctx context.Context, profileID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resumes WHERE user_profile_id = $1`, profileID)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
