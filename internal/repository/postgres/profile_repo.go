package postgres

import (
	"context"
	"errors"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByClerkID(ctx context.Context, clerkUserID string) (*domain.UserProfile, error) {
	query := `SELECT id, clerk_user_id, username, created_at, updated_at
	          FROM user_profiles WHERE clerk_user_id = $1`

	var p domain.UserProfile
	err := r.db.QueryRow(ctx, query, clerkUserID).Scan(
		&p.ID, &p.ClerkUserID, &p.Username, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	query := `SELECT id, clerk_user_id, username, created_at, updated_at
	          FROM user_profiles WHERE username = $1`

	var p domain.UserProfile
	err := r.db.QueryRow(ctx, query, username).Scan(
		&p.ID, &p.ClerkUserID, &p.Username, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert claims a username for the identity in one conditional write.
// The unique index on username is the authority for claim races: any
// concurrent claim of the same name loses here with a 23505, not in the
// advisory pre-check upstream.
func (r *profileRepo) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, clerk_user_id, username, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (clerk_user_id) DO UPDATE SET
			username = EXCLUDED.username,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		profile.ID, profile.ClerkUserID, profile.Username, profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperror.Conflict("Username already taken")
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *profileRepo) UpdateUsername(ctx context.Context, clerkUserID string, username string, updatedAt time.Time) (*domain.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET username = $2, updated_at = $3
		WHERE clerk_user_id = $1
		RETURNING id, clerk_user_id, username, created_at, updated_at`

	var p domain.UserProfile
	err := r.db.QueryRow(ctx, query, clerkUserID, username, updatedAt).Scan(
		&p.ID, &p.ClerkUserID, &p.Username, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.Conflict("Username already taken")
		}
		return nil, apperror.Internal(err)
	}
	return &p, nil
}
