package usecase

import (
	"context"
	"time"

	"go-resume-backend/pkg/redis"

	"github.com/jackc/pgx/v5/pgxpool"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

type healthUsecase struct {
	db *pgxpool.Pool
}

func NewHealthUsecase(db *pgxpool.Pool) HealthUsecase {
	return &healthUsecase{db: db}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status":   "ok",
		"database": "ok",
		"cache":    "off",
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if u.db != nil {
		if err := u.db.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		}
	}

	if client := redis.Client(); client != nil {
		status["cache"] = "ok"
		if err := client.Ping(ctx).Err(); err != nil {
			status["cache"] = "unreachable"
		}
	}

	return status
}
