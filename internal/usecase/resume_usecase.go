package usecase

import (
	"context"
	"errors"
	"time"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"

	"github.com/google/uuid"
)

type resumeUsecase struct {
	resumeRepo  domain.ResumeRepository
	profileRepo domain.ProfileRepository
}

func NewResumeUsecase(resumeRepo domain.ResumeRepository, profileRepo domain.ProfileRepository) domain.ResumeUsecase {
	return &resumeUsecase{
		resumeRepo:  resumeRepo,
		profileRepo: profileRepo,
	}
}

// GetOwnResume returns the caller's resume, or nil when none exists.
func (u *resumeUsecase) GetOwnResume(ctx context.Context, clerkUserID string) (*domain.Resume, error) {
	profile, err := u.resolveProfile(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	resume, err := u.resumeRepo.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return resume, nil
}

func (u *resumeUsecase) CreateResume(ctx context.Context, clerkUserID string, tweets []domain.PostLink) (*domain.Resume, error) {
	if err := validateTweets(tweets); err != nil {
		return nil, err
	}

	profile, err := u.resolveProfile(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	resume := &domain.Resume{
		ID:            uuid.NewString(),
		UserProfileID: profile.ID,
		Tweets:        tweets,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.resumeRepo.Create(ctx, resume); err != nil {
		return nil, err
	}

	invalidateProfileCache(ctx, profile.Username)
	return resume, nil
}

// UpdateResume replaces the whole tweet sequence. There is no merge:
// the stored order is exactly what the client submitted.
func (u *resumeUsecase) UpdateResume(ctx context.Context, clerkUserID string, tweets []domain.PostLink) (*domain.Resume, error) {
	if err := validateTweets(tweets); err != nil {
		return nil, err
	}

	profile, err := u.resolveProfile(ctx, clerkUserID)
	if err != nil {
		return nil, err
	}

	resume := &domain.Resume{
		UserProfileID: profile.ID,
		Tweets:        tweets,
		UpdatedAt:     time.Now(),
	}
	if err := u.resumeRepo.Update(ctx, resume); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Resume not found. Use POST to create.")
		}
		return nil, err
	}

	invalidateProfileCache(ctx, profile.Username)
	return resume, nil
}

// DeleteResume removes the caller's resume. Deleting when no resume
// exists succeeds; the end state is the same either way.
func (u *resumeUsecase) DeleteResume(ctx context.Context, clerkUserID string) error {
	profile, err := u.resolveProfile(ctx, clerkUserID)
	if err != nil {
		return err
	}

	if err := u.resumeRepo.Delete(ctx, profile.ID); err != nil {
		return err
	}

	invalidateProfileCache(ctx, profile.Username)
	return nil
}

func (u *resumeUsecase) resolveProfile(ctx context.Context, clerkUserID string) (*domain.UserProfile, error) {
	profile, err := u.profileRepo.GetByClerkID(ctx, clerkUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// validateTweets rejects the request before anything touches the store.
func validateTweets(tweets []domain.PostLink) error {
	if len(tweets) == 0 {
		return apperror.BadRequest("Tweets array is required")
	}
	for _, t := range tweets {
		if t.TweetLink == "" {
			return apperror.BadRequest("Each tweet must have a tweet_link")
		}
	}
	return nil
}
