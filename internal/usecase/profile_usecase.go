package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/redis"
	"go-resume-backend/pkg/tweet"

	"github.com/google/uuid"
)

const (
	maxUsernameLen     = 50
	publicProfileTTL   = 60 * time.Second
	profileCachePrefix = "profile:"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	resumeRepo  domain.ResumeRepository
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, resumeRepo domain.ResumeRepository) domain.ProfileUsecase {
	return &profileUsecase{
		profileRepo: profileRepo,
		resumeRepo:  resumeRepo,
	}
}

// GetOwnProfile returns the caller's profile, or nil when the identity
// has not claimed a username yet. Absence is not an error here.
func (u *profileUsecase) GetOwnProfile(ctx context.Context, clerkUserID string) (*domain.UserProfile, error) {
	profile, err := u.profileRepo.GetByClerkID(ctx, clerkUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// ClaimUsername creates the identity's profile or overwrites its
// username. The taken-check against other identities is advisory; the
// unique constraint behind the repository Upsert is the source of truth.
func (u *profileUsecase) ClaimUsername(ctx context.Context, clerkUserID string, username string) (*domain.UserProfile, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}

	if existing, err := u.profileRepo.GetByUsername(ctx, username); err == nil && existing.ClerkUserID != clerkUserID {
		return nil, apperror.Conflict("Username already taken")
	}

	// A claim may overwrite the identity's current name; the cached page
	// under the old name has to go too. Best effort: a lookup failure
	// here must not block the claim.
	var previous string
	if current, err := u.profileRepo.GetByClerkID(ctx, clerkUserID); err == nil {
		previous = current.Username
	}

	now := time.Now()
	profile := &domain.UserProfile{
		ID:          uuid.NewString(),
		ClerkUserID: clerkUserID,
		Username:    username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	invalidateProfileCache(ctx, affectedUsernames(previous, username)...)
	return profile, nil
}

func (u *profileUsecase) UpdateUsername(ctx context.Context, clerkUserID string, username string) (*domain.UserProfile, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}

	existing, err := u.profileRepo.GetByClerkID(ctx, clerkUserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User profile not found. Please create a username first.")
		}
		return nil, err
	}

	if existing.Username == username {
		return nil, apperror.BadRequest("New username must be different from current username")
	}

	if taken, err := u.profileRepo.GetByUsername(ctx, username); err == nil && taken.ClerkUserID != clerkUserID {
		return nil, apperror.Conflict("Username already taken")
	}

	updated, err := u.profileRepo.UpdateUsername(ctx, clerkUserID, username, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User profile not found. Please create a username first.")
		}
		return nil, err
	}

	invalidateProfileCache(ctx, existing.Username, username)
	return updated, nil
}

// GetPublicProfile assembles the public page for a username: the
// profile row plus the owner's tweet sequence, each entry annotated
// with its extracted status id. The identity linkage never leaves this
// method. Responses are cached briefly when Redis is configured.
func (u *profileUsecase) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.BadRequest("Username is required")
	}

	if cached := cachedPublicProfile(ctx, username); cached != nil {
		return cached, nil
	}

	profile, err := u.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, err
	}

	public := &domain.PublicProfile{
		ID:        profile.ID,
		Username:  profile.Username,
		CreatedAt: profile.CreatedAt,
		Tweets:    []domain.PublicPostLink{},
	}

	resume, err := u.resumeRepo.GetByProfileID(ctx, profile.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if resume != nil {
		createdAt := resume.CreatedAt
		public.ResumeCreatedAt = &createdAt
		for _, link := range resume.Tweets {
			public.Tweets = append(public.Tweets, domain.PublicPostLink{
				TweetLink: link.TweetLink,
				Notes:     link.Notes,
				TweetID:   tweet.ExtractID(link.TweetLink),
			})
		}
	}

	storePublicProfile(ctx, username, public)
	return public, nil
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperror.BadRequest("Username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "", apperror.BadRequest("Username must be at most 50 characters")
	}
	return username, nil
}

// affectedUsernames lists the cache keys a username write touches: the
// name being written, plus the identity's previous name when the write
// is a rename.
func affectedUsernames(previous, current string) []string {
	if previous == "" || previous == current {
		return []string{current}
	}
	return []string{previous, current}
}

// Cache helpers. A nil Redis client means caching is off; all of these
// degrade to no-ops, same as the rate limiter's fallback path.

func cachedPublicProfile(ctx context.Context, username string) *domain.PublicProfile {
	client := redis.Client()
	if client == nil {
		return nil
	}
	raw, err := client.Get(ctx, profileCachePrefix+username).Bytes()
	if err != nil {
		return nil
	}
	var profile domain.PublicProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil
	}
	return &profile
}

func storePublicProfile(ctx context.Context, username string, profile *domain.PublicProfile) {
	client := redis.Client()
	if client == nil {
		return
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	client.Set(ctx, profileCachePrefix+username, raw, publicProfileTTL)
}

func invalidateProfileCache(ctx context.Context, usernames ...string) {
	client := redis.Client()
	if client == nil {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, name := range usernames {
		keys = append(keys, profileCachePrefix+name)
	}
	client.Del(ctx, keys...)
}
