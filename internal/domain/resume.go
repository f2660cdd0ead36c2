package domain

import (
	"context"
	"time"
)

// PostLink is one curated tweet reference plus an optional note. It is
// only ever persisted as an element of a Resume's ordered sequence.
type PostLink struct {
	TweetLink string `json:"tweet_link" binding:"required"`
	Notes     string `json:"notes,omitempty"`
}

// Resume is the ordered collection of curated post links belonging to
// one UserProfile. At most one Resume exists per profile; the tweets
// sequence is replaced whole on update, never merged.
type Resume struct {
	ID            string     `json:"id"`
	UserProfileID string     `json:"user_profile_id"`
	Tweets        []PostLink `json:"tweets"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ResumeRepository interface {
	GetByProfileID(ctx context.Context, profileID string) (*Resume, error)
	// Create returns Conflict when a resume already exists for the profile.
	Create(ctx context.Context, resume *Resume) error
	// Update replaces the whole tweets sequence. Returns ErrNotFound when
	// no resume row exists for the profile.
	Update(ctx context.Context, resume *Resume) error
	// Delete removes the profile's resume row. Deleting a missing resume
	// is not an error.
	Delete(ctx context.Context, profileID string) error
}

type ResumeUsecase interface {
	GetOwnResume(ctx context.Context, clerkUserID string) (*Resume, error)
	CreateResume(ctx context.Context, clerkUserID string, tweets []PostLink) (*Resume, error)
	UpdateResume(ctx context.Context, clerkUserID string, tweets []PostLink) (*Resume, error)
	DeleteResume(ctx context.Context, clerkUserID string) error
}
