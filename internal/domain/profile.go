package domain

import (
	"context"
	"time"
)

// UserProfile is the unique-username record owned by one Clerk identity.
type UserProfile struct {
	ID          string    `json:"id"`
	ClerkUserID string    `json:"clerk_user_id"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicProfile is the profile view served on the public page.
// It never carries the identity linkage (clerk_user_id).
type PublicProfile struct {
	ID              string           `json:"id"`
	Username        string           `json:"username"`
	CreatedAt       time.Time        `json:"created_at"`
	Tweets          []PublicPostLink `json:"tweets"`
	ResumeCreatedAt *time.Time       `json:"resume_created_at,omitempty"`
}

// PublicPostLink is a PostLink annotated with the extracted status ID.
// TweetID is empty when the link does not parse; the frontend decides
// how to render invalid entries.
type PublicPostLink struct {
	TweetLink string `json:"tweet_link"`
	Notes     string `json:"notes,omitempty"`
	TweetID   string `json:"tweet_id,omitempty"`
}

type ProfileRepository interface {
	GetByClerkID(ctx context.Context, clerkUserID string) (*UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*UserProfile, error)
	// Upsert creates the identity's profile row or overwrites its username
	// in a single conditional write. Returns Conflict when the username
	// unique constraint fires.
	Upsert(ctx context.Context, profile *UserProfile) error
	UpdateUsername(ctx context.Context, clerkUserID string, username string, updatedAt time.Time) (*UserProfile, error)
}

type ProfileUsecase interface {
	GetOwnProfile(ctx context.Context, clerkUserID string) (*UserProfile, error)
	ClaimUsername(ctx context.Context, clerkUserID string, username string) (*UserProfile, error)
	UpdateUsername(ctx context.Context, clerkUserID string, username string) (*UserProfile, error)
	GetPublicProfile(ctx context.Context, username string) (*PublicProfile, error)
}
