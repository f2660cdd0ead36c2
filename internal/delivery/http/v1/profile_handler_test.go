package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-resume-backend/internal/delivery/http/middleware"
	v1 "go-resume-backend/internal/delivery/http/v1"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Usecases

type MockProfileUC struct {
	mock.Mock
}

func (m *MockProfileUC) GetOwnProfile(ctx context.Context, clerkUserID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, clerkUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileUC) ClaimUsername(ctx context.Context, clerkUserID string, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, clerkUserID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileUC) UpdateUsername(ctx context.Context, clerkUserID string, username string) (*domain.UserProfile, error) {
	args := m.Called(ctx, clerkUserID, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

func (m *MockProfileUC) GetPublicProfile(ctx context.Context, username string) (*domain.PublicProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicProfile), args.Error(1)
}

type MockResumeUC struct {
	mock.Mock
}

func (m *MockResumeUC) GetOwnResume(ctx context.Context, clerkUserID string) (*domain.Resume, error) {
	args := m.Called(ctx, clerkUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeUC) CreateResume(ctx context.Context, clerkUserID string, tweets []domain.PostLink) (*domain.Resume, error) {
	args := m.Called(ctx, clerkUserID, tweets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeUC) UpdateResume(ctx context.Context, clerkUserID string, tweets []domain.PostLink) (*domain.Resume, error) {
	args := m.Called(ctx, clerkUserID, tweets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}

func (m *MockResumeUC) DeleteResume(ctx context.Context, clerkUserID string) error {
	return m.Called(ctx, clerkUserID).Error(0)
}

// newTestRouter builds a minimal engine: the error middleware plus the
// handlers under test. authAs simulates a verified token subject; empty
// means unauthenticated.
func newTestRouter(authAs string, profileUC domain.ProfileUsecase, resumeUC domain.ResumeUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler())

	root := r.Group("/v1")
	protected := root.Group("")
	if authAs != "" {
		protected.Use(func(c *gin.Context) {
			c.Set(string(domain.KeyUserID), authAs)
			c.Next()
		})
	}

	v1.NewProfileHandler(root, protected, profileUC)
	v1.NewResumeHandler(protected, resumeUC)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBuffer(nil)
	} else {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func TestPublicProfileEndpoint(t *testing.T) {
	t.Run("serves the annotated tweet list", func(t *testing.T) {
		profileUC := new(MockProfileUC)
		profileUC.On("GetPublicProfile", mock.Anything, "alice").Return(&domain.PublicProfile{
			ID:       "p1",
			Username: "alice",
			Tweets: []domain.PublicPostLink{
				{TweetLink: "https://x.com/alice/status/12345", TweetID: "12345"},
			},
		}, nil)

		r := newTestRouter("", profileUC, new(MockResumeUC))
		rr, env := doJSON(t, r, http.MethodGet, "/v1/profile/alice", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)

		var data struct {
			Profile domain.PublicProfile `json:"profile"`
		}
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, "alice", data.Profile.Username)
		assert.Equal(t, "12345", data.Profile.Tweets[0].TweetID)
		// Identity linkage must not appear anywhere in the payload.
		assert.NotContains(t, rr.Body.String(), "clerk_user_id")
	})

	t.Run("unknown username is 404", func(t *testing.T) {
		profileUC := new(MockProfileUC)
		profileUC.On("GetPublicProfile", mock.Anything, "ghost").
			Return(nil, apperror.NotFound("Profile not found"))

		r := newTestRouter("", profileUC, new(MockResumeUC))
		rr, env := doJSON(t, r, http.MethodGet, "/v1/profile/ghost", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.False(t, env.Success)
	})
}

func TestUsernameEndpoints(t *testing.T) {
	t.Run("unauthenticated request is 401", func(t *testing.T) {
		r := newTestRouter("", new(MockProfileUC), new(MockResumeUC))
		rr, _ := doJSON(t, r, http.MethodGet, "/v1/me/username", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("blank username fails binding", func(t *testing.T) {
		r := newTestRouter("user_1", new(MockProfileUC), new(MockResumeUC))
		rr, env := doJSON(t, r, http.MethodPost, "/v1/me/username", `{"username":"   "}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, env.Message, "Username")
	})

	t.Run("claim returns the stored profile", func(t *testing.T) {
		profileUC := new(MockProfileUC)
		profileUC.On("ClaimUsername", mock.Anything, "user_1", "alice").Return(&domain.UserProfile{
			ID: "p1", ClerkUserID: "user_1", Username: "alice",
		}, nil)

		r := newTestRouter("user_1", profileUC, new(MockResumeUC))
		rr, env := doJSON(t, r, http.MethodPost, "/v1/me/username", `{"username":"alice"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
	})

	t.Run("claiming a taken name is 409", func(t *testing.T) {
		profileUC := new(MockProfileUC)
		profileUC.On("ClaimUsername", mock.Anything, "user_2", "alice").
			Return(nil, apperror.Conflict("Username already taken"))

		r := newTestRouter("user_2", profileUC, new(MockResumeUC))
		rr, env := doJSON(t, r, http.MethodPost, "/v1/me/username", `{"username":"alice"}`)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Username already taken", env.Message)
	})
}

func TestResumeEndpoints(t *testing.T) {
	t.Run("empty tweet list fails binding", func(t *testing.T) {
		r := newTestRouter("user_1", new(MockProfileUC), new(MockResumeUC))
		rr, _ := doJSON(t, r, http.MethodPost, "/v1/me/resume", `{"tweets":[]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("entry without a tweet_link fails binding", func(t *testing.T) {
		r := newTestRouter("user_1", new(MockProfileUC), new(MockResumeUC))
		rr, _ := doJSON(t, r, http.MethodPost, "/v1/me/resume", `{"tweets":[{"notes":"no link"}]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("create forwards the sequence in order", func(t *testing.T) {
		tweets := []domain.PostLink{
			{TweetLink: "https://x.com/a/status/2", Notes: "second"},
			{TweetLink: "https://x.com/a/status/1"},
		}

		resumeUC := new(MockResumeUC)
		resumeUC.On("CreateResume", mock.Anything, "user_1", tweets).Return(&domain.Resume{
			ID: "r1", UserProfileID: "p1", Tweets: tweets,
		}, nil)

		r := newTestRouter("user_1", new(MockProfileUC), resumeUC)
		body := `{"tweets":[{"tweet_link":"https://x.com/a/status/2","notes":"second"},{"tweet_link":"https://x.com/a/status/1"}]}`
		rr, env := doJSON(t, r, http.MethodPost, "/v1/me/resume", body)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
		resumeUC.AssertExpectations(t)
	})

	t.Run("create against an existing resume is 409", func(t *testing.T) {
		resumeUC := new(MockResumeUC)
		resumeUC.On("CreateResume", mock.Anything, "user_1", mock.Anything).
			Return(nil, apperror.Conflict("Resume already exists. Use PUT to update."))

		r := newTestRouter("user_1", new(MockProfileUC), resumeUC)
		rr, _ := doJSON(t, r, http.MethodPost, "/v1/me/resume", `{"tweets":[{"tweet_link":"https://x.com/a/status/1"}]}`)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("delete reports success", func(t *testing.T) {
		resumeUC := new(MockResumeUC)
		resumeUC.On("DeleteResume", mock.Anything, "user_1").Return(nil)

		r := newTestRouter("user_1", new(MockProfileUC), resumeUC)
		rr, env := doJSON(t, r, http.MethodDelete, "/v1/me/resume", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
	})
}
