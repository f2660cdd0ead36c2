package v1

import (
	"net/http"
	"strings"

	"go-resume-backend/internal/delivery/http/middleware"
	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

// NewProfileHandler registers the public profile page and the
// authenticated username routes.
func NewProfileHandler(public *gin.RouterGroup, protected *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	// Public route
	public.GET("/profile/:username", handler.GetPublicProfile)

	// Protected routes
	me := protected.Group("/me")
	{
		me.GET("/username", handler.GetOwnProfile)
		me.POST("/username", middleware.MutationRateLimitMiddleware(), handler.ClaimUsername)
		me.PUT("/username", middleware.MutationRateLimitMiddleware(), handler.UpdateUsername)
	}
}

type UsernameRequest struct {
	Username string `json:"username" binding:"required,notblank,max=50"`
}

// GetPublicProfile godoc
// @Summary      Public profile page
// @Description  Returns the profile and curated tweet list for a username. Identity linkage is never included.
// @Tags         profile
// @Produce      json
// @Param        username  path  string  true  "Claimed username"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile/{username} [get]
func (h *ProfileHandler) GetPublicProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.Error(apperror.BadRequest("Username is required"))
		return
	}

	profile, err := h.profileUC.GetPublicProfile(c.Request.Context(), username)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", gin.H{"profile": profile})
}

// GetOwnProfile godoc
// @Summary      Get own profile
// @Description  Returns the caller's profile, or null when no username has been claimed yet.
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /me/username [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.profileUC.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", gin.H{"profile": profile})
}

// ClaimUsername godoc
// @Summary      Claim a username
// @Description  Creates the caller's profile or overwrites its username. Fails with 409 when another identity holds the name.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  UsernameRequest  true  "Desired username"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /me/username [post]
// @Security     BearerAuth
func (h *ProfileHandler) ClaimUsername(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), ", ")))
		return
	}

	profile, err := h.profileUC.ClaimUsername(c.Request.Context(), userID, req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Username saved", gin.H{"profile": profile})
}

// UpdateUsername godoc
// @Summary      Change username
// @Description  Updates the caller's username. The new name must differ from the current one and be unclaimed.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body  UsernameRequest  true  "New username"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /me/username [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateUsername(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req UsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), ", ")))
		return
	}

	profile, err := h.profileUC.UpdateUsername(c.Request.Context(), userID, req.Username)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Username updated successfully", gin.H{"profile": profile})
}
