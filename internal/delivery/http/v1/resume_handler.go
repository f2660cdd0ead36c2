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

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(protected *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	me := protected.Group("/me")
	{
		me.GET("/resume", handler.GetResume)
		me.POST("/resume", middleware.MutationRateLimitMiddleware(), handler.CreateResume)
		me.PUT("/resume", middleware.MutationRateLimitMiddleware(), handler.UpdateResume)
		me.DELETE("/resume", middleware.MutationRateLimitMiddleware(), handler.DeleteResume)
	}
}

type ResumeRequest struct {
	Tweets []domain.PostLink `json:"tweets" binding:"required,min=1,dive"`
}

// GetResume godoc
// @Summary      Get own resume
// @Description  Returns the caller's resume, or null when none exists.
// @Tags         resume
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /me/resume [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	resume, err := h.resumeUC.GetOwnResume(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume retrieved", gin.H{"resume": resume})
}

// CreateResume godoc
// @Summary      Create resume
// @Description  Persists the submitted tweet sequence verbatim. Fails with 409 when a resume already exists.
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        request  body  ResumeRequest  true  "Ordered tweet list"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /me/resume [post]
// @Security     BearerAuth
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), ", ")))
		return
	}

	resume, err := h.resumeUC.CreateResume(c.Request.Context(), userID, req.Tweets)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume created", gin.H{"resume": resume})
}

// UpdateResume godoc
// @Summary      Update resume
// @Description  Replaces the whole tweet sequence atomically; the stored order is exactly the submitted order.
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        request  body  ResumeRequest  true  "Ordered tweet list"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /me/resume [put]
// @Security     BearerAuth
func (h *ResumeHandler) UpdateResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	var req ResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), ", ")))
		return
	}

	resume, err := h.resumeUC.UpdateResume(c.Request.Context(), userID, req.Tweets)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume updated successfully", gin.H{"resume": resume})
}

// DeleteResume godoc
// @Summary      Delete resume
// @Description  Removes the caller's resume. Deleting when none exists still succeeds.
// @Tags         resume
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /me/resume [delete]
// @Security     BearerAuth
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	if userID == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	if err := h.resumeUC.DeleteResume(c.Request.Context(), userID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume deleted successfully", nil)
}
