package middleware

import (
	"errors"
	"net/http"

	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/logger"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors collected on the gin context into the
// JSON envelope. Expected conditions (bad input, conflicts, absences)
// carry their own status and message; anything else becomes a generic
// 500 so backend details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				cause := appErr.Err
				if cause == nil {
					cause = appErr
				}
				captureError(c, cause)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		captureError(c, err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

func captureError(c *gin.Context, err error) {
	if logger.Log != nil {
		logger.Log.Error("unexpected error", "error", err, "path", c.FullPath())
	}
	if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
}
