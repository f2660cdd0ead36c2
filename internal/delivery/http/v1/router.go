package v1

import (
	"net/http"

	"go-resume-backend/config"
	"go-resume-backend/internal/delivery/http/middleware"
	"go-resume-backend/internal/delivery/http/response"
	"go-resume-backend/internal/domain"
	"go-resume-backend/internal/usecase"
	"go-resume-backend/pkg/auth"
	"go-resume-backend/pkg/validation"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ProfileUC    domain.ProfileUsecase
	ResumeUC     domain.ResumeUsecase
	HealthUC     usecase.HealthUsecase
	JWKSProvider *auth.Provider
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	// Custom binding tags (notblank)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first
	r.Use(gin.Recovery())
	if deps.Config.SentryDSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	middleware.ConfigureRateLimits(
		deps.Config.RateLimitWindowSeconds,
		deps.Config.RateLimitGlobalThreshold,
		deps.Config.RateLimitMutationThreshold,
	)
	r.Use(middleware.GlobalRateLimitMiddleware())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewProfileHandler(v1, protected, deps.ProfileUC)
		NewResumeHandler(protected, deps.ResumeUC)
	}

	return r
}
