package v1

import (
	"net/http"
	"time"

	"go-portfolio-site/config"
	"go-portfolio-site/internal/delivery/http/middleware"
	"go-portfolio-site/internal/delivery/http/response"
	"go-portfolio-site/internal/delivery/http/web"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/imageopt"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/metrics"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	ContentUC domain.ContentUsecase
	ResumeUC  domain.ResumeUsecase
	HealthUC  usecase.HealthUsecase
	Optimizer *imageopt.Optimizer
	Metrics   *metrics.Metrics
	Config    *config.Config
}

// NewRouter builds the whole HTTP surface: the JSON API under /v1, the
// HTML site, assets and /metrics.
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	cfg := deps.Config
	isProduction := cfg.IsProduction()

	defaultLocale, ok := domain.ParseLocale(cfg.DefaultLocale)
	if !ok {
		defaultLocale = domain.DefaultLocale
	}
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, isProduction)) // CORS must be first, it answers preflights for unrouted OPTIONS too
	r.Use(gin.CustomRecovery(recoverJSON))
	if !isProduction {
		r.Use(gin.Logger())
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(deps.Metrics.GinMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware(isProduction))

	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	globalLimit := middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window))
	contactLimit := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window))

	v1 := r.Group("/v1")
	v1.Use(
		globalLimit,
		middleware.ErrorHandler(),
		middleware.LocaleMiddleware(defaultLocale, cfg.SecureCookies),
	)

	NewHealthHandler(v1, deps.HealthUC)
	NewContactHandler(v1, deps.ContactUC, contactLimit)
	NewContentHandler(v1, deps.ContentUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	err := web.Register(r, web.Deps{
		ContactUC:     deps.ContactUC,
		ContentUC:     deps.ContentUC,
		ResumeUC:      deps.ResumeUC,
		Optimizer:     deps.Optimizer,
		Metrics:       deps.Metrics,
		DefaultLocale: defaultLocale,
		PublicDir:     cfg.PublicDir,
		SecureCookies: cfg.SecureCookies,
		PageLimit:     globalLimit,
		ContactLimit: func(onLimited func(*gin.Context, int)) gin.HandlerFunc {
			// Same key prefix as the API limiter, so both share one budget
			limitCfg := middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window)
			limitCfg.OnLimited = onLimited
			return middleware.RateLimitMiddleware(limitCfg)
		},
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

func recoverJSON(c *gin.Context, recovered interface{}) {
	logger.Log.Error("panic recovered",
		"request_id", response.RequestID(c),
		"path", c.Request.URL.Path,
		"panic", recovered,
	)
	response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	c.Abort()
}
