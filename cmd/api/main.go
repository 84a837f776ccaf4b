package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-site/config"
	_ "go-portfolio-site/docs" // Important for Swagger
	v1 "go-portfolio-site/internal/delivery/http/v1"
	"go-portfolio-site/internal/repository/content"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/email"
	"go-portfolio-site/pkg/imageopt"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/metrics"
	"go-portfolio-site/pkg/redis"
	"go-portfolio-site/pkg/security"
	"go-portfolio-site/pkg/storage"
	"go-portfolio-site/pkg/validation"
)

// @title           Portfolio Site API
// @version         1.0
// @description     JSON API of the portfolio site: localized content and the contact form.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting portfolio site", "port", cfg.Port, "mode", cfg.GinMode)

	environment := "development"
	if cfg.IsProduction() {
		environment = "production"
	}
	secLogger := security.InitSecurityLogger("portfolio-site", environment)
	defer func() { _ = secLogger.Sync() }()

	// 3. Setup Redis (optional, rate limiting falls back to memory)
	var redisPing usecase.Pinger
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	} else {
		redisPing = redis.HealthCheck
		defer func() { _ = redis.Close() }()
	}

	// 4. Setup Email Service
	sender, provider, err := email.NewSender(cfg, logger.Log)
	if err != nil {
		logger.Log.Error("Invalid email configuration", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Email provider selected", "provider", provider)

	// 5. Setup Content Repository
	contentRepo, err := content.NewContentRepository()
	if err != nil {
		logger.Log.Error("Failed to load site content", "error", err)
		os.Exit(1)
	}

	validate, err := validation.NewValidator()
	if err != nil {
		logger.Log.Error("Failed to build validator", "error", err)
		os.Exit(1)
	}
	m := metrics.NewMetrics()

	// 6. Setup Object Storage (optional, CVs are otherwise served from PUBLIC_DIR)
	var presigner usecase.CVPresigner
	if cfg.StorageConfigured() {
		s3Client, err := storage.NewS3Client(context.Background(), storage.S3ClientConfig{
			Provider:        storage.S3Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			WasabiEndpoint:  cfg.WasabiEndpoint,
		})
		if err != nil {
			logger.Log.Warn("Object storage unavailable, serving CV locally", "error", err)
		} else {
			presigner = storage.NewObjectPresigner(s3Client, cfg.S3Bucket, time.Duration(cfg.CVPresignMinutes)*time.Minute)
		}
	}

	// 7. Setup UseCases
	contentUC := usecase.NewContentUsecase(contentRepo)
	resumeUC := usecase.NewResumeUsecase(contentUC, presigner)
	healthUC := usecase.NewHealthUsecase(provider, redisPing)
	contactUC := usecase.NewContactUsecase(sender, validate, secLogger, m, usecase.ContactConfig{
		From:          cfg.FromEmail,
		To:            cfg.ContactEmail,
		SubjectPrefix: cfg.ContactSubjectPrefix,
		SiteOwner:     cfg.SiteOwner,
		Provider:      provider,
	})

	// 8. Setup Router
	router, err := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		ContentUC: contentUC,
		ResumeUC:  resumeUC,
		HealthUC:  healthUC,
		Optimizer: imageopt.NewOptimizer(cfg.PublicDir),
		Metrics:   m,
		Config:    cfg,
	})
	if err != nil {
		logger.Log.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
