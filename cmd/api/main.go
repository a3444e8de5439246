package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/debtbook-api/docs" // Swagger docs
	"github.com/sjperalta/debtbook-api/internal/cache"
	"github.com/sjperalta/debtbook-api/internal/config"
	"github.com/sjperalta/debtbook-api/internal/database"
	"github.com/sjperalta/debtbook-api/internal/handlers"
	"github.com/sjperalta/debtbook-api/internal/jobs"
	"github.com/sjperalta/debtbook-api/internal/middleware"
	"github.com/sjperalta/debtbook-api/internal/repository"
	"github.com/sjperalta/debtbook-api/internal/services"
	"github.com/sjperalta/debtbook-api/internal/storage"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// @title Debtbook API
// @version 1.0
// @description REST API for personal debt and payment tracking

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.Environment)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	repos := repository.NewRepositories(db)

	// A broken legacy source only disables the one-time migration
	legacy, err := storage.OpenLegacy(cfg.LegacyDataPath)
	if err != nil {
		logger.Warn("Legacy data source unavailable", "path", cfg.LegacyDataPath, "error", err)
	}

	ctx := context.Background()
	books := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, books, legacy, cfg)

	// Runs before the server accepts any request, so no fetch can precede it
	svcs.Sync.MigrateLegacyData(ctx)

	scheduleJobs(worker, svcs)

	h := handlers.NewHandlers(svcs)
	router := setupRouter(h, svcs, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, svcs *services.Services, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret, svcs.UserRole, cfg.DefaultLocale))
		{
			protected.GET("/settings", h.Settings.Show)

			// Debts and payments
			protected.GET("/book", h.Debt.Book)
			protected.GET("/debts", h.Debt.Index)
			protected.POST("/debts", h.Debt.Create)
			protected.GET("/debts/:debt_id", h.Debt.Show)
			protected.PATCH("/debts/:debt_id/status", h.Debt.UpdateStatus)
			protected.GET("/debts/:debt_id/payments", h.Payment.Index)
			protected.POST("/debts/:debt_id/payments", h.Payment.Create)
			protected.GET("/payments", h.Payment.Index)

			// Reference data
			protected.GET("/categories", h.Reference.ListCategories)
			protected.POST("/categories", h.Reference.CreateCategory)
			protected.PUT("/categories/:category_id", h.Reference.UpdateCategory)
			protected.DELETE("/categories/:category_id", h.Reference.DeleteCategory)
			protected.GET("/banks", h.Reference.ListBanks)
			protected.POST("/banks", h.Reference.CreateBank)
			protected.PUT("/banks/:bank_id", h.Reference.UpdateBank)
			protected.DELETE("/banks/:bank_id", h.Reference.DeleteBank)

			// Calendar notes
			protected.GET("/notes/:date", h.DayNote.Show)
			protected.PUT("/notes/:date", h.DayNote.Save)
			protected.DELETE("/notes/:date", h.DayNote.Delete)

			// Dashboard and reports
			protected.GET("/dashboard", h.Report.Dashboard)
			protected.GET("/calendar", h.Report.Calendar)
			protected.GET("/reports", h.Report.Reports)
			protected.GET("/reports/export", h.Report.Export)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/roles", h.Admin.ListRoles)
				admin.PUT("/roles/:user_id", h.Admin.SetRole)
				admin.GET("/jobs/status", h.Admin.JobStatus)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	worker.ScheduleEveryImmediate("overdue-scan", time.Hour, svcs.Sync.ScanOverdue)
	logger.Info("Scheduled recurring jobs")
}
