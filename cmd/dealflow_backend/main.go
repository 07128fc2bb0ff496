package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/dealflow/internal/core/services"
	"github.com/SscSPs/dealflow/internal/handlers"
	"github.com/SscSPs/dealflow/internal/middleware"
	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
	"github.com/SscSPs/dealflow/internal/platform/revocation"
	"github.com/SscSPs/dealflow/internal/repositories/database/pgsql"
	"github.com/SscSPs/dealflow/internal/utils"
	"github.com/SscSPs/dealflow/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title DealFlow API
// @version 1.0
// @description Deal pipeline and investment memo API.

// @host localhost:8000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Database migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	if cfg.RedisURL != "" {
		store, err := revocation.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to token deny list", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := store.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		repos.RevokedRepo = store
		logger.Info("Token deny list enabled.")
	} else {
		logger.Warn("REDIS_URL not set, logout will not revoke tokens before they expire.")
	}

	collector := metrics.NewCollector("dealflow")
	serviceContainer := services.NewServiceContainer(cfg, repos, collector)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, metrics, analytics)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.CORSMiddleware(cfg.CORSAllowedOrigins),
		middleware.MetricsMiddleware(collector),
		middleware.PosthogMiddleware(posthogClient),
	)

	err = r.SetTrustedProxies(nil)
	if err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, collector); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
