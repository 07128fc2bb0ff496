package handlers

import (
	"fmt"

	"github.com/SscSPs/dealflow/cmd/docs"
	portssvc "github.com/SscSPs/dealflow/internal/core/ports/services"
	"github.com/SscSPs/dealflow/internal/middleware"
	"github.com/SscSPs/dealflow/internal/platform/config"
	"github.com/SscSPs/dealflow/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// collector may be nil, in which case /metrics is not served.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	collector *metrics.Collector,
) error {
	tokenLimiter, err := middleware.NewIPRateLimiter(cfg.AuthRateLimit)
	if err != nil {
		return fmt.Errorf("failed to configure auth rate limit: %w", err)
	}

	r.GET("/", getHome)
	r.GET("/health", getHealth)
	if collector != nil {
		r.GET("/metrics", gin.WrapH(collector.Handler()))
	}

	authMW := middleware.AuthMiddleware(services.TokenService, services.User)

	// Register public authentication routes
	registerAuthRoutes(r, services, authMW, middleware.RateLimit(tokenLimiter))

	// Every pipeline route requires a resolved, active user
	protected := r.Group("", authMW)
	registerDealRoutes(protected, services.Deal)
	registerMemoRoutes(protected, services.Memo)

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
