package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/SscSPs/car_expense_app/cmd/docs"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_expense_app/internal/core/ports/services"
	"github.com/SscSPs/car_expense_app/internal/middleware"
	"github.com/SscSPs/car_expense_app/internal/platform/config"
	"github.com/SscSPs/car_expense_app/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	if err := registerParticipantValidator(services.Participants); err != nil {
		return err
	}

	r.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if err := setupAPIRoutes(r, cfg, services, posthog); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	return nil
}

// setupAPIRoutes configures the /api group and delegates to specific entity route registrations
func setupAPIRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthog *utils.PosthogClientWrapper,
) error {
	limiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	api := r.Group("/api", middleware.RateLimit(limiter))

	registerHomeRoutes(api, services.Participants)
	registerRideRoutes(api, services.Ride, posthog)
	registerExpenseRoutes(api, services.Expense, posthog)
	registerBalanceRoutes(api, services.Balance)
	registerExportRoutes(api, services.Export)
	return nil
}

// registerParticipantValidator adds the `participant` binding tag, which accepts configured participant names.
func registerParticipantValidator(participants domain.ParticipantSet) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("participant", func(fl validator.FieldLevel) bool {
		return participants.Contains(domain.Participant(fl.Field().String()))
	})
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{HeaderNextToken, "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
