package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/car_expense_app/internal/adapters/cache"
	"github.com/SscSPs/car_expense_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_expense_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_expense_app/internal/core/services"
	"github.com/SscSPs/car_expense_app/internal/handlers"
	"github.com/SscSPs/car_expense_app/internal/middleware"
	"github.com/SscSPs/car_expense_app/internal/platform/config"
	"github.com/SscSPs/car_expense_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/car_expense_app/internal/repositories/memory"
	"github.com/SscSPs/car_expense_app/internal/utils"
	"github.com/SscSPs/car_expense_app/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const posthogEndpoint = "https://eu.i.posthog.com"

var (
	flagMemory      bool
	flagAutoMigrate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, slog.Default())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&flagMemory, "memory", false, "Keep the ledger in process memory instead of PostgreSQL")
	serveCmd.Flags().BoolVar(&flagAutoMigrate, "migrate", true, "Apply pending migrations before serving")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	defer cleanup()
	if err != nil {
		return err
	}

	participants := domain.NewParticipantSet(cfg.Participants...)
	serviceContainer := services.NewServiceContainer(participants, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, posthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.Any("participants", cfg.Participants), slog.Bool("memory_store", flagMemory))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// buildRepositories selects the ledger store and the settlement cache.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var repos portsrepo.RepositoryProvider
	if flagMemory {
		logger.Warn("Using the in-memory store; data is lost on exit")
		repos = memory.NewRepositoryProvider(memory.NewStore())
		repos.Cache = cache.NewInMemoryCache()
	} else {
		if cfg.DatabaseURL == "" {
			return repos, cleanup, errors.New("PGSQL_URL is required unless --memory is set")
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{
			Ping:       cfg.EnableDBCheck,
			Retries:    cfg.DBConnectRetries,
			RetryDelay: cfg.DBConnectRetryDelay,
		}, logger)
		if err != nil {
			return repos, cleanup, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		closers = append(closers, func() { database.ClosePgxPool(dbPool, logger) })
		if flagAutoMigrate {
			logger.Info("Running database migrations...")
			if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.Up, logger); err != nil {
				return repos, cleanup, err
			}
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	}

	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.SettlementCacheTTL,
		})
		if err := redisCache.Ping(ctx); err != nil {
			// Settlement reads recompute on cache errors.
			logger.Warn("Redis not reachable, settlement cache will miss", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		}
		closers = append(closers, func() { _ = redisCache.Close() })
		repos.Cache = redisCache
	}
	return repos, cleanup, nil
}
