package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/roomnest/roomrental/backend/internal/adapters/cache"
	"github.com/roomnest/roomrental/backend/internal/adapters/database"
	"github.com/roomnest/roomrental/backend/internal/adapters/events"
	"github.com/roomnest/roomrental/backend/internal/adapters/memory"
	"github.com/roomnest/roomrental/backend/internal/api/handlers"
	"github.com/roomnest/roomrental/backend/internal/api/middleware"
	"github.com/roomnest/roomrental/backend/internal/api/routes"
	"github.com/roomnest/roomrental/backend/internal/application/services"
	"github.com/roomnest/roomrental/backend/internal/domain/providers"
	"github.com/roomnest/roomrental/backend/internal/domain/repositories"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/clients/postgres"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/clients/redis"
	"github.com/roomnest/roomrental/backend/internal/infrastructure/observability"
	"github.com/roomnest/roomrental/backend/pkg/config"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize repositories. The memory driver backs local development
	// without a database; everything else goes through Postgres.
	var (
		roomRepo     repositories.RoomRepository
		favoriteRepo repositories.FavoriteRepository
	)

	if cfg.Database.Driver == "memory" {
		favoriteAdapter := memory.NewFavoriteAdapter()
		roomRepo = memory.NewRoomAdapter(favoriteAdapter)
		favoriteRepo = favoriteAdapter
		log.Info().Msg("Using in-memory repositories")
	} else {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		log.Info().Msg("PostgreSQL client initialized successfully")

		if err := database.EnsureSchema(ctx, pgClient); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure database schema")
		}

		roomRepo = database.NewRoomAdapter(pgClient)
		favoriteRepo = database.NewFavoriteAdapter(pgClient)
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without caching")
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for cache invalidation
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Event bus initialized successfully")
	} else {
		log.Info().Msg("Event bus disabled (Redis not available)")
	}

	// Initialize services
	roomService := services.NewRoomService(roomRepo)
	if eventBus != nil {
		roomService.SetEventBus(eventBus)
	}

	favoriteService := services.NewFavoriteService(favoriteRepo, roomRepo)

	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start cache invalidation service")
		}
	}

	// Initialize handlers
	roomHandler := handlers.NewRoomHandler(roomService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, metrics)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Info().Msg("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		roomHandler,
		favoriteHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Info().Msg("Server stopped")
}
