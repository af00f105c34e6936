package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/moodjournal-backend/internal/config"
	"github.com/AnshRaj112/moodjournal-backend/internal/database"
	"github.com/AnshRaj112/moodjournal-backend/internal/handlers"
	"github.com/AnshRaj112/moodjournal-backend/internal/middleware"
	"github.com/AnshRaj112/moodjournal-backend/internal/routes"
	"github.com/AnshRaj112/moodjournal-backend/internal/services"
	"github.com/AnshRaj112/moodjournal-backend/pkg/clientip"
	"github.com/AnshRaj112/moodjournal-backend/pkg/logger"
)

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Info().Msg("No .env file found")
	}
	if cfg.IsProduction() && cfg.UsesDefaultSecret() {
		log.Warn().Msg("⚠️  SECRET_KEY is using the development default in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB. On failure keep serving; data routes answer 500.
	log.Info().Str("uri", database.MaskURI(cfg.MongoURI)).Str("db", cfg.MongoDB).Msg("🔗 Connecting to MongoDB...")
	mongoConn, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoConnectTimeout)

	var store services.MoodStore
	if err != nil {
		log.Error().Err(err).Msg("❌ MongoDB connection failed, running without database")
	} else {
		log.Info().Msg("✅ MongoDB connected successfully")
		mongoStore := services.NewMongoMoodStore(mongoConn.DB)
		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("⚠️  failed to ensure mood indexes")
		} else {
			log.Info().Msg("✅ MongoDB mood indexes ensured")
		}
		store = mongoStore
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := mongoConn.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	// Rate limiting: Redis-backed when REDIS_URI is set, in-memory otherwise.
	ipFunc := clientip.Resolver(cfg.TrustProxy)
	var rateLimit func(http.Handler) http.Handler
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURI)
		if err != nil {
			log.Warn().Err(err).Msg("⚠️  Redis unavailable, falling back to in-memory rate limiting")
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
		limiter := middleware.NewRedisRateLimiter(redisClient, cfg.RateLimitMaxRequests, cfg.RateLimitWindow)
		limiter.ClientIP = ipFunc
		rateLimit = limiter.Middleware
		log.Info().Msg("✅ Redis rate limiting enabled")
	} else {
		limiter := middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.ClientIP = ipFunc
		rateLimit = limiter.Middleware
	}

	moodService := services.NewMoodService(store)

	r := routes.NewRouter(routes.Options{
		Logger:         log,
		AllowedOrigins: cfg.AllowedOrigins(),
		Production:     cfg.IsProduction(),
		RateLimit:      rateLimit,
		Moods:          handlers.NewMoodHandler(moodService, cfg.RequestTimeout),
		Health:         handlers.NewHealthHandler(mongoConn, cfg.RequestTimeout),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("env", cfg.Environment).Msgf("🚀 Mood journal backend running on :%s", cfg.Port)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start server")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
