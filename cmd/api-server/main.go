package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"novelhub/database"
	"novelhub/internal/config"
	"novelhub/internal/http-api/handler"
	"novelhub/internal/http-api/middleware"
	"novelhub/internal/http-api/repository"
	"novelhub/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable at startup", "error", err)
		}
		cancel()
	}

	// Repositories
	store := repository.NewStore(db)
	catalog := repository.NewCatalogRepository(db)
	privacy := repository.NewPrivacyRedisStore(rdb)
	readingTime := repository.NewReadingTimeRedisStore(rdb)

	// Services
	progressService := service.NewProgressService(store, catalog, privacy, logger)
	statsService := service.NewStatsService(store, catalog, readingTime, logger)
	achievementService := service.NewAchievementService(store, statsService, logger)
	goalService := service.NewGoalService(store, statsService)
	libraryService := service.NewLibraryService(store, catalog)
	reviewService := service.NewReviewService(store, catalog)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	api.Use(middleware.RateLimit(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	handler.NewProgressHandler(progressService).RegisterRoutes(api)
	handler.NewStatsHandler(statsService, achievementService).RegisterRoutes(api)
	handler.NewGoalHandler(goalService).RegisterRoutes(api)
	handler.NewLibraryHandler(libraryService).RegisterRoutes(api)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api)
	handler.NewPrivacyHandler(privacy).RegisterRoutes(api)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("api server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
