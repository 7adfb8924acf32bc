package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ductham08/shorten-links/internal/config"
	"github.com/ductham08/shorten-links/internal/handler"
	"github.com/ductham08/shorten-links/internal/logger"
	"github.com/ductham08/shorten-links/internal/middleware"
	"github.com/ductham08/shorten-links/internal/repository/postgres"
	redisRepo "github.com/ductham08/shorten-links/internal/repository/redis"
	"github.com/ductham08/shorten-links/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	loggerConfig := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.OutputPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}

	if err := logger.Initialize(loggerConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLog := logger.Get()
	appLog.Info("Starting shorten-links service",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"bot_visit_policy", cfg.Shortener.BotVisitPolicy,
	)

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		appLog.Error("Failed to setup database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := setupRedis(cfg)
	if err != nil {
		appLog.Error("Failed to setup redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	linkRepo := postgres.NewLinkRepository(dbPool)
	analyticsRepo := postgres.NewAnalyticsRepository(dbPool)
	linkCache := redisRepo.NewLinkCache(redisClient)

	shortener := service.NewShortener(linkRepo, analyticsRepo, cfg.Shortener.SlugLength, cfg.Shortener.SlugMaxRetries)
	recorder := service.NewRecorder(linkRepo, analyticsRepo)
	resolver := service.NewResolver(linkRepo, linkCache, recorder, service.ResolverOptions{
		BotVisitPolicy:  cfg.Shortener.BotVisitPolicy,
		LandingURL:      cfg.Shortener.LandingURL,
		RecorderTimeout: cfg.Shortener.RecorderTimeout,
		CacheTTL:        cfg.Shortener.CacheTTL,
	})

	linkHandler := handler.NewLinkHandler(shortener, resolver, cfg.Server.BaseURL, cfg.Shortener.CountryHeader)
	analyticsHandler := handler.NewAnalyticsHandler(shortener)
	healthHandler := handler.NewHealthHandler(dbPool, redisClient)

	router := setupRouter(cfg, linkHandler, analyticsHandler, healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLog.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, cfg, dbPool, redisClient, appLog)
}

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	dbConfig := cfg.Database
	poolConfig, err := pgxpool.ParseConfig(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(dbConfig.MaxConns)
	poolConfig.MinConns = int32(dbConfig.MinConns)
	poolConfig.MaxConnLifetime = dbConfig.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	if err := dbPool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return dbPool, nil
}

func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}

func setupRouter(
	cfg *config.Config,
	linkHandler *handler.LinkHandler,
	analyticsHandler *handler.AnalyticsHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// health check
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)

	api := router.Group("/api")
	{
		api.POST("/shorten", middleware.RateLimit(cfg.RateLimit), linkHandler.Shorten)

		api.GET("/analytics/:code", analyticsHandler.GetAnalytics)
	}

	// The redirect route also matches trailing paths; only the slug
	// segment selects the link.
	router.GET("/:code", linkHandler.Redirect)
	router.GET("/:code/*path", linkHandler.Redirect)

	return router
}

func gracefulShutdown(srv *http.Server, cfg *config.Config, dbPool *pgxpool.Pool, redisClient *redis.Client, appLog *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	appLog.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("Forced shutdown", "error", err)
	}

	dbPool.Close()
	appLog.Info("Database connection closed")

	if err := redisClient.Close(); err != nil {
		appLog.Error("Error closing Redis", "error", err)
	}

	appLog.Info("Graceful shutdown completed")
}
