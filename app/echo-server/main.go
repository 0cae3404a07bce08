package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventify/app/echo-server/metrics"
	"eventify/app/echo-server/router"
	"eventify/business/learning"
	"eventify/business/matching"
	"eventify/internal/middleware"
	psqlRepo "eventify/internal/repository/postgres"
	redisRepo "eventify/internal/repository/redis"
	"eventify/internal/rest"
	"eventify/pkg/config"
	"eventify/pkg/database"
	redisdb "eventify/pkg/database/redis"
	"eventify/pkg/logger"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting Eventify engine", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Match cache is optional: without redis the engine recomputes every
	// search.
	var matchCache matching.MatchCache
	if cfg.Redis.Enabled {
		redisClient, err := redisdb.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, match caching disabled", "error", err)
		} else {
			defer redisdb.CloseRedisClient(redisClient)
			ttl := time.Duration(cfg.Engine.MatchCacheTTLSeconds) * time.Second
			matchCache = redisRepo.NewMatchCache(redisClient, ttl)
		}
	}

	// Init repos
	providerRepo := psqlRepo.NewProviderRepository(db)
	patternRepo := psqlRepo.NewServicePatternRepository(db)
	insightRepo := psqlRepo.NewLearningInsightRepository(db)
	outcomeRepo := psqlRepo.NewOutcomeRepository(db)
	matchingCfgRepo := psqlRepo.NewMatchingConfigRepository(db)

	// Init services
	matchingService := matching.NewMatchingService(providerRepo, matchCache, matchingCfgRepo, matching.DefaultConfig())
	learningService := learning.NewLearningService(patternRepo, insightRepo, outcomeRepo)

	// Init handlers
	requestTimeout := time.Duration(cfg.Engine.CatalogTimeoutSeconds) * time.Second
	matchingHandler := rest.NewMatchingHandler(matchingService, requestTimeout)
	learningHandler := rest.NewLearningHandler(learningService, requestTimeout)
	matchingAdminHandler := rest.NewMatchingAdminHandler(matchingCfgRepo)

	metrics.Init()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupMatchingRoutes(api, matchingHandler)
	router.SetupLearningRoutes(api, learningHandler)
	router.SetupMatchingAdminRoutes(api, matchingAdminHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
