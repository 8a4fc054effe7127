package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hstraker/deal-sourcing-saas-sub001/internal/cache"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/config"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/credits"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/database"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/engine"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/handlers"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/logger"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/middleware"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/provider"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/repository"
	"github.com/hstraker/deal-sourcing-saas-sub001/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting deal sourcing API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Connect the Redis data cache. It also backs the credit meter.
	dataCache, err := cache.New(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", err, map[string]interface{}{
			"addr": cfg.Redis.Addr,
		})
	}
	defer dataCache.Close()

	log.Info("Cache connection established", map[string]interface{}{
		"addr": cfg.Redis.Addr,
		"ttl":  cfg.Redis.CacheTTL.String(),
	})

	// Credit meter plus its hourly budget watchdog
	meter := credits.NewMeter(dataCache.Client(), cfg.Provider.MonthlyCreditBudget, log)
	watchdog := credits.NewWatchdog(meter, log)
	if err := watchdog.Start(); err != nil {
		log.Fatal("Failed to start credit watchdog", err, nil)
	}
	defer watchdog.Stop()

	// Valuation engine with policy from configuration
	eng, err := engine.New(cfg.Engine, log)
	if err != nil {
		log.Fatal("Invalid engine options", err, nil)
	}

	// Metered property-data provider
	providerClient := provider.NewClient(cfg.Provider, cfg.Engine.MinConfidenceScore, log)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, dataCache, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	valuationRepo := repository.NewValuationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	valuationService := services.NewValuationService(eng, providerClient, dataCache, meter, valuationRepo, eventRepo, log)

	// Initialize handlers
	valuationHandler := handlers.NewValuationHandler(valuationService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		valuations := v1.Group("/valuations")
		{
			valuations.POST("", valuationHandler.Calculate)
			valuations.GET("/:id", valuationHandler.GetByID)
			valuations.GET("/:id/report", valuationHandler.GetReport)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
