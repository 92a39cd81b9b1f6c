package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/planora/event-management-backend/internal/app"
	"github.com/planora/event-management-backend/internal/cache"
	"github.com/planora/event-management-backend/internal/config"
	"github.com/planora/event-management-backend/internal/db"
	"github.com/planora/event-management-backend/internal/pkg/logger"
	"github.com/planora/event-management-backend/internal/scheduler"
	"github.com/redis/go-redis/v9"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("failed to load config")
	}

	logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		JSONFormat: cfg.IsProduction,
	})

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to db")
	}
	defer pool.Close()

	// Redis is optional; without it rate limiting and caching are off.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = cache.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("failed to connect to redis, continuing without it")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	container, err := app.NewContainer(app.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		DBPool:       pool,
		RedisClient:  redisClient,
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTAccessTokenTTL,
		BcryptCost:   cfg.BcryptCost,
		StoragePath:  cfg.StoragePath,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUser:     cfg.SMTPUser,
		SMTPPass:     cfg.SMTPPass,
		SMTPFrom:     cfg.SMTPFrom,
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to init application")
	}

	// Periodic sweep keeps derived event statuses consistent with their
	// booking requests.
	if cfg.SweepInterval > 0 {
		go scheduler.StatusSweep(ctx, container.EventService, cfg.SweepInterval)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	logger.Log.Info("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("server forced to shutdown")
	}

	logger.Log.Info("server exited gracefully")
}
