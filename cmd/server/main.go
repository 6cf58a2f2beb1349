package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-ru/loan-engine-go/internal/cache"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/engine"
	"github.com/cloud-ru/loan-engine-go/internal/logging"
	"github.com/cloud-ru/loan-engine-go/internal/server"
	"github.com/cloud-ru/loan-engine-go/internal/service"
	"github.com/cloud-ru/loan-engine-go/internal/tools"
	"github.com/cloud-ru/loan-engine-go/internal/tracing"
)

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"), os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger = logging.New(cfg.LogLevel, os.Stdout)

	shutdownTracing, err := tracing.InitTracing(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to init tracing: %v", err)
	}

	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		defer redisCache.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			logger.Warnf("Redis unavailable at %s, results will be computed without cache: %v", cfg.RedisAddr, err)
		} else {
			resultCache = redisCache
		}
		cancel()
	}
	if resultCache == nil {
		resultCache = cache.NewMemoryCache(cfg.CacheTTL)
	}

	calculator := service.NewCalculator(engine.New(cfg), resultCache, logger)
	registry := tools.NewRegistry(cfg, calculator, tracing.Tracer)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.New(registry, logger).Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Server failed: %v", err)
	case <-quit:
		logger.Info("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Errorf("Error during tracing shutdown: %v", err)
	}

	logger.Info("Server exited")
}
