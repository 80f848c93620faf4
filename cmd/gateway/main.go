// Package main provides the entry point for the Grok gateway control plane.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"grok-gateway/internal/admin"
	"grok-gateway/internal/auth"
	"grok-gateway/internal/cache"
	"grok-gateway/internal/config"
	"grok-gateway/internal/gateway"
	"grok-gateway/internal/metrics"
	"grok-gateway/internal/refresh"
	"grok-gateway/internal/stats"
	"grok-gateway/internal/storage"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine; real deployments set the environment directly
		_ = err
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logLevel := &slog.LevelVar{}
	logLevel.Set(parseLogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}
	defer store.Close() //nolint:errcheck

	kv := cache.NewRedisKV(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer kv.Close() //nolint:errcheck

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := kv.Ping(pingCtx); err != nil {
		logger.Warn("redis not reachable at startup, continuing", "error", err, "addr", cfg.RedisAddr)
	}
	cancel()

	if err := metrics.Init(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	authenticator := auth.NewAuthenticator(store, cfg.AdminSecret)
	sweeper := cache.NewSweeper(kv, store, cfg.CleanupBatchSize, logger)
	tracker := refresh.NewTracker(store)
	aggregator := stats.NewAggregator(store)
	adminHandler := admin.New(store, aggregator, tracker, logger, logLevel, cfg.AdminPassword, storage.DefaultSessionTTL)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		n, err := sweeper.Sweep(ctx)
		if err != nil {
			logger.Error("cache eviction sweep failed", "error", err, "deleted", n)
			return
		}
		logger.Info("cache eviction sweep done", "deleted", n)
	}); err != nil {
		logger.Error("failed to schedule eviction sweep", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := gateway.NewRouter(logger, authenticator, adminHandler)

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsListenAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics listener starting", "addr", cfg.MetricsListenAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("gateway starting", "version", version, "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	_ = metricsSrv.Shutdown(shutdownCtx) //nolint:errcheck
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
