// Package main runs the background worker that consumes welcome-email jobs
// from the Redis queue written by the API server.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/n0secutiry/taskapi/internal/config"
	"github.com/n0secutiry/taskapi/internal/job"
	"github.com/n0secutiry/taskapi/internal/platform/logger"
	"github.com/n0secutiry/taskapi/internal/platform/redisqueue"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	metricsAddr := flag.String("metrics-addr", ":9100", "address for the /metrics endpoint; empty disables it")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l, *metricsAddr); err != nil {
		l.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, l *slog.Logger, metricsAddr string) error {
	client, err := redisqueue.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			l.Warn("failed to close redis client", "error", cerr)
		}
	}()

	registry := job.NewRegistry()
	registry.Register(job.TypeWelcomeEmail, job.WelcomeEmailFactory(job.NewLogMailer(l, job.DefaultWelcomeMailDelay)))

	if metricsAddr != "" {
		srv := startMetricsServer(metricsAddr, l)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	consumer := redisqueue.NewConsumer(client, registry, redisqueue.ConsumerConfig{
		Key:         cfg.Redis.QueueKey,
		MaxAttempts: cfg.Queue.MaxAttempts,
	}, l)

	l.Info("Worker started",
		"queue_key", cfg.Redis.QueueKey,
		"max_attempts", cfg.Queue.MaxAttempts)

	if err := consumer.Run(ctx); err != nil {
		return err
	}

	l.Info("Worker shutdown completed")
	return nil
}

func startMetricsServer(addr string, l *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("metrics server failed", "error", err)
		}
	}()
	return srv
}
