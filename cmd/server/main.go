// Command server starts the resume fit scorer HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	httpserver "github.com/fairyhunter13/resume-fit-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/resume-fit-scorer/internal/app"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	// Register all Prometheus metrics once per process so that /metrics
	// exposes HTTP, embedding, extraction and score instrumentation.
	observability.InitMetrics()

	shutdownTracer, err := observability.SetupTracing(cfg)
	if err != nil {
		slog.Error("failed to setup tracing", slog.Any("error", err))
	}
	defer func() {
		if shutdownTracer != nil {
			_ = shutdownTracer(context.Background())
		}
	}()

	// Infra: DB pool
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DBURL)
	if err != nil {
		slog.Error("db connect failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		slog.Error("db schema failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Optional shared embedding cache
	var rdb redis.UniversalClient
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		rdb = client
	}

	embedder, err := app.NewEmbedder(ctx, cfg, rdb)
	if err != nil {
		slog.Error("embedder init failed", slog.Any("error", err))
		os.Exit(1)
	}
	extractor, tikaPing := app.NewExtractor(cfg)

	// Usecases
	fitSvc := usecase.NewFitScoreService(postgres.NewJobRepo(pool), embedder, cfg.GetFitConfig())
	resumeSvc := usecase.NewResumeService(extractor)

	checks := app.BuildReadinessChecks(cfg, pool, rdb, tikaPing)
	srv := httpserver.NewServer(cfg, fitSvc, resumeSvc, checks...)
	handler := app.BuildRouter(cfg, srv)

	srvHTTP := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadTimeout:       cfg.HTTPReadTimeout,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server starting", slog.Int("port", cfg.Port))
		errCh <- srvHTTP.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
	defer cancel()
	_ = srvHTTP.Shutdown(shutdownCtx)
}
