package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	httpserver "github.com/fairyhunter13/resume-fit-scorer/internal/adapter/httpserver"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
)

// Pinger is the minimal interface for a dependency capable of Ping.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns the probes served by /readyz: db, redis,
// embeddings and tika. Redis and Tika are optional; their probes are
// omitted when not configured.
func BuildReadinessChecks(cfg config.Config, pool Pinger, rdb redis.UniversalClient, tika Pinger) []httpserver.ReadinessCheck {
	checks := []httpserver.ReadinessCheck{
		{Name: "db", Check: func(ctx context.Context) error {
			if pool == nil {
				return errors.New("db not configured")
			}
			return pool.Ping(ctx)
		}},
		{Name: "embeddings", Check: func(context.Context) error {
			if !cfg.EmbeddingsConfigured() {
				return fmt.Errorf("embeddings provider %q has no api key", cfg.Provider())
			}
			return nil
		}},
	}
	if rdb != nil {
		checks = append(checks, httpserver.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	if cfg.TikaURL != "" && tika != nil {
		checks = append(checks, httpserver.ReadinessCheck{Name: "tika", Check: tika.Ping})
	}
	return checks
}
