// Command seedjobs creates the job_postings table and loads sample postings.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/observability"
	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/resume-fit-scorer/internal/config"
	"github.com/fairyhunter13/resume-fit-scorer/internal/jobseed"
)

func main() {
	path := flag.String("file", jobseed.DefaultPath, "YAML file with job postings")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	slog.SetDefault(observability.SetupLogger(cfg))

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
	n, err := jobseed.SeedFile(ctx, postgres.NewJobRepo(pool), *path)
	if err != nil {
		slog.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
	slog.Info("job postings seeded", slog.Int("inserted", n), slog.String("file", *path))
}
