// Package jobseed loads job postings from YAML files into the job store.
package jobseed

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// DefaultPath is the seed file used by SeedDefault.
const DefaultPath = "configs/jobs/sample_jobs.yaml"

// Store is the subset of the job repository the seeder writes through.
type Store interface {
	domain.JobRepository
	Create(ctx domain.Context, j domain.JobPosting) (string, error)
}

type seedYAML struct {
	Jobs []seedJob `yaml:"jobs"`
}

type seedJob struct {
	ID              string   `yaml:"id"`
	Company         string   `yaml:"company"`
	Position        string   `yaml:"position"`
	Description     string   `yaml:"description"`
	ExperienceLevel string   `yaml:"experience_level"`
	Tags            []string `yaml:"tags"`
}

// Load parses a seed file. Postings without an id get a name-based UUID
// derived from company and position so reseeding is idempotent.
func Load(path string) ([]domain.JobPosting, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	abs = filepath.Clean(abs)
	wd = filepath.Clean(wd)
	if os.Getenv("JOBSEED_ALLOW_ABSPATHS") != "1" {
		if !strings.HasPrefix(abs, wd+string(os.PathSeparator)) && abs != wd {
			return nil, fmt.Errorf("disallowed path: %s", abs)
		}
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("seed file not found: %s", path)
		}
		return nil, err
	}
	var doc seedYAML
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("yaml parse: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(doc.Jobs))
	seen := make(map[string]struct{}, len(doc.Jobs))
	for _, j := range doc.Jobs {
		desc := strings.TrimSpace(j.Description)
		if desc == "" {
			continue
		}
		id := strings.TrimSpace(j.ID)
		if id == "" {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(j.Company+"\x00"+j.Position)).String()
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, domain.JobPosting{
			ID:              id,
			Company:         strings.TrimSpace(j.Company),
			Position:        strings.TrimSpace(j.Position),
			Description:     desc,
			ExperienceLevel: strings.TrimSpace(j.ExperienceLevel),
			Tags:            j.Tags,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no jobs to seed in %s", path)
	}
	return out, nil
}

// SeedFile inserts every posting of path that the store does not already
// hold and returns the number inserted.
func SeedFile(ctx domain.Context, s Store, path string) (int, error) {
	jobs, err := Load(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, j := range jobs {
		_, err := s.Get(ctx, j.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return inserted, fmt.Errorf("lookup %s: %w", j.ID, err)
		}
		if _, err := s.Create(ctx, j); err != nil {
			return inserted, fmt.Errorf("create %s: %w", j.ID, err)
		}
		inserted++
		slog.Info("job seeded", slog.String("job_id", j.ID), slog.String("position", j.Position))
	}
	return inserted, nil
}

// SeedDefault seeds the job store from DefaultPath.
func SeedDefault(ctx domain.Context, s Store) (int, error) {
	return SeedFile(ctx, s, DefaultPath)
}
