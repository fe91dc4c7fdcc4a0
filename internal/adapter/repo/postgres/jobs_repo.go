package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// JobRepo loads job postings from PostgreSQL. The scorer only reads; Create
// exists for seeding and tests.
type JobRepo struct{ Pool PgxPool }

var _ domain.JobRepository = (*JobRepo)(nil)

// NewJobRepo constructs a JobRepo with the given pool.
func NewJobRepo(p PgxPool) *JobRepo { return &JobRepo{Pool: p} }

// Create inserts a job posting and returns its id (generates one if empty).
func (r *JobRepo) Create(ctx domain.Context, j domain.JobPosting) (string, error) {
	ctx, span := otel.Tracer("repo.jobs").Start(ctx, "jobs.Create")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "postgresql"))

	id := strings.TrimSpace(j.ID)
	if id == "" {
		id = uuid.New().String()
	}
	tags := j.Tags
	if tags == nil {
		tags = []string{}
	}
	now := time.Now().UTC()
	q := `INSERT INTO job_postings (id, company, position, description, experience_level, tags, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.Pool.Exec(ctx, q, id, j.Company, j.Position, j.Description, j.ExperienceLevel, tags, now, now); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("op=job.create: %w", err)
	}
	return id, nil
}

// Get loads a job posting by id. A missing row maps to domain.ErrNotFound.
func (r *JobRepo) Get(ctx domain.Context, id string) (domain.JobPosting, error) {
	ctx, span := otel.Tracer("repo.jobs").Start(ctx, "jobs.Get")
	defer span.End()
	span.SetAttributes(attribute.String("db.system", "postgresql"), attribute.String("job.id", id))

	q := `SELECT id, company, position, description, experience_level, tags, created_at, updated_at FROM job_postings WHERE id=$1`
	var j domain.JobPosting
	err := r.Pool.QueryRow(ctx, q, id).Scan(&j.ID, &j.Company, &j.Position, &j.Description, &j.ExperienceLevel, &j.Tags, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.JobPosting{}, fmt.Errorf("op=job.get: %w: job %s", domain.ErrNotFound, id)
		}
		span.RecordError(err)
		return domain.JobPosting{}, fmt.Errorf("op=job.get: %w", err)
	}
	return j, nil
}
