package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-fit-scorer/internal/adapter/repo/postgres"
	"github.com/fairyhunter13/resume-fit-scorer/internal/domain"
)

// rowStub implements pgx.Row
type rowStub struct{ scan func(dest ...any) error }

func (r rowStub) Scan(dest ...any) error { return r.scan(dest...) }

// poolStub implements postgres.PgxPool for tests
type poolStub struct {
	execErr  error
	execSQL  []string
	execArgs [][]any
	row      rowStub
}

func (p *poolStub) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execSQL = append(p.execSQL, sql)
	p.execArgs = append(p.execArgs, args)
	return pgconn.CommandTag{}, p.execErr
}

func (p *poolStub) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	if p.row.scan == nil {
		return rowStub{scan: func(_ ...any) error { return errors.New("no row configured") }}
	}
	return p.row
}

func TestJobRepo_Create(t *testing.T) {
	pool := &poolStub{}
	repo := postgres.NewJobRepo(pool)

	id, err := repo.Create(context.Background(), domain.JobPosting{ID: "job-1", Description: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)

	id, err = repo.Create(context.Background(), domain.JobPosting{Description: "Go"})
	require.NoError(t, err)
	assert.Len(t, id, 36)
	require.Len(t, pool.execArgs, 2)
	assert.Equal(t, []string{}, pool.execArgs[1][5])

	pool.execErr = assert.AnError
	_, err = repo.Create(context.Background(), domain.JobPosting{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op=job.create")
}

func TestJobRepo_Get(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	pool := &poolStub{row: rowStub{scan: func(dest ...any) error {
		*dest[0].(*string) = "job-1"
		*dest[1].(*string) = "Acme"
		*dest[2].(*string) = "Backend Engineer"
		*dest[3].(*string) = "Senior Go developer"
		*dest[4].(*string) = "senior"
		*dest[5].(*[]string) = []string{"go"}
		*dest[6].(*time.Time) = created
		*dest[7].(*time.Time) = created
		return nil
	}}}
	j, err := postgres.NewJobRepo(pool).Get(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Senior Go developer", j.Description)
	assert.Equal(t, []string{"go"}, j.Tags)
	assert.Equal(t, created, j.CreatedAt)
}

func TestJobRepo_GetNotFound(t *testing.T) {
	pool := &poolStub{row: rowStub{scan: func(_ ...any) error { return pgx.ErrNoRows }}}
	_, err := postgres.NewJobRepo(pool).Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobRepo_GetDBError(t *testing.T) {
	_, err := postgres.NewJobRepo(&poolStub{}).Get(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "op=job.get")
}

func TestEnsureSchema(t *testing.T) {
	pool := &poolStub{}
	require.NoError(t, postgres.EnsureSchema(context.Background(), pool))
	require.Len(t, pool.execSQL, 1)
	assert.Contains(t, pool.execSQL[0], "CREATE TABLE IF NOT EXISTS job_postings")

	pool.execErr = assert.AnError
	assert.Error(t, postgres.EnsureSchema(context.Background(), pool))
}

func TestNewPool_InvalidDSN(t *testing.T) {
	_, err := postgres.NewPool(context.Background(), "://bad")
	assert.Error(t, err)
}
