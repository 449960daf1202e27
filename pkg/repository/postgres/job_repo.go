package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freetrust/backend/pkg/job"
)

// JobRepository implements job.Repository backed by PostgreSQL (pgx).
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	category TEXT NOT NULL,
	job_category TEXT NOT NULL DEFAULT '',
	salary TEXT NOT NULL DEFAULT '',
	property TEXT NOT NULL DEFAULT '',
	benefits TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (id, title, category, job_category, salary, property, benefits, location, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, j.ID, j.Title, j.Category, j.JobCategory, j.Salary, j.Property, j.Benefits, j.Location, j.CreatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, category, job_category, salary, property, benefits, location, created_at
FROM jobs WHERE id = $1
`, id)
	return scanJob(row)
}

func (r *JobRepository) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, title, category, job_category, salary, property, benefits, location, created_at
FROM jobs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *JobRepository) Update(ctx context.Context, j job.Job) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs SET title = $2, category = $3, job_category = $4, salary = $5,
	property = $6, benefits = $7, location = $8
WHERE id = $1
`, j.ID, j.Title, j.Category, j.JobCategory, j.Salary, j.Property, j.Benefits, j.Location)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var created time.Time
	err := row.Scan(&j.ID, &j.Title, &j.Category, &j.JobCategory, &j.Salary,
		&j.Property, &j.Benefits, &j.Location, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	j.CreatedAt = created.UTC()
	return j, nil
}
