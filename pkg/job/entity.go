package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Job describes a job posting. The text columns are free-form and mirror
// what the board's front end submits.
type Job struct {
	ID          uuid.UUID
	Title       string
	Category    string
	JobCategory string
	Salary      string
	Property    string
	Benefits    string
	Location    string
	CreatedAt   time.Time
}

// ErrNotFound is returned when no job matches the requested id.
var ErrNotFound = errors.New("job not found")

// Repository is the persistence port for job postings.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, limit, offset int) ([]Job, error)
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}
