package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/freetrust/backend/api/http/presenter"
	"github.com/freetrust/backend/pkg/job"
	"github.com/freetrust/backend/pkg/logging"
)

type JobHandler struct {
	uc  job.UseCase
	log *logging.Logger
}

func NewJobHandler(uc job.UseCase, log *logging.Logger) *JobHandler {
	return &JobHandler{uc: uc, log: log}
}

type jobPayload struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	JobCategory string `json:"jobCategory"`
	Salary      string `json:"salary"`
	Property    string `json:"property"`
	Benefits    string `json:"benefits"`
	Location    string `json:"location"`
}

type jobDTO struct {
	ID string `json:"id"`
	jobPayload
	CreatedAt time.Time `json:"createdAt"`
}

func toJobDTO(j job.Job) jobDTO {
	return jobDTO{
		ID: j.ID.String(),
		jobPayload: jobPayload{
			Title:       j.Title,
			Category:    j.Category,
			JobCategory: j.JobCategory,
			Salary:      j.Salary,
			Property:    j.Property,
			Benefits:    j.Benefits,
			Location:    j.Location,
		},
		CreatedAt: j.CreatedAt,
	}
}

type jobsResponse struct {
	Success bool     `json:"success"`
	Jobs    []jobDTO `json:"jobs"`
}

type jobResponse struct {
	Success bool   `json:"success"`
	Job     jobDTO `json:"job"`
}

// List returns a page of jobs.
// @Summary List jobs
// @Tags    jobs
// @Produce json
// @Param   page  query int false "page number (1-based)"
// @Param   limit query int false "page size"
// @Success 200 {object} jobsResponse
// @Failure 500 {object} presenter.Response
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c, 10)

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	jobs, err := h.uc.List(ctx, limit, offset)
	if err != nil {
		h.log.Error("list jobs failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "Error fetching data")
	}
	dtos := make([]jobDTO, 0, len(jobs))
	for _, j := range jobs {
		dtos = append(dtos, toJobDTO(j))
	}
	return presenter.JSON(c, http.StatusOK, jobsResponse{Success: true, Jobs: dtos})
}

// GetByID returns a single job.
// @Summary Get job by id
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Success 200 {object} jobResponse
// @Failure 404 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Job not found!")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	j, err := h.uc.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Job not found!")
		}
		h.log.Error("get job failed", "id", id, "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
	}
	return presenter.JSON(c, http.StatusOK, jobResponse{Success: true, Job: toJobDTO(j)})
}

// Create stores a new job posting.
// @Summary Create job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body jobPayload true "job fields"
// @Success 200 {object} presenter.Response
// @Failure 400 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req jobPayload
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	_, err := h.uc.Create(ctx, req.toJob(uuid.Nil))
	if err != nil {
		var verr job.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, "Title and category are required.")
		}
		h.log.Error("create job failed", "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
	}
	return presenter.Success(c, "Job created successfully!")
}

// Update replaces a job's fields.
// @Summary Update job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id    path string     true "job id (UUID)"
// @Param   input body jobPayload true "job fields"
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Job not found!")
	}
	var req jobPayload
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.uc.Update(ctx, req.toJob(id)); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Job not found!")
		}
		h.log.Error("update job failed", "id", id, "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
	}
	return presenter.Success(c, "Job updated successfully!")
}

// Delete removes a job posting.
// @Summary Delete job
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Success 200 {object} presenter.Response
// @Failure 404 {object} presenter.Response
// @Failure 500 {object} presenter.Response
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "Job not found!")
	}

	ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
	defer cancel()

	if err := h.uc.Delete(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "Job not found!")
		}
		h.log.Error("delete job failed", "id", id, "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "An error occurred.")
	}
	return presenter.Success(c, "Job deleted successfully!")
}

func (p jobPayload) toJob(id uuid.UUID) job.Job {
	return job.Job{
		ID:          id,
		Title:       p.Title,
		Category:    p.Category,
		JobCategory: p.JobCategory,
		Salary:      p.Salary,
		Property:    p.Property,
		Benefits:    p.Benefits,
		Location:    p.Location,
	}
}
