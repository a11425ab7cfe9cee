package repository

import (
	"context"

	"github.com/iconidentify/vidseo/internal/domain"
)

// RunRepository persists analysis runs and their results.
type RunRepository interface {
	// Create stores a new run.
	Create(ctx context.Context, run *domain.Run) error

	// Update replaces the stored state of an existing run.
	Update(ctx context.Context, run *domain.Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id domain.RunID) (*domain.Run, error)

	// List returns runs newest first.
	List(ctx context.Context, opts ListOptions) ([]*domain.Run, error)

	// Count returns the number of runs, optionally filtered by status.
	Count(ctx context.Context, status *domain.RunStatus) (int, error)
}

// ListOptions filters and pages List results.
type ListOptions struct {
	Session domain.SessionID
	Status  *domain.RunStatus
	Limit   int
	Offset  int
}

func (o ListOptions) matches(run *domain.Run) bool {
	if o.Session != "" && run.SessionID != o.Session {
		return false
	}
	if o.Status != nil && run.Status != *o.Status {
		return false
	}
	return true
}

// JobRepository manages the job queue.
type JobRepository interface {
	// Enqueue adds a job to the queue.
	Enqueue(ctx context.Context, job *domain.Job) error

	// Dequeue retrieves the next pending job (FIFO).
	Dequeue(ctx context.Context) (*domain.Job, error)

	// Update modifies job state.
	Update(ctx context.Context, job *domain.Job) error

	// Get retrieves a job by ID.
	Get(ctx context.Context, id domain.JobID) (*domain.Job, error)

	// GetByRunID finds the job associated with a run.
	GetByRunID(ctx context.Context, runID domain.RunID) (*domain.Job, error)

	// ListPending returns all pending/retrying jobs.
	ListPending(ctx context.Context) ([]*domain.Job, error)

	// Stats returns queue statistics.
	Stats(ctx context.Context) (*QueueStats, error)
}

// QueueStats contains job queue statistics.
type QueueStats struct {
	Queued     int `json:"queued"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Retrying   int `json:"retrying"`
}
