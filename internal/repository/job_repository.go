package repository

import (
	"context"
	"sync"

	"github.com/iconidentify/vidseo/internal/domain"
)

// InMemoryJobRepository implements JobRepository using in-memory storage.
// Jobs are stored and returned as copies so workers can mutate what they
// dequeue without racing readers.
type InMemoryJobRepository struct {
	mu    sync.RWMutex
	jobs  map[domain.JobID]domain.Job
	byRun map[domain.RunID]domain.JobID
	queue []domain.JobID // FIFO of pending job IDs
}

// NewInMemoryJobRepository creates a new in-memory job repository.
func NewInMemoryJobRepository() *InMemoryJobRepository {
	return &InMemoryJobRepository{
		jobs:  make(map[domain.JobID]domain.Job),
		byRun: make(map[domain.RunID]domain.JobID),
		queue: make([]domain.JobID, 0),
	}
}

// Enqueue adds a job to the queue.
func (r *InMemoryJobRepository) Enqueue(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[job.ID] = *job
	r.byRun[job.RunID] = job.ID
	r.queue = append(r.queue, job.ID)
	return nil
}

// Dequeue retrieves the next queued or retrying job and marks it processing.
func (r *InMemoryJobRepository) Dequeue(ctx context.Context) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, jobID := range r.queue {
		job, ok := r.jobs[jobID]
		if !ok {
			continue
		}
		if job.Status != domain.JobStatusQueued && job.Status != domain.JobStatusRetrying {
			continue
		}

		r.queue = append(r.queue[:i], r.queue[i+1:]...)
		job.MarkProcessing()
		r.jobs[jobID] = job
		return &job, nil
	}
	return nil, domain.ErrNoJobs
}

// Update modifies job state. Retrying jobs go back on the queue.
func (r *InMemoryJobRepository) Update(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	r.jobs[job.ID] = *job

	if job.Status == domain.JobStatusRetrying {
		r.queue = append(r.queue, job.ID)
	}
	return nil
}

// Get retrieves a job by ID.
func (r *InMemoryJobRepository) Get(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

// GetByRunID finds the job associated with a run.
func (r *InMemoryJobRepository) GetByRunID(ctx context.Context, runID domain.RunID) (*domain.Job, error) {
	r.mu.RLock()
	jobID, ok := r.byRun[runID]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return r.Get(ctx, jobID)
}

// ListPending returns queued and retrying jobs in queue order.
func (r *InMemoryJobRepository) ListPending(ctx context.Context) ([]*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Job, 0, len(r.queue))
	for _, id := range r.queue {
		job, ok := r.jobs[id]
		if !ok {
			continue
		}
		if job.Status == domain.JobStatusQueued || job.Status == domain.JobStatusRetrying {
			result = append(result, &job)
		}
	}
	return result, nil
}

// Stats returns queue statistics.
func (r *InMemoryJobRepository) Stats(ctx context.Context) (*QueueStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &QueueStats{}
	for _, job := range r.jobs {
		switch job.Status {
		case domain.JobStatusQueued:
			stats.Queued++
		case domain.JobStatusProcessing:
			stats.Processing++
		case domain.JobStatusCompleted:
			stats.Completed++
		case domain.JobStatusFailed:
			stats.Failed++
		case domain.JobStatusRetrying:
			stats.Retrying++
		}
	}
	return stats, nil
}
