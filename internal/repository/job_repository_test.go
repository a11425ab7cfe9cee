package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/iconidentify/vidseo/internal/domain"
)

func TestInMemoryJobRepository_Dequeue(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	if _, err := repo.Dequeue(ctx); !errors.Is(err, domain.ErrNoJobs) {
		t.Errorf("expected ErrNoJobs, got %v", err)
	}

	_ = repo.Enqueue(ctx, domain.NewJob("job-1", "run-1", 3))
	_ = repo.Enqueue(ctx, domain.NewJob("job-2", "run-2", 3))

	for _, want := range []domain.JobID{"job-1", "job-2"} {
		got, err := repo.Dequeue(ctx)
		if err != nil {
			t.Fatalf("Dequeue failed: %v", err)
		}
		if got.ID != want {
			t.Errorf("Dequeue = %s, want %s", got.ID, want)
		}
		if got.Status != domain.JobStatusProcessing {
			t.Errorf("Status = %s, want processing", got.Status)
		}
	}

	if _, err := repo.Dequeue(ctx); !errors.Is(err, domain.ErrNoJobs) {
		t.Errorf("expected ErrNoJobs after draining, got %v", err)
	}
}

func TestInMemoryJobRepository_StoresCopies(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	job := domain.NewJob("job-1", "run-1", 3)
	_ = repo.Enqueue(ctx, job)
	job.Status = domain.JobStatusFailed

	stored, _ := repo.Get(ctx, "job-1")
	if stored.Status != domain.JobStatusQueued {
		t.Errorf("Status = %s, caller mutation leaked into the store", stored.Status)
	}

	stored.Attempts = 99
	again, _ := repo.Get(ctx, "job-1")
	if again.Attempts != 0 {
		t.Error("mutating a returned job changed the store")
	}
}

func TestInMemoryJobRepository_Update_RequeueRetrying(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	_ = repo.Enqueue(ctx, domain.NewJob("job-1", "run-1", 3))
	job, _ := repo.Dequeue(ctx)

	job.MarkFailed("gateway timeout", true)
	if job.Status != domain.JobStatusRetrying {
		t.Fatalf("Status = %s, want retrying", job.Status)
	}
	if err := repo.Update(ctx, job); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	again, err := repo.Dequeue(ctx)
	if err != nil {
		t.Fatalf("retrying job should be dequeued again: %v", err)
	}
	if again.Attempts != 1 || again.LastError != "gateway timeout" {
		t.Errorf("job = %+v", again)
	}
}

func TestInMemoryJobRepository_Update_NotFound(t *testing.T) {
	repo := NewInMemoryJobRepository()
	err := repo.Update(context.Background(), domain.NewJob("missing", "run", 1))
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestInMemoryJobRepository_GetByRunID(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()
	_ = repo.Enqueue(ctx, domain.NewJob("job-1", "run-1", 3))

	job, err := repo.GetByRunID(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetByRunID failed: %v", err)
	}
	if job.ID != "job-1" {
		t.Errorf("ID = %s", job.ID)
	}
	if _, err := repo.GetByRunID(ctx, "nope"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestInMemoryJobRepository_ListPendingAndStats(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	for i := 1; i <= 4; i++ {
		_ = repo.Enqueue(ctx, domain.NewJob(domain.JobID(fmt.Sprintf("job-%d", i)), domain.RunID(fmt.Sprintf("run-%d", i)), 0))
	}

	first, _ := repo.Dequeue(ctx)
	first.MarkCompleted()
	_ = repo.Update(ctx, first)

	second, _ := repo.Dequeue(ctx)
	second.MarkFailed("invalid api key", false)
	_ = repo.Update(ctx, second)

	_, _ = repo.Dequeue(ctx)

	pending, _ := repo.ListPending(ctx)
	if len(pending) != 1 || pending[0].ID != "job-4" {
		t.Errorf("pending = %v", pending)
	}

	stats, _ := repo.Stats(ctx)
	want := QueueStats{Queued: 1, Processing: 1, Completed: 1, Failed: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}
}

func TestInMemoryJobRepository_Concurrency(t *testing.T) {
	repo := NewInMemoryJobRepository()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Enqueue(ctx, domain.NewJob(domain.JobID(fmt.Sprintf("job-%d", i)), domain.RunID(fmt.Sprintf("run-%d", i)), 1))
		}(i)
	}
	wg.Wait()

	seen := make(map[domain.JobID]bool)
	var mu sync.Mutex
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				job, err := repo.Dequeue(ctx)
				if err != nil {
					return
				}
				mu.Lock()
				if seen[job.ID] {
					t.Errorf("job %s dequeued twice", job.ID)
				}
				seen[job.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Errorf("dequeued %d jobs, want %d", len(seen), n)
	}
}
