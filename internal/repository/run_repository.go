package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/iconidentify/vidseo/internal/domain"
)

// InMemoryRunRepository implements RunRepository in process memory.
type InMemoryRunRepository struct {
	mu   sync.RWMutex
	runs map[domain.RunID]*domain.Run
}

// NewInMemoryRunRepository creates an empty run repository.
func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{runs: make(map[domain.RunID]*domain.Run)}
}

// Create stores a new run.
func (r *InMemoryRunRepository) Create(ctx context.Context, run *domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = cloneRun(run)
	return nil
}

// Update replaces the stored run.
func (r *InMemoryRunRepository) Update(ctx context.Context, run *domain.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[run.ID]; !ok {
		return domain.ErrRunNotFound
	}
	r.runs[run.ID] = cloneRun(run)
	return nil
}

// Get retrieves a run by ID.
func (r *InMemoryRunRepository) Get(ctx context.Context, id domain.RunID) (*domain.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return cloneRun(run), nil
}

// List returns matching runs newest first.
func (r *InMemoryRunRepository) List(ctx context.Context, opts ListOptions) ([]*domain.Run, error) {
	r.mu.RLock()
	var matched []*domain.Run
	for _, run := range r.runs {
		if opts.matches(run) {
			matched = append(matched, cloneRun(run))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []*domain.Run{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// Count returns the number of runs, optionally filtered by status.
func (r *InMemoryRunRepository) Count(ctx context.Context, status *domain.RunStatus) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if status == nil {
		return len(r.runs), nil
	}
	n := 0
	for _, run := range r.runs {
		if run.Status == *status {
			n++
		}
	}
	return n, nil
}

// cloneRun copies the run and its result so stored state cannot be mutated
// through returned pointers.
func cloneRun(run *domain.Run) *domain.Run {
	c := *run
	if run.CompletedAt != nil {
		t := *run.CompletedAt
		c.CompletedAt = &t
	}
	if run.Result != nil {
		res := *run.Result
		res.SEO.Tags = append([]string(nil), run.Result.SEO.Tags...)
		res.SEO.Timestamps = append([]domain.Timestamp(nil), run.Result.SEO.Timestamps...)
		res.SEO.Titles = append([]domain.TitleSuggestion(nil), run.Result.SEO.Titles...)
		res.Thumbnails.Concepts = make([]domain.ThumbnailConcept, len(run.Result.Thumbnails.Concepts))
		for i, concept := range run.Result.Thumbnails.Concepts {
			concept.Colors = append([]string(nil), concept.Colors...)
			res.Thumbnails.Concepts[i] = concept
		}
		c.Result = &res
	}
	return &c
}
