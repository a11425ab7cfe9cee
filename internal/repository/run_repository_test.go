package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/iconidentify/vidseo/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleRun(id domain.RunID, session domain.SessionID, created time.Time) *domain.Run {
	run := domain.NewRun(id, session, "https://youtu.be/abc", "English", domain.VideoMetadata{
		Platform:        domain.PlatformYouTube,
		VideoID:         "abc",
		Title:           "Fix Your Sleep",
		DurationSeconds: 900,
	})
	run.CreatedAt = created
	return run
}

func sampleResult() *domain.PipelineResult {
	return &domain.PipelineResult{
		Analysis: "analysis",
		SEO: domain.SeoResult{
			Tags:        []string{"sleep", "health"},
			Description: "desc",
			Timestamps:  []domain.Timestamp{{Time: "00:00", Description: "Intro"}},
			Titles:      []domain.TitleSuggestion{{Rank: 1, Title: "Fix Your Sleep", Reason: "Original title"}},
			Degraded:    true,
		},
		Thumbnails: domain.ThumbnailResult{Concepts: []domain.ThumbnailConcept{
			{Concept: "Moon", TextOverlay: "Sleep Like A Baby", Colors: []string{"#000000", "#FFFFFF", "#FF0000"}},
		}},
	}
}

// runRepoFactories lets every behavior test run against both implementations.
func runRepoFactories(t *testing.T) map[string]func() RunRepository {
	return map[string]func() RunRepository{
		"memory": func() RunRepository { return NewInMemoryRunRepository() },
		"sqlite": func() RunRepository {
			repo, err := OpenSQLite(filepath.Join(t.TempDir(), "runs.db"), testLogger())
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			t.Cleanup(func() { repo.Close() })
			return repo
		},
	}
}

func TestRunRepository_CreateGetUpdate(t *testing.T) {
	for name, newRepo := range runRepoFactories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			ctx := context.Background()
			now := time.Now().Truncate(time.Microsecond)

			run := sampleRun("run-1", "sess-1", now)
			if err := repo.Create(ctx, run); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			got, err := repo.Get(ctx, "run-1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Status != domain.RunStatusQueued || got.Metadata.Title != "Fix Your Sleep" || got.Result != nil {
				t.Errorf("got = %+v", got)
			}
			if !got.CreatedAt.Equal(now) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, now)
			}

			done := now.Add(time.Minute)
			run.Status = domain.RunStatusCompleted
			run.Result = sampleResult()
			run.CompletedAt = &done
			if err := repo.Update(ctx, run); err != nil {
				t.Fatalf("Update() error = %v", err)
			}

			got, _ = repo.Get(ctx, "run-1")
			if got.Status != domain.RunStatusCompleted || got.Result == nil {
				t.Fatalf("got = %+v", got)
			}
			if got.Result.SEO.Tags[1] != "health" || !got.Result.SEO.Degraded || got.Result.Thumbnails.Concepts[0].Colors[2] != "#FF0000" {
				t.Errorf("result = %+v", got.Result)
			}
			if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
				t.Errorf("CompletedAt = %v", got.CompletedAt)
			}
		})
	}
}

func TestRunRepository_NotFound(t *testing.T) {
	for name, newRepo := range runRepoFactories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			ctx := context.Background()
			if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrRunNotFound) {
				t.Errorf("Get() error = %v, want ErrRunNotFound", err)
			}
			if err := repo.Update(ctx, sampleRun("missing", "s", time.Now())); !errors.Is(err, domain.ErrRunNotFound) {
				t.Errorf("Update() error = %v, want ErrRunNotFound", err)
			}
		})
	}
}

func TestRunRepository_ListAndCount(t *testing.T) {
	for name, newRepo := range runRepoFactories(t) {
		t.Run(name, func(t *testing.T) {
			repo := newRepo()
			ctx := context.Background()
			base := time.Now()

			for i, spec := range []struct {
				id      domain.RunID
				session domain.SessionID
				status  domain.RunStatus
			}{
				{"run-a", "s1", domain.RunStatusCompleted},
				{"run-b", "s2", domain.RunStatusFailed},
				{"run-c", "s1", domain.RunStatusCompleted},
				{"run-d", "s1", domain.RunStatusQueued},
			} {
				run := sampleRun(spec.id, spec.session, base.Add(time.Duration(i)*time.Second))
				run.Status = spec.status
				if err := repo.Create(ctx, run); err != nil {
					t.Fatal(err)
				}
			}

			all, _ := repo.List(ctx, ListOptions{})
			if len(all) != 4 || all[0].ID != "run-d" || all[3].ID != "run-a" {
				t.Errorf("List() order = %v", runIDs(all))
			}

			s1, _ := repo.List(ctx, ListOptions{Session: "s1"})
			if len(s1) != 3 {
				t.Errorf("session filter = %v", runIDs(s1))
			}

			completed := domain.RunStatusCompleted
			done, _ := repo.List(ctx, ListOptions{Session: "s1", Status: &completed})
			if len(done) != 2 || done[0].ID != "run-c" {
				t.Errorf("status filter = %v", runIDs(done))
			}

			page, _ := repo.List(ctx, ListOptions{Limit: 2, Offset: 1})
			if len(page) != 2 || page[0].ID != "run-c" || page[1].ID != "run-b" {
				t.Errorf("page = %v", runIDs(page))
			}

			beyond, _ := repo.List(ctx, ListOptions{Offset: 10})
			if len(beyond) != 0 {
				t.Errorf("offset beyond end = %v", runIDs(beyond))
			}

			if n, _ := repo.Count(ctx, nil); n != 4 {
				t.Errorf("Count(nil) = %d", n)
			}
			if n, _ := repo.Count(ctx, &completed); n != 2 {
				t.Errorf("Count(completed) = %d", n)
			}
		})
	}
}

func TestInMemoryRunRepository_ReturnsCopies(t *testing.T) {
	repo := NewInMemoryRunRepository()
	ctx := context.Background()
	run := sampleRun("run-1", "s", time.Now())
	run.Result = sampleResult()
	_ = repo.Create(ctx, run)

	run.Result.SEO.Tags[0] = "mutated"
	got, _ := repo.Get(ctx, "run-1")
	if got.Result.SEO.Tags[0] != "sleep" {
		t.Error("caller mutation leaked into the store")
	}

	got.Result.Thumbnails.Concepts[0].Colors[0] = "#123456"
	again, _ := repo.Get(ctx, "run-1")
	if again.Result.Thumbnails.Concepts[0].Colors[0] != "#000000" {
		t.Error("mutating a returned run changed the store")
	}
}

func TestOpenSQLite_FailsInterruptedRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")
	ctx := context.Background()

	repo, err := OpenSQLite(path, testLogger())
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	inflight := sampleRun("run-1", "s", time.Now())
	inflight.Status = domain.RunStatusOptimizing
	finished := sampleRun("run-2", "s", time.Now())
	finished.Status = domain.RunStatusCompleted
	_ = repo.Create(ctx, inflight)
	_ = repo.Create(ctx, finished)
	repo.Close()

	repo, err = OpenSQLite(path, testLogger())
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer repo.Close()

	got, _ := repo.Get(ctx, "run-1")
	if got.Status != domain.RunStatusFailed || got.Error != interruptedError || got.CompletedAt == nil {
		t.Errorf("interrupted run = %+v", got)
	}
	got, _ = repo.Get(ctx, "run-2")
	if got.Status != domain.RunStatusCompleted {
		t.Errorf("completed run status = %s", got.Status)
	}
}

func runIDs(runs []*domain.Run) []domain.RunID {
	ids := make([]domain.RunID, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	return ids
}
