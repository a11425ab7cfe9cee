package handler

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
	"github.com/iconidentify/vidseo/internal/previewcache"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockJobRepository is a test implementation of repository.JobRepository.
type mockJobRepository struct {
	stats    *repository.QueueStats
	statsErr error
}

func newMockJobRepository() *mockJobRepository {
	return &mockJobRepository{stats: &repository.QueueStats{}}
}

func (m *mockJobRepository) Enqueue(ctx context.Context, job *domain.Job) error { return nil }

func (m *mockJobRepository) Dequeue(ctx context.Context) (*domain.Job, error) {
	return nil, domain.ErrNoJobs
}

func (m *mockJobRepository) Get(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	return nil, domain.ErrJobNotFound
}

func (m *mockJobRepository) GetByRunID(ctx context.Context, runID domain.RunID) (*domain.Job, error) {
	return nil, domain.ErrJobNotFound
}

func (m *mockJobRepository) Update(ctx context.Context, job *domain.Job) error { return nil }

func (m *mockJobRepository) ListPending(ctx context.Context) ([]*domain.Job, error) {
	return nil, nil
}

func (m *mockJobRepository) Stats(ctx context.Context) (*repository.QueueStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	return m.stats, nil
}

// mockAnalysisService records requests and returns canned results.
type mockAnalysisService struct {
	err        error
	configured bool
	sessions   int
	runs       map[domain.RunID]*domain.Run
	preview    *previewcache.Image

	lastSubmit  service.SubmitRequest
	lastList    repository.ListOptions
	lastIndex   int
	regenerated bool
}

func newMockAnalysisService() *mockAnalysisService {
	return &mockAnalysisService{
		configured: true,
		runs:       make(map[domain.RunID]*domain.Run),
		preview:    &previewcache.Image{Data: []byte("\x89PNG"), ContentType: "image/png", CreatedAt: time.Now()},
	}
}

func sampleRun(id domain.RunID) *domain.Run {
	run := domain.NewRun(id, "sess-1", "https://youtu.be/abc", language.English, domain.VideoMetadata{
		Platform: domain.PlatformYouTube,
		VideoID:  "abc",
		Title:    "Fix Your Sleep",
	})
	run.Status = domain.RunStatusCompleted
	run.Result = &domain.PipelineResult{
		Analysis:   "analysis",
		SEO:        seo.FallbackSEO(run.Metadata, language.English),
		Thumbnails: seo.FallbackThumbnails(domain.PlatformYouTube, language.English),
	}
	return run
}

func (m *mockAnalysisService) Submit(ctx context.Context, req service.SubmitRequest) (*service.SubmitResponse, error) {
	m.lastSubmit = req
	if m.err != nil {
		return nil, m.err
	}
	return &service.SubmitResponse{
		RunID:     "run-1",
		JobID:     "job-1",
		SessionID: "sess-1",
		Status:    domain.RunStatusQueued,
		Language:  language.English,
	}, nil
}

func (m *mockAnalysisService) Analyze(ctx context.Context, req service.SubmitRequest, observers ...seo.StageObserver) (*domain.Run, error) {
	m.lastSubmit = req
	if m.err != nil {
		return nil, m.err
	}
	return sampleRun("run-sync"), nil
}

func (m *mockAnalysisService) GetStatus(ctx context.Context, runID domain.RunID) (*service.StatusResponse, error) {
	run, ok := m.runs[runID]
	if !ok {
		return nil, domain.ErrRunNotFound
	}
	return &service.StatusResponse{Run: run, Progress: "Completed"}, nil
}

func (m *mockAnalysisService) List(ctx context.Context, opts repository.ListOptions) ([]*domain.Run, int, error) {
	m.lastList = opts
	if m.err != nil {
		return nil, 0, m.err
	}
	var runs []*domain.Run
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	return runs, len(runs), nil
}

func (m *mockAnalysisService) Preview(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error) {
	m.lastIndex = index
	if m.err != nil {
		return nil, m.err
	}
	return m.preview, nil
}

func (m *mockAnalysisService) RegeneratePreview(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error) {
	m.regenerated = true
	return m.Preview(ctx, runID, index)
}

func (m *mockAnalysisService) Languages() []language.Language {
	return language.NewSet(true).All()
}

func (m *mockAnalysisService) Configured() bool { return m.configured }

func (m *mockAnalysisService) ActiveSessions() int { return m.sessions }
