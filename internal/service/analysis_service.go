package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iconidentify/vidseo/internal/config"
	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
	"github.com/iconidentify/vidseo/internal/metadata"
	"github.com/iconidentify/vidseo/internal/previewcache"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/thumbnail"
)

// Pipeline runs the three-stage SEO pipeline.
type Pipeline interface {
	Run(ctx context.Context, videoURL string, meta domain.VideoMetadata, lang string, opts ...seo.RunOption) (*domain.PipelineResult, error)
	Configured() bool
}

// AnalysisService orchestrates the analysis workflow: validation, metadata
// lookup, queueing, pipeline execution and preview rendering. A session may
// have at most one run in flight.
type AnalysisService struct {
	runRepo   repository.RunRepository
	jobRepo   repository.JobRepository
	fetcher   metadata.Fetcher
	pipeline  Pipeline
	languages *language.Set
	previews  *previewcache.Cache
	renderer  *thumbnail.Renderer
	workerCfg config.WorkerConfig
	logger    *slog.Logger

	mu     sync.Mutex
	active map[domain.SessionID]domain.RunID
}

// NewAnalysisService creates a new analysis service.
func NewAnalysisService(
	runRepo repository.RunRepository,
	jobRepo repository.JobRepository,
	fetcher metadata.Fetcher,
	pipeline Pipeline,
	languages *language.Set,
	previews *previewcache.Cache,
	renderer *thumbnail.Renderer,
	workerCfg config.WorkerConfig,
	logger *slog.Logger,
) *AnalysisService {
	return &AnalysisService{
		runRepo:   runRepo,
		jobRepo:   jobRepo,
		fetcher:   fetcher,
		pipeline:  pipeline,
		languages: languages,
		previews:  previews,
		renderer:  renderer,
		workerCfg: workerCfg,
		logger:    logger,
		active:    make(map[domain.SessionID]domain.RunID),
	}
}

// SubmitRequest represents an analysis request.
type SubmitRequest struct {
	URL       string
	Language  string
	SessionID domain.SessionID
}

// SubmitResponse is returned after queueing an analysis.
type SubmitResponse struct {
	RunID     domain.RunID
	JobID     domain.JobID
	SessionID domain.SessionID
	Status    domain.RunStatus
	Language  string
	Metadata  domain.VideoMetadata
}

// StatusResponse contains the current status of a run.
type StatusResponse struct {
	Run      *domain.Run
	Progress string
}

// Languages returns the supported output languages.
func (s *AnalysisService) Languages() []language.Language {
	return s.languages.All()
}

// Configured reports whether the LLM credential is present.
func (s *AnalysisService) Configured() bool {
	return s.pipeline.Configured()
}

// Submit validates the request, fetches metadata and queues the run.
// Invalid input and a missing credential fail here, before any LLM call.
func (s *AnalysisService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	run, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.runRepo.Create(ctx, run); err != nil {
		s.release(run.SessionID, run.ID)
		return nil, fmt.Errorf("create run: %w", err)
	}

	jobID := domain.JobID("job_" + uuid.New().String()[:8])
	job := domain.NewJob(jobID, run.ID, s.workerCfg.MaxRetries)
	if err := s.jobRepo.Enqueue(ctx, job); err != nil {
		s.release(run.SessionID, run.ID)
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	s.logger.Info("analysis submitted",
		"run_id", run.ID,
		"job_id", jobID,
		"session_id", run.SessionID,
		"platform", run.Metadata.Platform,
		"language", run.Language,
	)

	return &SubmitResponse{
		RunID:     run.ID,
		JobID:     jobID,
		SessionID: run.SessionID,
		Status:    run.Status,
		Language:  run.Language,
		Metadata:  run.Metadata,
	}, nil
}

// Analyze runs the pipeline inline and returns the finished run.
func (s *AnalysisService) Analyze(ctx context.Context, req SubmitRequest, observers ...seo.StageObserver) (*domain.Run, error) {
	run, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.release(run.SessionID, run.ID)
		return nil, fmt.Errorf("create run: %w", err)
	}

	err = s.execute(ctx, run, observers...)
	if err != nil {
		s.fail(ctx, run, err)
		return run, err
	}
	return run, nil
}

// Process executes a queued run. It is called by the worker pool; on error
// the run is left for retry and MarkFailed is called once retries run out.
func (s *AnalysisService) Process(ctx context.Context, runID domain.RunID) error {
	run, err := s.runRepo.Get(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	if run.Status.IsTerminal() {
		return nil
	}
	return s.execute(ctx, run)
}

// MarkFailed records a permanent failure and frees the run's session.
func (s *AnalysisService) MarkFailed(ctx context.Context, runID domain.RunID, cause error) error {
	run, err := s.runRepo.Get(ctx, runID)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}
	s.fail(ctx, run, cause)
	return nil
}

// GetStatus returns the run with a human-readable progress line.
func (s *AnalysisService) GetStatus(ctx context.Context, runID domain.RunID) (*StatusResponse, error) {
	run, err := s.runRepo.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{Run: run, Progress: progressText(run.Status)}, nil
}

// List returns runs newest first with the unpaged total.
func (s *AnalysisService) List(ctx context.Context, opts repository.ListOptions) ([]*domain.Run, int, error) {
	runs, err := s.runRepo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	total := len(runs)
	if opts.Session == "" {
		total, err = s.runRepo.Count(ctx, opts.Status)
		if err != nil {
			return nil, 0, err
		}
	} else if opts.Limit > 0 || opts.Offset > 0 {
		all, err := s.runRepo.List(ctx, repository.ListOptions{Session: opts.Session, Status: opts.Status})
		if err != nil {
			return nil, 0, err
		}
		total = len(all)
	}
	return runs, total, nil
}

// Preview returns the rendered preview for a concept of a completed run,
// generating and caching it on first use.
func (s *AnalysisService) Preview(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error) {
	run, concept, err := s.concept(ctx, runID, index)
	if err != nil {
		return nil, err
	}
	return s.previews.GetOrCreate(ctx, previewKey(run, index), s.previewGenerator(run, concept))
}

// RegeneratePreview evicts the cached preview and renders it again.
func (s *AnalysisService) RegeneratePreview(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error) {
	run, concept, err := s.concept(ctx, runID, index)
	if err != nil {
		return nil, err
	}
	return s.previews.Regenerate(ctx, previewKey(run, index), s.previewGenerator(run, concept))
}

// ActiveSessions returns the number of sessions with a run in flight.
func (s *AnalysisService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func (s *AnalysisService) prepare(ctx context.Context, req SubmitRequest) (*domain.Run, error) {
	lang, err := s.languages.Normalize(req.Language)
	if err != nil {
		return nil, err
	}
	if !s.pipeline.Configured() {
		return nil, domain.ErrConfiguration
	}

	meta, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	session := req.SessionID
	if session == "" {
		session = domain.SessionID("sess_" + uuid.New().String()[:8])
	}
	runID := domain.RunID("run_" + uuid.New().String()[:8])
	if err := s.claim(session, runID); err != nil {
		return nil, err
	}

	// A new run replaces whatever the session was previewing.
	s.previews.InvalidateSession(session)

	return domain.NewRun(runID, session, strings.TrimSpace(req.URL), lang, meta), nil
}

func (s *AnalysisService) execute(ctx context.Context, run *domain.Run, observers ...seo.StageObserver) error {
	logger := s.logger.With("run_id", run.ID, "session_id", run.SessionID)

	onStage := func(stage domain.Stage) {
		run.Status = stage.RunStatus()
		if err := s.runRepo.Update(ctx, run); err != nil {
			logger.Warn("failed to record stage", "stage", stage, "error", err)
		}
		for _, obs := range observers {
			obs(stage)
		}
	}

	start := time.Now()
	result, err := s.pipeline.Run(ctx, run.VideoURL, run.Metadata, run.Language,
		seo.OnStage(onStage), seo.WithLogger(logger))
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("run abandoned: %w", ctx.Err())
	}
	if err != nil {
		logger.Warn("pipeline failed", "error", err, "retryable", domain.IsRetryable(err))
		return err
	}

	now := time.Now()
	run.Result = result
	run.Status = domain.RunStatusCompleted
	run.Error = ""
	run.CompletedAt = &now
	if err := s.runRepo.Update(ctx, run); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	s.release(run.SessionID, run.ID)

	logger.Info("analysis completed",
		"duration", time.Since(start),
		"seo_degraded", result.SEO.Degraded,
		"thumbnails_degraded", result.Thumbnails.Degraded,
	)
	return nil
}

func (s *AnalysisService) fail(ctx context.Context, run *domain.Run, cause error) {
	now := time.Now()
	run.Status = domain.RunStatusFailed
	run.Error = cause.Error()
	run.CompletedAt = &now
	// The caller's context may already be cancelled; the failure must still land.
	if err := s.runRepo.Update(context.WithoutCancel(ctx), run); err != nil {
		s.logger.Error("failed to record run failure", "run_id", run.ID, "error", err)
	}
	s.release(run.SessionID, run.ID)
	s.logger.Error("analysis failed", "run_id", run.ID, "error", cause)
}

func (s *AnalysisService) claim(session domain.SessionID, runID domain.RunID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.active[session]; ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionBusy, current)
	}
	s.active[session] = runID
	return nil
}

func (s *AnalysisService) release(session domain.SessionID, runID domain.RunID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active[session] == runID {
		delete(s.active, session)
	}
}

func (s *AnalysisService) concept(ctx context.Context, runID domain.RunID, index int) (*domain.Run, domain.ThumbnailConcept, error) {
	run, err := s.runRepo.Get(ctx, runID)
	if err != nil {
		return nil, domain.ThumbnailConcept{}, err
	}
	if run.Result == nil {
		return nil, domain.ThumbnailConcept{}, fmt.Errorf("%w: run %s has no thumbnails yet", domain.ErrConceptIndex, runID)
	}
	concepts := run.Result.Thumbnails.Concepts
	if index < 0 || index >= len(concepts) {
		return nil, domain.ThumbnailConcept{}, fmt.Errorf("%w: %d", domain.ErrConceptIndex, index)
	}
	return run, concepts[index], nil
}

func (s *AnalysisService) previewGenerator(run *domain.Run, concept domain.ThumbnailConcept) previewcache.Generator {
	return func(ctx context.Context) (*previewcache.Image, error) {
		var buf bytes.Buffer
		if err := s.renderer.RenderPNG(&buf, concept, run.Metadata.Title, nil); err != nil {
			return nil, err
		}
		return &previewcache.Image{Data: buf.Bytes(), ContentType: "image/png"}, nil
	}
}

func previewKey(run *domain.Run, index int) previewcache.Key {
	return previewcache.Key{Session: run.SessionID, Run: run.ID, Concept: index}
}

func progressText(status domain.RunStatus) string {
	switch status {
	case domain.RunStatusQueued:
		return "Waiting in queue"
	case domain.RunStatusAnalyzing:
		return "Analyzing video content"
	case domain.RunStatusOptimizing:
		return "Generating SEO recommendations"
	case domain.RunStatusDesigning:
		return "Designing thumbnail concepts"
	case domain.RunStatusCompleted:
		return "Completed"
	case domain.RunStatusFailed:
		return "Failed"
	}
	return ""
}

// IsClientError reports whether err was caused by the request rather than
// the service.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidURL) ||
		errors.Is(err, domain.ErrUnsupportedLanguage) ||
		errors.Is(err, domain.ErrConceptIndex)
}
