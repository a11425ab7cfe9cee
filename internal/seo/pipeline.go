package seo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
)

// Gateway completes a system+user prompt pair into model text.
type Gateway interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// configurable is implemented by gateways that can report a missing credential.
type configurable interface {
	Configured() bool
}

// AnalysisFailurePolicy decides what a failed analysis stage does to the run.
type AnalysisFailurePolicy string

const (
	// AnalysisFail aborts the run with a *domain.StageError.
	AnalysisFail AnalysisFailurePolicy = "fail"
	// AnalysisDegrade continues with empty analysis text.
	AnalysisDegrade AnalysisFailurePolicy = "degrade"
)

// Options configures a Pipeline.
type Options struct {
	Strategy        PromptStrategy
	Temperature     float64
	StageTimeout    time.Duration
	AnalysisFailure AnalysisFailurePolicy
}

// StageObserver is notified as each stage starts.
type StageObserver func(stage domain.Stage)

// RunOption customizes a single Run call.
type RunOption func(*runSettings)

type runSettings struct {
	observer StageObserver
	logger   *slog.Logger
}

// OnStage registers an observer for stage transitions.
func OnStage(fn StageObserver) RunOption {
	return func(s *runSettings) {
		s.observer = fn
	}
}

// WithLogger scopes the run's log output, e.g. with a run ID.
func WithLogger(logger *slog.Logger) RunOption {
	return func(s *runSettings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Pipeline sequences the analysis, SEO and thumbnail stages. It holds no
// per-run state and is safe for concurrent use.
type Pipeline struct {
	gateway    Gateway
	strategy   PromptStrategy
	normalizer *TagNormalizer
	opts       Options
	logger     *slog.Logger
}

// NewPipeline creates a pipeline around gateway. A nil gateway is allowed;
// every Run then fails with domain.ErrConfiguration.
func NewPipeline(gateway Gateway, opts Options, logger *slog.Logger) *Pipeline {
	if opts.Strategy == nil {
		opts.Strategy = ChainedStrategy{}
	}
	if opts.AnalysisFailure == "" {
		opts.AnalysisFailure = AnalysisFail
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		gateway:    gateway,
		strategy:   opts.Strategy,
		normalizer: NewTagNormalizer(gateway, opts.Strategy, opts.Temperature, opts.StageTimeout, logger),
		opts:       opts,
		logger:     logger,
	}
}

// Strategy returns the prompt strategy in use.
func (p *Pipeline) Strategy() PromptStrategy {
	return p.strategy
}

// Configured reports whether the gateway can be called.
func (p *Pipeline) Configured() bool {
	if p.gateway == nil {
		return false
	}
	if c, ok := p.gateway.(configurable); ok {
		return c.Configured()
	}
	return true
}

// Run executes the three stages in order. The only errors returned are
// domain.ErrConfiguration (before any Gateway call), a *domain.StageError
// for the analysis stage under the fail policy, and a *domain.StageError
// wrapping ctx.Err() once ctx is done. SEO and thumbnail failures are
// replaced by fallback output; a cancelled run returns no result at all.
func (p *Pipeline) Run(ctx context.Context, videoURL string, meta domain.VideoMetadata, lang string, opts ...RunOption) (*domain.PipelineResult, error) {
	settings := runSettings{logger: p.logger}
	for _, opt := range opts {
		opt(&settings)
	}
	logger := settings.logger.With("language", lang, "platform", meta.Platform.String())

	if !p.Configured() {
		return nil, domain.ErrConfiguration
	}
	if lang == "" {
		lang = language.Default
	}

	in := PromptInput{VideoURL: videoURL, Metadata: meta, Language: lang}
	notify := func(stage domain.Stage) {
		if settings.observer != nil {
			settings.observer(stage)
		}
	}

	notify(domain.StageAnalysis)
	analysis, err := p.runAnalysis(ctx, in, logger)
	if err != nil {
		return nil, err
	}

	if err := abandoned(ctx, domain.StageSEO); err != nil {
		return nil, err
	}
	notify(domain.StageSEO)
	seo := p.runSEO(ctx, in, analysis, logger)

	if err := abandoned(ctx, domain.StageThumbnails); err != nil {
		return nil, err
	}
	notify(domain.StageThumbnails)
	thumbnails := p.runThumbnails(ctx, in, analysis, seo, logger)

	// Fallback output produced on a dead context is not a result.
	if err := abandoned(ctx, domain.StageThumbnails); err != nil {
		return nil, err
	}

	return &domain.PipelineResult{
		Analysis:   domain.AnalysisResult(analysis),
		SEO:        seo,
		Thumbnails: thumbnails,
	}, nil
}

func abandoned(ctx context.Context, stage domain.Stage) error {
	if err := ctx.Err(); err != nil {
		return domain.NewStageError(stage, err)
	}
	return nil
}

func (p *Pipeline) runAnalysis(ctx context.Context, in PromptInput, logger *slog.Logger) (string, error) {
	logger = logger.With("stage", string(domain.StageAnalysis))
	logger.Info("stage started")

	prompt := p.strategy.Analysis(in)
	text, err := p.complete(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", domain.NewStageError(domain.StageAnalysis, err)
		}
		if p.opts.AnalysisFailure == AnalysisDegrade {
			logger.Warn("analysis failed, continuing without context", "error", err)
			return "", nil
		}
		logger.Error("analysis failed", "error", err)
		return "", domain.NewStageError(domain.StageAnalysis, err)
	}

	logger.Info("stage completed", "chars", len(text))
	return text, nil
}

func (p *Pipeline) runSEO(ctx context.Context, in PromptInput, analysis string, logger *slog.Logger) domain.SeoResult {
	logger = logger.With("stage", string(domain.StageSEO))
	logger.Info("stage started")

	meta := in.Metadata
	count := TimestampCount(meta.DurationSeconds)
	prompt := p.strategy.SEO(in, analysis, count)

	text, err := p.complete(ctx, prompt)
	if err != nil {
		logger.Warn("seo completion failed, using fallback", "error", err)
		return FallbackSEO(meta, in.Language)
	}

	obj, err := Parse(text)
	if err != nil {
		logger.Warn("seo output unparseable, using fallback", "error", err)
		return FallbackSEO(meta, in.Language)
	}

	draft := decodeSEODraft(obj)
	logger.Debug("seo draft decoded", "counts", describeCounts(draft))

	result := domain.SeoResult{Tags: draft.Tags}
	if len(draft.Tags) != domain.TagCount {
		tags, padded := p.normalizer.Normalize(ctx, draft.Tags, TagContext{
			Platform: meta.Platform,
			Title:    meta.Title,
			Language: in.Language,
		})
		result.Tags = tags
		result.Degraded = result.Degraded || padded
	}

	result.Description = draft.Description
	if result.Description == "" {
		result.Description = fallbackDescription(meta, in.Language)
		result.Degraded = true
	}

	timestamps, tsDegraded := enforceTimestamps(draft.Timestamps, count, in.Language)
	result.Timestamps = timestamps
	result.Degraded = result.Degraded || tsDegraded

	titles, titlesPadded := enforceTitles(draft.Titles, meta.Title, in.Language)
	result.Titles = titles
	result.Degraded = result.Degraded || titlesPadded

	logger.Info("stage completed", "tags", len(result.Tags), "timestamps", len(result.Timestamps), "titles", len(result.Titles), "degraded", result.Degraded)
	return result
}

func (p *Pipeline) runThumbnails(ctx context.Context, in PromptInput, analysis string, seo domain.SeoResult, logger *slog.Logger) domain.ThumbnailResult {
	logger = logger.With("stage", string(domain.StageThumbnails))
	logger.Info("stage started")

	platform := in.Metadata.Platform
	seoJSON, err := json.Marshal(seo)
	if err != nil {
		seoJSON = []byte("{}")
	}

	prompt := p.strategy.Thumbnails(in, analysis, string(seoJSON))
	text, err := p.complete(ctx, prompt)
	if err != nil {
		logger.Warn("thumbnail completion failed, using fallback", "error", err)
		return FallbackThumbnails(platform, in.Language)
	}

	res, err := ParseValue(text)
	if err != nil {
		logger.Warn("thumbnail output unparseable, using fallback", "error", err)
		return FallbackThumbnails(platform, in.Language)
	}

	result, degraded := enforceThumbnails(decodeThumbnails(res), platform, in.Language)
	logger.Info("stage completed", "concepts", len(result.Concepts), "degraded", degraded)
	return result
}

// complete calls the gateway under the per-stage timeout. A timeout is
// reported like any other gateway failure.
func (p *Pipeline) complete(ctx context.Context, prompt Prompt) (string, error) {
	if p.opts.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.StageTimeout)
		defer cancel()
	}
	text, err := p.gateway.Complete(ctx, prompt.System, prompt.User, p.opts.Temperature)
	if err != nil {
		var gwErr *domain.GatewayError
		if !errors.As(err, &gwErr) {
			err = &domain.GatewayError{Op: "complete", Err: err}
		}
		return "", err
	}
	return text, nil
}
