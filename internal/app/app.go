// Package app assembles the object graph shared by the server, CLI and TUI
// binaries from a loaded configuration.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/iconidentify/vidseo/internal/config"
	"github.com/iconidentify/vidseo/internal/language"
	"github.com/iconidentify/vidseo/internal/metadata"
	"github.com/iconidentify/vidseo/internal/previewcache"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/service"
	"github.com/iconidentify/vidseo/internal/thumbnail"
	"github.com/iconidentify/vidseo/pkg/llm"
)

// App holds the wired components.
type App struct {
	Config    *config.Config
	Runs      repository.RunRepository
	Jobs      repository.JobRepository
	Gateway   *llm.HTTPClient
	Pipeline  *seo.Pipeline
	Metadata  *metadata.Provider
	Languages *language.Set
	Renderer  *thumbnail.Renderer
	Previews  *previewcache.Cache
	Service   *service.AnalysisService

	closers []func() error
}

// New builds every component from cfg. Close releases the storage.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{Config: cfg}

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(cfg.Storage.DBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("open run store: %w", err)
		}
		a.Runs = repo
		a.closers = append(a.closers, repo.Close)
	default:
		a.Runs = repository.NewInMemoryRunRepository()
	}
	a.Jobs = repository.NewInMemoryJobRepository()

	a.Gateway = llm.NewClient(cfg.LLM)
	a.Pipeline = seo.NewPipeline(a.Gateway, PipelineOptions(cfg), logger)
	a.Metadata = metadata.NewProvider(cfg.Metadata, logger)
	a.Languages = language.NewSet(cfg.Pipeline.IncludeHindi)
	a.Renderer = thumbnail.NewRenderer(cfg.Preview.Width, cfg.Preview.Height)
	a.Previews = previewcache.New(
		previewcache.WithMaxEntries(cfg.Preview.CacheSize),
		previewcache.WithTTL(cfg.Preview.CacheTTL),
	)

	a.Service = service.NewAnalysisService(
		a.Runs,
		a.Jobs,
		a.Metadata,
		a.Pipeline,
		a.Languages,
		a.Previews,
		a.Renderer,
		cfg.Worker,
		logger,
	)

	logger.Info("components initialized",
		"storage", cfg.Storage.Driver,
		"strategy", a.Pipeline.Strategy().Name(),
		"llm_configured", a.Pipeline.Configured(),
		"languages", len(a.Languages.All()),
	)
	return a, nil
}

// PipelineOptions maps the pipeline section of cfg onto seo.Options.
func PipelineOptions(cfg *config.Config) seo.Options {
	policy := seo.AnalysisFail
	if cfg.Pipeline.AnalysisFailure == config.AnalysisFailureDegrade {
		policy = seo.AnalysisDegrade
	}
	return seo.Options{
		Strategy:        seo.NewStrategy(cfg.Pipeline.Strategy),
		Temperature:     cfg.LLM.Temperature,
		StageTimeout:    cfg.Pipeline.StageTimeout,
		AnalysisFailure: policy,
	}
}

// StoragePath is the directory whose disk usage is reported by /stats.
func (a *App) StoragePath() string {
	if a.Config.Storage.Driver == config.DriverSQLite {
		if abs, err := filepath.Abs(filepath.Dir(a.Config.Storage.DBPath)); err == nil {
			return abs
		}
	}
	return "."
}

// Close releases storage handles.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
