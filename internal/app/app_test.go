package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/iconidentify/vidseo/internal/config"
	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_MemoryWithoutCredential(t *testing.T) {
	cfg := config.Default()
	a, err := New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if _, ok := a.Runs.(*repository.InMemoryRunRepository); !ok {
		t.Errorf("Runs = %T, want in-memory", a.Runs)
	}
	if a.Service.Configured() {
		t.Error("service should report a missing credential")
	}
	if a.StoragePath() != "." {
		t.Errorf("StoragePath = %q", a.StoragePath())
	}

	_, err = a.Service.Submit(context.Background(), service.SubmitRequest{URL: "https://youtu.be/abc"})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Errorf("Submit() error = %v, want ErrConfiguration", err)
	}
}

func TestNew_SQLite(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverSQLite
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "runs.db")
	cfg.Pipeline.IncludeHindi = false

	a, err := New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := a.Runs.(*repository.SQLiteRunRepository); !ok {
		t.Errorf("Runs = %T, want sqlite", a.Runs)
	}
	if len(a.Languages.All()) != 11 {
		t.Errorf("languages = %d, want 11 without Hindi", len(a.Languages.All()))
	}
	if a.StoragePath() != filepath.Dir(cfg.Storage.DBPath) {
		t.Errorf("StoragePath = %q", a.StoragePath())
	}
	if err := a.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPipelineOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.Strategy = config.StrategyDirect
	cfg.Pipeline.AnalysisFailure = config.AnalysisFailureDegrade
	cfg.LLM.Temperature = 0.3

	opts := PipelineOptions(cfg)
	if opts.Strategy.Name() != "direct" || opts.AnalysisFailure != seo.AnalysisDegrade || opts.Temperature != 0.3 {
		t.Errorf("opts = %+v", opts)
	}
	if opts.StageTimeout != cfg.Pipeline.StageTimeout {
		t.Errorf("StageTimeout = %v", opts.StageTimeout)
	}

	cfg.Pipeline.AnalysisFailure = config.AnalysisFailureFail
	if PipelineOptions(cfg).AnalysisFailure != seo.AnalysisFail {
		t.Error("fail policy not mapped")
	}
}
