package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iconidentify/vidseo/internal/api/handler"
	"github.com/iconidentify/vidseo/internal/config"
	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
	"github.com/iconidentify/vidseo/internal/previewcache"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/service"
	"github.com/iconidentify/vidseo/internal/thumbnail"
)

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, rawURL string) (domain.VideoMetadata, error) {
	return domain.VideoMetadata{Platform: domain.PlatformYouTube, VideoID: "abc", Title: "Fix Your Sleep", DurationSeconds: 600}, nil
}

type stubGateway struct{}

func (stubGateway) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error) {
	return "no json here", nil
}

func newTestServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jobs := repository.NewInMemoryJobRepository()
	svc := service.NewAnalysisService(
		repository.NewInMemoryRunRepository(), jobs, stubFetcher{},
		seo.NewPipeline(stubGateway{}, seo.Options{}, logger),
		language.NewSet(true), previewcache.New(), thumbnail.NewRenderer(160, 90),
		config.WorkerConfig{MaxRetries: 1}, logger,
	)
	router := NewRouter(
		handler.NewAnalysisHandler(svc, logger),
		handler.NewHealthHandler(jobs, svc, t.TempDir()),
		handler.NewUIHandler(),
		apiKey, 0, logger,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_AuthBoundary(t *testing.T) {
	srv := newTestServer(t, "secret")

	tests := []struct {
		path string
		key  string
		want int
	}{
		{"/health", "", http.StatusOK},
		{"/ready", "", http.StatusOK},
		{"/", "", http.StatusOK},
		{"//health", "", http.StatusOK},
		{"/api/v1/languages", "", http.StatusUnauthorized},
		{"/api/v1/languages", "secret", http.StatusOK},
		{"/api/v1/stats", "secret", http.StatusOK},
		{"/api/v1/analyses/missing", "secret", http.StatusNotFound},
	}
	for _, tt := range tests {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+tt.path, nil)
		if tt.key != "" {
			req.Header.Set("X-API-Key", tt.key)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s (key %q) = %d, want %d", tt.path, tt.key, resp.StatusCode, tt.want)
		}
	}
}

func TestRouter_SyncAnalysisAndPreview(t *testing.T) {
	srv := newTestServer(t, "")

	resp, err := http.Post(srv.URL+"/api/v1/analyses/sync", "application/json",
		bytes.NewBufferString(`{"url":"https://youtu.be/abc","language":"fr"}`))
	if err != nil {
		t.Fatal(err)
	}
	var run struct {
		RunID  string `json:"run_id"`
		Status string `json:"status"`
	}
	err = json.NewDecoder(resp.Body).Decode(&run)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("sync status = %d err = %v", resp.StatusCode, err)
	}
	if run.Status != "completed" {
		t.Errorf("run status = %q", run.Status)
	}

	resp, err = http.Get(srv.URL + "/api/v1/analyses/" + run.RunID + "/thumbnails/1/preview")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "image/png" {
		t.Errorf("preview status = %d type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
}
