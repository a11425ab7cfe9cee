package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
	"github.com/iconidentify/vidseo/internal/previewcache"
	"github.com/iconidentify/vidseo/internal/repository"
	"github.com/iconidentify/vidseo/internal/seo"
	"github.com/iconidentify/vidseo/internal/service"
)

// AnalysisService is the workflow the handler exposes over HTTP.
type AnalysisService interface {
	Submit(ctx context.Context, req service.SubmitRequest) (*service.SubmitResponse, error)
	Analyze(ctx context.Context, req service.SubmitRequest, observers ...seo.StageObserver) (*domain.Run, error)
	GetStatus(ctx context.Context, runID domain.RunID) (*service.StatusResponse, error)
	List(ctx context.Context, opts repository.ListOptions) ([]*domain.Run, int, error)
	Preview(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error)
	RegeneratePreview(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error)
	Languages() []language.Language
	Configured() bool
}

// AnalysisHandler handles analysis-related HTTP requests.
type AnalysisHandler struct {
	svc    AnalysisService
	logger *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(svc AnalysisService, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		svc:    svc,
		logger: logger,
	}
}

// SubmitRequest is the JSON request body for an analysis.
type SubmitRequest struct {
	URL       string `json:"url"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// SubmitResponse is returned after an analysis is queued.
type SubmitResponse struct {
	RunID     string               `json:"run_id"`
	JobID     string               `json:"job_id"`
	SessionID string               `json:"session_id"`
	Status    string               `json:"status"`
	Language  string               `json:"language"`
	Metadata  domain.VideoMetadata `json:"metadata"`
}

// RunResponse represents a run in list/get responses.
type RunResponse struct {
	RunID       string                 `json:"run_id"`
	SessionID   string                 `json:"session_id"`
	VideoURL    string                 `json:"video_url"`
	Language    string                 `json:"language"`
	Status      string                 `json:"status"`
	Progress    string                 `json:"progress,omitempty"`
	Metadata    domain.VideoMetadata   `json:"metadata"`
	Result      *domain.PipelineResult `json:"result,omitempty"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

// ListResponse contains a page of runs.
type ListResponse struct {
	Runs   []RunResponse `json:"runs"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// LanguagesResponse lists the supported output languages.
type LanguagesResponse struct {
	Languages  []language.Language `json:"languages"`
	Default    string              `json:"default"`
	Configured bool                `json:"llm_configured"`
}

// Submit handles POST /api/v1/analyses
func (h *AnalysisHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Submit(r.Context(), req)
	if err != nil {
		h.fail(w, "submit failed", err)
		return
	}

	writeJSON(w, http.StatusAccepted, SubmitResponse{
		RunID:     string(result.RunID),
		JobID:     string(result.JobID),
		SessionID: string(result.SessionID),
		Status:    string(result.Status),
		Language:  result.Language,
		Metadata:  result.Metadata,
	})
}

// AnalyzeSync handles POST /api/v1/analyses/sync
func (h *AnalysisHandler) AnalyzeSync(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	run, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		h.fail(w, "sync analysis failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(run, "Completed"))
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 50
	offset := 0

	if l := q.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := q.Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	opts := repository.ListOptions{
		Session: domain.SessionID(q.Get("session_id")),
		Limit:   limit,
		Offset:  offset,
	}
	if s := q.Get("status"); s != "" {
		st := domain.RunStatus(s)
		opts.Status = &st
	}

	runs, total, err := h.svc.List(r.Context(), opts)
	if err != nil {
		h.fail(w, "list failed", err)
		return
	}

	response := ListResponse{
		Runs:   make([]RunResponse, 0, len(runs)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, run := range runs {
		rr := toRunResponse(run, "")
		// Results are fetched per run; the list stays light.
		rr.Result = nil
		response.Runs = append(response.Runs, rr)
	}

	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /api/v1/analyses/{runID}
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetStatus(r.Context(), domain.RunID(chi.URLParam(r, "runID")))
	if err != nil {
		h.fail(w, "get failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toRunResponse(status.Run, status.Progress))
}

// Languages handles GET /api/v1/languages
func (h *AnalysisHandler) Languages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LanguagesResponse{
		Languages:  h.svc.Languages(),
		Default:    language.Default,
		Configured: h.svc.Configured(),
	})
}

// Preview handles GET /api/v1/analyses/{runID}/thumbnails/{index}/preview
func (h *AnalysisHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.servePreview(w, r, h.svc.Preview)
}

// RegeneratePreview handles POST /api/v1/analyses/{runID}/thumbnails/{index}/regenerate
func (h *AnalysisHandler) RegeneratePreview(w http.ResponseWriter, r *http.Request) {
	h.servePreview(w, r, h.svc.RegeneratePreview)
}

type previewFunc func(ctx context.Context, runID domain.RunID, index int) (*previewcache.Image, error)

func (h *AnalysisHandler) servePreview(w http.ResponseWriter, r *http.Request, fn previewFunc) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "thumbnail index must be an integer")
		return
	}

	img, err := fn(r.Context(), domain.RunID(chi.URLParam(r, "runID")), index)
	if err != nil {
		h.fail(w, "preview failed", err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Last-Modified", img.CreatedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

func (h *AnalysisHandler) decode(w http.ResponseWriter, r *http.Request) (service.SubmitRequest, bool) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return service.SubmitRequest{}, false
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return service.SubmitRequest{}, false
	}
	return service.SubmitRequest{
		URL:       req.URL,
		Language:  req.Language,
		SessionID: domain.SessionID(req.SessionID),
	}, true
}

func (h *AnalysisHandler) fail(w http.ResponseWriter, msg string, err error) {
	if status, _ := errorStatus(err); status >= http.StatusInternalServerError {
		h.logger.Error(msg, "error", err)
	} else {
		h.logger.Debug(msg, "error", err)
	}
	writeDomainError(w, err)
}

func toRunResponse(run *domain.Run, progress string) RunResponse {
	return RunResponse{
		RunID:       string(run.ID),
		SessionID:   string(run.SessionID),
		VideoURL:    run.VideoURL,
		Language:    run.Language,
		Status:      string(run.Status),
		Progress:    progress,
		Metadata:    run.Metadata,
		Result:      run.Result,
		Error:       run.Error,
		CreatedAt:   run.CreatedAt,
		CompletedAt: run.CompletedAt,
	}
}
