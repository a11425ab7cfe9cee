package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// =============================================================================
// Identifier Tests
// =============================================================================

func TestRunID_String(t *testing.T) {
	tests := []struct {
		name string
		id   RunID
		want string
	}{
		{"simple ID", RunID("run_abc12345"), "run_abc12345"},
		{"empty ID", RunID(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("RunID.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatform_DisplayName(t *testing.T) {
	tests := []struct {
		platform Platform
		want     string
	}{
		{PlatformYouTube, "YouTube"},
		{PlatformInstagram, "Instagram"},
		{PlatformLinkedIn, "LinkedIn"},
		{PlatformTikTok, "TikTok"},
		{PlatformTwitter, "Twitter"},
		{PlatformUnknown, "Unknown"},
		{Platform("vimeo"), "Vimeo"},
		{Platform(""), "YouTube"},
	}

	for _, tt := range tests {
		t.Run(string(tt.platform), func(t *testing.T) {
			if got := tt.platform.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestVideoMetadata_DurationMinutes(t *testing.T) {
	tests := []struct {
		seconds int
		want    float64
	}{
		{0, 0},
		{-5, 0},
		{600, 10},
		{90, 1.5},
	}
	for _, tt := range tests {
		m := VideoMetadata{DurationSeconds: tt.seconds}
		if got := m.DurationMinutes(); got != tt.want {
			t.Errorf("DurationMinutes(%d) = %v, want %v", tt.seconds, got, tt.want)
		}
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestStage_RunStatus(t *testing.T) {
	tests := []struct {
		stage Stage
		want  RunStatus
	}{
		{StageAnalysis, RunStatusAnalyzing},
		{StageSEO, RunStatusOptimizing},
		{StageThumbnails, RunStatusDesigning},
		{Stage("other"), RunStatusQueued},
	}
	for _, tt := range tests {
		if got := tt.stage.RunStatus(); got != tt.want {
			t.Errorf("%s.RunStatus() = %s, want %s", tt.stage, got, tt.want)
		}
	}
}

func TestRunStatus_IsTerminal(t *testing.T) {
	terminal := map[RunStatus]bool{
		RunStatusQueued:     false,
		RunStatusAnalyzing:  false,
		RunStatusOptimizing: false,
		RunStatusDesigning:  false,
		RunStatusCompleted:  true,
		RunStatusFailed:     true,
	}
	for status, want := range terminal {
		if got := status.IsTerminal(); got != want {
			t.Errorf("%s.IsTerminal() = %v, want %v", status, got, want)
		}
	}
}

func TestNewRun(t *testing.T) {
	meta := VideoMetadata{Platform: PlatformYouTube, Title: "Fix Your Sleep"}
	run := NewRun("run_1", "sess_1", "https://youtu.be/abc", "English", meta)

	if run.Status != RunStatusQueued {
		t.Errorf("Status = %s, want queued", run.Status)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if run.Result != nil || run.CompletedAt != nil {
		t.Error("new run should have no result")
	}
	if run.Metadata.Title != "Fix Your Sleep" {
		t.Errorf("Metadata.Title = %q", run.Metadata.Title)
	}
}

// =============================================================================
// Job Tests
// =============================================================================

func TestJob_Lifecycle(t *testing.T) {
	job := NewJob("job_1", "run_1", 2)
	if job.Status != JobStatusQueued {
		t.Fatalf("Status = %s, want queued", job.Status)
	}

	job.MarkProcessing()
	if job.Status != JobStatusProcessing {
		t.Errorf("Status = %s, want processing", job.Status)
	}

	job.MarkFailed("gateway down", true)
	if job.Status != JobStatusRetrying || job.Attempts != 1 {
		t.Errorf("after first failure: status=%s attempts=%d", job.Status, job.Attempts)
	}

	job.MarkFailed("gateway down", true)
	if job.Status != JobStatusFailed || job.Attempts != 2 {
		t.Errorf("after second failure: status=%s attempts=%d", job.Status, job.Attempts)
	}
	if job.LastError != "gateway down" {
		t.Errorf("LastError = %q", job.LastError)
	}
}

func TestJob_MarkFailedNotRetryable(t *testing.T) {
	job := NewJob("job_1", "run_1", 5)
	job.MarkFailed("missing key", false)
	if job.Status != JobStatusFailed {
		t.Errorf("Status = %s, want failed", job.Status)
	}
}

func TestJob_MarkCompleted(t *testing.T) {
	job := NewJob("job_1", "run_1", 3)
	before := job.UpdatedAt
	job.MarkCompleted()
	if job.Status != JobStatusCompleted {
		t.Errorf("Status = %s, want completed", job.Status)
	}
	if job.UpdatedAt.Before(before) {
		t.Error("UpdatedAt went backwards")
	}
}

// =============================================================================
// Error Tests
// =============================================================================

func TestGatewayError(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("seo stage: %w", &GatewayError{Op: "complete", StatusCode: 503, Err: cause})

	if !errors.Is(err, ErrGateway) {
		t.Error("expected errors.Is(err, ErrGateway)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable")
	}
	if errors.Is(err, ErrParse) {
		t.Error("gateway error should not match ErrParse")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("Error() = %q, want status code", err.Error())
	}

	var gwErr *GatewayError
	if !errors.As(err, &gwErr) || gwErr.StatusCode != 503 {
		t.Error("errors.As should find GatewayError")
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Snippet: "no json here"}
	if !errors.Is(err, ErrParse) {
		t.Error("expected errors.Is(err, ErrParse)")
	}
	if !strings.Contains(err.Error(), "no json here") {
		t.Errorf("Error() = %q, want snippet", err.Error())
	}

	wrapped := &ParseError{Snippet: "{bad", Err: errors.New("unexpected EOF")}
	if !strings.Contains(wrapped.Error(), "unexpected EOF") {
		t.Errorf("Error() = %q, want cause", wrapped.Error())
	}
}

func TestStageError(t *testing.T) {
	err := NewStageError(StageAnalysis, &GatewayError{Op: "complete", Err: errors.New("timeout")})

	if !errors.Is(err, ErrGateway) {
		t.Error("StageError should unwrap to ErrGateway")
	}
	if got := err.Error(); !strings.HasPrefix(got, "stage analysis: ") {
		t.Errorf("Error() = %q", got)
	}
}

// =============================================================================
// Serialization Tests
// =============================================================================

func TestPipelineResult_JSONFieldNames(t *testing.T) {
	result := PipelineResult{
		Analysis: "summary",
		SEO: SeoResult{
			Tags:        []string{"sleep"},
			Description: "desc",
			Timestamps:  []Timestamp{{Time: "00:00", Description: "Intro"}},
			Titles:      []TitleSuggestion{{Rank: 1, Title: "Fix Your Sleep", Reason: "Original title"}},
		},
		Thumbnails: ThumbnailResult{Concepts: []ThumbnailConcept{{
			Concept:     "c",
			TextOverlay: "Sleep Better Tonight",
			Colors:      []string{"#000000", "#FFFFFF", "#FF0000"},
			FocalPoint:  "face",
		}}},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, key := range []string{`"analysis"`, `"tags"`, `"timestamps"`, `"titles"`, `"rank"`, `"thumbnail_concepts"`, `"text_overlay"`, `"focal_point"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("JSON missing key %s: %s", key, data)
		}
	}
	if strings.Contains(string(data), `"degraded"`) {
		t.Errorf("degraded should be omitted when false: %s", data)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"configuration", ErrConfiguration, false},
		{"invalid url", fmt.Errorf("fetch: %w", ErrInvalidURL), false},
		{"network", &GatewayError{Op: "complete", Err: errors.New("connection reset")}, true},
		{"rate limited", &GatewayError{Op: "complete", StatusCode: 429}, true},
		{"server error", NewStageError(StageAnalysis, &GatewayError{Op: "complete", StatusCode: 502}), true},
		{"unauthorized", NewStageError(StageAnalysis, &GatewayError{Op: "complete", StatusCode: 401}), false},
		{"unknown", errors.New("disk full"), true},
	}
	for _, tt := range tests {
		if got := IsRetryable(tt.err); got != tt.want {
			t.Errorf("IsRetryable(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
