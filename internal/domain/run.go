package domain

import (
	"time"
)

// RunID is a unique identifier for an analysis run.
type RunID string

// String returns the string representation of the RunID.
func (id RunID) String() string {
	return string(id)
}

// SessionID identifies the presentation-layer session that owns a run.
type SessionID string

// String returns the string representation of the SessionID.
func (id SessionID) String() string {
	return string(id)
}

// RunStatus represents the current processing state of a run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusAnalyzing  RunStatus = "analyzing"
	RunStatusOptimizing RunStatus = "optimizing"
	RunStatusDesigning  RunStatus = "designing"
	RunStatusCompleted  RunStatus = "completed"
	RunStatusFailed     RunStatus = "failed"
)

// IsTerminal reports whether no further transitions are expected.
func (s RunStatus) IsTerminal() bool {
	return s == RunStatusCompleted || s == RunStatusFailed
}

// Stage names one LLM round-trip in the pipeline.
type Stage string

const (
	StageAnalysis   Stage = "analysis"
	StageSEO        Stage = "seo"
	StageThumbnails Stage = "thumbnails"
)

// RunStatus returns the run status reported while the stage executes.
func (s Stage) RunStatus() RunStatus {
	switch s {
	case StageAnalysis:
		return RunStatusAnalyzing
	case StageSEO:
		return RunStatusOptimizing
	case StageThumbnails:
		return RunStatusDesigning
	}
	return RunStatusQueued
}

// Run is one user-triggered pipeline invocation tracked by the service layer.
type Run struct {
	ID          RunID
	SessionID   SessionID
	VideoURL    string
	Language    string
	Metadata    VideoMetadata
	Status      RunStatus
	Result      *PipelineResult
	Error       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewRun creates a queued run.
func NewRun(id RunID, session SessionID, videoURL, language string, meta VideoMetadata) *Run {
	return &Run{
		ID:        id,
		SessionID: session,
		VideoURL:  videoURL,
		Language:  language,
		Metadata:  meta,
		Status:    RunStatusQueued,
		CreatedAt: time.Now(),
	}
}
