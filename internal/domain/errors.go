package domain

import (
	"errors"
	"fmt"
	"strconv"
)

// Domain errors.
var (
	// ErrConfiguration is returned when the LLM credential is missing.
	ErrConfiguration = errors.New("llm gateway not configured: missing API key")

	// ErrInvalidURL is returned when a video URL cannot be parsed or has no video identifier.
	ErrInvalidURL = errors.New("invalid video URL")

	// ErrUnsupportedPlatform is returned when a URL does not belong to a known platform.
	ErrUnsupportedPlatform = errors.New("unsupported video platform")

	// ErrGateway is returned when an LLM completion call fails.
	ErrGateway = errors.New("llm gateway call failed")

	// ErrParse is returned when no JSON can be extracted from LLM output.
	ErrParse = errors.New("no JSON found in model output")

	// ErrRunNotFound is returned when a run cannot be found.
	ErrRunNotFound = errors.New("run not found")

	// ErrJobNotFound is returned when a job cannot be found.
	ErrJobNotFound = errors.New("job not found")

	// ErrNoJobs is returned when there are no jobs to process.
	ErrNoJobs = errors.New("no jobs available")

	// ErrSessionBusy is returned when a session already has a run in flight.
	ErrSessionBusy = errors.New("session already has an active run")

	// ErrUnsupportedLanguage is returned when an output language is not in the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrConceptIndex is returned when a thumbnail concept index is out of range.
	ErrConceptIndex = errors.New("thumbnail concept index out of range")
)

// StageError wraps a hard failure of a pipeline stage.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return "stage " + string(e.Stage) + ": " + e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// GatewayError describes a failed LLM completion call.
type GatewayError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	msg := "gateway " + e.Op
	if e.StatusCode != 0 {
		msg += " (status " + strconv.Itoa(e.StatusCode) + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is matches ErrGateway.
func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}

// ParseError describes model output with no extractable JSON.
type ParseError struct {
	Snippet string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse model output %q: %v", e.Snippet, e.Err)
	}
	return fmt.Sprintf("parse model output %q: %v", e.Snippet, ErrParse)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsRetryable reports whether a failed run may succeed if attempted again.
// Configuration and input errors never do; gateway errors do unless the
// provider rejected the request itself.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	for _, permanent := range []error{ErrConfiguration, ErrInvalidURL, ErrUnsupportedLanguage, ErrRunNotFound} {
		if errors.Is(err, permanent) {
			return false
		}
	}
	var gw *GatewayError
	if errors.As(err, &gw) {
		switch {
		case gw.StatusCode == 0, gw.StatusCode == 408, gw.StatusCode == 429, gw.StatusCode >= 500:
			return true
		default:
			return false
		}
	}
	return true
}
