package seo

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/iconidentify/vidseo/internal/domain"
)

var jsonFencePattern = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*?)\\s*```")

// Parse extracts a JSON object from free-form model output. It tries a
// fenced ```json block first, then the span from the first '{' to the last
// '}'. Failure is returned as a *domain.ParseError; callers decide the
// fallback policy.
func Parse(text string) (map[string]any, error) {
	var lastErr error

	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		var obj map[string]any
		err := json.Unmarshal([]byte(m[1]), &obj)
		if err == nil && obj != nil {
			return obj, nil
		}
		lastErr = err
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		var obj map[string]any
		err := json.Unmarshal([]byte(text[start:end+1]), &obj)
		if err == nil && obj != nil {
			return obj, nil
		}
		lastErr = err
	}

	return nil, &domain.ParseError{Snippet: snippet(text), Err: lastErr}
}

// Result is a parsed model response that may be either a JSON array or object.
type Result interface {
	isResult()
}

// ArrayResult is a bare JSON array response.
type ArrayResult []any

// ObjectResult is a JSON object response. Raw keeps the source bytes so
// fields can be visited in document order.
type ObjectResult struct {
	Fields map[string]any
	Raw    []byte
}

func (ArrayResult) isResult()  {}
func (ObjectResult) isResult() {}

// FirstArray returns the first array-valued field in document order.
func (o ObjectResult) FirstArray() ([]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(o.Raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil, false
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			continue
		}
		var arr []any
		if err := json.Unmarshal(trimmed, &arr); err == nil {
			return arr, true
		}
	}
	return nil, false
}

// ParseValue extracts either a JSON array or a JSON object from model output,
// whichever bracket appears first after an unusable fenced block.
func ParseValue(text string) (Result, error) {
	var lastErr error

	if m := jsonFencePattern.FindStringSubmatch(text); m != nil {
		res, err := decodeValue([]byte(m[1]))
		if err == nil {
			return res, nil
		}
		lastErr = err
	}

	spans := []struct{ open, close string }{{"{", "}"}, {"[", "]"}}
	objAt := strings.Index(text, "{")
	arrAt := strings.Index(text, "[")
	if arrAt >= 0 && (objAt < 0 || arrAt < objAt) {
		spans[0], spans[1] = spans[1], spans[0]
	}
	for _, s := range spans {
		start := strings.Index(text, s.open)
		end := strings.LastIndex(text, s.close)
		if start < 0 || end <= start {
			continue
		}
		res, err := decodeValue([]byte(text[start : end+1]))
		if err == nil {
			return res, nil
		}
		lastErr = err
	}

	return nil, &domain.ParseError{Snippet: snippet(text), Err: lastErr}
}

func decodeValue(data []byte) (Result, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty JSON payload")
	}
	switch trimmed[0] {
	case '[':
		var arr []any
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, err
		}
		return ArrayResult(arr), nil
	case '{':
		var obj map[string]any
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		return ObjectResult{Fields: obj, Raw: trimmed}, nil
	}
	return nil, errors.New("payload is neither a JSON array nor object")
}

func snippet(text string) string {
	clean := strings.Join(strings.Fields(text), " ")
	const limit = 120
	runes := []rune(clean)
	if len(runes) > limit {
		return string(runes[:limit]) + "..."
	}
	return clean
}
