package seo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iconidentify/vidseo/internal/domain"
)

// TagContext is what the top-up prompt is seeded with.
type TagContext struct {
	Platform domain.Platform
	Title    string
	Language string
}

// TagNormalizer enforces the exact tag count.
type TagNormalizer struct {
	gateway     Gateway
	strategy    PromptStrategy
	temperature float64
	timeout     time.Duration
	logger      *slog.Logger
}

// NewTagNormalizer creates a normalizer that tops up short lists through gateway.
func NewTagNormalizer(gateway Gateway, strategy PromptStrategy, temperature float64, timeout time.Duration, logger *slog.Logger) *TagNormalizer {
	if strategy == nil {
		strategy = ChainedStrategy{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TagNormalizer{
		gateway:     gateway,
		strategy:    strategy,
		temperature: temperature,
		timeout:     timeout,
		logger:      logger,
	}
}

// Normalize returns exactly domain.TagCount tags. The first min(len(tags), 35)
// input tags are kept in order. A short list triggers one top-up call; any
// remaining gap is filled with related_tag_{i} placeholders. The second return
// reports whether placeholders were used.
func (n *TagNormalizer) Normalize(ctx context.Context, tags []string, tc TagContext) ([]string, bool) {
	if len(tags) >= domain.TagCount {
		out := make([]string, domain.TagCount)
		copy(out, tags[:domain.TagCount])
		return out, false
	}

	out := make([]string, len(tags), domain.TagCount)
	copy(out, tags)

	needed := domain.TagCount - len(out)
	extra, err := n.topUp(ctx, out, needed, tc)
	if err != nil {
		n.logger.Warn("tag top-up failed, padding with placeholders",
			"have", len(out),
			"needed", needed,
			"error", err,
		)
	}
	if len(extra) > needed {
		extra = extra[:needed]
	}
	out = append(out, extra...)

	padded := false
	for i := len(out); i < domain.TagCount; i++ {
		out = append(out, fmt.Sprintf("related_tag_%d", i))
		padded = true
	}
	return out, padded
}

func (n *TagNormalizer) topUp(ctx context.Context, tags []string, needed int, tc TagContext) ([]string, error) {
	if n.gateway == nil {
		return nil, domain.ErrConfiguration
	}

	prompt := n.strategy.TopUp(TopUpInput{
		Platform: tc.Platform,
		Title:    tc.Title,
		Tags:     tags,
		Needed:   needed,
		Language: tc.Language,
	})

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	text, err := n.gateway.Complete(ctx, prompt.System, prompt.User, n.temperature)
	if err != nil {
		return nil, fmt.Errorf("top-up completion: %w", err)
	}

	res, err := ParseValue(text)
	if err != nil {
		return nil, err
	}

	var items []any
	switch v := res.(type) {
	case ArrayResult:
		items = v
	case ObjectResult:
		arr, ok := v.FirstArray()
		if !ok {
			return nil, &domain.ParseError{Snippet: snippet(text), Err: fmt.Errorf("object has no array field")}
		}
		items = arr
	}
	return stringItems(items), nil
}

// stringItems converts JSON array elements to trimmed strings, skipping
// empty values and nested structures.
func stringItems(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		switch v := item.(type) {
		case string:
			s = v
		case float64, bool:
			s = fmt.Sprint(v)
		default:
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
