// Package metadata derives video metadata from a URL: platform detection,
// YouTube ID extraction and best-effort enrichment from the YouTube Data API,
// the watch page and oEmbed.
package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iconidentify/vidseo/internal/config"
	"github.com/iconidentify/vidseo/internal/domain"
)

const (
	defaultDurationSeconds = 300
	defaultUserAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultWebBaseURL      = "https://www.youtube.com"
)

// Fetcher resolves a video URL into metadata.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (domain.VideoMetadata, error)
}

// Provider fetches metadata over HTTP. Enrichment failures never fail a fetch;
// the defaults are returned instead.
type Provider struct {
	httpClient    *http.Client
	userAgent     string
	youtubeAPIKey string
	webBaseURL    string
	apiEndpoint   string
	logger        *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient overrides the HTTP client used for every request.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) {
		if c != nil {
			p.httpClient = c
		}
	}
}

// WithWebBaseURL overrides the origin used for watch pages and oEmbed.
func WithWebBaseURL(base string) Option {
	return func(p *Provider) {
		p.webBaseURL = strings.TrimRight(base, "/")
	}
}

// WithAPIEndpoint overrides the YouTube Data API endpoint.
func WithAPIEndpoint(endpoint string) Option {
	return func(p *Provider) {
		p.apiEndpoint = endpoint
	}
}

// NewProvider creates a metadata provider from configuration.
func NewProvider(cfg config.MetadataConfig, logger *slog.Logger, opts ...Option) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Provider{
		httpClient:    &http.Client{Timeout: timeout},
		userAgent:     ua,
		youtubeAPIKey: cfg.YouTubeAPIKey,
		webBaseURL:    defaultWebBaseURL,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fetch validates rawURL and returns metadata for it. Invalid URLs and
// unknown platforms fail with an error wrapping domain.ErrInvalidURL.
func (p *Provider) Fetch(ctx context.Context, rawURL string) (domain.VideoMetadata, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return domain.VideoMetadata{}, err
	}

	platform := DetectPlatform(normalized)
	switch platform {
	case domain.PlatformUnknown:
		return domain.VideoMetadata{}, fmt.Errorf("%w: %w: %s", domain.ErrInvalidURL, domain.ErrUnsupportedPlatform, normalized)
	case domain.PlatformYouTube:
		id := ExtractYouTubeID(normalized)
		if id == "" {
			return domain.VideoMetadata{}, fmt.Errorf("%w: missing YouTube video ID: %s", domain.ErrInvalidURL, normalized)
		}
		return p.youtubeMetadata(ctx, id), nil
	default:
		return placeholderMetadata(platform), nil
	}
}

func (p *Provider) youtubeMetadata(ctx context.Context, id string) domain.VideoMetadata {
	meta := defaultYouTubeMetadata(id)
	logger := p.logger.With("video_id", id)

	if p.youtubeAPIKey != "" {
		err := p.enrichFromAPI(ctx, &meta)
		if err == nil {
			return meta
		}
		logger.Warn("youtube data api lookup failed, falling back to scraping", "error", err)
	}

	if err := p.enrichFromWatchPage(ctx, &meta); err != nil {
		logger.Warn("watch page scrape failed", "error", err)
	}
	if err := p.enrichFromOEmbed(ctx, &meta); err != nil {
		logger.Debug("oembed lookup failed", "error", err)
	}
	return meta
}

func defaultYouTubeMetadata(id string) domain.VideoMetadata {
	return domain.VideoMetadata{
		Platform:        domain.PlatformYouTube,
		VideoID:         id,
		Title:           fmt.Sprintf("YouTube Video (%s)", id),
		ThumbnailURL:    fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id),
		DurationSeconds: defaultDurationSeconds,
		Author:          "YouTube Creator",
	}
}

func placeholderMetadata(platform domain.Platform) domain.VideoMetadata {
	name := platform.DisplayName()
	return domain.VideoMetadata{
		Platform:        platform,
		VideoID:         "unknown",
		Title:           "Video on " + name,
		ThumbnailURL:    "https://via.placeholder.com/1280x720.png?text=" + platform.String(),
		DurationSeconds: defaultDurationSeconds,
		Author:          name + " Creator",
	}
}
