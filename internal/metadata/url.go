package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/iconidentify/vidseo/internal/domain"
)

var youtubeIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/e/|youtube\.com/watch\?.*[?&]?v=)([^&?#/]+)`),
	regexp.MustCompile(`youtube\.com/shorts/([^&?#/]+)`),
}

// NormalizeURL trims raw and adds an https scheme when none is present.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty URL", domain.ErrInvalidURL)
	}
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidURL, raw)
	}
	return raw, nil
}

// DetectPlatform identifies the host platform of a normalized URL.
func DetectPlatform(rawURL string) domain.Platform {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return domain.PlatformUnknown
	}
	host := strings.ToLower(u.Hostname())

	switch {
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtu.be"):
		return domain.PlatformYouTube
	case strings.Contains(host, "instagram.com"):
		return domain.PlatformInstagram
	case strings.Contains(host, "facebook.com"):
		return domain.PlatformFacebook
	case strings.Contains(host, "linkedin.com"):
		return domain.PlatformLinkedIn
	case strings.Contains(host, "tiktok.com"):
		return domain.PlatformTikTok
	case strings.Contains(host, "twitter.com") || host == "x.com" || strings.HasSuffix(host, ".x.com"):
		return domain.PlatformTwitter
	}
	return domain.PlatformUnknown
}

// ExtractYouTubeID returns the video ID from any of the common YouTube URL
// shapes, or "" if none is present.
func ExtractYouTubeID(rawURL string) string {
	for _, re := range youtubeIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) > 1 {
			return m[1]
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil || !strings.Contains(strings.ToLower(u.Host), "youtube.com") {
		return ""
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	parts := strings.Split(u.Path, "/")
	for i, part := range parts {
		if part == "shorts" && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1]
		}
	}
	return ""
}
