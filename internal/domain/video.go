package domain

import "strings"

// Platform identifies the video host a URL belongs to.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformUnknown   Platform = "unknown"
)

// String returns the string representation of the Platform.
func (p Platform) String() string {
	return string(p)
}

// DisplayName returns the platform name as shown to users and embedded in prompts.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformInstagram:
		return "Instagram"
	case PlatformFacebook:
		return "Facebook"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformTikTok:
		return "TikTok"
	case PlatformTwitter:
		return "Twitter"
	case "":
		return "YouTube"
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// VideoMetadata is the read-only description of a video produced by the
// metadata provider and consumed by the pipeline.
type VideoMetadata struct {
	Platform        Platform `json:"platform"`
	VideoID         string   `json:"video_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Transcript      string   `json:"transcript,omitempty"`
	DurationSeconds int      `json:"duration_seconds"`
	Views           int64    `json:"views"`
	Author          string   `json:"author"`
	ThumbnailURL    string   `json:"thumbnail_url"`
}

// DurationMinutes returns the duration in fractional minutes.
func (m VideoMetadata) DurationMinutes() float64 {
	if m.DurationSeconds <= 0 {
		return 0
	}
	return float64(m.DurationSeconds) / 60
}
