package domain

// TagCount is the exact number of tags every SeoResult carries.
const TagCount = 35

// ThumbnailConceptCount is the exact number of concepts per ThumbnailResult.
const ThumbnailConceptCount = 3

// ThumbnailColorCount is the exact number of hex colors per concept.
const ThumbnailColorCount = 3

// MaxOverlayWords caps a concept's text overlay.
const MaxOverlayWords = 5

// Title suggestion bounds.
const (
	MinTitleSuggestions = 5
	MaxTitleSuggestions = 7
)

// Timestamp bounds for the requested chapter count.
const (
	MinTimestamps = 5
	MaxTimestamps = 15
)

// AnalysisResult is the free-form content analysis produced by the first stage.
type AnalysisResult string

// String returns the analysis text.
func (a AnalysisResult) String() string {
	return string(a)
}

// Timestamp is a single chapter marker.
type Timestamp struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

// TitleSuggestion is a ranked alternative title.
type TitleSuggestion struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// SeoResult holds the SEO artifacts for one run.
type SeoResult struct {
	Tags        []string          `json:"tags"`
	Description string            `json:"description"`
	Timestamps  []Timestamp       `json:"timestamps"`
	Titles      []TitleSuggestion `json:"titles"`

	// Degraded is set when any part of the result came from the fallback tables.
	Degraded bool `json:"degraded,omitempty"`
}

// ThumbnailConcept is one thumbnail design proposal.
type ThumbnailConcept struct {
	Concept     string   `json:"concept"`
	TextOverlay string   `json:"text_overlay"`
	Colors      []string `json:"colors"`
	FocalPoint  string   `json:"focal_point"`
	Tone        string   `json:"tone"`
	Composition string   `json:"composition"`
}

// ThumbnailResult holds exactly three concepts.
type ThumbnailResult struct {
	Concepts []ThumbnailConcept `json:"thumbnail_concepts"`
	Degraded bool               `json:"degraded,omitempty"`
}

// PipelineResult is the aggregate output of a pipeline run.
type PipelineResult struct {
	Analysis   AnalysisResult  `json:"analysis"`
	SEO        SeoResult       `json:"seo"`
	Thumbnails ThumbnailResult `json:"thumbnails"`
}
