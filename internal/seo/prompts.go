package seo

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iconidentify/vidseo/internal/domain"
)

// Prompt is a system+user message pair for one Gateway call.
type Prompt struct {
	System string
	User   string
}

// PromptInput carries the per-run values every stage prompt embeds.
type PromptInput struct {
	VideoURL string
	Metadata domain.VideoMetadata
	Language string
}

// TopUpInput carries the values for a tag top-up prompt.
type TopUpInput struct {
	Platform domain.Platform
	Title    string
	Tags     []string
	Needed   int
	Language string
}

// PromptStrategy builds the prompts for each pipeline stage.
type PromptStrategy interface {
	Name() string
	Analysis(in PromptInput) Prompt
	SEO(in PromptInput, analysis string, timestamps int) Prompt
	Thumbnails(in PromptInput, analysis, seoJSON string) Prompt
	TopUp(in TopUpInput) Prompt
}

// NewStrategy returns the strategy registered under name. Unknown names
// return the chained strategy.
func NewStrategy(name string) PromptStrategy {
	if strings.EqualFold(strings.TrimSpace(name), "direct") {
		return DirectStrategy{}
	}
	return ChainedStrategy{}
}

const seoJSONShape = `{
  "tags": ["..."],
  "description": "...",
  "timestamps": [{"time": "00:00", "description": "..."}],
  "titles": [{"rank": 1, "title": "...", "reason": "..."}]
}`

const thumbnailJSONShape = `{
  "thumbnail_concepts": [
    {
      "concept": "...",
      "text_overlay": "...",
      "colors": ["#xxxxxx", "#xxxxxx", "#xxxxxx"],
      "focal_point": "...",
      "tone": "...",
      "composition": "..."
    }
  ]
}`

// DirectStrategy issues terse prompts with the JSON shape inlined.
type DirectStrategy struct{}

// Name implements PromptStrategy.
func (DirectStrategy) Name() string { return "direct" }

// Analysis implements PromptStrategy.
func (DirectStrategy) Analysis(in PromptInput) Prompt {
	platform := in.Metadata.Platform.DisplayName()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze the %s video at %s with title %q.\n", platform, in.VideoURL, in.Metadata.Title))
	sb.WriteString(analysisChecklist)
	sb.WriteString(fmt.Sprintf("\nYour analysis should be in %s language.\n", in.Language))
	sb.WriteString("Make reasonable assumptions based on the available information.")
	return Prompt{
		System: fmt.Sprintf("You are a video content analyst specialized in %s videos. Respond in %s.", platform, in.Language),
		User:   sb.String(),
	}
}

// SEO implements PromptStrategy.
func (DirectStrategy) SEO(in PromptInput, analysis string, timestamps int) Prompt {
	platform := in.Metadata.Platform.DisplayName()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on this analysis of a %s video titled %q:\n", platform, in.Metadata.Title))
	sb.WriteString(analysis)
	sb.WriteString(fmt.Sprintf("\n\nGenerate comprehensive SEO recommendations optimized for %s including:\n", platform))
	sb.WriteString(fmt.Sprintf("1. Exactly %d trending hashtags/tags\n", domain.TagCount))
	sb.WriteString("2. SEO-optimized description (400-500 words)\n")
	sb.WriteString(fmt.Sprintf("3. %d timestamps (duration: %d seconds)\n", timestamps, in.Metadata.DurationSeconds))
	sb.WriteString(fmt.Sprintf("4. %d-%d alternative title suggestions\n", domain.MinTitleSuggestions, domain.MaxTitleSuggestions))
	sb.WriteString(fmt.Sprintf("\nAll output must be in %s.\n", in.Language))
	sb.WriteString("\nFormat as JSON:\n")
	sb.WriteString(seoJSONShape)
	return Prompt{
		System: fmt.Sprintf("You are an SEO expert for %s.", platform),
		User:   sb.String(),
	}
}

// Thumbnails implements PromptStrategy.
func (DirectStrategy) Thumbnails(in PromptInput, analysis, seoJSON string) Prompt {
	platform := in.Metadata.Platform.DisplayName()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Based on this analysis of a %s video titled %q:\n", platform, in.Metadata.Title))
	sb.WriteString(analysis)
	sb.WriteString("\n\nFinalized SEO recommendations:\n")
	sb.WriteString(seoJSON)
	sb.WriteString(fmt.Sprintf("\n\nCreate %d thumbnail concepts. For each:\n", domain.ThumbnailConceptCount))
	sb.WriteString(thumbnailChecklist)
	sb.WriteString(fmt.Sprintf("\nWrite all text in %s.\n", in.Language))
	sb.WriteString("\nFormat:\n")
	sb.WriteString(thumbnailJSONShape)
	return Prompt{
		System: fmt.Sprintf("You are a thumbnail designer for %s.", platform),
		User:   sb.String(),
	}
}

// TopUp implements PromptStrategy.
func (DirectStrategy) TopUp(in TopUpInput) Prompt {
	return topUpPrompt(in)
}

// ChainedStrategy issues context-rich prompts with localized examples so the
// model stays in the requested language.
type ChainedStrategy struct{}

// Name implements PromptStrategy.
func (ChainedStrategy) Name() string { return "chained" }

// Analysis implements PromptStrategy.
func (ChainedStrategy) Analysis(in PromptInput) Prompt {
	platform := in.Metadata.Platform.DisplayName()
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze the %s video at %s titled %q.\n", platform, in.VideoURL, in.Metadata.Title))
	if d := strings.TrimSpace(in.Metadata.Description); d != "" {
		sb.WriteString(fmt.Sprintf("Creator description: %s\n", truncateRunes(d, 1500)))
	}
	if in.Metadata.Author != "" {
		sb.WriteString(fmt.Sprintf("Channel: %s\n", in.Metadata.Author))
	}
	sb.WriteString(analysisChecklist)
	sb.WriteString(fmt.Sprintf("\nRespond in %s.", in.Language))
	return Prompt{
		System: fmt.Sprintf("You are a video content analyst specialized in understanding %s videos, their structures, and audience appeal.", platform),
		User:   sb.String(),
	}
}

// SEO implements PromptStrategy.
func (ChainedStrategy) SEO(in PromptInput, analysis string, timestamps int) Prompt {
	loc := localeFor(in.Language)
	platform := in.Metadata.Platform.DisplayName()
	lang := in.Language

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("All output (tags, description, timestamps, titles) must be in %s. Do NOT use English or any other language.\n\n", lang))
	sb.WriteString(fmt.Sprintf("For example, if the language is %s, tags should look like: [%s]\n", lang, strings.Join(loc.TagExamples[:], ", ")))
	sb.WriteString(fmt.Sprintf("Example title in %s: %s\n\n", lang, loc.TitleExample))
	sb.WriteString(fmt.Sprintf("Video Title: %s\n", in.Metadata.Title))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", platform))
	sb.WriteString(fmt.Sprintf("Video URL: %s\n", in.VideoURL))
	sb.WriteString(fmt.Sprintf("Duration: %d seconds\n", in.Metadata.DurationSeconds))
	sb.WriteString(fmt.Sprintf("Description: %s\n", truncateRunes(in.Metadata.Description, 1500)))
	sb.WriteString(fmt.Sprintf("Transcript: %s\n", truncateRunes(in.Metadata.Transcript, 4000)))
	sb.WriteString("\nContent analysis:\n")
	sb.WriteString(analysis)
	sb.WriteString("\n\nTasks:\n")
	sb.WriteString(fmt.Sprintf("1. Generate exactly %d tags.\n", domain.TagCount))
	sb.WriteString("2. Write an SEO-optimized description of 400-500 words.\n")
	sb.WriteString(fmt.Sprintf("3. Generate exactly %d timestamps with 'time' (MM:SS) and 'description' fields, based on the actual content and structure of the video. Each timestamp should be unique and relevant to this specific video.\n", timestamps))
	sb.WriteString(fmt.Sprintf("4. Suggest %d-%d alternative titles ranked from 1, each with a reason.\n", domain.MinTitleSuggestions, domain.MaxTitleSuggestions))
	sb.WriteString("\nRespond ONLY with a valid JSON object with the keys 'tags', 'description', 'timestamps', and 'titles':\n")
	sb.WriteString("```json\n")
	sb.WriteString(seoJSONShape)
	sb.WriteString("\n```\n")
	sb.WriteString(fmt.Sprintf("\nRespond ONLY in %s.", lang))
	return Prompt{
		System: "You are an SEO specialist and video content analyst.",
		User:   sb.String(),
	}
}

// Thumbnails implements PromptStrategy.
func (ChainedStrategy) Thumbnails(in PromptInput, analysis, seoJSON string) Prompt {
	platform := in.Metadata.Platform.DisplayName()
	var sb strings.Builder
	sb.WriteString("Based on the following video analysis and SEO recommendations:\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", in.Metadata.Title))
	sb.WriteString(fmt.Sprintf("Platform: %s\n", platform))
	sb.WriteString(fmt.Sprintf("Analysis: %s\n", analysis))
	sb.WriteString(fmt.Sprintf("SEO: %s\n\n", seoJSON))
	sb.WriteString(fmt.Sprintf("Generate %d creative thumbnail concepts. For each, provide:\n", domain.ThumbnailConceptCount))
	sb.WriteString("- concept: Main idea\n")
	sb.WriteString("- text_overlay: 3-5 word catchy text\n")
	sb.WriteString("- colors: 3 hex codes\n")
	sb.WriteString("- focal_point: Main visual focus\n")
	sb.WriteString("- tone: Emotional tone\n")
	sb.WriteString("- composition: Layout details\n\n")
	sb.WriteString("```json\n")
	sb.WriteString(thumbnailJSONShape)
	sb.WriteString("\n```\n")
	sb.WriteString(fmt.Sprintf("\nRespond in %s.", in.Language))
	return Prompt{
		System: fmt.Sprintf("You are a %s thumbnail designer.", platform),
		User:   sb.String(),
	}
}

// TopUp implements PromptStrategy.
func (ChainedStrategy) TopUp(in TopUpInput) Prompt {
	return topUpPrompt(in)
}

const analysisChecklist = `Provide a detailed analysis including:
1. A summary of the video content (based on the title and any metadata)
2. Main topics likely covered (at least 5 specific topics)
3. Emotional tone and style of the video
4. Target audience demographics and interests
5. Content structure and flow
`

const thumbnailChecklist = `1. Main visual elements
2. Text overlay (3-5 words)
3. Color scheme (3 hex codes)
4. Focal point
5. Emotional tone
6. Composition details
`

func topUpPrompt(in TopUpInput) Prompt {
	existing, _ := json.Marshal(in.Tags)
	user := fmt.Sprintf(
		"Based on these existing tags for a %s video about %q: %s\nGenerate %d additional relevant and trending tags in %s.\nReturn ONLY a JSON array with the new tags.",
		in.Platform.DisplayName(), in.Title, existing, in.Needed, in.Language,
	)
	return Prompt{User: user}
}

func truncateRunes(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
