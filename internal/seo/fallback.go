package seo

import (
	"fmt"
	"strings"

	"github.com/iconidentify/vidseo/internal/domain"
)

const defaultTitle = "Video Title"

// platformPalettes are the fallback thumbnail colors keyed by platform.
var platformPalettes = map[domain.Platform][3]string{
	domain.PlatformYouTube:   {"#FF0000", "#FFFFFF", "#000000"},
	domain.PlatformInstagram: {"#E1306C", "#F77737", "#FFFFFF"},
	domain.PlatformFacebook:  {"#1877F2", "#FFFFFF", "#000000"},
	domain.PlatformLinkedIn:  {"#0A66C2", "#FFFFFF", "#000000"},
	domain.PlatformTikTok:    {"#FE2C55", "#25F4EE", "#000000"},
	domain.PlatformTwitter:   {"#1DA1F2", "#FFFFFF", "#000000"},
}

// Palette returns the three fallback colors for a platform.
func Palette(platform domain.Platform) []string {
	p, ok := platformPalettes[platform]
	if !ok {
		p = platformPalettes[domain.PlatformYouTube]
	}
	return []string{p[0], p[1], p[2]}
}

// FallbackSEO returns the deterministic localized SEO result. It performs no I/O.
func FallbackSEO(meta domain.VideoMetadata, lang string) domain.SeoResult {
	loc := localeFor(lang)
	title := titleOrDefault(meta.Title)

	tags := make([]string, len(loc.Tags))
	copy(tags, loc.Tags[:])

	return domain.SeoResult{
		Tags:        tags,
		Description: fallbackDescription(meta, lang),
		Timestamps:  fallbackTimestamps(lang),
		Titles:      fallbackTitles(title, lang),
		Degraded:    true,
	}
}

// FallbackThumbnails returns the deterministic localized thumbnail concepts.
func FallbackThumbnails(platform domain.Platform, lang string) domain.ThumbnailResult {
	loc := localeFor(lang)
	concepts := make([]domain.ThumbnailConcept, 0, domain.ThumbnailConceptCount)
	for i := range loc.Concepts {
		concepts = append(concepts, fallbackConcept(platform, lang, i))
	}
	return domain.ThumbnailResult{Concepts: concepts, Degraded: true}
}

func fallbackConcept(platform domain.Platform, lang string, idx int) domain.ThumbnailConcept {
	c := localeFor(lang).Concepts[idx%domain.ThumbnailConceptCount]
	return domain.ThumbnailConcept{
		Concept:     c.Concept,
		TextOverlay: c.TextOverlay,
		Colors:      Palette(platform),
		FocalPoint:  c.FocalPoint,
		Tone:        c.Tone,
		Composition: c.Composition,
	}
}

func fallbackTitles(title, lang string) []domain.TitleSuggestion {
	loc := localeFor(lang)
	titles := make([]domain.TitleSuggestion, 0, 1+len(loc.Titles))
	titles = append(titles, domain.TitleSuggestion{Rank: 1, Title: title, Reason: loc.OriginalReason})
	for i, tpl := range loc.Titles {
		titles = append(titles, domain.TitleSuggestion{
			Rank:   i + 2,
			Title:  fmt.Sprintf(tpl.Format, title),
			Reason: tpl.Reason,
		})
	}
	return titles
}

func fallbackDescription(meta domain.VideoMetadata, lang string) string {
	loc := localeFor(lang)
	platform := meta.Platform.DisplayName()
	body := fmt.Sprintf(loc.Description, platform, titleOrDefault(meta.Title))
	return body + "\n\n#" + strings.ReplaceAll(platform, " ", "") + " " + loc.TagExamples[2]
}

func fallbackTimestamps(lang string) []domain.Timestamp {
	return []domain.Timestamp{{Time: "00:00", Description: localeFor(lang).Intro}}
}

func titleOrDefault(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return defaultTitle
}
