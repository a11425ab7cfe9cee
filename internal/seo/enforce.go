package seo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iconidentify/vidseo/internal/domain"
)

// seoDraft is the loosely-typed SEO payload before structural enforcement.
type seoDraft struct {
	Tags        []string
	Description string
	Timestamps  []domain.Timestamp
	Titles      []domain.TitleSuggestion
}

func decodeSEODraft(obj map[string]any) seoDraft {
	var d seoDraft
	if arr, ok := obj["tags"].([]any); ok {
		d.Tags = stringItems(arr)
	} else if s, ok := obj["tags"].(string); ok {
		d.Tags = splitList(s)
	}
	d.Description = strings.TrimSpace(stringField(obj, "description"))

	rawTimestamps, ok := obj["timestamps"].([]any)
	if !ok {
		rawTimestamps, _ = obj["num_timestamps"].([]any)
	}
	for _, item := range rawTimestamps {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		ts := domain.Timestamp{
			Time:        strings.TrimSpace(firstString(m, "time", "timestamp")),
			Description: strings.TrimSpace(firstString(m, "description", "title", "label")),
		}
		if ts.Time == "" && ts.Description == "" {
			continue
		}
		d.Timestamps = append(d.Timestamps, ts)
	}

	rawTitles, _ := obj["titles"].([]any)
	for _, item := range rawTitles {
		switch v := item.(type) {
		case string:
			if t := strings.TrimSpace(v); t != "" {
				d.Titles = append(d.Titles, domain.TitleSuggestion{Title: t})
			}
		case map[string]any:
			t := strings.TrimSpace(stringField(v, "title"))
			if t == "" {
				continue
			}
			d.Titles = append(d.Titles, domain.TitleSuggestion{
				Rank:   rankField(v["rank"]),
				Title:  t,
				Reason: strings.TrimSpace(firstString(v, "reason", "reasons")),
			})
		}
	}
	return d
}

// enforceTitles orders titles by model rank, bounds the count to [5, 7] using
// fallback templates for padding, and renumbers ranks from 1. The second
// return reports whether padding was needed.
func enforceTitles(titles []domain.TitleSuggestion, originalTitle, lang string) ([]domain.TitleSuggestion, bool) {
	out := make([]domain.TitleSuggestion, len(titles))
	copy(out, titles)
	sort.SliceStable(out, func(i, j int) bool {
		return rankKey(out[i].Rank) < rankKey(out[j].Rank)
	})
	if len(out) > domain.MaxTitleSuggestions {
		out = out[:domain.MaxTitleSuggestions]
	}

	padded := false
	if len(out) < domain.MinTitleSuggestions {
		seen := make(map[string]bool, len(out))
		for _, t := range out {
			seen[strings.ToLower(t.Title)] = true
		}
		for _, fb := range fallbackTitles(titleOrDefault(originalTitle), lang) {
			if len(out) >= domain.MinTitleSuggestions {
				break
			}
			if seen[strings.ToLower(fb.Title)] {
				continue
			}
			out = append(out, fb)
			padded = true
		}
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out, padded
}

// enforceTimestamps drops entries whose time is not M:SS, MM:SS or H:MM:SS
// or whose description is empty, and caps the rest at want. An empty result
// falls back to a single intro entry.
func enforceTimestamps(timestamps []domain.Timestamp, want int, lang string) ([]domain.Timestamp, bool) {
	out := make([]domain.Timestamp, 0, min(len(timestamps), want))
	for _, ts := range timestamps {
		if len(out) == want {
			break
		}
		t, ok := normalizeTimestamp(ts.Time)
		if !ok || ts.Description == "" {
			continue
		}
		out = append(out, domain.Timestamp{Time: t, Description: ts.Description})
	}
	if len(out) == 0 {
		return fallbackTimestamps(lang), true
	}
	return out, false
}

// normalizeTimestamp zero-pads minutes so "2:05" becomes "02:05". Hour forms
// keep their hour and require minutes below 60.
func normalizeTimestamp(s string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", false
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || len(p) > 3 {
			return "", false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", false
		}
		nums[i] = n
	}
	secs := nums[len(nums)-1]
	if secs > 59 || len(parts[len(parts)-1]) != 2 {
		return "", false
	}
	if len(nums) == 3 {
		if nums[1] > 59 || len(parts[1]) != 2 {
			return "", false
		}
		return fmt.Sprintf("%d:%02d:%02d", nums[0], nums[1], secs), true
	}
	return fmt.Sprintf("%02d:%02d", nums[0], secs), true
}

// decodeThumbnails extracts concepts from a bare array or from the
// thumbnail_concepts / concepts keys of an object.
func decodeThumbnails(res Result) []map[string]any {
	var items []any
	switch v := res.(type) {
	case ArrayResult:
		items = v
	case ObjectResult:
		for _, key := range []string{"thumbnail_concepts", "concepts"} {
			if arr, ok := v.Fields[key].([]any); ok {
				items = arr
				break
			}
		}
	}
	concepts := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			concepts = append(concepts, m)
		}
	}
	return concepts
}

// enforceThumbnails returns exactly three concepts with exactly three valid
// colors each. Missing concepts and fields come from the localized fallback.
func enforceThumbnails(raw []map[string]any, platform domain.Platform, lang string) (domain.ThumbnailResult, bool) {
	degraded := false
	concepts := make([]domain.ThumbnailConcept, 0, domain.ThumbnailConceptCount)

	for _, m := range raw {
		if len(concepts) == domain.ThumbnailConceptCount {
			break
		}
		c := domain.ThumbnailConcept{
			Concept:     strings.TrimSpace(firstString(m, "concept", "main_visual", "visual_elements")),
			TextOverlay: strings.TrimSpace(firstString(m, "text_overlay", "text")),
			FocalPoint:  strings.TrimSpace(stringField(m, "focal_point")),
			Tone:        strings.TrimSpace(firstString(m, "tone", "emotional_tone")),
			Composition: strings.TrimSpace(stringField(m, "composition")),
		}
		if c.Concept == "" && c.TextOverlay == "" {
			continue
		}
		fb := fallbackConcept(platform, lang, len(concepts))
		if c.Concept == "" {
			c.Concept = fb.Concept
		}
		if c.TextOverlay == "" {
			c.TextOverlay = fb.TextOverlay
		}
		c.TextOverlay = limitWords(c.TextOverlay, domain.MaxOverlayWords)
		if c.FocalPoint == "" {
			c.FocalPoint = fb.FocalPoint
		}
		if c.Tone == "" {
			c.Tone = fb.Tone
		}
		if c.Composition == "" {
			c.Composition = fb.Composition
		}
		c.Colors = normalizeColors(colorItems(m["colors"]), platform)
		concepts = append(concepts, c)
	}

	for len(concepts) < domain.ThumbnailConceptCount {
		concepts = append(concepts, fallbackConcept(platform, lang, len(concepts)))
		degraded = true
	}
	return domain.ThumbnailResult{Concepts: concepts, Degraded: degraded}, degraded
}

// limitWords keeps the first n whitespace-separated words of s.
func limitWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}

// normalizeColors keeps valid hex colors as uppercase #RRGGBB, then pads
// from the platform palette to exactly three.
func normalizeColors(colors []string, platform domain.Platform) []string {
	out := make([]string, 0, domain.ThumbnailColorCount)
	for _, c := range colors {
		if len(out) == domain.ThumbnailColorCount {
			break
		}
		if hex, ok := NormalizeHex(c); ok {
			out = append(out, hex)
		}
	}
	palette := Palette(platform)
	for i := 0; len(out) < domain.ThumbnailColorCount; i++ {
		out = append(out, palette[i%len(palette)])
	}
	return out
}

// NormalizeHex parses "#rgb", "#rrggbb" or the same without '#' and returns
// the uppercase #RRGGBB form.
func NormalizeHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return strings.ToUpper(c.Hex()), true
}

func colorItems(v any) []string {
	switch t := v.(type) {
	case []any:
		return stringItems(t)
	case string:
		return splitList(t)
	}
	return nil
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case []any:
		return strings.Join(stringItems(v), "; ")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringField(m, k); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func rankField(v any) int {
	switch t := v.(type) {
	case float64:
		if t >= 1 && t <= math.MaxInt32 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(t, "#"))); err == nil && n >= 1 {
			return n
		}
	}
	return 0
}

// rankKey sorts missing ranks after ranked entries.
func rankKey(rank int) int {
	if rank <= 0 {
		return math.MaxInt32
	}
	return rank
}

func splitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func describeCounts(d seoDraft) string {
	return fmt.Sprintf("tags=%d timestamps=%d titles=%d", len(d.Tags), len(d.Timestamps), len(d.Titles))
}
