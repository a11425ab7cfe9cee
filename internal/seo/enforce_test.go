package seo

import (
	"strings"
	"testing"

	"github.com/iconidentify/vidseo/internal/domain"
	"github.com/iconidentify/vidseo/internal/language"
)

func TestTimestampCount(t *testing.T) {
	tests := []struct {
		seconds int
		want    int
	}{
		{0, 5},
		{-30, 5},
		{60, 5},
		{600, 5},
		{900, 8},
		{1200, 10},
		{1500, 13},
		{3600, 15},
		{36000, 15},
	}
	for _, tt := range tests {
		if got := TimestampCount(tt.seconds); got != tt.want {
			t.Errorf("TimestampCount(%d) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestEnforceTitles(t *testing.T) {
	tests := []struct {
		name       string
		input      []domain.TitleSuggestion
		wantTitles []string
		wantPadded bool
	}{
		{
			name: "sorted by model rank",
			input: []domain.TitleSuggestion{
				{Rank: 3, Title: "C"}, {Rank: 1, Title: "A"}, {Rank: 2, Title: "B"},
				{Rank: 5, Title: "E"}, {Rank: 4, Title: "D"},
			},
			wantTitles: []string{"A", "B", "C", "D", "E"},
		},
		{
			name: "unranked keep order after ranked",
			input: []domain.TitleSuggestion{
				{Title: "X"}, {Rank: 2, Title: "B"}, {Title: "Y"}, {Rank: 1, Title: "A"}, {Title: "Z"},
			},
			wantTitles: []string{"A", "B", "X", "Y", "Z"},
		},
		{
			name: "truncated to seven",
			input: []domain.TitleSuggestion{
				{Rank: 1, Title: "1"}, {Rank: 2, Title: "2"}, {Rank: 3, Title: "3"}, {Rank: 4, Title: "4"},
				{Rank: 5, Title: "5"}, {Rank: 6, Title: "6"}, {Rank: 7, Title: "7"}, {Rank: 8, Title: "8"},
			},
			wantTitles: []string{"1", "2", "3", "4", "5", "6", "7"},
		},
		{
			name:       "padded from templates",
			input:      []domain.TitleSuggestion{{Rank: 1, Title: "Sleep Better Tonight"}},
			wantTitles: []string{"Sleep Better Tonight", "Fix Your Sleep", "Complete Guide to Fix Your Sleep", "How to Fix Your Sleep", "Top 10 Fix Your Sleep Tips"},
			wantPadded: true,
		},
		{
			name:       "padding skips duplicates",
			input:      []domain.TitleSuggestion{{Rank: 1, Title: "fix your sleep"}},
			wantTitles: []string{"fix your sleep", "Complete Guide to Fix Your Sleep", "How to Fix Your Sleep", "Top 10 Fix Your Sleep Tips", "Fix Your Sleep | Explained"},
			wantPadded: true,
		},
		{
			name:       "empty becomes fallback",
			input:      nil,
			wantTitles: []string{"Fix Your Sleep", "Complete Guide to Fix Your Sleep", "How to Fix Your Sleep", "Top 10 Fix Your Sleep Tips", "Fix Your Sleep | Explained"},
			wantPadded: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, padded := enforceTitles(tt.input, "Fix Your Sleep", language.English)
			if padded != tt.wantPadded {
				t.Errorf("padded = %v, want %v", padded, tt.wantPadded)
			}
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("len = %d, want %d: %+v", len(got), len(tt.wantTitles), got)
			}
			for i, title := range got {
				if title.Rank != i+1 {
					t.Errorf("got[%d].Rank = %d, want %d", i, title.Rank, i+1)
				}
				if title.Title != tt.wantTitles[i] {
					t.Errorf("got[%d].Title = %q, want %q", i, title.Title, tt.wantTitles[i])
				}
			}
		})
	}
}

func TestEnforceTimestamps(t *testing.T) {
	many := make([]domain.Timestamp, 12)
	for i := range many {
		many[i] = domain.Timestamp{Time: "00:00", Description: "part"}
	}
	got, degraded := enforceTimestamps(many, 8, language.English)
	if len(got) != 8 || degraded {
		t.Errorf("len = %d degraded = %v, want 8 false", len(got), degraded)
	}

	got, degraded = enforceTimestamps(nil, 8, language.German)
	if len(got) != 1 || got[0].Description != "Einleitung" || !degraded {
		t.Errorf("empty timestamps = %+v degraded = %v", got, degraded)
	}

	few := []domain.Timestamp{{Time: "00:00", Description: "Intro"}, {Time: "02:10", Description: "Why"}}
	got, _ = enforceTimestamps(few, 8, language.English)
	if len(got) != 2 {
		t.Errorf("short list should be kept, got %d", len(got))
	}
}

func TestEnforceTimestamps_DropsUnparseableTimes(t *testing.T) {
	in := []domain.Timestamp{
		{Time: "0:00", Description: "Intro"},
		{Time: "soon", Description: "Teaser"},
		{Time: "2:5", Description: "Bad seconds"},
		{Time: "03:75", Description: "Seconds overflow"},
		{Time: "12:30", Description: ""},
		{Time: "75:30", Description: "Long minutes"},
		{Time: "1:02:03", Description: "Hour form"},
		{Time: "1:72:03", Description: "Hour form overflow"},
		{Time: "-1:00", Description: "Negative"},
		{Time: "04:10 ", Description: "Trailing space"},
	}
	got, degraded := enforceTimestamps(in, 8, language.English)
	if degraded {
		t.Error("degraded = true, want false")
	}
	want := []string{"00:00", "75:30", "1:02:03", "04:10"}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want times %v", got, want)
	}
	for i, w := range want {
		if got[i].Time != w {
			t.Errorf("got[%d].Time = %q, want %q", i, got[i].Time, w)
		}
	}

	got, degraded = enforceTimestamps([]domain.Timestamp{{Time: "later", Description: "x"}}, 8, language.English)
	if !degraded || len(got) != 1 || got[0].Time != "00:00" {
		t.Errorf("all invalid = %+v degraded = %v, want intro fallback", got, degraded)
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"00:00", "00:00", true},
		{"2:10", "02:10", true},
		{"10:00:00", "10:00:00", true},
		{"", "", false},
		{"12", "", false},
		{"1:2:3:4", "", false},
		{"ab:cd", "", false},
		{"1:00:5", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeTimestamp(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("normalizeTimestamp(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDecodeSEODraft(t *testing.T) {
	obj, err := Parse(`{
		"tags": ["sleep", " ", "health", 42],
		"description": "  A description.  ",
		"num_timestamps": [{"time": "00:00", "description": "Intro"}, {"foo": "bar"}, {"timestamp": "01:30", "title": "Routine"}],
		"titles": [{"rank": "2", "title": "B", "reasons": ["short", "clear"]}, {"rank": 1, "title": "A", "reason": "r"}, "C", {"rank": 3}]
	}`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	d := decodeSEODraft(obj)

	if len(d.Tags) != 3 || d.Tags[2] != "42" {
		t.Errorf("tags = %v", d.Tags)
	}
	if d.Description != "A description." {
		t.Errorf("description = %q", d.Description)
	}
	if len(d.Timestamps) != 2 || d.Timestamps[1].Time != "01:30" || d.Timestamps[1].Description != "Routine" {
		t.Errorf("timestamps = %+v", d.Timestamps)
	}
	if len(d.Titles) != 3 {
		t.Fatalf("titles = %+v", d.Titles)
	}
	if d.Titles[0].Rank != 2 || d.Titles[0].Reason != "short; clear" {
		t.Errorf("titles[0] = %+v", d.Titles[0])
	}
	if d.Titles[2].Title != "C" || d.Titles[2].Rank != 0 {
		t.Errorf("titles[2] = %+v", d.Titles[2])
	}
}

func TestDecodeSEODraft_CommaSeparatedTags(t *testing.T) {
	d := decodeSEODraft(map[string]any{"tags": "sleep, health,\nrest"})
	if len(d.Tags) != 3 || d.Tags[2] != "rest" {
		t.Errorf("tags = %v", d.Tags)
	}
}

func TestNormalizeHex(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"#ff0000", "#FF0000", true},
		{"#FFF", "#FFFFFF", true},
		{"00ff00", "#00FF00", true},
		{" #1a2B3c ", "#1A2B3C", true},
		{"red", "", false},
		{"#12345", "", false},
		{"", "", false},
		{"#GGGGGG", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeHex(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeHex(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestEnforceThumbnails(t *testing.T) {
	res, err := ParseValue(`[
		{"concept": "Moon over bed", "text_overlay": "Sleep Like A Baby", "colors": ["#0b1d51", "navy", "#fff", "#ffcc00", "#000"], "focal_point": "moon", "tone": "calm", "composition": "centered"},
		{"text_overlay": "Stop Doing This", "colors": "#ff0000, #00ff00"},
		{"irrelevant": true},
		{"concept": "Clock", "text_overlay": "Bedtime Rules", "colors": []}
	]`)
	if err != nil {
		t.Fatalf("ParseValue() error = %v", err)
	}

	got, degraded := enforceThumbnails(decodeThumbnails(res), domain.PlatformYouTube, language.English)
	if degraded {
		t.Error("degraded = true, want false with three usable concepts")
	}
	if len(got.Concepts) != 3 {
		t.Fatalf("concepts = %d", len(got.Concepts))
	}

	first := got.Concepts[0]
	if want := []string{"#0B1D51", "#FFFFFF", "#FFCC00"}; !equalStrings(first.Colors, want) {
		t.Errorf("first colors = %v, want %v", first.Colors, want)
	}

	second := got.Concepts[1]
	if second.Concept == "" || second.Tone == "" {
		t.Errorf("missing fields should be filled: %+v", second)
	}
	if want := []string{"#FF0000", "#00FF00", "#FF0000"}; !equalStrings(second.Colors, want) {
		t.Errorf("second colors = %v, want %v", second.Colors, want)
	}

	third := got.Concepts[2]
	if third.Concept != "Clock" || len(third.Colors) != 3 {
		t.Errorf("third = %+v", third)
	}
}

func TestEnforceThumbnails_PadsMissing(t *testing.T) {
	res, err := ParseValue(`{"concepts": [{"concept": "Only one", "text_overlay": "Just One Idea", "colors": ["#111111", "#222222", "#333333"]}]}`)
	if err != nil {
		t.Fatalf("ParseValue() error = %v", err)
	}
	got, degraded := enforceThumbnails(decodeThumbnails(res), domain.PlatformYouTube, language.French)
	if !degraded {
		t.Error("degraded = false, want true")
	}
	if len(got.Concepts) != 3 {
		t.Fatalf("concepts = %d", len(got.Concepts))
	}
	if got.Concepts[0].Concept != "Only one" {
		t.Errorf("first concept = %q", got.Concepts[0].Concept)
	}
	if got.Concepts[1].TextOverlay != localeFor(language.French).Concepts[1].TextOverlay {
		t.Errorf("padding should use the localized fallback, got %q", got.Concepts[1].TextOverlay)
	}
}

func TestEnforceThumbnails_CapsOverlayWords(t *testing.T) {
	raw := []map[string]any{
		{"concept": "Desk", "text_overlay": "The  Seven Habits That Will Change Your Mornings"},
		{"concept": "Bed", "text_overlay": "Sleep Better Tonight"},
	}
	got, _ := enforceThumbnails(raw, domain.PlatformYouTube, language.English)
	if got.Concepts[0].TextOverlay != "The Seven Habits That Will" {
		t.Errorf("long overlay = %q", got.Concepts[0].TextOverlay)
	}
	if got.Concepts[1].TextOverlay != "Sleep Better Tonight" {
		t.Errorf("short overlay = %q, want unchanged", got.Concepts[1].TextOverlay)
	}
	for i, c := range got.Concepts {
		if n := len(strings.Fields(c.TextOverlay)); n > domain.MaxOverlayWords {
			t.Errorf("concept %d overlay has %d words", i, n)
		}
	}
}

func TestDecodeThumbnails_UnknownShape(t *testing.T) {
	res, _ := ParseValue(`{"ideas": [{"concept": "x"}]}`)
	if got := decodeThumbnails(res); len(got) != 0 {
		t.Errorf("decodeThumbnails = %v, want none", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
