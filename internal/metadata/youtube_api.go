package metadata

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/iconidentify/vidseo/internal/domain"
)

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// enrichFromAPI fills meta from the YouTube Data API v3 videos.list call.
func (p *Provider) enrichFromAPI(ctx context.Context, meta *domain.VideoMetadata) error {
	opts := []option.ClientOption{option.WithHTTPClient(p.httpClient)}
	if p.apiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(p.apiEndpoint))
	}
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create youtube service: %w", err)
	}

	resp, err := svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(meta.VideoID).
		Context(ctx).
		Do(googleapi.QueryParameter("key", p.youtubeAPIKey))
	if err != nil {
		return fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return fmt.Errorf("videos.list: no video with id %s", meta.VideoID)
	}

	item := resp.Items[0]
	if s := item.Snippet; s != nil {
		if s.Title != "" {
			meta.Title = s.Title
		}
		meta.Description = s.Description
		if s.ChannelTitle != "" {
			meta.Author = s.ChannelTitle
		}
		if thumb := bestThumbnail(s.Thumbnails); thumb != "" {
			meta.ThumbnailURL = thumb
		}
	}
	if cd := item.ContentDetails; cd != nil {
		if secs, ok := parseISODuration(cd.Duration); ok {
			meta.DurationSeconds = secs
		}
	}
	if st := item.Statistics; st != nil {
		meta.Views = int64(st.ViewCount)
	}
	return nil
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

// parseISODuration converts durations such as "PT1H2M3S" or "P1DT5M" to seconds.
func parseISODuration(s string) (int, bool) {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" {
		return 0, false
	}
	units := []int{86400, 3600, 60, 1}
	total := 0
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, false
		}
		total += n * unit
	}
	return total, true
}
